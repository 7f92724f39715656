package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/audit"
	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/metrics"
)

// ======================================================
// INPUT
// ======================================================

type RuleInput struct {
	DayOfWeek       string
	StartTime       string
	EndTime         string
	IsAvailable     bool
	RecurringWeekly bool
	SpecificDate    string
}

type SaveAvailabilityInput struct {
	Settings domain.Settings
	Rules    []RuleInput
}

// ======================================================
// USE CASE
// ======================================================

type SaveAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewSaveAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *SaveAvailability {
	return &SaveAvailability{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates everything before the first write. Settings are written
// first; when the rule replacement then fails the caller gets a
// PartialFailure and the previous rules stay in place.
func (uc *SaveAvailability) Execute(
	ctx context.Context,
	who actor.Actor,
	providerID string,
	in SaveAvailabilityInput,
) error {

	// --------------------------------------------------
	// 1. Only the provider edits their own availability
	// --------------------------------------------------
	if !who.IsProvider() || who.ID != providerID {
		return httperr.Forbidden("forbidden", "only the provider can change this availability")
	}

	// --------------------------------------------------
	// 2. Validation, nothing is written on failure
	// --------------------------------------------------
	if err := in.Settings.Validate(); err != nil {
		return err
	}

	rules := make([]domain.Rule, 0, len(in.Rules))
	for i, r := range in.Rules {
		rule, err := domain.NewRule(
			r.DayOfWeek,
			r.StartTime,
			r.EndTime,
			r.IsAvailable,
			r.RecurringWeekly,
			r.SpecificDate,
		)
		if err != nil {
			var be httperr.BusinessError
			if errors.As(err, &be) {
				be.Message = fmt.Sprintf("slot %d: %s", i+1, be.Message)
				return be
			}
			return err
		}
		rules = append(rules, rule)
	}

	if err := domain.ValidateRules(rules); err != nil {
		metrics.AvailabilitySaves.WithLabelValues("invalid").Inc()
		return err
	}

	// --------------------------------------------------
	// 3. Settings
	// --------------------------------------------------
	if err := uc.repo.SetSettings(ctx, providerID, in.Settings); err != nil {
		metrics.AvailabilitySaves.WithLabelValues("error").Inc()
		return fmt.Errorf("save settings: %w", err)
	}

	// --------------------------------------------------
	// 4. Rules, all or nothing
	// --------------------------------------------------
	if err := uc.repo.ReplaceAllRules(ctx, providerID, rules); err != nil {
		metrics.AvailabilitySaves.WithLabelValues("partial").Inc()
		uc.log.Error("availability rules not replaced after settings were saved",
			slog.String("provider_id", providerID),
			slog.Any("error", err),
		)
		uc.audit.Dispatch(audit.Event{
			ProviderID: providerID,
			ActorID:    who.ID,
			Action:     audit.ActionAvailabilityPartial,
			Entity:     "availability",
			EntityID:   providerID,
			Metadata:   map[string]any{"error": err.Error()},
		})
		return httperr.PartialFailure(
			"partial_failure",
			"settings were saved but the availability slots were not updated; previous slots are unchanged",
		)
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	metrics.AvailabilitySaves.WithLabelValues("ok").Inc()
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    who.ID,
		Action:     audit.ActionAvailabilitySaved,
		Entity:     "availability",
		EntityID:   providerID,
		Metadata: map[string]any{
			"rules":    len(rules),
			"settings": in.Settings,
		},
	})

	return nil
}
