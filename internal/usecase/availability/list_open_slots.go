package availability

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/metrics"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
)

type OpenSlots struct {
	Date     domain.Date     `json:"date"`
	Timezone string          `json:"timezone"`
	Settings domain.Settings `json:"settings"`
	Slots    []domain.Window `json:"slots"`
}

type ListOpenSlots struct {
	users  user.Repository
	finder *OpenSlotFinder
}

func NewListOpenSlots(users user.Repository, finder *OpenSlotFinder) *ListOpenSlots {
	return &ListOpenSlots{users: users, finder: finder}
}

func (uc *ListOpenSlots) Execute(
	ctx context.Context,
	providerID string,
	date string,
) (*OpenSlots, error) {

	if providerID == "" || date == "" {
		return nil, httperr.Validation("missing_fields", "provider id and date are required")
	}

	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", err.Error())
	}

	provider, err := uc.users.GetUser(ctx, providerID)
	if errors.Is(err, user.ErrNotFound) || (err == nil && provider.Role != user.RoleProvider) {
		return nil, httperr.Missing("provider_not_found", "provider not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}

	slots, settings, err := uc.finder.Find(ctx, provider, d)
	if err != nil {
		return nil, err
	}
	metrics.OpenSlotsServed.Observe(float64(len(slots)))

	return &OpenSlots{
		Date:     d,
		Timezone: timezone.Location(provider.Timezone).String(),
		Settings: settings,
		Slots:    slots,
	}, nil
}
