package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	domain "github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/metrics"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
	slots "github.com/BruksfildServices01/smart-hire/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ProviderID  string
	ServiceID   string
	BookingDate string
	StartTime   string
	EndTime     string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	bookings domain.Repository
	users    user.Repository
	services catalog.Repository
	locker   domain.Locker
	finder   *slots.OpenSlotFinder
	audit    *audit.Dispatcher
	log      *slog.Logger
	now      func() time.Time
}

func NewCreateBooking(
	bookings domain.Repository,
	users user.Repository,
	services catalog.Repository,
	locker domain.Locker,
	finder *slots.OpenSlotFinder,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateBooking {
	return &CreateBooking{
		bookings: bookings,
		users:    users,
		services: services,
		locker:   locker,
		finder:   finder,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	who actor.Actor,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !who.Authenticated() {
		return nil, httperr.Unauthenticated("unauthorized", "sign in to book")
	}

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if strings.TrimSpace(in.ProviderID) == "" ||
		strings.TrimSpace(in.ServiceID) == "" ||
		in.BookingDate == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, httperr.Validation("missing_fields", "providerId, serviceId, bookingDate, startTime and endTime are required")
	}

	date, err := availability.ParseDate(in.BookingDate)
	if err != nil {
		return nil, httperr.Validation("invalid_date", err.Error())
	}
	start, err := availability.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.Validation("invalid_start_time", err.Error())
	}
	end, err := availability.ParseClock(in.EndTime)
	if err != nil {
		return nil, httperr.Validation("invalid_end_time", err.Error())
	}
	if start >= end {
		return nil, httperr.Validation("invalid_time_range", "startTime must be before endTime")
	}
	window := availability.Window{Start: start, End: end}

	if in.ProviderID == who.ID {
		return nil, httperr.Validation("self_booking", "providers cannot book their own services")
	}

	// --------------------------------------------------
	// 2. Provider and service
	// --------------------------------------------------
	provider, err := uc.users.GetUser(ctx, in.ProviderID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, httperr.Validation("provider_not_found", "provider not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	if provider.Role != user.RoleProvider {
		return nil, httperr.Validation("provider_not_found", "user is not a provider")
	}

	service, err := uc.services.GetService(ctx, in.ServiceID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.Validation("service_not_found", "service not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if service.ProviderID != provider.ID || !service.Active {
		return nil, httperr.Validation("service_unavailable", "service is not offered by this provider")
	}

	// --------------------------------------------------
	// 3. Slot lock
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, domain.SlotKey(provider.ID, date.String()))
	if errors.Is(err, domain.ErrLockTimeout) {
		metrics.BookingConflicts.WithLabelValues("busy").Inc()
		return nil, httperr.Conflict("slot_busy", "another booking for this provider is in progress, try again")
	}
	if err != nil {
		return nil, fmt.Errorf("slot lock: %w", err)
	}
	defer unlock()

	// --------------------------------------------------
	// 4. Re-validate against current availability
	// --------------------------------------------------
	open, _, err := uc.finder.Find(ctx, provider, date)
	if err != nil {
		return nil, err
	}
	if !availability.Contains(open, window) {
		uc.conflict(who, provider.ID, date, window, "slot_unavailable")
		return nil, httperr.Conflict("slot_unavailable", "the selected time is no longer available")
	}

	// --------------------------------------------------
	// 5. Guarded insert
	// --------------------------------------------------
	loc := timezone.Location(provider.Timezone)
	now := uc.now().UTC()

	b := &models.Booking{
		SeekerID:    who.ID,
		ProviderID:  provider.ID,
		ServiceID:   service.ID,
		BookingDate: date.String(),
		StartTime:   start.String(),
		EndTime:     end.String(),
		StartAt:     date.At(start, loc).UTC(),
		EndAt:       date.At(end, loc).UTC(),
		Status:      string(domain.InitialStatus()),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.bookings.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.conflict(who, provider.ID, date, window, "time_conflict")
			return nil, httperr.Conflict("time_conflict", "the selected time overlaps an existing booking")
		}
		uc.log.Error("create booking failed",
			slog.String("provider_id", provider.ID),
			slog.String("date", date.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	metrics.BookingsCreated.Inc()
	uc.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		ActorID:    who.ID,
		Action:     audit.ActionBookingCreated,
		Entity:     "booking",
		EntityID:   b.ID,
		Metadata: map[string]any{
			"date":  b.BookingDate,
			"start": b.StartTime,
			"end":   b.EndTime,
		},
	})

	return b, nil
}

func (uc *CreateBooking) conflict(
	who actor.Actor,
	providerID string,
	date availability.Date,
	w availability.Window,
	reason string,
) {
	metrics.BookingConflicts.WithLabelValues(reason).Inc()
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    who.ID,
		Action:     audit.ActionBookingConflict,
		Entity:     "booking",
		Metadata: map[string]any{
			"date":   date.String(),
			"window": w.String(),
			"reason": reason,
		},
	})
}
