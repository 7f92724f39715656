package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/audit"
	domain "github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/metrics"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *slog.Logger
	now   func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	who actor.Actor,
	bookingID string,
	newStatus string,
) (*models.Booking, error) {

	to, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Missing("booking_not_found", "booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	from := domain.Status(b.Status)
	if err := domain.CheckTransition(domain.PartyOf(b, who.ID), from, to); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if err := uc.repo.SetStatus(ctx, b.ID, from, to, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrStaleStatus):
			return nil, httperr.InvalidState("stale_status", "booking was changed by someone else, reload and try again")
		case errors.Is(err, domain.ErrNotFound):
			return nil, httperr.Missing("booking_not_found", "booking not found")
		}
		uc.log.Error("set booking status failed",
			slog.String("booking_id", b.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("set status: %w", err)
	}

	domain.Apply(b, to, now)

	metrics.BookingTransitions.WithLabelValues(string(from), string(to)).Inc()
	uc.audit.Dispatch(audit.Event{
		ProviderID: b.ProviderID,
		ActorID:    who.ID,
		Action:     audit.ActionBookingStatus,
		Entity:     "booking",
		EntityID:   b.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   to,
		},
	})

	return b, nil
}
