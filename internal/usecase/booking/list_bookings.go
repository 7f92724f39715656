package booking

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	domain "github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// ListBookingsForUser returns a provider's or a seeker's bookings, newest
// date first. Users only see their own.
type ListBookingsForUser struct {
	repo domain.Repository
}

func NewListBookingsForUser(repo domain.Repository) *ListBookingsForUser {
	return &ListBookingsForUser{repo: repo}
}

func (uc *ListBookingsForUser) Execute(
	ctx context.Context,
	who actor.Actor,
	role string,
	userID string,
) ([]models.Booking, error) {

	if who.ID != userID {
		return nil, httperr.Forbidden("forbidden", "you can only list your own bookings")
	}

	var (
		bookings []models.Booking
		err      error
	)
	switch role {
	case actor.RoleProvider:
		bookings, err = uc.repo.ListBookingsForProvider(ctx, userID)
	case actor.RoleSeeker:
		bookings, err = uc.repo.ListBookingsForSeeker(ctx, userID)
	default:
		return nil, httperr.Validation("invalid_role", "role must be provider or seeker")
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListActiveBookings returns the non-cancelled windows of one provider on
// one date.
type ListActiveBookings struct {
	repo domain.Repository
}

func NewListActiveBookings(repo domain.Repository) *ListActiveBookings {
	return &ListActiveBookings{repo: repo}
}

func (uc *ListActiveBookings) Execute(
	ctx context.Context,
	providerID string,
	date string,
) ([]availability.Window, error) {

	if providerID == "" || date == "" {
		return nil, httperr.Validation("missing_fields", "providerId and date are required")
	}
	d, err := availability.ParseDate(date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", err.Error())
	}

	bookings, err := uc.repo.ListActiveBookings(ctx, providerID, d.String())
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}

	windows := make([]availability.Window, 0, len(bookings))
	for _, b := range bookings {
		w, err := domain.WindowOf(b)
		if err != nil {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}
