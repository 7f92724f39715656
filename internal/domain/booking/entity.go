package booking

import (
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func PartyOf(b *models.Booking, actorID string) Party {
	p := PartyNone
	if actorID == "" {
		return p
	}
	if b.SeekerID == actorID {
		p |= PartySeeker
	}
	if b.ProviderID == actorID {
		p |= PartyProvider
	}
	return p
}

// Apply moves b to status to and stamps the matching timestamp. It does not
// check the transition; see CheckTransition.
func Apply(b *models.Booking, to Status, now time.Time) {
	b.Status = string(to)
	b.UpdatedAt = now

	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
}

// Reservations converts bookings of one date into the form the conflict
// filter takes. Rows with unreadable times are skipped.
func Reservations(bookings []models.Booking) []availability.Reservation {
	out := make([]availability.Reservation, 0, len(bookings))
	for _, b := range bookings {
		w, err := WindowOf(b)
		if err != nil {
			continue
		}
		out = append(out, availability.Reservation{
			Window:    w,
			Cancelled: Status(b.Status) == StatusCancelled,
		})
	}
	return out
}

func WindowOf(b models.Booking) (availability.Window, error) {
	start, err := availability.ParseClock(b.StartTime)
	if err != nil {
		return availability.Window{}, err
	}
	end, err := availability.ParseClock(b.EndTime)
	if err != nil {
		return availability.Window{}, err
	}
	return availability.Window{Start: start, End: end}, nil
}
