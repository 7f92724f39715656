package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

func newBooking(provider, start, end string, at time.Time, minutes int) *models.Booking {
	return &models.Booking{
		ProviderID:  provider,
		SeekerID:    "seeker",
		BookingDate: at.Format("2006-01-02"),
		StartTime:   start,
		EndTime:     end,
		StartAt:     at,
		EndAt:       at.Add(time.Duration(minutes) * time.Minute),
		Status:      string(booking.StatusPending),
	}
}

func TestCreateBookingOverlapGuard(t *testing.T) {
	ctx := context.Background()
	s := New()
	nine := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	if err := s.CreateBooking(ctx, newBooking("p1", "09:00", "10:00", nine, 60)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		b       *models.Booking
		wantErr error
	}{
		{"overlap", newBooking("p1", "09:30", "10:30", nine.Add(30*time.Minute), 60), booking.ErrSlotTaken},
		{"adjacent", newBooking("p1", "10:00", "11:00", nine.Add(time.Hour), 60), nil},
		{"other provider", newBooking("p2", "09:00", "10:00", nine, 60), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateBooking(ctx, tt.b); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetStatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := New()
	b := newBooking("p1", "09:00", "10:00", time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC), 60)
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	if err := s.SetStatus(ctx, b.ID, booking.StatusPending, booking.StatusConfirmed, now); err != nil {
		t.Fatal(err)
	}
	if err := s.SetStatus(ctx, b.ID, booking.StatusPending, booking.StatusCancelled, now); !errors.Is(err, booking.ErrStaleStatus) {
		t.Fatalf("expected stale status, got %v", err)
	}
	if err := s.SetStatus(ctx, "missing", booking.StatusPending, booking.StatusCancelled, now); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, _ := s.GetBooking(ctx, b.ID)
	if got.Status != "confirmed" || got.ConfirmedAt == nil {
		t.Fatalf("unexpected booking %#v", got)
	}
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	ctx := context.Background()
	s := New()
	nine := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	first := newBooking("p1", "09:00", "10:00", nine, 60)
	if err := s.CreateBooking(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SetStatus(ctx, first.ID, booking.StatusPending, booking.StatusCancelled, time.Now()); err != nil {
		t.Fatal(err)
	}

	if err := s.CreateBooking(ctx, newBooking("p1", "09:00", "10:00", nine, 60)); err != nil {
		t.Fatalf("cancelled booking must not block: %v", err)
	}

	active, _ := s.ListActiveBookings(ctx, "p1", "2025-06-02")
	if len(active) != 1 {
		t.Fatalf("expected one active booking, got %d", len(active))
	}
	all, _ := s.ListBookingsForProvider(ctx, "p1")
	if len(all) != 2 {
		t.Fatalf("cancelled bookings are retained, got %d", len(all))
	}
}

func TestIncrementViewsSurvivesUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()
	svc := &models.Service{ID: "svc-1", ProviderID: "p1", Title: "Guitar", Active: true}
	if err := s.CreateService(ctx, svc); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := s.IncrementViews(ctx, svc.ID); err != nil {
			t.Fatal(err)
		}
	}

	edit := &models.Service{ID: svc.ID, ProviderID: "p1", Title: "Bass", Active: true}
	if err := s.UpdateService(ctx, edit); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetService(ctx, svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Bass" || got.Views != 2 {
		t.Fatalf("got title %q views %d", got.Title, got.Views)
	}

	if err := s.IncrementViews(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
