package mongostore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// Transactions need a replica set, e.g. mongodb://localhost:27017/?replicaSet=rs0
func newIntegrationStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	db := client.Database("smarthire_test_" + models.NewID()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s := New(client, db)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	return s
}

func TestIntegrationRulesAndSettings(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	if _, err := s.GetSettings(ctx, "p1"); !errors.Is(err, availability.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	first, _ := availability.NewRule("monday", "09:00", "12:00", true, true, "")
	second, _ := availability.NewRule("tuesday", "13:00", "15:00", true, true, "")

	if err := s.ReplaceAllRules(ctx, "p1", []availability.Rule{first, second}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.ReplaceAllRules(ctx, "p1", []availability.Rule{second}); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	rules, err := s.ListRules(ctx, "p1")
	if err != nil || len(rules) != 1 || rules[0].Day() != availability.Tuesday {
		t.Fatalf("rules = %v, err = %v", rules, err)
	}

	want := availability.Settings{BookingNotice: 2, AppointmentDuration: 30, BreakBetweenAppointments: 5}
	if err := s.SetSettings(ctx, "p1", want); err != nil {
		t.Fatalf("set settings: %v", err)
	}
	got, err := s.GetSettings(ctx, "p1")
	if err != nil || got != want {
		t.Fatalf("settings = %+v, err = %v", got, err)
	}
}

func TestIntegrationBookingGuardAndStatus(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	start := time.Date(2030, time.January, 7, 9, 0, 0, 0, time.UTC)
	newBooking := func(offset time.Duration) *models.Booking {
		at := start.Add(offset)
		return &models.Booking{
			SeekerID:    "s1",
			ProviderID:  "p1",
			ServiceID:   "svc",
			BookingDate: "2030-01-07",
			StartTime:   at.Format("15:04"),
			EndTime:     at.Add(time.Hour).Format("15:04"),
			StartAt:     at,
			EndAt:       at.Add(time.Hour),
			Status:      string(booking.StatusPending),
		}
	}

	first := newBooking(0)
	if err := s.CreateBooking(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.CreateBooking(ctx, newBooking(30*time.Minute)); !errors.Is(err, booking.ErrSlotTaken) {
		t.Fatalf("overlap: expected ErrSlotTaken, got %v", err)
	}
	if err := s.CreateBooking(ctx, newBooking(time.Hour)); err != nil {
		t.Fatalf("adjacent booking rejected: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Millisecond)
	if err := s.SetStatus(ctx, first.ID, booking.StatusPending, booking.StatusCancelled, at); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := s.SetStatus(ctx, first.ID, booking.StatusPending, booking.StatusConfirmed, at); !errors.Is(err, booking.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}
	if err := s.SetStatus(ctx, "missing", booking.StatusPending, booking.StatusConfirmed, at); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// the cancelled slot can be booked again
	if err := s.CreateBooking(ctx, newBooking(0)); err != nil {
		t.Fatalf("rebook cancelled slot: %v", err)
	}

	active, err := s.ListActiveBookings(ctx, "p1", "2030-01-07")
	if err != nil || len(active) != 2 {
		t.Fatalf("active = %d, err = %v", len(active), err)
	}
}
