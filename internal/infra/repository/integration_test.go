package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/smart-hire/internal/db"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

func newIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestIntegrationConcurrentCreateBooking(t *testing.T) {
	db := newIntegrationDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	providerID := models.NewID()
	t.Cleanup(func() {
		db.Where("provider_id = ?", providerID).Delete(&models.Booking{})
	})

	start := time.Date(2030, time.January, 7, 9, 0, 0, 0, time.UTC)
	newBooking := func() *models.Booking {
		return &models.Booking{
			SeekerID:    models.NewID(),
			ProviderID:  providerID,
			ServiceID:   models.NewID(),
			BookingDate: "2030-01-07",
			StartTime:   "09:00",
			EndTime:     "10:00",
			StartAt:     start,
			EndAt:       start.Add(time.Hour),
			Status:      string(booking.StatusPending),
		}
	}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		taken   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateBooking(ctx, newBooking())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, booking.ErrSlotTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || taken != workers-1 {
		t.Fatalf("created=%d taken=%d", created, taken)
	}

	active, err := repo.ListActiveBookings(ctx, providerID, "2030-01-07")
	if err != nil || len(active) != 1 {
		t.Fatalf("active = %d, err = %v", len(active), err)
	}

	at := time.Now().UTC()
	if err := repo.SetStatus(ctx, active[0].ID, booking.StatusPending, booking.StatusConfirmed, at); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := repo.SetStatus(ctx, active[0].ID, booking.StatusPending, booking.StatusCancelled, at); !errors.Is(err, booking.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}
}
