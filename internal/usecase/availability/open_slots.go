package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
)

// ReservationSource is the part of the booking store the slot search reads.
type ReservationSource interface {
	ListActiveBookings(
		ctx context.Context,
		providerID string,
		date string,
	) ([]models.Booking, error)
}

// OpenSlotFinder runs the slot generator and the conflict filter for one
// provider and date. Listing and booking creation share it so both see the
// same windows.
type OpenSlotFinder struct {
	rules    domain.Repository
	bookings ReservationSource
	now      func() time.Time
}

func NewOpenSlotFinder(
	rules domain.Repository,
	bookings ReservationSource,
) *OpenSlotFinder {
	return &OpenSlotFinder{
		rules:    rules,
		bookings: bookings,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Tests use it to pin "now".
func (f *OpenSlotFinder) WithClock(now func() time.Time) *OpenSlotFinder {
	f.now = now
	return f
}

func (f *OpenSlotFinder) Find(
	ctx context.Context,
	provider *models.User,
	date domain.Date,
) ([]domain.Window, domain.Settings, error) {

	rules, err := f.rules.ListRules(ctx, provider.ID)
	if err != nil {
		return nil, domain.Settings{}, fmt.Errorf("list rules: %w", err)
	}

	settings, err := LoadSettings(ctx, f.rules, provider.ID)
	if err != nil {
		return nil, domain.Settings{}, err
	}

	loc := timezone.Location(provider.Timezone)
	windows := domain.GenerateSlots(date, rules, settings, loc, f.now())

	active, err := f.bookings.ListActiveBookings(ctx, provider.ID, date.String())
	if err != nil {
		return nil, domain.Settings{}, fmt.Errorf("list active bookings: %w", err)
	}

	return domain.FilterAvailable(windows, booking.Reservations(active)), settings, nil
}

// LoadSettings returns the stored settings or the defaults.
func LoadSettings(
	ctx context.Context,
	repo domain.Repository,
	providerID string,
) (domain.Settings, error) {

	settings, err := repo.GetSettings(ctx, providerID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}
