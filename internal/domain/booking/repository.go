package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned by CreateBooking when the storage guard finds
	// an active booking overlapping the new one.
	ErrSlotTaken = errors.New("booking overlaps an active booking")

	// ErrStaleStatus is returned by SetStatus when the stored status no
	// longer equals the expected one.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)

type Repository interface {
	// -------- Availability check --------
	ListActiveBookings(
		ctx context.Context,
		providerID string,
		date string,
	) ([]models.Booking, error)

	// -------- Create --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- State change --------
	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	// SetStatus is a compare-and-swap on the current status.
	SetStatus(
		ctx context.Context,
		id string,
		from Status,
		to Status,
		at time.Time,
	) error

	// -------- Listing --------
	ListBookingsForProvider(
		ctx context.Context,
		providerID string,
	) ([]models.Booking, error)

	ListBookingsForSeeker(
		ctx context.Context,
		seekerID string,
	) ([]models.Booking, error)
}
