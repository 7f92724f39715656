package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Availability check
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	providerID string,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND booking_date = ? AND status <> ?",
			providerID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// CreateBooking locks any overlapping active rows before inserting. The
// bookings_no_overlap constraint covers the gap between check and insert.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"provider_id = ? AND status <> ? AND start_at < ? AND end_at > ?",
				b.ProviderID, string(domain.StatusCancelled), b.EndAt, b.StartAt,
			).
			Limit(1).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			return domain.ErrSlotTaken
		}

		return tx.Create(b).Error
	})

	if isExclusionConflict(err) || isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

var statusTimestampColumn = map[domain.Status]string{
	domain.StatusConfirmed: "confirmed_at",
	domain.StatusCompleted: "completed_at",
	domain.StatusCancelled: "cancelled_at",
}

func (r *BookingGormRepository) SetStatus(
	ctx context.Context,
	id string,
	from domain.Status,
	to domain.Status,
	at time.Time,
) error {

	updates := map[string]any{
		"status":     string(to),
		"updated_at": at,
	}
	if col, ok := statusTimestampColumn[to]; ok {
		updates[col] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.GetBooking(ctx, id); err != nil {
			return err
		}
		return domain.ErrStaleStatus
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForProvider(
	ctx context.Context,
	providerID string,
) ([]models.Booking, error) {
	return r.list(ctx, "provider_id = ?", providerID)
}

func (r *BookingGormRepository) ListBookingsForSeeker(
	ctx context.Context,
	seekerID string,
) ([]models.Booking, error) {
	return r.list(ctx, "seeker_id = ?", seekerID)
}

func (r *BookingGormRepository) list(
	ctx context.Context,
	where string,
	arg string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(where, arg).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
