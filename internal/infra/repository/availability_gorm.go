package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListRules(
	ctx context.Context,
	providerID string,
) ([]domain.Rule, error) {

	var rows []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return domain.RulesFromModels(rows)
}

// ReplaceAllRules deletes and recreates the provider's rules in one
// transaction.
func (r *AvailabilityGormRepository) ReplaceAllRules(
	ctx context.Context,
	providerID string,
	rules []domain.Rule,
) error {

	rows := make([]models.AvailabilityRule, 0, len(rules))
	for i, rule := range rules {
		m := domain.RuleToModel(providerID, rule)
		m.Position = i
		rows = append(rows, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return fmt.Errorf("delete rules: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("create rules: %w", err)
		}
		return nil
	})
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetSettings(
	ctx context.Context,
	providerID string,
) (domain.Settings, error) {

	var row models.AvailabilitySettings
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}
	if err != nil {
		return domain.Settings{}, err
	}

	return domain.SettingsFromModel(row), nil
}

func (r *AvailabilityGormRepository) SetSettings(
	ctx context.Context,
	providerID string,
	settings domain.Settings,
) error {

	row := domain.SettingsToModel(providerID, settings)
	row.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"booking_notice",
				"appointment_duration",
				"break_between_appointments",
				"updated_at",
			}),
		}).
		Create(&row).Error
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)
