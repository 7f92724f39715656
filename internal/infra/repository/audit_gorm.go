package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	// --------------------------------------------------
	// Always scoped to one provider
	// --------------------------------------------------

	tx := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("provider_id = ?", q.ProviderID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ audit.Store = (*AuditGormRepository)(nil)
