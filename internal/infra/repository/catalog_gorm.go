package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Omit("views").Save(s).Error
}

func (r *CatalogGormRepository) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, f domain.Filter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})

	if f.ProviderID != "" {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(
			"title ILIKE ? OR short_description ILIKE ? OR description ILIKE ?",
			like, like, like,
		)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

var _ domain.Repository = (*CatalogGormRepository)(nil)
