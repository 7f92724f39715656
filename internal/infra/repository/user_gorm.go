package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":       u.Name,
			"bio":        u.Bio,
			"timezone":   u.Timezone,
			"updated_at": u.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) first(ctx context.Context, where string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(where, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ domain.Repository = (*UserGormRepository)(nil)
