package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

var ErrNotFound = errors.New("service not found")

// Filter narrows ListServices. Empty fields match everything.
type Filter struct {
	ProviderID string
	Category   string
	Query      string
	ActiveOnly bool
}

type Repository interface {
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	// UpdateService writes the editable fields; the view counter is left alone.
	UpdateService(ctx context.Context, s *models.Service) error
	// IncrementViews adds one to the view counter in a single atomic write.
	IncrementViews(ctx context.Context, id string) error
	ListServices(ctx context.Context, f Filter) ([]models.Service, error)
}
