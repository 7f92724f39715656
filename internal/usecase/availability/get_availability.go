package availability

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

type AvailabilityView struct {
	Rules    []domain.Rule
	Settings domain.Settings
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	providerID string,
) (*AvailabilityView, error) {

	if providerID == "" {
		return nil, httperr.Validation("provider_required", "provider id is required")
	}

	rules, err := uc.repo.ListRules(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	settings, err := LoadSettings(ctx, uc.repo, providerID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{Rules: rules, Settings: settings}, nil
}
