package availability

import (
	"context"
	"errors"
)

// ErrSettingsNotFound is returned by GetSettings for providers that never
// saved settings. Callers fall back to DefaultSettings.
var ErrSettingsNotFound = errors.New("availability settings not found")

type Repository interface {
	// -------- Rules --------
	ListRules(
		ctx context.Context,
		providerID string,
	) ([]Rule, error)

	// ReplaceAllRules atomically swaps the provider's rule set. On error the
	// previous set is left intact.
	ReplaceAllRules(
		ctx context.Context,
		providerID string,
		rules []Rule,
	) error

	// -------- Settings --------
	GetSettings(
		ctx context.Context,
		providerID string,
	) (Settings, error)

	SetSettings(
		ctx context.Context,
		providerID string,
		settings Settings,
	) error
}
