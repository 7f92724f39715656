package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// Query filters a provider's audit logs. Zero values match everything.
type Query struct {
	ProviderID string
	Action     string
	Entity     string
	From       time.Time
	To         time.Time

	Limit  int
	Offset int
}

type Store interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}
