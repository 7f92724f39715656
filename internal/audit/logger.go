package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type Logger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ProviderID: ev.ProviderID,
		ActorID:    optional(ev.ActorID),
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   optional(ev.EntityID),
		Metadata:   metaJSON,
		CreatedAt:  l.now().UTC(),
	}

	return l.store.CreateAuditLog(ctx, &entry)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
