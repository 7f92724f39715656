package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type recordingStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (s *recordingStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *l)
	return nil
}

func (s *recordingStore) ListAuditLogs(context.Context, Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs, int64(len(s.logs)), nil
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(New(store), nil, 10)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{
			ProviderID: "p1",
			ActorID:    "u1",
			Action:     ActionBookingCreated,
			Entity:     "booking",
			EntityID:   "b1",
			Metadata:   map[string]any{"n": i},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	logs, total, _ := store.ListAuditLogs(context.Background(), Query{})
	if total != 5 {
		t.Fatalf("expected 5 logs, got %d", total)
	}
	first := logs[0]
	if first.ActorID == nil || *first.ActorID != "u1" || first.EntityID == nil || first.Metadata != `{"n":0}` {
		t.Fatalf("unexpected log %#v", first)
	}

	// after close events are ignored, not panicking on a closed channel
	d.Dispatch(Event{Action: ActionBookingCreated})
}

func TestLoggerLeavesEmptyIDsNil(t *testing.T) {
	store := &recordingStore{}
	if err := New(store).Log(context.Background(), Event{ProviderID: "p1", Action: ActionAvailabilitySaved}); err != nil {
		t.Fatal(err)
	}
	if store.logs[0].ActorID != nil || store.logs[0].EntityID != nil || store.logs[0].Metadata != "" {
		t.Fatalf("unexpected log %#v", store.logs[0])
	}
}
