// Package memstore keeps every repository in process memory. It backs
// STORE_DRIVER=memory and the use case tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users    map[string]models.User
	services map[string]models.Service
	rules    map[string][]availability.Rule
	settings map[string]availability.Settings
	bookings map[string]models.Booking
	logs     []models.AuditLog
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		services: make(map[string]models.Service),
		rules:    make(map[string][]availability.Rule),
		settings: make(map[string]availability.Settings),
		bookings: make(map[string]models.Booking),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

// ======================================================
// Users
// ======================================================

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}

	if u.ID == "" {
		u.ID = models.NewID()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	existing.Name = u.Name
	existing.Bio = u.Bio
	existing.Timezone = u.Timezone
	existing.UpdatedAt = time.Now().UTC()

	u.UpdatedAt = existing.UpdatedAt
	s.users[u.ID] = existing
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

// ======================================================
// Services
// ======================================================

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = models.NewID()
	}
	now := time.Now().UTC()
	svc.CreatedAt, svc.UpdatedAt = now, now
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) GetService(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &svc, nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.services[svc.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	svc.UpdatedAt = time.Now().UTC()
	svc.Views = existing.Views
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return catalog.ErrNotFound
	}
	svc.Views++
	s.services[id] = svc
	return nil
}

func (s *Store) ListServices(_ context.Context, f catalog.Filter) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(f.Query)
	out := []models.Service{}
	for _, svc := range s.services {
		if f.ProviderID != "" && svc.ProviderID != f.ProviderID {
			continue
		}
		if f.Category != "" && svc.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !svc.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Title), query) &&
			!strings.Contains(strings.ToLower(svc.ShortDescription), query) &&
			!strings.Contains(strings.ToLower(svc.Description), query) {
			continue
		}
		out = append(out, svc)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ======================================================
// Availability
// ======================================================

func (s *Store) ListRules(_ context.Context, providerID string) ([]availability.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]availability.Rule(nil), s.rules[providerID]...), nil
}

func (s *Store) ReplaceAllRules(_ context.Context, providerID string, rules []availability.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules[providerID] = append([]availability.Rule(nil), rules...)
	return nil
}

func (s *Store) GetSettings(_ context.Context, providerID string) (availability.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.settings[providerID]
	if !ok {
		return availability.Settings{}, availability.ErrSettingsNotFound
	}
	return st, nil
}

func (s *Store) SetSettings(_ context.Context, providerID string, st availability.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[providerID] = st
	return nil
}

// ======================================================
// Bookings
// ======================================================

func (s *Store) ListActiveBookings(_ context.Context, providerID, date string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.ProviderID == providerID && b.BookingDate == date && b.Status != string(booking.StatusCancelled) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

// CreateBooking applies the same overlap guard as the SQL exclusion
// constraint.
func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.ProviderID != b.ProviderID || existing.Status == string(booking.StatusCancelled) {
			continue
		}
		if existing.StartAt.Before(b.EndAt) && existing.EndAt.After(b.StartAt) {
			return booking.ErrSlotTaken
		}
	}

	if b.ID == "" {
		b.ID = models.NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &b, nil
}

func (s *Store) SetStatus(_ context.Context, id string, from, to booking.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if b.Status != string(from) {
		return booking.ErrStaleStatus
	}

	booking.Apply(&b, to, at)
	s.bookings[id] = b
	return nil
}

func (s *Store) ListBookingsForProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (s *Store) ListBookingsForSeeker(_ context.Context, seekerID string) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.SeekerID == seekerID }), nil
}

func (s *Store) listBookings(match func(models.Booking) bool) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate != out[j].BookingDate {
			return out[i].BookingDate > out[j].BookingDate
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out
}

// ======================================================
// Audit
// ======================================================

func (s *Store) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = models.NewID()
	}
	s.logs = append(s.logs, *l)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.AuditLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		if l.ProviderID != q.ProviderID {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if !q.From.IsZero() && l.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !l.CreatedAt.Before(q.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := min(q.Offset, len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}
	return append([]models.AuditLog{}, matched[start:end]...), total, nil
}

var (
	_ user.Repository         = (*Store)(nil)
	_ catalog.Repository      = (*Store)(nil)
	_ availability.Repository = (*Store)(nil)
	_ booking.Repository      = (*Store)(nil)
	_ audit.Store             = (*Store)(nil)
)
