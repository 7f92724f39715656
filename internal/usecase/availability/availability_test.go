package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/audit"
	domain "github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/infra/memstore"
	"github.com/BruksfildServices01/smart-hire/internal/logger"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// failingRules makes ReplaceAllRules fail after settings were written.
type failingRules struct {
	*memstore.Store
}

func (failingRules) ReplaceAllRules(context.Context, string, []domain.Rule) error {
	return errors.New("connection reset")
}

func newDispatcher(t *testing.T, store audit.Store) *audit.Dispatcher {
	t.Helper()
	d := audit.NewDispatcher(audit.New(store), logger.Discard(), 100)
	t.Cleanup(func() { _ = d.Close(context.Background()) })
	return d
}

var provider = actor.Actor{ID: "prov-1", Role: actor.RoleProvider}

var mondayMorning = SaveAvailabilityInput{
	Settings: domain.Settings{BookingNotice: 0, AppointmentDuration: 60, BreakBetweenAppointments: 15},
	Rules: []RuleInput{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "12:00", IsAvailable: true, RecurringWeekly: true},
	},
}

func TestSaveAvailability(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := NewSaveAvailability(store, newDispatcher(t, store), logger.Discard())

	if err := uc.Execute(ctx, provider, provider.ID, mondayMorning); err != nil {
		t.Fatal(err)
	}

	view, err := NewGetAvailability(store).Execute(ctx, provider.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Rules) != 1 || view.Settings != mondayMorning.Settings {
		t.Fatalf("unexpected view %#v", view)
	}
}

func TestSaveAvailabilityRejectsBeforeWriting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		who      actor.Actor
		in       SaveAvailabilityInput
		wantKind httperr.Kind
		wantCode string
	}{
		{
			name: "overlapping monday slots",
			who:  provider,
			in: SaveAvailabilityInput{
				Settings: domain.DefaultSettings(),
				Rules: []RuleInput{
					{DayOfWeek: "monday", StartTime: "09:00", EndTime: "10:00", IsAvailable: true, RecurringWeekly: true},
					{DayOfWeek: "monday", StartTime: "09:30", EndTime: "10:30", IsAvailable: true, RecurringWeekly: true},
				},
			},
			wantKind: httperr.KindValidation,
			wantCode: "overlapping_slots",
		},
		{
			name: "one-off rule without date",
			who:  provider,
			in: SaveAvailabilityInput{
				Settings: domain.DefaultSettings(),
				Rules:    []RuleInput{{DayOfWeek: "monday", StartTime: "09:00", EndTime: "10:00", IsAvailable: true}},
			},
			wantKind: httperr.KindValidation,
			wantCode: "specific_date_required",
		},
		{
			name:     "zero duration",
			who:      provider,
			in:       SaveAvailabilityInput{Settings: domain.Settings{AppointmentDuration: 0}},
			wantKind: httperr.KindValidation,
			wantCode: "invalid_settings",
		},
		{
			name:     "other provider",
			who:      actor.Actor{ID: "prov-2", Role: actor.RoleProvider},
			in:       mondayMorning,
			wantKind: httperr.KindForbidden,
			wantCode: "forbidden",
		},
		{
			name:     "seeker with same id",
			who:      actor.Actor{ID: provider.ID, Role: actor.RoleSeeker},
			in:       mondayMorning,
			wantKind: httperr.KindForbidden,
			wantCode: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			uc := NewSaveAvailability(store, newDispatcher(t, store), logger.Discard())

			err := uc.Execute(ctx, tt.who, provider.ID, tt.in)
			kind, ok := httperr.KindOf(err)
			if !ok || kind != tt.wantKind || !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("got %v, want %s", err, tt.wantCode)
			}

			if _, err := store.GetSettings(ctx, provider.ID); !errors.Is(err, domain.ErrSettingsNotFound) {
				t.Fatal("settings must not be written when validation fails")
			}
		})
	}
}

func TestSaveAvailabilityPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	previous := []domain.Rule{
		domain.RecurringRule{Weekday: domain.Tuesday, Start: 8 * 60, End: 10 * 60, IsAvailable: true},
	}
	if err := store.ReplaceAllRules(ctx, provider.ID, previous); err != nil {
		t.Fatal(err)
	}

	uc := NewSaveAvailability(failingRules{store}, newDispatcher(t, store), logger.Discard())
	err := uc.Execute(ctx, provider, provider.ID, mondayMorning)

	kind, ok := httperr.KindOf(err)
	if !ok || kind != httperr.KindPartialFailure {
		t.Fatalf("expected partial failure, got %v", err)
	}

	settings, err := store.GetSettings(ctx, provider.ID)
	if err != nil || settings != mondayMorning.Settings {
		t.Fatalf("settings should be saved, got %#v %v", settings, err)
	}

	rules, _ := store.ListRules(ctx, provider.ID)
	if len(rules) != 1 || rules[0] != previous[0] {
		t.Fatalf("previous rules must be untouched, got %#v", rules)
	}
}

func TestGetAvailabilityDefaults(t *testing.T) {
	view, err := NewGetAvailability(memstore.New()).Execute(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if view.Settings != domain.DefaultSettings() || len(view.Rules) != 0 {
		t.Fatalf("unexpected view %#v", view)
	}
}

func TestListOpenSlots(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	if err := store.CreateUser(ctx, &models.User{ID: provider.ID, Role: "provider", Timezone: "UTC", Email: "p@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateUser(ctx, &models.User{ID: "seek-1", Role: "seeker", Timezone: "UTC", Email: "s@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := NewSaveAvailability(store, newDispatcher(t, store), logger.Discard()).
		Execute(ctx, provider, provider.ID, mondayMorning); err != nil {
		t.Fatal(err)
	}

	// 09:00-10:00 is taken; 10:15-11:15 remains.
	taken := &models.Booking{
		ProviderID: provider.ID, SeekerID: "seek-1", BookingDate: "2025-06-02",
		StartTime: "09:00", EndTime: "10:00", Status: "pending",
		StartAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	if err := store.CreateBooking(ctx, taken); err != nil {
		t.Fatal(err)
	}

	finder := NewOpenSlotFinder(store, store).
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
	uc := NewListOpenSlots(store, finder)

	res, err := uc.Execute(ctx, provider.ID, "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slots) != 1 || res.Slots[0].String() != "10:15-11:15" || res.Timezone != "UTC" {
		t.Fatalf("unexpected open slots %#v", res)
	}

	if _, err := uc.Execute(ctx, "seek-1", "2025-06-02"); !httperr.IsBusiness(err, "provider_not_found") {
		t.Fatalf("seekers have no slots, got %v", err)
	}
	if _, err := uc.Execute(ctx, provider.ID, "06/02/2025"); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("got %v", err)
	}
	if _, err := uc.Execute(ctx, provider.ID, ""); !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("got %v", err)
	}
}
