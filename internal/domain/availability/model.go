package availability

import (
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// ===============================
// Storage mapping
// ===============================

func RuleFromModel(m models.AvailabilityRule) (Rule, error) {
	specific := ""
	if m.SpecificDate != nil {
		specific = *m.SpecificDate
	}
	return NewRule(
		m.DayOfWeek,
		m.StartTime,
		m.EndTime,
		m.IsAvailable,
		m.RecurringWeekly,
		specific,
	)
}

func RuleToModel(providerID string, r Rule) models.AvailabilityRule {
	span := r.Span()
	m := models.AvailabilityRule{
		ProviderID:      providerID,
		DayOfWeek:       string(r.Day()),
		StartTime:       span.Start.String(),
		EndTime:         span.End.String(),
		IsAvailable:     r.Available(),
		RecurringWeekly: r.Recurring(),
	}
	if sd, ok := r.(SpecificDateRule); ok {
		d := sd.Date.String()
		m.SpecificDate = &d
	}
	return m
}

func SettingsFromModel(m models.AvailabilitySettings) Settings {
	return Settings{
		BookingNotice:            m.BookingNotice,
		AppointmentDuration:      m.AppointmentDuration,
		BreakBetweenAppointments: m.BreakBetweenAppointments,
	}
}

func SettingsToModel(providerID string, s Settings) models.AvailabilitySettings {
	return models.AvailabilitySettings{
		ProviderID:               providerID,
		BookingNotice:            s.BookingNotice,
		AppointmentDuration:      s.AppointmentDuration,
		BreakBetweenAppointments: s.BreakBetweenAppointments,
	}
}

// RulesFromModels converts stored rows, failing on the first malformed one.
func RulesFromModels(ms []models.AvailabilityRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(ms))
	for _, m := range ms {
		r, err := RuleFromModel(m)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
