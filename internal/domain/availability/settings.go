package availability

import (
	"fmt"

	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

type Settings struct {
	// BookingNotice is the minimum lead time in hours.
	BookingNotice int `json:"bookingNotice"`
	// AppointmentDuration is the length of every slot in minutes.
	AppointmentDuration int `json:"appointmentDuration"`
	// BreakBetweenAppointments is the gap in minutes between slots.
	BreakBetweenAppointments int `json:"breakBetweenAppointments"`
}

// DefaultSettings apply to providers that never saved their own.
func DefaultSettings() Settings {
	return Settings{
		BookingNotice:            24,
		AppointmentDuration:      60,
		BreakBetweenAppointments: 15,
	}
}

func (s Settings) Stride() int {
	return s.AppointmentDuration + s.BreakBetweenAppointments
}

// Bounds accepted by Validate.
const (
	MinAppointmentDuration = 15
	MaxAppointmentDuration = 120
	MaxBreak               = 60
	MaxBookingNotice       = 8760 // one year, in hours
)

func (s Settings) Validate() error {
	if s.AppointmentDuration < MinAppointmentDuration || s.AppointmentDuration > MaxAppointmentDuration {
		return httperr.Validation("invalid_settings", fmt.Sprintf(
			"appointmentDuration must be between %d and %d minutes", MinAppointmentDuration, MaxAppointmentDuration))
	}
	if s.BreakBetweenAppointments < 0 || s.BreakBetweenAppointments > MaxBreak {
		return httperr.Validation("invalid_settings", fmt.Sprintf(
			"breakBetweenAppointments must be between 0 and %d minutes", MaxBreak))
	}
	if s.BookingNotice < 0 || s.BookingNotice > MaxBookingNotice {
		return httperr.Validation("invalid_settings", fmt.Sprintf(
			"bookingNotice must be between 0 and %d hours", MaxBookingNotice))
	}
	return nil
}
