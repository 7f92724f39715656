package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilityRule is the stored form of a recurring or one-off rule.
// SpecificDate is set only when RecurringWeekly is false.
type AvailabilityRule struct {
	ID         string `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id,omitempty"`
	ProviderID string `gorm:"type:uuid;not null;index" bson:"providerId" json:"-"`

	DayOfWeek       string  `gorm:"size:10;not null" bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime       string  `gorm:"size:5;not null" bson:"startTime" json:"startTime"`
	EndTime         string  `gorm:"size:5;not null" bson:"endTime" json:"endTime"`
	IsAvailable     bool    `gorm:"not null;default:true" bson:"isAvailable" json:"isAvailable"`
	RecurringWeekly bool    `gorm:"not null;default:true" bson:"recurringWeekly" json:"recurringWeekly"`
	SpecificDate    *string `gorm:"size:10" bson:"specificDate,omitempty" json:"specificDate,omitempty"`

	// Position keeps the order the provider submitted the rules in.
	Position int `gorm:"not null;default:0" bson:"position" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"-"`
}

func (r *AvailabilityRule) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

// AvailabilitySettings holds one row per provider.
type AvailabilitySettings struct {
	ProviderID string `gorm:"type:uuid;primaryKey" bson:"_id"`

	BookingNotice            int `gorm:"not null" bson:"bookingNotice"`
	AppointmentDuration      int `gorm:"not null" bson:"appointmentDuration"`
	BreakBetweenAppointments int `gorm:"not null" bson:"breakBetweenAppointments"`

	UpdatedAt time.Time `bson:"updatedAt"`
}
