package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`

	SeekerID   string `gorm:"type:uuid;not null;index" bson:"seekerId" json:"seekerId"`
	ProviderID string `gorm:"type:uuid;not null;index:idx_bookings_provider_date" bson:"providerId" json:"providerId"`
	ServiceID  string `gorm:"type:uuid;not null" bson:"serviceId" json:"serviceId"`

	BookingDate string `gorm:"size:10;not null;index:idx_bookings_provider_date" bson:"bookingDate" json:"bookingDate"`
	StartTime   string `gorm:"size:5;not null" bson:"startTime" json:"startTime"`
	EndTime     string `gorm:"size:5;not null" bson:"endTime" json:"endTime"`

	// StartAt and EndAt are the same range as absolute instants in the
	// provider's timezone. The storage overlap guard works on them.
	StartAt time.Time `gorm:"type:timestamptz;not null" bson:"startAt" json:"startAt"`
	EndAt   time.Time `gorm:"type:timestamptz;not null" bson:"endAt" json:"endAt"`

	Status string `gorm:"size:20;not null;default:'pending'" bson:"status" json:"status"`
	Notes  string `gorm:"type:text" bson:"notes" json:"notes"`

	ConfirmedAt *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}
