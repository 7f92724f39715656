package models

import (
	"time"

	"gorm.io/gorm"
)

type AuditLog struct {
	ID string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`

	ProviderID string  `gorm:"type:uuid;index" bson:"providerId" json:"providerId"`
	ActorID    *string `gorm:"type:uuid" bson:"actorId,omitempty" json:"actorId"`
	Action     string  `gorm:"size:50;not null" bson:"action" json:"action"`

	Entity   string  `gorm:"size:50" bson:"entity" json:"entity"`
	EntityID *string `gorm:"size:64" bson:"entityId,omitempty" json:"entityId"`
	Metadata string  `gorm:"type:text" bson:"metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
}

func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}
