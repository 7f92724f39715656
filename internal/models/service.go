package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID         string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	ProviderID string `gorm:"type:uuid;not null;index" bson:"providerId" json:"providerId"`

	Title            string  `gorm:"size:120;not null" bson:"title" json:"title"`
	ShortDescription string  `gorm:"size:255" bson:"shortDescription" json:"shortDescription"`
	Description      string  `gorm:"type:text" bson:"description" json:"description"`
	Category         string  `gorm:"size:50;index" bson:"category" json:"category"`
	Pricing          float64 `bson:"pricing" json:"pricing"`
	Active           bool    `gorm:"default:true" bson:"active" json:"active"`
	Views            int64   `gorm:"not null;default:0" bson:"views" json:"views"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
