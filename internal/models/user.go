package models

import (
	"time"

	"gorm.io/gorm"
)

// User is either a provider offering services or a seeker booking them.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	Name         string `gorm:"size:100;not null" bson:"name" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" bson:"passwordHash" json:"-"`
	Role         string `gorm:"size:20;not null;index" bson:"role" json:"role"`
	Timezone     string `gorm:"size:64;not null" bson:"timezone" json:"timezone"`
	Bio          string `gorm:"size:500" bson:"bio,omitempty" json:"bio,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
