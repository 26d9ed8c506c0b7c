package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUID is embedded by every table keyed by a generated string id.
type UUID struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`
}

func (u *UUID) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
