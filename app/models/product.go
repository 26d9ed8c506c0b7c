package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	UUID
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

type Product struct {
	UUID
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	ImageURL    string          `gorm:"size:1024" json:"image_url"`
	CategoryID  string          `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
