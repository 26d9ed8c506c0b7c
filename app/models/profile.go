package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the shop-side record of an auth user. ID equals the auth
// user id.
type Profile struct {
	ID              string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName        string          `gorm:"size:255" json:"full_name"`
	Username        string          `gorm:"size:100" json:"username"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address"`
	WalletBalance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"wallet_balance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
