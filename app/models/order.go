package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderUnfulfilled = "unfulfilled"
	OrderProcessing  = "processing"
	OrderFulfilled   = "fulfilled"
	OrderCancelled   = "cancelled"
)

const (
	PayWallet = "wallet"
	PayCard   = "card"
	PayCrypto = "crypto"
)

// Order keeps the card's last four digits and the billing address only.
type Order struct {
	UUID
	UserID           string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Status           string          `gorm:"size:20;not null;default:unfulfilled;index" json:"status"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	ShippingCost     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"shipping_cost"`
	TrackingNumber   *string         `gorm:"size:100" json:"tracking_number,omitempty"`
	ShippingProvider string          `gorm:"size:10;not null" json:"shipping_provider"`
	PaymentMethod    string          `gorm:"size:10;not null" json:"payment_method"`

	ShippingName    string `gorm:"size:255" json:"shipping_name"`
	ShippingStreet  string `gorm:"size:255" json:"shipping_street"`
	ShippingCity    string `gorm:"size:100" json:"shipping_city"`
	ShippingState   string `gorm:"size:100" json:"shipping_state"`
	ShippingZip     string `gorm:"size:20" json:"shipping_zip"`
	ShippingCountry string `gorm:"size:100" json:"shipping_country"`
	ShippingPhone   string `gorm:"size:50" json:"shipping_phone"`

	CardLast4      *string `gorm:"size:4" json:"card_last4,omitempty"`
	BillingName    *string `gorm:"size:255" json:"billing_name,omitempty"`
	BillingStreet  *string `gorm:"size:255" json:"billing_street,omitempty"`
	BillingCity    *string `gorm:"size:100" json:"billing_city,omitempty"`
	BillingState   *string `gorm:"size:100" json:"billing_state,omitempty"`
	BillingZip     *string `gorm:"size:20" json:"billing_zip,omitempty"`
	BillingCountry *string `gorm:"size:100" json:"billing_country,omitempty"`

	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a priced snapshot of one cart line. ProductID is cleared
// when the product is deleted; the snapshot stays.
type OrderItem struct {
	UUID
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID *string         `gorm:"type:varchar(36);index" json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}
