package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
	TxPurchase   = "purchase"
)

const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction is one wallet movement. Purchases are stored with a negative
// amount; deposits and withdrawals are positive.
type Transaction struct {
	UUID
	UserID    string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type      string          `gorm:"size:20;not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status    string          `gorm:"size:20;not null;default:pending" json:"status"`
	Reference string          `gorm:"size:255" json:"reference"`
	Network   *string         `gorm:"size:10" json:"network,omitempty"`
	TxHash    *string         `gorm:"size:255" json:"tx_hash,omitempty"`
	Address   *string         `gorm:"size:255" json:"address,omitempty"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}
