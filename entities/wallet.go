package entities

import (
	"github.com/google/uuid"
)

type Wallet struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"wallet_id"`
	UserID  uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Balance int       `gorm:"not null;default:0;check:balance >= 0" json:"balance"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// CoinTransaction rows are append-only; the amount is stored unsigned and
// the transaction type carries the direction.
type CoinTransaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"index" json:"user_id"`
	Coins           int        `json:"coins"`
	TransactionType string     `json:"transaction_type"` // PURCHASE, GIFT_SENT, GIFT_RECEIVED, ADMIN_ADJUST, REFUND
	ReferenceID     *uuid.UUID `json:"reference_id,omitempty"`
	BalanceAfter    int        `json:"balance_after"`
	Status          string     `gorm:"default:SUCCESS" json:"status"` // SUCCESS, FAILED

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
