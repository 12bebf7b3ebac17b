package entities

import (
	"github.com/google/uuid"
)

type CoinPackage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"package_id"`
	Coins      int       `json:"coins"`
	BonusCoins int       `json:"bonus_coins"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	Banner     string    `json:"banner,omitempty"`
	AddOnDesc  string    `json:"add_on_desc,omitempty"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	Timestamp
}

type CoinPurchase struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"purchase_id"`
	UserID       uuid.UUID `gorm:"index" json:"user_id"`
	PackageID    uuid.UUID `json:"package_id"`
	Coins        int       `json:"coins"`
	Gateway      string    `json:"gateway"`
	GatewayTxnID string    `gorm:"uniqueIndex" json:"gateway_txn_id"`
	AmountPaid   float64   `json:"amount_paid"`
	Currency     string    `json:"currency"`
	Status       string    `gorm:"default:PENDING" json:"status"` // PENDING, SETTLED, FAILED
	Credited     bool      `gorm:"default:false" json:"credited"`

	User        *User        `gorm:"foreignKey:UserID"`
	CoinPackage *CoinPackage `gorm:"foreignKey:PackageID"`
	Timestamp
}
