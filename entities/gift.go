package entities

import (
	"github.com/google/uuid"
)

type Gift struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"gift_id"`
	GiftName    string    `gorm:"uniqueIndex" json:"gift_name"`
	GiftIconURL string    `json:"gift_icon_url"`
	CoinCost    int       `json:"coin_cost"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsAnimated  bool      `gorm:"default:false" json:"is_animated"`

	Timestamp
}

// UserGift records one gift send. TotalCoins is frozen at send time so later
// catalog price changes never rewrite history.
type UserGift struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"user_gift_id"`
	SenderID    uuid.UUID `gorm:"index" json:"sender_id"`
	ReceiverID  uuid.UUID `gorm:"index" json:"receiver_id"`
	GiftID      uuid.UUID `json:"gift_id"`
	Quantity    int       `json:"quantity"`
	TotalCoins  int       `json:"total_coins"`
	ContextType string    `json:"context_type"` // LIVE, CHAT, PROFILE
	ContextID   *string   `json:"context_id,omitempty"`

	Sender   *User `gorm:"foreignKey:SenderID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`
	Gift     *Gift `gorm:"foreignKey:GiftID"`
	Timestamp
}
