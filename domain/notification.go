package domain

import (
	"fmt"
	"time"
)

// Notification topics. Delivery is fire-and-forget after commit; a dropped
// notification is never a failed transfer.
func TopicGiftReceived(receiverID string) string {
	return fmt.Sprintf("gift_received_%s", receiverID)
}

func TopicLiveRoom(contextID string) string {
	return fmt.Sprintf("live_%s", contextID)
}

func TopicBalanceChanged(userID string) string {
	return fmt.Sprintf("balance_%s", userID)
}

type (
	GiftReceivedEvent struct {
		UserGiftID   string    `json:"user_gift_id"`
		SenderName   string    `json:"sender_name"`
		SenderAvatar string    `json:"sender_profile_picture,omitempty"`
		GiftName     string    `json:"gift_name"`
		GiftIconURL  string    `json:"gift_icon_url"`
		Quantity     int       `json:"quantity"`
		TotalCoins   int       `json:"total_coins"`
		ContextType  string    `json:"context_type"`
		ContextID    string    `json:"context_id,omitempty"`
		Timestamp    time.Time `json:"timestamp"`
	}

	LiveGiftEvent struct {
		UserGiftID   string    `json:"user_gift_id"`
		SenderName   string    `json:"sender_name"`
		SenderAvatar string    `json:"sender_profile_picture,omitempty"`
		ReceiverID   string    `json:"receiver_id"`
		GiftName     string    `json:"gift_name"`
		GiftIconURL  string    `json:"gift_icon_url"`
		Quantity     int       `json:"quantity"`
		TotalCoins   int       `json:"total_coins"`
		Timestamp    time.Time `json:"timestamp"`
	}

	BalanceChangedEvent struct {
		UserID          string    `json:"user_id"`
		Balance         int       `json:"balance"`
		TransactionType string    `json:"transaction_type"`
		Timestamp       time.Time `json:"timestamp"`
	}
)
