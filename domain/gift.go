package domain

import (
	"errors"
	"time"
)

// Contexts a gift send can be attributed to.
const (
	GiftContextLive    = "LIVE"
	GiftContextChat    = "CHAT"
	GiftContextProfile = "PROFILE"
)

var (
	MessageSuccessGetGifts    = "gifts fetched successfully"
	MessageSuccessAddGift     = "gift added successfully"
	MessageSuccessUpdateGift  = "gift details updated successfully"
	MessageSuccessDeleteGift  = "gift deleted successfully"
	MessageSuccessEnableGift  = "gift enabled successfully"
	MessageSuccessDisableGift = "gift disabled successfully"
	MessageSuccessSendGift    = "gift sent successfully"

	MessageFailedGetGifts    = "failed to fetch gifts"
	MessageFailedAddGift     = "failed to add gift"
	MessageFailedUpdateGift  = "failed to update gift"
	MessageFailedDeleteGift  = "failed to delete gift"
	MessageFailedEnableGift  = "failed to enable gift"
	MessageFailedDisableGift = "failed to disable gift"
	MessageFailedSendGift    = "failed to send gift"

	ErrGiftNotFound        = errors.New("gift not found")
	ErrGiftNameTaken       = errors.New("gift already exists with given name")
	ErrGiftAlreadyEnabled  = errors.New("gift is already enabled")
	ErrGiftAlreadyDisabled = errors.New("gift is already disabled")
	ErrGiftReferenced      = errors.New("gift is referenced by send history")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrSelfGift            = errors.New("cannot send gift to yourself")
)

type (
	Gift struct {
		GiftID     string `json:"gift_id"`
		GiftName   string `json:"gift_name"`
		GiftIcon   string `json:"gift_icon_url"`
		CoinCost   int    `json:"coin_cost"`
		IsActive   bool   `json:"is_active"`
		IsAnimated bool   `json:"is_animated"`
	}

	AddGiftRequest struct {
		GiftName    string `json:"gift_name" validate:"required,min=1,max=64"`
		GiftIconURL string `json:"gift_icon_url" validate:"required,url"`
		CoinCost    int    `json:"coin_cost" validate:"required,min=1"`
	}

	UpdateGiftRequest struct {
		GiftID      string  `json:"gift_id" validate:"required,uuid"`
		GiftName    *string `json:"gift_name,omitempty" validate:"omitempty,min=1,max=64"`
		GiftIconURL *string `json:"gift_icon_url,omitempty" validate:"omitempty,url"`
		CoinCost    *int    `json:"coin_cost,omitempty" validate:"omitempty,min=1"`
	}

	SetGiftAnimatedRequest struct {
		IsAnimated *bool `json:"is_animated" validate:"required"`
	}

	SendGiftRequest struct {
		ReceiverID  string `json:"receiver_id" validate:"required,uuid"`
		GiftID      string `json:"gift_id" validate:"required,uuid"`
		Quantity    int    `json:"quantity" validate:"required"`
		ContextType string `json:"context_type" validate:"required,oneof=LIVE CHAT PROFILE"`
		ContextID   string `json:"context_id,omitempty"`
	}

	GiftSendResult struct {
		UserGiftID  string    `json:"user_gift_id"`
		SenderID    string    `json:"sender_id"`
		ReceiverID  string    `json:"receiver_id"`
		GiftName    string    `json:"gift_name"`
		GiftIconURL string    `json:"gift_icon_url"`
		Quantity    int       `json:"quantity"`
		TotalCoins  int       `json:"total_coins"`
		ContextType string    `json:"context_type"`
		ContextID   string    `json:"context_id,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
