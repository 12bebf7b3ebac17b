package domain

import (
	"errors"
	"time"
)

// Transaction types recorded on the coin ledger.
const (
	TransactionTypePurchase     = "PURCHASE"
	TransactionTypeGiftSent     = "GIFT_SENT"
	TransactionTypeGiftReceived = "GIFT_RECEIVED"
	TransactionTypeAdminAdjust  = "ADMIN_ADJUST"
	TransactionTypeRefund       = "REFUND"

	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

var (
	MessageSuccessGetBalance     = "wallet details fetched"
	MessageSuccessCreditWallet   = "wallet credited successfully"
	MessageSuccessDebitWallet    = "wallet debited successfully"
	MessageSuccessGetCoinHistory = "coin transaction history fetched successfully"

	MessageFailedGetBalance     = "failed to fetch wallet details"
	MessageFailedCreditWallet   = "failed to credit wallet"
	MessageFailedDebitWallet    = "failed to debit wallet"
	MessageFailedGetCoinHistory = "failed to fetch coin transaction history"

	ErrWalletNotFound    = errors.New("user wallet not found")
	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrSelfTransfer      = errors.New("cannot transfer coins to yourself")
)

type (
	WalletBalance struct {
		WalletID string `json:"wallet_id"`
		Balance  int    `json:"balance"`
	}

	AdjustWalletRequest struct {
		UserID      string `json:"user_id" validate:"required,uuid"`
		Amount      int    `json:"amount" validate:"required,min=1"`
		Type        string `json:"type" validate:"required,oneof=PURCHASE ADMIN_ADJUST REFUND GIFT_SENT GIFT_RECEIVED"`
		ReferenceID string `json:"reference_id,omitempty" validate:"omitempty,uuid"`
	}

	CoinTransactionItem struct {
		ID              string    `json:"id"`
		Coins           int       `json:"coins"`
		TransactionType string    `json:"transaction_type"`
		ReferenceID     string    `json:"reference_id,omitempty"`
		BalanceAfter    int       `json:"balance_after"`
		Status          string    `json:"status"`
		CreatedAt       time.Time `json:"created_at"`
	}

	TransferResult struct {
		SenderBalanceAfter   int `json:"sender_balance_after"`
		ReceiverBalanceAfter int `json:"receiver_balance_after"`
	}
)
