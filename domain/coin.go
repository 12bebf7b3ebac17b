package domain

import (
	"errors"
	"time"
)

const (
	PurchaseStatusPending = "PENDING"
	PurchaseStatusSettled = "SETTLED"
	PurchaseStatusFailed  = "FAILED"
)

var (
	MessageSuccessGetCoinPackages    = "coin packages fetched successfully"
	MessageSuccessAddCoinPackage     = "coin package added successfully"
	MessageSuccessUpdateCoinPackage  = "coin package updated successfully"
	MessageSuccessDeleteCoinPackage  = "coin package deleted successfully"
	MessageSuccessEnableCoinPackage  = "coin package enabled successfully"
	MessageSuccessDisableCoinPackage = "coin package disabled successfully"
	MessageSuccessBuyCoins           = "coins purchased successfully"
	MessageSuccessGetPurchaseHistory = "purchase history fetched"
	MessagePurchaseAlreadyProcessed  = "transaction already processed"
	MessagePurchaseMarkedFailed      = "transaction marked as failed"
	MessagePurchasePending           = "transaction still pending"

	MessageFailedGetCoinPackages    = "failed to fetch coin packages"
	MessageFailedAddCoinPackage     = "failed to add coin package"
	MessageFailedUpdateCoinPackage  = "failed to update coin package"
	MessageFailedDeleteCoinPackage  = "failed to delete coin package"
	MessageFailedEnableCoinPackage  = "failed to enable coin package"
	MessageFailedDisableCoinPackage = "failed to disable coin package"
	MessageFailedBuyCoins           = "failed to purchase coins"
	MessageFailedGetPurchaseHistory = "failed to fetch purchase history"

	ErrPackageNotFound        = errors.New("coin package not found")
	ErrPackageAlreadyEnabled  = errors.New("package is already enabled")
	ErrPackageAlreadyDisabled = errors.New("package is already disabled")
	ErrPackageReferenced      = errors.New("package is referenced by purchase history")
	ErrPurchaseNotFound       = errors.New("purchase not found")
	ErrPaymentFailed          = errors.New("payment processing failed")
)

type (
	CoinPackage struct {
		PackageID  string    `json:"package_id"`
		Coins      int       `json:"coins"`
		BonusCoins int       `json:"bonus_coins"`
		Price      float64   `json:"price"`
		Currency   string    `json:"currency"`
		Banner     string    `json:"banner,omitempty"`
		AddOnDesc  string    `json:"add_on_desc,omitempty"`
		IsActive   bool      `json:"is_active"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	AddCoinPackageRequest struct {
		Coins      int     `json:"coins" validate:"required,min=1"`
		BonusCoins int     `json:"bonus_coins" validate:"min=0"`
		Price      float64 `json:"price" validate:"required,gt=0"`
		Currency   string  `json:"currency" validate:"required,len=3"`
		Banner     string  `json:"banner,omitempty"`
		AddOnDesc  string  `json:"add_on_desc,omitempty"`
	}

	UpdateCoinPackageRequest struct {
		PackageID  string   `json:"package_id" validate:"required,uuid"`
		Coins      *int     `json:"coins,omitempty" validate:"omitempty,min=1"`
		BonusCoins *int     `json:"bonus_coins,omitempty" validate:"omitempty,min=0"`
		Price      *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
		Currency   *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
		Banner     *string  `json:"banner,omitempty"`
		AddOnDesc  *string  `json:"add_on_desc,omitempty"`
		IsActive   *bool    `json:"is_active,omitempty"`
	}

	BuyCoinRequest struct {
		PackageID string `json:"package_id" validate:"required,uuid"`
		Email     string `json:"email" validate:"required,email"`
	}

	BuyCoinResponse struct {
		PurchaseID   string `json:"purchase_id"`
		GatewayTxnID string `json:"gateway_txn_id"`
		InvoiceURL   string `json:"invoice_url"`
	}

	// ApplyPurchaseResult distinguishes the idempotent no-op from a fresh
	// credit; AlreadyProcessed is a success path, never an error.
	ApplyPurchaseResult struct {
		WalletID         string `json:"wallet_id"`
		Balance          int    `json:"balance"`
		AlreadyProcessed bool   `json:"already_processed"`
	}

	PurchaseHistoryItem struct {
		PurchaseID   string    `json:"purchase_id"`
		PackageID    string    `json:"package_id"`
		Coins        int       `json:"coins"`
		Gateway      string    `json:"gateway"`
		GatewayTxnID string    `json:"gateway_txn_id"`
		AmountPaid   float64   `json:"amount_paid"`
		Currency     string    `json:"currency"`
		Status       string    `json:"status"`
		Credited     bool      `json:"credited"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
