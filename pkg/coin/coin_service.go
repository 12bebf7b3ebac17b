package coin

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/notify"
	"Livecast-Backend/pkg/payment"
	"Livecast-Backend/pkg/wallet"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	CoinService interface {
		// Package catalog
		GetCoinPackages(ctx context.Context, activeOnly bool) ([]*domain.CoinPackage, error)
		AddCoinPackage(ctx context.Context, req domain.AddCoinPackageRequest) (*domain.CoinPackage, error)
		UpdateCoinPackage(ctx context.Context, req domain.UpdateCoinPackageRequest) (*domain.CoinPackage, error)
		EnableCoinPackage(ctx context.Context, packageID string) error
		DisableCoinPackage(ctx context.Context, packageID string) error
		DeleteCoinPackage(ctx context.Context, packageID string) error

		// Purchase processor
		BuyCoins(ctx context.Context, req domain.BuyCoinRequest, userID string) (*domain.BuyCoinResponse, error)
		ApplyPurchase(ctx context.Context, gatewayTxnID string) (*domain.ApplyPurchaseResult, error)
		MarkPurchaseFailed(ctx context.Context, gatewayTxnID string) error
		GetPurchaseHistory(ctx context.Context, userID string) ([]*domain.PurchaseHistoryItem, error)
	}

	coinService struct {
		db               *gorm.DB
		coinRepository   CoinRepository
		walletService    wallet.WalletService
		walletRepository wallet.WalletRepository
		midtransService  payment.MidtransService
		publisher        notify.Publisher
	}
)

func NewCoinService(db *gorm.DB, coinRepository CoinRepository, walletService wallet.WalletService, walletRepository wallet.WalletRepository, midtransService payment.MidtransService, publisher notify.Publisher) CoinService {
	return &coinService{
		db:               db,
		coinRepository:   coinRepository,
		walletService:    walletService,
		walletRepository: walletRepository,
		midtransService:  midtransService,
		publisher:        publisher,
	}
}

func (s *coinService) GetCoinPackages(ctx context.Context, activeOnly bool) ([]*domain.CoinPackage, error) {
	packages, err := s.coinRepository.GetCoinPackages(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CoinPackage, 0, len(packages))
	for _, pkg := range packages {
		result = append(result, toDomainPackage(pkg))
	}
	return result, nil
}

func (s *coinService) AddCoinPackage(ctx context.Context, req domain.AddCoinPackageRequest) (*domain.CoinPackage, error) {
	pkg := &entities.CoinPackage{
		ID:         uuid.New(),
		Coins:      req.Coins,
		BonusCoins: req.BonusCoins,
		Price:      req.Price,
		Currency:   strings.ToUpper(req.Currency),
		Banner:     req.Banner,
		AddOnDesc:  req.AddOnDesc,
		IsActive:   true,
	}
	if err := s.coinRepository.CreateCoinPackage(ctx, pkg); err != nil {
		return nil, err
	}
	return toDomainPackage(pkg), nil
}

func (s *coinService) UpdateCoinPackage(ctx context.Context, req domain.UpdateCoinPackageRequest) (*domain.CoinPackage, error) {
	packageUUID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pkg, err := s.coinRepository.GetCoinPackageByID(ctx, packageUUID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}

	if req.Coins != nil {
		pkg.Coins = *req.Coins
	}
	if req.BonusCoins != nil {
		pkg.BonusCoins = *req.BonusCoins
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.Currency != nil {
		pkg.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Banner != nil {
		pkg.Banner = *req.Banner
	}
	if req.AddOnDesc != nil {
		pkg.AddOnDesc = *req.AddOnDesc
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := s.coinRepository.UpdateCoinPackage(ctx, pkg); err != nil {
		return nil, err
	}
	return toDomainPackage(pkg), nil
}

func (s *coinService) EnableCoinPackage(ctx context.Context, packageID string) error {
	return s.setActive(ctx, packageID, true, domain.ErrPackageAlreadyEnabled)
}

func (s *coinService) DisableCoinPackage(ctx context.Context, packageID string) error {
	return s.setActive(ctx, packageID, false, domain.ErrPackageAlreadyDisabled)
}

func (s *coinService) setActive(ctx context.Context, packageID string, active bool, conflict error) error {
	packageUUID, err := uuid.Parse(packageID)
	if err != nil {
		return domain.ErrParseUUID
	}

	rows, err := s.coinRepository.SetPackageActive(ctx, packageUUID, active)
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.coinRepository.GetCoinPackageByID(ctx, packageUUID, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPackageNotFound
			}
			return err
		}
		return conflict
	}
	return nil
}

// DeleteCoinPackage hard-deletes a package, rejected while purchase history
// still references it.
func (s *coinService) DeleteCoinPackage(ctx context.Context, packageID string) error {
	packageUUID, err := uuid.Parse(packageID)
	if err != nil {
		return domain.ErrParseUUID
	}

	count, err := s.coinRepository.CountPurchasesByPackageID(ctx, packageUUID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrPackageReferenced
	}

	if err := s.coinRepository.DeleteCoinPackage(ctx, packageUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPackageNotFound
		}
		return err
	}
	return nil
}

// BuyCoins records a pending purchase and hands back the gateway invoice.
// The wallet is not touched until the gateway confirms via ApplyPurchase.
func (s *coinService) BuyCoins(ctx context.Context, req domain.BuyCoinRequest, userID string) (*domain.BuyCoinResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	packageUUID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, domain.ErrPackageNotFound
	}

	pkg, err := s.coinRepository.GetCoinPackageByID(ctx, packageUUID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}

	purchase := &entities.CoinPurchase{
		ID:           uuid.New(),
		UserID:       userUUID,
		PackageID:    pkg.ID,
		Coins:        pkg.Coins + pkg.BonusCoins,
		Gateway:      "MIDTRANS",
		GatewayTxnID: uuid.New().String(),
		AmountPaid:   pkg.Price,
		Currency:     pkg.Currency,
		Status:       domain.PurchaseStatusPending,
		Credited:     false,
	}
	if err := s.coinRepository.CreateCoinPurchase(ctx, purchase); err != nil {
		return nil, err
	}

	invoiceURL, err := s.midtransService.CreateInvoice(ctx, purchase.GatewayTxnID, int64(pkg.Price), req.Email)
	if err != nil {
		log.WithError(err).WithField("gateway_txn_id", purchase.GatewayTxnID).Error("gateway invoice creation failed")
		// No invoice means nothing to settle; close the purchase so it
		// does not linger as a phantom pending in history.
		if markErr := s.coinRepository.MarkPurchaseStatus(ctx, purchase.GatewayTxnID, domain.PurchaseStatusFailed); markErr != nil {
			log.WithError(markErr).WithField("gateway_txn_id", purchase.GatewayTxnID).Warn("failed to close purchase after invoice failure")
		}
		return nil, domain.ErrPaymentFailed
	}

	return &domain.BuyCoinResponse{
		PurchaseID:   purchase.ID.String(),
		GatewayTxnID: purchase.GatewayTxnID,
		InvoiceURL:   invoiceURL,
	}, nil
}

// ApplyPurchase converts a gateway confirmation into a wallet credit exactly
// once per gateway_txn_id. Redeliveries land on the already-processed path,
// which is a success, not an error.
func (s *coinService) ApplyPurchase(ctx context.Context, gatewayTxnID string) (*domain.ApplyPurchaseResult, error) {
	result := &domain.ApplyPurchaseResult{}
	var userUUID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchase, err := s.coinRepository.GetPurchaseByGatewayTxnID(ctx, tx, gatewayTxnID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPurchaseNotFound
			}
			return err
		}
		userUUID = purchase.UserID

		if _, err := s.coinRepository.GetCoinPackageByID(ctx, purchase.PackageID, true); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPackageNotFound
			}
			return err
		}

		rows, err := s.coinRepository.MarkPurchaseCredited(ctx, tx, gatewayTxnID)
		if err != nil {
			return err
		}
		if rows == 0 {
			result.AlreadyProcessed = true
			return nil
		}

		balance, err := s.walletService.CreditInTx(ctx, tx, purchase.UserID, purchase.Coins, domain.TransactionTypePurchase, &purchase.ID)
		if err != nil {
			return err
		}
		result.Balance = balance

		w, err := s.walletRepository.GetWalletByUserIDTx(ctx, tx, purchase.UserID)
		if err != nil {
			return err
		}
		result.WalletID = w.ID.String()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyProcessed {
		if w, err := s.walletRepository.GetWalletByUserID(ctx, userUUID); err == nil {
			result.WalletID = w.ID.String()
			result.Balance = w.Balance
		}
		return result, nil
	}

	event := domain.BalanceChangedEvent{
		UserID:          userUUID.String(),
		Balance:         result.Balance,
		TransactionType: domain.TransactionTypePurchase,
		Timestamp:       time.Now(),
	}
	if err := s.publisher.Publish(ctx, domain.TopicBalanceChanged(userUUID.String()), event); err != nil {
		log.WithError(err).WithField("gateway_txn_id", gatewayTxnID).Warn("purchase notification dropped")
	}

	return result, nil
}

func (s *coinService) MarkPurchaseFailed(ctx context.Context, gatewayTxnID string) error {
	return s.coinRepository.MarkPurchaseStatus(ctx, gatewayTxnID, domain.PurchaseStatusFailed)
}

func (s *coinService) GetPurchaseHistory(ctx context.Context, userID string) ([]*domain.PurchaseHistoryItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	purchases, err := s.coinRepository.GetUserPurchases(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PurchaseHistoryItem, 0, len(purchases))
	for _, p := range purchases {
		result = append(result, &domain.PurchaseHistoryItem{
			PurchaseID:   p.ID.String(),
			PackageID:    p.PackageID.String(),
			Coins:        p.Coins,
			Gateway:      p.Gateway,
			GatewayTxnID: p.GatewayTxnID,
			AmountPaid:   p.AmountPaid,
			Currency:     p.Currency,
			Status:       p.Status,
			Credited:     p.Credited,
			CreatedAt:    p.CreatedAt,
		})
	}
	return result, nil
}

func toDomainPackage(pkg *entities.CoinPackage) *domain.CoinPackage {
	return &domain.CoinPackage{
		PackageID:  pkg.ID.String(),
		Coins:      pkg.Coins,
		BonusCoins: pkg.BonusCoins,
		Price:      pkg.Price,
		Currency:   pkg.Currency,
		Banner:     pkg.Banner,
		AddOnDesc:  pkg.AddOnDesc,
		IsActive:   pkg.IsActive,
		CreatedAt:  pkg.CreatedAt,
		UpdatedAt:  pkg.UpdatedAt,
	}
}
