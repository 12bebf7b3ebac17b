package coin

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/notify"
	"Livecast-Backend/pkg/wallet"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubGateway stands in for the payment gateway so purchase flows run
// without network access.
type stubGateway struct {
	invoiceErr error
	status     string
	statusErr  error
}

func (g *stubGateway) CreateInvoice(_ context.Context, orderID string, _ int64, _ string) (string, error) {
	if g.invoiceErr != nil {
		return "", g.invoiceErr
	}
	return "https://pay.example.com/invoice/" + orderID, nil
}

func (g *stubGateway) CheckTransactionStatus(_ context.Context, _ string) (string, error) {
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.status, nil
}

func setupCoinTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:coin_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(
		&entities.Wallet{},
		&entities.CoinTransaction{},
		&entities.CoinPackage{},
		&entities.CoinPurchase{},
	), "migrate db")
	return db
}

func newCoinService(db *gorm.DB, gateway *stubGateway) CoinService {
	walletRepository := wallet.NewWalletRepository(db)
	walletService := wallet.NewWalletService(db, walletRepository, notify.NewNoopPublisher())
	return NewCoinService(db, NewCoinRepository(db), walletService, walletRepository, gateway, notify.NewNoopPublisher())
}

func seedPackage(t *testing.T, db *gorm.DB, coins, bonus int) *entities.CoinPackage {
	t.Helper()
	pkg := &entities.CoinPackage{
		ID:         uuid.New(),
		Coins:      coins,
		BonusCoins: bonus,
		Price:      49000,
		Currency:   "IDR",
		IsActive:   true,
	}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func TestBuyCoinsCreatesPendingPurchase(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 500, 50)
	userID := uuid.New()

	res, err := service.BuyCoins(context.Background(), domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, userID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, res.GatewayTxnID)
	assert.Contains(t, res.InvoiceURL, res.GatewayTxnID)

	var purchase entities.CoinPurchase
	require.NoError(t, db.Where("user_id = ?", userID).First(&purchase).Error)
	assert.Equal(t, domain.PurchaseStatusPending, purchase.Status)
	assert.False(t, purchase.Credited)
	assert.Equal(t, 550, purchase.Coins, "bonus coins are included")

	// Nothing is credited until the gateway confirms.
	var wallets int64
	require.NoError(t, db.Model(&entities.Wallet{}).Count(&wallets).Error)
	assert.EqualValues(t, 0, wallets)
}

func TestBuyCoinsInactivePackageRejected(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 100, 0)
	require.NoError(t, service.DisableCoinPackage(context.Background(), pkg.ID.String()))

	_, err := service.BuyCoins(context.Background(), domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestBuyCoinsGatewayFailure(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{invoiceErr: errors.New("gateway down")})
	pkg := seedPackage(t, db, 100, 0)
	userID := uuid.New()

	_, err := service.BuyCoins(context.Background(), domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, userID.String())
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)

	// The recorded purchase is closed, not left pending forever.
	var purchase entities.CoinPurchase
	require.NoError(t, db.Where("user_id = ?", userID).First(&purchase).Error)
	assert.Equal(t, domain.PurchaseStatusFailed, purchase.Status)
	assert.False(t, purchase.Credited)
}

func TestApplyPurchaseCreditsExactlyOnce(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 500, 50)
	userID := uuid.New()
	ctx := context.Background()

	res, err := service.BuyCoins(ctx, domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, userID.String())
	require.NoError(t, err)

	first, err := service.ApplyPurchase(ctx, res.GatewayTxnID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyProcessed)
	assert.Equal(t, 550, first.Balance)

	// Webhook redelivery: same txn id, no second credit.
	second, err := service.ApplyPurchase(ctx, res.GatewayTxnID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, 550, second.Balance)

	var w entities.Wallet
	require.NoError(t, db.Where("user_id = ?", userID).First(&w).Error)
	assert.Equal(t, 550, w.Balance)

	var txns int64
	require.NoError(t, db.Model(&entities.CoinTransaction{}).Where("user_id = ?", userID).Count(&txns).Error)
	assert.EqualValues(t, 1, txns, "redelivery must not append a second ledger row")

	var purchase entities.CoinPurchase
	require.NoError(t, db.Where("gateway_txn_id = ?", res.GatewayTxnID).First(&purchase).Error)
	assert.True(t, purchase.Credited)
	assert.Equal(t, domain.PurchaseStatusSettled, purchase.Status)
}

func TestApplyPurchaseUnknownTxn(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})

	_, err := service.ApplyPurchase(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrPurchaseNotFound)
}

func TestMarkPurchaseFailed(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 100, 0)
	ctx := context.Background()

	res, err := service.BuyCoins(ctx, domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, uuid.New().String())
	require.NoError(t, err)

	require.NoError(t, service.MarkPurchaseFailed(ctx, res.GatewayTxnID))

	var purchase entities.CoinPurchase
	require.NoError(t, db.Where("gateway_txn_id = ?", res.GatewayTxnID).First(&purchase).Error)
	assert.Equal(t, domain.PurchaseStatusFailed, purchase.Status)
	assert.False(t, purchase.Credited)
}

func TestPackageToggleConflicts(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 100, 0)
	ctx := context.Background()

	err := service.EnableCoinPackage(ctx, pkg.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageAlreadyEnabled)

	require.NoError(t, service.DisableCoinPackage(ctx, pkg.ID.String()))
	err = service.DisableCoinPackage(ctx, pkg.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageAlreadyDisabled)

	err = service.EnableCoinPackage(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestDeletePackageRestrictedWhenReferenced(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 100, 0)
	ctx := context.Background()

	_, err := service.BuyCoins(ctx, domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "viewer@example.com",
	}, uuid.New().String())
	require.NoError(t, err)

	err = service.DeleteCoinPackage(ctx, pkg.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageReferenced)

	fresh := seedPackage(t, db, 200, 0)
	require.NoError(t, service.DeleteCoinPackage(ctx, fresh.ID.String()))
}

func TestPurchaseHistoryListsUserPurchases(t *testing.T) {
	db := setupCoinTestDB(t)
	service := newCoinService(db, &stubGateway{})
	pkg := seedPackage(t, db, 100, 10)
	userID := uuid.New()
	otherID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := service.BuyCoins(ctx, domain.BuyCoinRequest{
			PackageID: pkg.ID.String(),
			Email:     "viewer@example.com",
		}, userID.String())
		require.NoError(t, err)
	}
	_, err := service.BuyCoins(ctx, domain.BuyCoinRequest{
		PackageID: pkg.ID.String(),
		Email:     "other@example.com",
	}, otherID.String())
	require.NoError(t, err)

	history, err := service.GetPurchaseHistory(ctx, userID.String())
	require.NoError(t, err)
	assert.Len(t, history, 2)
	for _, item := range history {
		assert.Equal(t, 110, item.Coins)
		assert.Equal(t, domain.PurchaseStatusPending, item.Status)
	}
}
