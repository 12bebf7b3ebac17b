package gift

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/notify"
	"Livecast-Backend/pkg/wallet"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// capturePublisher records published events so tests can assert on
// post-commit notification behavior.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *capturePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.topics))
	copy(out, p.topics)
	return out
}

func setupGiftTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:gift_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Wallet{},
		&entities.CoinTransaction{},
		&entities.Gift{},
		&entities.UserGift{},
	), "migrate db")
	return db
}

func newGiftService(db *gorm.DB, publisher notify.Publisher) GiftService {
	walletService := wallet.NewWalletService(db, wallet.NewWalletRepository(db), publisher)
	return NewGiftService(db, NewGiftRepository(db), walletService, publisher)
}

func seedGift(t *testing.T, db *gorm.DB, name string, cost int) *entities.Gift {
	t.Helper()
	gift := &entities.Gift{
		ID:          uuid.New(),
		GiftName:    name,
		GiftIconURL: "https://cdn.example.com/gifts/" + name + ".png",
		CoinCost:    cost,
		IsActive:    true,
	}
	require.NoError(t, db.Create(gift).Error)
	return gift
}

func seedGiftWallet(t *testing.T, db *gorm.DB, userID uuid.UUID, balance int) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Balance: balance,
	}).Error)
}

func walletBalance(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()
	var w entities.Wallet
	require.NoError(t, db.Where("user_id = ?", userID).First(&w).Error)
	return w.Balance
}

func TestSendGiftTransfersCoins(t *testing.T) {
	db := setupGiftTestDB(t)
	publisher := &capturePublisher{}
	service := newGiftService(db, publisher)

	gift := seedGift(t, db, "rose", 30)
	senderID := uuid.New()
	receiverID := uuid.New()
	seedGiftWallet(t, db, senderID, 100)

	result, err := service.SendGift(context.Background(), domain.SendGiftRequest{
		ReceiverID:  receiverID.String(),
		GiftID:      gift.ID.String(),
		Quantity:    2,
		ContextType: domain.GiftContextProfile,
	}, senderID.String())
	require.NoError(t, err)

	assert.Equal(t, 60, result.TotalCoins)
	assert.Equal(t, "rose", result.GiftName)
	assert.Equal(t, 40, walletBalance(t, db, senderID))
	assert.Equal(t, 60, walletBalance(t, db, receiverID), "receiver wallet created lazily on first gift")

	var userGift entities.UserGift
	require.NoError(t, db.Where("sender_id = ?", senderID).First(&userGift).Error)
	assert.Equal(t, 60, userGift.TotalCoins)
	assert.Equal(t, 2, userGift.Quantity)

	// Both ledger rows point back at the gift event.
	var txns []entities.CoinTransaction
	require.NoError(t, db.Where("reference_id = ?", userGift.ID).Find(&txns).Error)
	require.Len(t, txns, 2)
	types := map[string]int{}
	for _, txn := range txns {
		types[txn.TransactionType] = txn.BalanceAfter
	}
	assert.Equal(t, 40, types[domain.TransactionTypeGiftSent])
	assert.Equal(t, 60, types[domain.TransactionTypeGiftReceived])

	topics := publisher.published()
	assert.Contains(t, topics, domain.TopicGiftReceived(receiverID.String()))
}

func TestSendGiftLiveBroadcastsToRoom(t *testing.T) {
	db := setupGiftTestDB(t)
	publisher := &capturePublisher{}
	service := newGiftService(db, publisher)

	gift := seedGift(t, db, "rocket", 50)
	senderID := uuid.New()
	receiverID := uuid.New()
	seedGiftWallet(t, db, senderID, 50)

	_, err := service.SendGift(context.Background(), domain.SendGiftRequest{
		ReceiverID:  receiverID.String(),
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextLive,
		ContextID:   "stream-42",
	}, senderID.String())
	require.NoError(t, err)

	topics := publisher.published()
	assert.Contains(t, topics, domain.TopicGiftReceived(receiverID.String()))
	assert.Contains(t, topics, domain.TopicLiveRoom("stream-42"))
}

func TestSendGiftInsufficientFundsRollsBack(t *testing.T) {
	db := setupGiftTestDB(t)
	publisher := &capturePublisher{}
	service := newGiftService(db, publisher)

	gift := seedGift(t, db, "crown", 30)
	senderID := uuid.New()
	receiverID := uuid.New()
	seedGiftWallet(t, db, senderID, 10)

	_, err := service.SendGift(context.Background(), domain.SendGiftRequest{
		ReceiverID:  receiverID.String(),
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextProfile,
	}, senderID.String())
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

	assert.Equal(t, 10, walletBalance(t, db, senderID))

	var giftEvents, receiverWallets, txns int64
	require.NoError(t, db.Model(&entities.UserGift{}).Count(&giftEvents).Error)
	require.NoError(t, db.Model(&entities.Wallet{}).Where("user_id = ?", receiverID).Count(&receiverWallets).Error)
	require.NoError(t, db.Model(&entities.CoinTransaction{}).Count(&txns).Error)
	assert.EqualValues(t, 0, giftEvents)
	assert.EqualValues(t, 0, receiverWallets)
	assert.EqualValues(t, 0, txns)

	assert.Empty(t, publisher.published(), "rolled back transfer must not notify")
}

func TestSendGiftMissingSenderWallet(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())

	gift := seedGift(t, db, "star", 5)

	_, err := service.SendGift(context.Background(), domain.SendGiftRequest{
		ReceiverID:  uuid.New().String(),
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextChat,
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)
}

func TestSendGiftPreconditionOrder(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  uuid.New().String(),
		GiftID:      "not-a-uuid",
		Quantity:    1,
		ContextType: domain.GiftContextChat,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrGiftNotFound)

	// A nonexistent gift wins over a bad quantity; resolution comes first.
	_, err = service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  uuid.New().String(),
		GiftID:      uuid.New().String(),
		Quantity:    0,
		ContextType: domain.GiftContextChat,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrGiftNotFound)

	gift := seedGift(t, db, "heart", 5)

	_, err = service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  uuid.New().String(),
		GiftID:      gift.ID.String(),
		Quantity:    0,
		ContextType: domain.GiftContextChat,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  userID,
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextChat,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrSelfGift)
}

func TestSendGiftFreezesTotalCoins(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()

	gift := seedGift(t, db, "diamond", 20)
	senderID := uuid.New()
	receiverID := uuid.New()
	seedGiftWallet(t, db, senderID, 100)

	result, err := service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  receiverID.String(),
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextProfile,
	}, senderID.String())
	require.NoError(t, err)

	newCost := 999
	_, err = service.UpdateGift(ctx, domain.UpdateGiftRequest{
		GiftID:   gift.ID.String(),
		CoinCost: &newCost,
	})
	require.NoError(t, err)

	var userGift entities.UserGift
	require.NoError(t, db.Where("id = ?", result.UserGiftID).First(&userGift).Error)
	assert.Equal(t, 20, userGift.TotalCoins, "historical sends keep the cost at send time")
}

func TestAddGiftRejectsDuplicateName(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()

	_, err := service.AddGift(ctx, domain.AddGiftRequest{
		GiftName:    "rose",
		GiftIconURL: "https://cdn.example.com/gifts/rose.png",
		CoinCost:    10,
	})
	require.NoError(t, err)

	_, err = service.AddGift(ctx, domain.AddGiftRequest{
		GiftName:    "rose",
		GiftIconURL: "https://cdn.example.com/gifts/rose2.png",
		CoinCost:    15,
	})
	assert.ErrorIs(t, err, domain.ErrGiftNameTaken)
}

func TestEnableGiftConflictWhenAlreadyEnabled(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()

	gift := seedGift(t, db, "rose", 10)

	err := service.EnableGift(ctx, gift.ID.String())
	assert.ErrorIs(t, err, domain.ErrGiftAlreadyEnabled)

	require.NoError(t, service.DisableGift(ctx, gift.ID.String()))
	err = service.DisableGift(ctx, gift.ID.String())
	assert.ErrorIs(t, err, domain.ErrGiftAlreadyDisabled)

	require.NoError(t, service.EnableGift(ctx, gift.ID.String()))
}

func TestToggleUnknownGift(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())

	err := service.EnableGift(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrGiftNotFound)
}

func TestGetGiftsFiltersInactive(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()

	seedGift(t, db, "rose", 10)
	hidden := seedGift(t, db, "crown", 50)
	require.NoError(t, service.DisableGift(ctx, hidden.ID.String()))

	active, err := service.GetGifts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "rose", active[0].GiftName)

	all, err := service.GetGifts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteGiftRestrictedWhenReferenced(t *testing.T) {
	db := setupGiftTestDB(t)
	service := newGiftService(db, notify.NewNoopPublisher())
	ctx := context.Background()

	gift := seedGift(t, db, "rose", 10)
	senderID := uuid.New()
	seedGiftWallet(t, db, senderID, 100)

	_, err := service.SendGift(ctx, domain.SendGiftRequest{
		ReceiverID:  uuid.New().String(),
		GiftID:      gift.ID.String(),
		Quantity:    1,
		ContextType: domain.GiftContextProfile,
	}, senderID.String())
	require.NoError(t, err)

	err = service.DeleteGift(ctx, gift.ID.String())
	assert.ErrorIs(t, err, domain.ErrGiftReferenced)

	unreferenced := seedGift(t, db, "star", 5)
	require.NoError(t, service.DeleteGift(ctx, unreferenced.ID.String()))

	var count int64
	require.NoError(t, db.Model(&entities.Gift{}).Where("id = ?", unreferenced.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
