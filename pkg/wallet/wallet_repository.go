package wallet

import (
	"Livecast-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// WalletRepository owns every write to wallet rows. Mutating methods take
	// the enclosing transaction handle so a multi-step ledger change commits
	// or rolls back as one unit.
	WalletRepository interface {
		CreateWallet(ctx context.Context, tx *gorm.DB, wallet *entities.Wallet) error
		GetWalletByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
		GetWalletByUserIDTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entities.Wallet, error)

		// IncrementBalance adds amount to the wallet row; zero rows affected
		// means no wallet exists for the user.
		IncrementBalance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error)

		// DecrementBalanceIfSufficient subtracts amount only when the row still
		// holds at least that much, in a single conditional update. Zero rows
		// affected means the wallet is missing or the balance is short; the
		// check and the write cannot race apart.
		DecrementBalanceIfSufficient(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error)

		CreateCoinTransaction(ctx context.Context, tx *gorm.DB, coinTx *entities.CoinTransaction) error
		GetUserCoinTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.CoinTransaction, int64, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) CreateWallet(ctx context.Context, tx *gorm.DB, wallet *entities.Wallet) error {
	return tx.WithContext(ctx).Create(wallet).Error
}

func (r *walletRepository) GetWalletByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return r.getWallet(r.db.WithContext(ctx), userID)
}

func (r *walletRepository) GetWalletByUserIDTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entities.Wallet, error) {
	return r.getWallet(tx.WithContext(ctx), userID)
}

func (r *walletRepository) getWallet(db *gorm.DB, userID uuid.UUID) (*entities.Wallet, error) {
	var wallet entities.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) IncrementBalance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&entities.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	return result.RowsAffected, result.Error
}

func (r *walletRepository) DecrementBalanceIfSufficient(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&entities.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	return result.RowsAffected, result.Error
}

func (r *walletRepository) CreateCoinTransaction(ctx context.Context, tx *gorm.DB, coinTx *entities.CoinTransaction) error {
	return tx.WithContext(ctx).Create(coinTx).Error
}

func (r *walletRepository) GetUserCoinTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.CoinTransaction, int64, error) {
	var transactions []*entities.CoinTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.CoinTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
