package wallet

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/notify"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	// WalletService is the wallet engine. Every mutation runs inside one
	// database transaction together with its coin-transaction log row.
	WalletService interface {
		GetBalance(ctx context.Context, userID string) (*domain.WalletBalance, error)
		Credit(ctx context.Context, userID string, amount int, txType string, referenceID *uuid.UUID) (int, error)
		Debit(ctx context.Context, userID string, amount int, txType string, referenceID *uuid.UUID) (int, error)
		Transfer(ctx context.Context, senderID, receiverID string, amount int, debitType, creditType string, referenceID *uuid.UUID) (*domain.TransferResult, error)
		GetCoinTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.CoinTransactionItem, int64, error)

		// In-transaction primitives for engines that compose a wallet
		// mutation with their own writes. The caller owns commit/rollback.
		CreditInTx(ctx context.Context, tx *gorm.DB, userUUID uuid.UUID, amount int, txType string, referenceID *uuid.UUID) (int, error)
		DebitInTx(ctx context.Context, tx *gorm.DB, userUUID uuid.UUID, amount int, txType string, referenceID *uuid.UUID) (int, error)
	}

	walletService struct {
		db               *gorm.DB
		walletRepository WalletRepository
		publisher        notify.Publisher
	}
)

func NewWalletService(db *gorm.DB, walletRepository WalletRepository, publisher notify.Publisher) WalletService {
	return &walletService{
		db:               db,
		walletRepository: walletRepository,
		publisher:        publisher,
	}
}

func (s *walletService) GetBalance(ctx context.Context, userID string) (*domain.WalletBalance, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	wallet, err := s.walletRepository.GetWalletByUserID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	return &domain.WalletBalance{
		WalletID: wallet.ID.String(),
		Balance:  wallet.Balance,
	}, nil
}

func (s *walletService) Credit(ctx context.Context, userID string, amount int, txType string, referenceID *uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return 0, domain.ErrParseUUID
	}

	var balanceAfter int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balanceAfter, err = s.CreditInTx(ctx, tx, userUUID, amount, txType, referenceID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publishBalanceChanged(ctx, userID, balanceAfter, txType)
	return balanceAfter, nil
}

func (s *walletService) Debit(ctx context.Context, userID string, amount int, txType string, referenceID *uuid.UUID) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return 0, domain.ErrParseUUID
	}

	var balanceAfter int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balanceAfter, err = s.DebitInTx(ctx, tx, userUUID, amount, txType, referenceID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publishBalanceChanged(ctx, userID, balanceAfter, txType)
	return balanceAfter, nil
}

func (s *walletService) Transfer(ctx context.Context, senderID, receiverID string, amount int, debitType, creditType string, referenceID *uuid.UUID) (*domain.TransferResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, domain.ErrSelfTransfer
	}

	senderUUID, err := uuid.Parse(senderID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	receiverUUID, err := uuid.Parse(receiverID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	result := &domain.TransferResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		senderBalance, err := s.DebitInTx(ctx, tx, senderUUID, amount, debitType, referenceID)
		if err != nil {
			return err
		}
		receiverBalance, err := s.CreditInTx(ctx, tx, receiverUUID, amount, creditType, referenceID)
		if err != nil {
			return err
		}
		result.SenderBalanceAfter = senderBalance
		result.ReceiverBalanceAfter = receiverBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBalanceChanged(ctx, senderID, result.SenderBalanceAfter, debitType)
	s.publishBalanceChanged(ctx, receiverID, result.ReceiverBalanceAfter, creditType)
	return result, nil
}

// CreditInTx applies a credit inside the caller's transaction. A missing
// wallet row is created with the credited amount (lazy creation on first
// inbound credit).
func (s *walletService) CreditInTx(ctx context.Context, tx *gorm.DB, userUUID uuid.UUID, amount int, txType string, referenceID *uuid.UUID) (int, error) {
	rows, err := s.walletRepository.IncrementBalance(ctx, tx, userUUID, amount)
	if err != nil {
		return 0, err
	}

	var balanceAfter int
	if rows == 0 {
		wallet := &entities.Wallet{
			ID:      uuid.New(),
			UserID:  userUUID,
			Balance: amount,
		}
		if err := s.walletRepository.CreateWallet(ctx, tx, wallet); err != nil {
			return 0, err
		}
		balanceAfter = amount
	} else {
		wallet, err := s.walletRepository.GetWalletByUserIDTx(ctx, tx, userUUID)
		if err != nil {
			return 0, err
		}
		balanceAfter = wallet.Balance
	}

	if err := s.appendTransaction(ctx, tx, userUUID, amount, txType, referenceID, balanceAfter); err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

// DebitInTx applies a debit inside the caller's transaction. The sufficiency
// check and the decrement are one conditional update, so two concurrent
// debits cannot both pass on a balance that covers only one of them.
func (s *walletService) DebitInTx(ctx context.Context, tx *gorm.DB, userUUID uuid.UUID, amount int, txType string, referenceID *uuid.UUID) (int, error) {
	rows, err := s.walletRepository.DecrementBalanceIfSufficient(ctx, tx, userUUID, amount)
	if err != nil {
		return 0, err
	}

	if rows == 0 {
		if _, err := s.walletRepository.GetWalletByUserIDTx(ctx, tx, userUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, domain.ErrWalletNotFound
			}
			return 0, err
		}
		return 0, domain.ErrInsufficientCoins
	}

	wallet, err := s.walletRepository.GetWalletByUserIDTx(ctx, tx, userUUID)
	if err != nil {
		return 0, err
	}

	if err := s.appendTransaction(ctx, tx, userUUID, amount, txType, referenceID, wallet.Balance); err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (s *walletService) appendTransaction(ctx context.Context, tx *gorm.DB, userUUID uuid.UUID, amount int, txType string, referenceID *uuid.UUID, balanceAfter int) error {
	return s.walletRepository.CreateCoinTransaction(ctx, tx, &entities.CoinTransaction{
		ID:              uuid.New(),
		UserID:          userUUID,
		Coins:           amount,
		TransactionType: txType,
		ReferenceID:     referenceID,
		BalanceAfter:    balanceAfter,
		Status:          domain.TransactionStatusSuccess,
	})
}

func (s *walletService) publishBalanceChanged(ctx context.Context, userID string, balance int, txType string) {
	event := domain.BalanceChangedEvent{
		UserID:          userID,
		Balance:         balance,
		TransactionType: txType,
		Timestamp:       time.Now(),
	}
	if err := s.publisher.Publish(ctx, domain.TopicBalanceChanged(userID), event); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("balance notification dropped")
	}
}

func (s *walletService) GetCoinTransactionHistory(ctx context.Context, userID string, page, limit int) ([]*domain.CoinTransactionItem, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	transactions, count, err := s.walletRepository.GetUserCoinTransactions(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.CoinTransactionItem, 0, len(transactions))
	for _, tx := range transactions {
		item := &domain.CoinTransactionItem{
			ID:              tx.ID.String(),
			Coins:           tx.Coins,
			TransactionType: tx.TransactionType,
			BalanceAfter:    tx.BalanceAfter,
			Status:          tx.Status,
			CreatedAt:       tx.CreatedAt,
		}
		if tx.ReferenceID != nil {
			item.ReferenceID = tx.ReferenceID.String()
		}
		result = append(result, item)
	}

	return result, count, nil
}
