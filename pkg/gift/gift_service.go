package gift

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/notify"
	"Livecast-Backend/pkg/wallet"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	GiftService interface {
		// Catalog
		GetGifts(ctx context.Context, activeOnly bool) ([]*domain.Gift, error)
		AddGift(ctx context.Context, req domain.AddGiftRequest) (*domain.Gift, error)
		UpdateGift(ctx context.Context, req domain.UpdateGiftRequest) (*domain.Gift, error)
		EnableGift(ctx context.Context, giftID string) error
		DisableGift(ctx context.Context, giftID string) error
		SetGiftAnimated(ctx context.Context, giftID string, animated bool) error
		DeleteGift(ctx context.Context, giftID string) error

		// Transfer engine
		SendGift(ctx context.Context, req domain.SendGiftRequest, senderID string) (*domain.GiftSendResult, error)
	}

	giftService struct {
		db             *gorm.DB
		giftRepository GiftRepository
		walletService  wallet.WalletService
		publisher      notify.Publisher
	}
)

func NewGiftService(db *gorm.DB, giftRepository GiftRepository, walletService wallet.WalletService, publisher notify.Publisher) GiftService {
	return &giftService{
		db:             db,
		giftRepository: giftRepository,
		walletService:  walletService,
		publisher:      publisher,
	}
}

func (s *giftService) GetGifts(ctx context.Context, activeOnly bool) ([]*domain.Gift, error) {
	gifts, err := s.giftRepository.GetGifts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Gift, 0, len(gifts))
	for _, g := range gifts {
		result = append(result, toDomainGift(g))
	}
	return result, nil
}

func (s *giftService) AddGift(ctx context.Context, req domain.AddGiftRequest) (*domain.Gift, error) {
	if _, err := s.giftRepository.GetGiftByName(ctx, req.GiftName); err == nil {
		return nil, domain.ErrGiftNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gift := &entities.Gift{
		ID:          uuid.New(),
		GiftName:    req.GiftName,
		GiftIconURL: req.GiftIconURL,
		CoinCost:    req.CoinCost,
		IsActive:    true,
	}
	if err := s.giftRepository.CreateGift(ctx, gift); err != nil {
		return nil, err
	}

	return toDomainGift(gift), nil
}

func (s *giftService) UpdateGift(ctx context.Context, req domain.UpdateGiftRequest) (*domain.Gift, error) {
	giftUUID, err := uuid.Parse(req.GiftID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	gift, err := s.giftRepository.GetGiftByID(ctx, giftUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGiftNotFound
		}
		return nil, err
	}

	if req.GiftName != nil {
		gift.GiftName = *req.GiftName
	}
	if req.GiftIconURL != nil {
		gift.GiftIconURL = *req.GiftIconURL
	}
	if req.CoinCost != nil {
		gift.CoinCost = *req.CoinCost
	}

	if err := s.giftRepository.UpdateGift(ctx, gift); err != nil {
		return nil, err
	}
	return toDomainGift(gift), nil
}

func (s *giftService) EnableGift(ctx context.Context, giftID string) error {
	return s.setActive(ctx, giftID, true, domain.ErrGiftAlreadyEnabled)
}

func (s *giftService) DisableGift(ctx context.Context, giftID string) error {
	return s.setActive(ctx, giftID, false, domain.ErrGiftAlreadyDisabled)
}

// setActive reports toggling to the current state as a conflict so stale
// admin UIs can detect it.
func (s *giftService) setActive(ctx context.Context, giftID string, active bool, conflict error) error {
	giftUUID, err := uuid.Parse(giftID)
	if err != nil {
		return domain.ErrParseUUID
	}

	rows, err := s.giftRepository.SetGiftActive(ctx, giftUUID, active)
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.giftRepository.GetGiftByID(ctx, giftUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrGiftNotFound
			}
			return err
		}
		return conflict
	}
	return nil
}

func (s *giftService) SetGiftAnimated(ctx context.Context, giftID string, animated bool) error {
	giftUUID, err := uuid.Parse(giftID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if err := s.giftRepository.SetGiftAnimated(ctx, giftUUID, animated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGiftNotFound
		}
		return err
	}
	return nil
}

// DeleteGift is a hard delete, rejected while historical sends still
// reference the gift.
func (s *giftService) DeleteGift(ctx context.Context, giftID string) error {
	giftUUID, err := uuid.Parse(giftID)
	if err != nil {
		return domain.ErrParseUUID
	}

	count, err := s.giftRepository.CountUserGiftsByGiftID(ctx, giftUUID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrGiftReferenced
	}

	if err := s.giftRepository.DeleteGift(ctx, giftUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGiftNotFound
		}
		return err
	}
	return nil
}

// SendGift is the highest-contention path. Five writes land in one
// transaction: the sender debit, the receiver credit, both coin-transaction
// rows, and the gift event. Notifications go out only after commit.
func (s *giftService) SendGift(ctx context.Context, req domain.SendGiftRequest, senderID string) (*domain.GiftSendResult, error) {
	giftUUID, err := uuid.Parse(req.GiftID)
	if err != nil {
		return nil, domain.ErrGiftNotFound
	}

	// Preconditions fail in a fixed order: gift resolution first, then
	// quantity, then self-send. The gift is re-read inside the transaction
	// for the authoritative cost.
	if _, err := s.giftRepository.GetGiftByID(ctx, giftUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGiftNotFound
		}
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if senderID == req.ReceiverID {
		return nil, domain.ErrSelfGift
	}

	senderUUID, err := uuid.Parse(senderID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	receiverUUID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var result *domain.GiftSendResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gift, err := s.giftRepository.GetGiftByIDTx(ctx, tx, giftUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrGiftNotFound
			}
			return err
		}

		totalCoins := gift.CoinCost * req.Quantity

		userGift := &entities.UserGift{
			ID:          uuid.New(),
			SenderID:    senderUUID,
			ReceiverID:  receiverUUID,
			GiftID:      gift.ID,
			Quantity:    req.Quantity,
			TotalCoins:  totalCoins,
			ContextType: req.ContextType,
		}
		if req.ContextID != "" {
			contextID := req.ContextID
			userGift.ContextID = &contextID
		}

		// A missing sender wallet and a short balance look the same here;
		// both are an insufficient-funds rejection.
		if _, err := s.walletService.DebitInTx(ctx, tx, senderUUID, totalCoins, domain.TransactionTypeGiftSent, &userGift.ID); err != nil {
			if errors.Is(err, domain.ErrWalletNotFound) {
				return domain.ErrInsufficientCoins
			}
			return err
		}

		if _, err := s.walletService.CreditInTx(ctx, tx, receiverUUID, totalCoins, domain.TransactionTypeGiftReceived, &userGift.ID); err != nil {
			return err
		}

		if err := s.giftRepository.CreateUserGift(ctx, tx, userGift); err != nil {
			return err
		}

		result = &domain.GiftSendResult{
			UserGiftID:  userGift.ID.String(),
			SenderID:    senderID,
			ReceiverID:  req.ReceiverID,
			GiftName:    gift.GiftName,
			GiftIconURL: gift.GiftIconURL,
			Quantity:    req.Quantity,
			TotalCoins:  totalCoins,
			ContextType: req.ContextType,
			ContextID:   req.ContextID,
			CreatedAt:   time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyGiftSent(ctx, result)
	return result, nil
}

// notifyGiftSent fans the committed transfer out to observers. Failures are
// logged and dropped; the transfer already landed.
func (s *giftService) notifyGiftSent(ctx context.Context, result *domain.GiftSendResult) {
	var senderName, senderAvatar string
	if senderUUID, err := uuid.Parse(result.SenderID); err == nil {
		if sender, err := s.giftRepository.GetUserByID(ctx, senderUUID); err == nil {
			senderName = sender.FullName
			senderAvatar = sender.ProfilePicture
		}
	}

	received := domain.GiftReceivedEvent{
		UserGiftID:   result.UserGiftID,
		SenderName:   senderName,
		SenderAvatar: senderAvatar,
		GiftName:     result.GiftName,
		GiftIconURL:  result.GiftIconURL,
		Quantity:     result.Quantity,
		TotalCoins:   result.TotalCoins,
		ContextType:  result.ContextType,
		ContextID:    result.ContextID,
		Timestamp:    time.Now(),
	}
	if err := s.publisher.Publish(ctx, domain.TopicGiftReceived(result.ReceiverID), received); err != nil {
		log.WithError(err).WithField("user_gift_id", result.UserGiftID).Warn("gift notification dropped")
	}

	if result.ContextType == domain.GiftContextLive && result.ContextID != "" {
		live := domain.LiveGiftEvent{
			UserGiftID:   result.UserGiftID,
			SenderName:   senderName,
			SenderAvatar: senderAvatar,
			ReceiverID:   result.ReceiverID,
			GiftName:     result.GiftName,
			GiftIconURL:  result.GiftIconURL,
			Quantity:     result.Quantity,
			TotalCoins:   result.TotalCoins,
			Timestamp:    time.Now(),
		}
		if err := s.publisher.Publish(ctx, domain.TopicLiveRoom(result.ContextID), live); err != nil {
			log.WithError(err).WithField("user_gift_id", result.UserGiftID).Warn("live room notification dropped")
		}
	}
}

func toDomainGift(g *entities.Gift) *domain.Gift {
	return &domain.Gift{
		GiftID:     g.ID.String(),
		GiftName:   g.GiftName,
		GiftIcon:   g.GiftIconURL,
		CoinCost:   g.CoinCost,
		IsActive:   g.IsActive,
		IsAnimated: g.IsAnimated,
	}
}
