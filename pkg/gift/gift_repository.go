package gift

import (
	"Livecast-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	GiftRepository interface {
		// Catalog
		CreateGift(ctx context.Context, gift *entities.Gift) error
		GetGifts(ctx context.Context, activeOnly bool) ([]*entities.Gift, error)
		GetGiftByID(ctx context.Context, id uuid.UUID) (*entities.Gift, error)
		GetGiftByName(ctx context.Context, name string) (*entities.Gift, error)
		UpdateGift(ctx context.Context, gift *entities.Gift) error
		SetGiftActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
		SetGiftAnimated(ctx context.Context, id uuid.UUID, animated bool) error
		DeleteGift(ctx context.Context, id uuid.UUID) error
		CountUserGiftsByGiftID(ctx context.Context, giftID uuid.UUID) (int64, error)

		// Send path, inside the caller's transaction
		GetGiftByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entities.Gift, error)
		CreateUserGift(ctx context.Context, tx *gorm.DB, userGift *entities.UserGift) error

		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	}

	giftRepository struct {
		db *gorm.DB
	}
)

func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &giftRepository{
		db: db,
	}
}

func (r *giftRepository) CreateGift(ctx context.Context, gift *entities.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
}

func (r *giftRepository) GetGifts(ctx context.Context, activeOnly bool) ([]*entities.Gift, error) {
	var gifts []*entities.Gift
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("coin_cost ASC").Find(&gifts).Error; err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *giftRepository) GetGiftByID(ctx context.Context, id uuid.UUID) (*entities.Gift, error) {
	var gift entities.Gift
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gift).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *giftRepository) GetGiftByName(ctx context.Context, name string) (*entities.Gift, error) {
	var gift entities.Gift
	if err := r.db.WithContext(ctx).Where("gift_name = ?", name).First(&gift).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *giftRepository) UpdateGift(ctx context.Context, gift *entities.Gift) error {
	return r.db.WithContext(ctx).Save(gift).Error
}

// SetGiftActive flips is_active only when the row is not already in the
// requested state; zero rows affected lets the service report the conflict.
func (r *giftRepository) SetGiftActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Gift{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

func (r *giftRepository) SetGiftAnimated(ctx context.Context, id uuid.UUID, animated bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Gift{}).
		Where("id = ?", id).
		Update("is_animated", animated)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *giftRepository) DeleteGift(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Gift{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *giftRepository) CountUserGiftsByGiftID(ctx context.Context, giftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.UserGift{}).
		Where("gift_id = ?", giftID).
		Count(&count).Error
	return count, err
}

func (r *giftRepository) GetGiftByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entities.Gift, error) {
	var gift entities.Gift
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&gift).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *giftRepository) CreateUserGift(ctx context.Context, tx *gorm.DB, userGift *entities.UserGift) error {
	return tx.WithContext(ctx).Create(userGift).Error
}

func (r *giftRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
