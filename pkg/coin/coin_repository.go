package coin

import (
	"Livecast-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CoinRepository interface {
		// Coin packages
		CreateCoinPackage(ctx context.Context, pkg *entities.CoinPackage) error
		GetCoinPackages(ctx context.Context, activeOnly bool) ([]*entities.CoinPackage, error)
		GetCoinPackageByID(ctx context.Context, id uuid.UUID, activeOnly bool) (*entities.CoinPackage, error)
		UpdateCoinPackage(ctx context.Context, pkg *entities.CoinPackage) error
		SetPackageActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
		DeleteCoinPackage(ctx context.Context, id uuid.UUID) error
		CountPurchasesByPackageID(ctx context.Context, packageID uuid.UUID) (int64, error)

		// Purchases
		CreateCoinPurchase(ctx context.Context, purchase *entities.CoinPurchase) error
		GetPurchaseByGatewayTxnID(ctx context.Context, tx *gorm.DB, gatewayTxnID string) (*entities.CoinPurchase, error)

		// MarkPurchaseCredited flips credited false -> true in a single
		// conditional update; zero rows affected means another delivery of
		// the same gateway transaction already won.
		MarkPurchaseCredited(ctx context.Context, tx *gorm.DB, gatewayTxnID string) (int64, error)

		MarkPurchaseStatus(ctx context.Context, gatewayTxnID, status string) error
		GetUserPurchases(ctx context.Context, userID uuid.UUID) ([]*entities.CoinPurchase, error)
	}

	coinRepository struct {
		db *gorm.DB
	}
)

func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{
		db: db,
	}
}

func (r *coinRepository) CreateCoinPackage(ctx context.Context, pkg *entities.CoinPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *coinRepository) GetCoinPackages(ctx context.Context, activeOnly bool) ([]*entities.CoinPackage, error) {
	var packages []*entities.CoinPackage
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("coins ASC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *coinRepository) GetCoinPackageByID(ctx context.Context, id uuid.UUID, activeOnly bool) (*entities.CoinPackage, error) {
	var pkg entities.CoinPackage
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *coinRepository) UpdateCoinPackage(ctx context.Context, pkg *entities.CoinPackage) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *coinRepository) SetPackageActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.CoinPackage{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

func (r *coinRepository) DeleteCoinPackage(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.CoinPackage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *coinRepository) CountPurchasesByPackageID(ctx context.Context, packageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.CoinPurchase{}).
		Where("package_id = ?", packageID).
		Count(&count).Error
	return count, err
}

func (r *coinRepository) CreateCoinPurchase(ctx context.Context, purchase *entities.CoinPurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *coinRepository) GetPurchaseByGatewayTxnID(ctx context.Context, tx *gorm.DB, gatewayTxnID string) (*entities.CoinPurchase, error) {
	var purchase entities.CoinPurchase
	if err := tx.WithContext(ctx).Where("gateway_txn_id = ?", gatewayTxnID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *coinRepository) MarkPurchaseCredited(ctx context.Context, tx *gorm.DB, gatewayTxnID string) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&entities.CoinPurchase{}).
		Where("gateway_txn_id = ? AND credited = ?", gatewayTxnID, false).
		Updates(map[string]any{"credited": true, "status": "SETTLED"})
	return result.RowsAffected, result.Error
}

func (r *coinRepository) MarkPurchaseStatus(ctx context.Context, gatewayTxnID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.CoinPurchase{}).
		Where("gateway_txn_id = ?", gatewayTxnID).
		Update("status", status).Error
}

func (r *coinRepository) GetUserPurchases(ctx context.Context, userID uuid.UUID) ([]*entities.CoinPurchase, error) {
	var purchases []*entities.CoinPurchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
