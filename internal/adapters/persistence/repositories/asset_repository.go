package repositories

import (
	"context"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AssetFilter holds optional fixed asset list filters
type AssetFilter struct {
	Search     string
	CategoryID *uint
	LocationID *uint
	IsActive   *bool
}

// AssetRepository handles fixed asset data access
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new fixed asset
func (r *AssetRepository) Create(ctx context.Context, asset *models.FixedAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID gets a fixed asset by ID with category and location
func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*models.FixedAsset, error) {
	var asset models.FixedAsset
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ExistsByCode checks if an asset code is taken
func (r *AssetRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FixedAsset{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists fixed assets with pagination and optional filters
func (r *AssetRepository) List(ctx context.Context, filter *AssetFilter, offset, limit int) ([]*models.FixedAsset, int64, error) {
	var assets []*models.FixedAsset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FixedAsset{})
	if filter != nil {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where("code LIKE ? OR name LIKE ?", like, like)
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.LocationID != nil {
			query = query.Where("location_id = ?", *filter.LocationID)
		}
		if filter.IsActive != nil {
			query = query.Where("is_active = ?", *filter.IsActive)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Preload("Location").
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&assets).Error

	return assets, total, err
}

// ListActive lists active assets with category, no pagination.
// Used by the depreciation run.
func (r *AssetRepository) ListActive(ctx context.Context) ([]*models.FixedAsset, error) {
	var assets []*models.FixedAsset
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Category").
		Order("code ASC").
		Find(&assets).Error
	return assets, err
}

// Update updates a fixed asset
func (r *AssetRepository) Update(ctx context.Context, asset *models.FixedAsset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete soft deletes a fixed asset
func (r *AssetRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.FixedAsset{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumActiveCost sums the acquisition cost of active assets
func (r *AssetRepository) SumActiveCost(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.FixedAsset{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(acquisition_cost), 0)").
		Scan(&sum).Error
	return sum, err
}

// ============================================================
// Depreciation
// ============================================================

// DepreciationRepository handles asset depreciation data access
type DepreciationRepository struct {
	db *gorm.DB
}

// NewDepreciationRepository creates a new depreciation repository
func NewDepreciationRepository(db *gorm.DB) *DepreciationRepository {
	return &DepreciationRepository{db: db}
}

// Create records a depreciation line
func (r *DepreciationRepository) Create(ctx context.Context, depreciation *models.AssetDepreciation) error {
	return r.db.WithContext(ctx).Create(depreciation).Error
}

// ExistsForPeriod checks whether an asset is already depreciated for a period
func (r *DepreciationRepository) ExistsForPeriod(ctx context.Context, assetID uint, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AssetDepreciation{}).
		Where("asset_id = ? AND period = ?", assetID, period).
		Count(&count).Error
	return count > 0, err
}

// GetLatestByAsset gets an asset's most recent depreciation line
func (r *DepreciationRepository) GetLatestByAsset(ctx context.Context, assetID uint) (*models.AssetDepreciation, error) {
	var depreciation models.AssetDepreciation
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("period DESC").
		First(&depreciation).Error
	if err != nil {
		return nil, err
	}
	return &depreciation, nil
}

// ListByAsset lists all depreciation lines for an asset in period order
func (r *DepreciationRepository) ListByAsset(ctx context.Context, assetID uint) ([]*models.AssetDepreciation, error) {
	var lines []*models.AssetDepreciation
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("period ASC").
		Find(&lines).Error
	return lines, err
}

// ListByPeriod lists depreciation lines for a period with pagination
func (r *DepreciationRepository) ListByPeriod(ctx context.Context, period string, offset, limit int) ([]*models.AssetDepreciation, int64, error) {
	var lines []*models.AssetDepreciation
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.AssetDepreciation{}).
		Where("period = ?", period)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Asset").
		Order("asset_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&lines).Error

	return lines, total, err
}

// SumByPeriod sums depreciation expense for a period
func (r *DepreciationRepository) SumByPeriod(ctx context.Context, period string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.AssetDepreciation{}).
		Where("period = ?", period).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
