package repositories

import (
	"context"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// CatalogFilter holds the filters shared by the master data lists
type CatalogFilter struct {
	Search   string
	IsActive *bool
}

func applyCatalogFilter(query *gorm.DB, filter *CatalogFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ============================================================
// Savings Products
// ============================================================

// SavingsProductRepository handles savings product data access
type SavingsProductRepository struct {
	db *gorm.DB
}

// NewSavingsProductRepository creates a new savings product repository
func NewSavingsProductRepository(db *gorm.DB) *SavingsProductRepository {
	return &SavingsProductRepository{db: db}
}

// Create creates a new savings product
func (r *SavingsProductRepository) Create(ctx context.Context, product *models.SavingsProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a savings product by ID
func (r *SavingsProductRepository) GetByID(ctx context.Context, id uint) (*models.SavingsProduct, error) {
	var product models.SavingsProduct
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ExistsByCode checks if a product code is taken
func (r *SavingsProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavingsProduct{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists savings products with pagination
func (r *SavingsProductRepository) List(ctx context.Context, filter *CatalogFilter, offset, limit int) ([]*models.SavingsProduct, int64, error) {
	var products []*models.SavingsProduct
	var total int64

	query := applyCatalogFilter(r.db.WithContext(ctx).Model(&models.SavingsProduct{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error

	return products, total, err
}

// Update updates a savings product
func (r *SavingsProductRepository) Update(ctx context.Context, product *models.SavingsProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete soft deletes a savings product
func (r *SavingsProductRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.SavingsProduct{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// Loan Categories
// ============================================================

// LoanCategoryRepository handles loan category data access
type LoanCategoryRepository struct {
	db *gorm.DB
}

// NewLoanCategoryRepository creates a new loan category repository
func NewLoanCategoryRepository(db *gorm.DB) *LoanCategoryRepository {
	return &LoanCategoryRepository{db: db}
}

// Create creates a new loan category
func (r *LoanCategoryRepository) Create(ctx context.Context, category *models.LoanCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID gets a loan category by ID
func (r *LoanCategoryRepository) GetByID(ctx context.Context, id uint) (*models.LoanCategory, error) {
	var category models.LoanCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByCode checks if a category code is taken
func (r *LoanCategoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanCategory{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists loan categories with pagination
func (r *LoanCategoryRepository) List(ctx context.Context, filter *CatalogFilter, offset, limit int) ([]*models.LoanCategory, int64, error) {
	var categories []*models.LoanCategory
	var total int64

	query := applyCatalogFilter(r.db.WithContext(ctx).Model(&models.LoanCategory{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&categories).Error

	return categories, total, err
}

// Update updates a loan category
func (r *LoanCategoryRepository) Update(ctx context.Context, category *models.LoanCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete soft deletes a loan category
func (r *LoanCategoryRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.LoanCategory{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// Interest Rate Tariffs
// ============================================================

// TariffRepository handles time deposit tariff data access
type TariffRepository struct {
	db *gorm.DB
}

// NewTariffRepository creates a new tariff repository
func NewTariffRepository(db *gorm.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

// Create creates a new tariff
func (r *TariffRepository) Create(ctx context.Context, tariff *models.InterestRateTariff) error {
	return r.db.WithContext(ctx).Create(tariff).Error
}

// GetByID gets a tariff by ID
func (r *TariffRepository) GetByID(ctx context.Context, id uint) (*models.InterestRateTariff, error) {
	var tariff models.InterestRateTariff
	err := r.db.WithContext(ctx).First(&tariff, id).Error
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

// ExistsByCode checks if a tariff code is taken
func (r *TariffRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InterestRateTariff{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// GetRateForTerm finds the active tariff covering a term on a given date.
// The most recently effective tariff wins when windows overlap.
func (r *TariffRepository) GetRateForTerm(ctx context.Context, termMonths int, at time.Time) (*models.InterestRateTariff, error) {
	var tariff models.InterestRateTariff
	err := r.db.WithContext(ctx).
		Where("term_months = ? AND is_active = ?", termMonths, true).
		Where("effective_from IS NULL OR effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to >= ?", at).
		Order("effective_from DESC").
		First(&tariff).Error
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

// List lists tariffs with pagination
func (r *TariffRepository) List(ctx context.Context, filter *CatalogFilter, termMonths *int, offset, limit int) ([]*models.InterestRateTariff, int64, error) {
	var tariffs []*models.InterestRateTariff
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InterestRateTariff{})
	if filter != nil {
		if filter.Search != "" {
			query = query.Where("name LIKE ?", "%"+filter.Search+"%")
		}
		if filter.IsActive != nil {
			query = query.Where("is_active = ?", *filter.IsActive)
		}
	}
	if termMonths != nil {
		query = query.Where("term_months = ?", *termMonths)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("term_months ASC, effective_from DESC").
		Offset(offset).
		Limit(limit).
		Find(&tariffs).Error

	return tariffs, total, err
}

// Update updates a tariff
func (r *TariffRepository) Update(ctx context.Context, tariff *models.InterestRateTariff) error {
	return r.db.WithContext(ctx).Save(tariff).Error
}

// Delete soft deletes a tariff
func (r *TariffRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.InterestRateTariff{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// Asset Categories
// ============================================================

// AssetCategoryRepository handles asset category data access
type AssetCategoryRepository struct {
	db *gorm.DB
}

// NewAssetCategoryRepository creates a new asset category repository
func NewAssetCategoryRepository(db *gorm.DB) *AssetCategoryRepository {
	return &AssetCategoryRepository{db: db}
}

// Create creates a new asset category
func (r *AssetCategoryRepository) Create(ctx context.Context, category *models.AssetCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID gets an asset category by ID
func (r *AssetCategoryRepository) GetByID(ctx context.Context, id uint) (*models.AssetCategory, error) {
	var category models.AssetCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByCode checks if a category code is taken
func (r *AssetCategoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AssetCategory{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists asset categories with pagination
func (r *AssetCategoryRepository) List(ctx context.Context, filter *CatalogFilter, offset, limit int) ([]*models.AssetCategory, int64, error) {
	var categories []*models.AssetCategory
	var total int64

	query := applyCatalogFilter(r.db.WithContext(ctx).Model(&models.AssetCategory{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&categories).Error

	return categories, total, err
}

// Update updates an asset category
func (r *AssetCategoryRepository) Update(ctx context.Context, category *models.AssetCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete soft deletes an asset category
func (r *AssetCategoryRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.AssetCategory{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// Asset Locations
// ============================================================

// AssetLocationRepository handles asset location data access
type AssetLocationRepository struct {
	db *gorm.DB
}

// NewAssetLocationRepository creates a new asset location repository
func NewAssetLocationRepository(db *gorm.DB) *AssetLocationRepository {
	return &AssetLocationRepository{db: db}
}

// Create creates a new asset location
func (r *AssetLocationRepository) Create(ctx context.Context, location *models.AssetLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GetByID gets an asset location by ID
func (r *AssetLocationRepository) GetByID(ctx context.Context, id uint) (*models.AssetLocation, error) {
	var location models.AssetLocation
	err := r.db.WithContext(ctx).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// ExistsByCode checks if a location code is taken
func (r *AssetLocationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AssetLocation{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists asset locations with pagination
func (r *AssetLocationRepository) List(ctx context.Context, filter *CatalogFilter, offset, limit int) ([]*models.AssetLocation, int64, error) {
	var locations []*models.AssetLocation
	var total int64

	query := applyCatalogFilter(r.db.WithContext(ctx).Model(&models.AssetLocation{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&locations).Error

	return locations, total, err
}

// Update updates an asset location
func (r *AssetLocationRepository) Update(ctx context.Context, location *models.AssetLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete soft deletes an asset location
func (r *AssetLocationRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.AssetLocation{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
