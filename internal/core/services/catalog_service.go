package services

import (
	"context"
	"errors"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// CatalogService handles master data business logic
type CatalogService struct {
	productRepo  *repositories.SavingsProductRepository
	loanCatRepo  *repositories.LoanCategoryRepository
	tariffRepo   *repositories.TariffRepository
	assetCatRepo *repositories.AssetCategoryRepository
	locationRepo *repositories.AssetLocationRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo *repositories.SavingsProductRepository,
	loanCatRepo *repositories.LoanCategoryRepository,
	tariffRepo *repositories.TariffRepository,
	assetCatRepo *repositories.AssetCategoryRepository,
	locationRepo *repositories.AssetLocationRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		loanCatRepo:  loanCatRepo,
		tariffRepo:   tariffRepo,
		assetCatRepo: assetCatRepo,
		locationRepo: locationRepo,
	}
}

// ============================================================
// Savings Products
// ============================================================

// SavingsProductInput represents savings product input
type SavingsProductInput struct {
	Code         string  `json:"code" validate:"required,max=20"`
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,lte=100"`
	MinBalance   int64   `json:"min_balance" validate:"gte=0"`
	AdminFee     int64   `json:"admin_fee" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// CreateSavingsProduct creates a savings product
func (s *CatalogService) CreateSavingsProduct(ctx context.Context, input *SavingsProductInput) (*models.SavingsProduct, error) {
	if input.InterestRate < 0 || input.InterestRate > 100 {
		return nil, domain.ErrInvalidInput
	}
	taken, err := s.productRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	product := &models.SavingsProduct{
		Code:         input.Code,
		Name:         input.Name,
		Description:  input.Description,
		InterestRate: input.InterestRate,
		MinBalance:   input.MinBalance,
		AdminFee:     input.AdminFee,
		IsActive:     true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListSavingsProducts lists savings products with pagination
func (s *CatalogService) ListSavingsProducts(ctx context.Context, filter *repositories.CatalogFilter, params *pagination.Params) (*pagination.Window, error) {
	products, total, err := s.productRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(products, params, total), nil
}

// GetSavingsProduct gets a savings product by ID
func (s *CatalogService) GetSavingsProduct(ctx context.Context, id uint) (*models.SavingsProduct, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// UpdateSavingsProduct updates a savings product
func (s *CatalogService) UpdateSavingsProduct(ctx context.Context, id uint, input *SavingsProductInput) (*models.SavingsProduct, error) {
	product, err := s.GetSavingsProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.InterestRate < 0 || input.InterestRate > 100 {
		return nil, domain.ErrInvalidInput
	}
	if input.Code != product.Code {
		taken, err := s.productRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	product.Code = input.Code
	product.Name = input.Name
	product.Description = input.Description
	product.InterestRate = input.InterestRate
	product.MinBalance = input.MinBalance
	product.AdminFee = input.AdminFee
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteSavingsProduct soft deletes a savings product
func (s *CatalogService) DeleteSavingsProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Loan Categories
// ============================================================

// LoanCategoryInput represents loan category input
type LoanCategoryInput struct {
	Code          string  `json:"code" validate:"required,max=20"`
	Name          string  `json:"name" validate:"required,max=100"`
	Description   string  `json:"description"`
	InterestRate  float64 `json:"interest_rate" validate:"gte=0,lte=100"`
	MaxTermMonths int     `json:"max_term_months" validate:"gt=0"`
	IsActive      *bool   `json:"is_active"`
}

// CreateLoanCategory creates a loan category
func (s *CatalogService) CreateLoanCategory(ctx context.Context, input *LoanCategoryInput) (*models.LoanCategory, error) {
	if input.InterestRate < 0 || input.InterestRate > 100 || input.MaxTermMonths <= 0 {
		return nil, domain.ErrInvalidInput
	}
	taken, err := s.loanCatRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	category := &models.LoanCategory{
		Code:          input.Code,
		Name:          input.Name,
		Description:   input.Description,
		InterestRate:  input.InterestRate,
		MaxTermMonths: input.MaxTermMonths,
		IsActive:      true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.loanCatRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListLoanCategories lists loan categories with pagination
func (s *CatalogService) ListLoanCategories(ctx context.Context, filter *repositories.CatalogFilter, params *pagination.Params) (*pagination.Window, error) {
	categories, total, err := s.loanCatRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(categories, params, total), nil
}

// GetLoanCategory gets a loan category by ID
func (s *CatalogService) GetLoanCategory(ctx context.Context, id uint) (*models.LoanCategory, error) {
	category, err := s.loanCatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// UpdateLoanCategory updates a loan category
func (s *CatalogService) UpdateLoanCategory(ctx context.Context, id uint, input *LoanCategoryInput) (*models.LoanCategory, error) {
	category, err := s.GetLoanCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.InterestRate < 0 || input.InterestRate > 100 || input.MaxTermMonths <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Code != category.Code {
		taken, err := s.loanCatRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	category.Code = input.Code
	category.Name = input.Name
	category.Description = input.Description
	category.InterestRate = input.InterestRate
	category.MaxTermMonths = input.MaxTermMonths
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.loanCatRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteLoanCategory soft deletes a loan category
func (s *CatalogService) DeleteLoanCategory(ctx context.Context, id uint) error {
	if err := s.loanCatRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Interest Rate Tariffs
// ============================================================

// TariffInput represents tariff input
type TariffInput struct {
	Code          string     `json:"code" validate:"required,max=20"`
	Name          string     `json:"name" validate:"required,max=100"`
	TermMonths    int        `json:"term_months" validate:"gt=0"`
	Rate          float64    `json:"rate" validate:"gte=0,lte=100"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
	IsActive      *bool      `json:"is_active"`
}

// CreateTariff creates a deposit tariff
func (s *CatalogService) CreateTariff(ctx context.Context, input *TariffInput) (*models.InterestRateTariff, error) {
	if input.TermMonths <= 0 {
		return nil, domain.ErrInvalidTerm
	}
	if input.Rate < 0 || input.Rate > 100 {
		return nil, domain.ErrInvalidInput
	}
	if input.EffectiveFrom != nil && input.EffectiveTo != nil && input.EffectiveTo.Before(*input.EffectiveFrom) {
		return nil, domain.ErrInvalidInput
	}
	taken, err := s.tariffRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	tariff := &models.InterestRateTariff{
		Code:          input.Code,
		Name:          input.Name,
		TermMonths:    input.TermMonths,
		Rate:          input.Rate,
		EffectiveFrom: input.EffectiveFrom,
		EffectiveTo:   input.EffectiveTo,
		IsActive:      true,
	}
	if input.IsActive != nil {
		tariff.IsActive = *input.IsActive
	}

	if err := s.tariffRepo.Create(ctx, tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}

// ListTariffs lists tariffs with pagination
func (s *CatalogService) ListTariffs(ctx context.Context, filter *repositories.CatalogFilter, termMonths *int, params *pagination.Params) (*pagination.Window, error) {
	tariffs, total, err := s.tariffRepo.List(ctx, filter, termMonths, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(tariffs, params, total), nil
}

// GetTariff gets a tariff by ID
func (s *CatalogService) GetTariff(ctx context.Context, id uint) (*models.InterestRateTariff, error) {
	tariff, err := s.tariffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tariff, nil
}

// UpdateTariff updates a tariff
func (s *CatalogService) UpdateTariff(ctx context.Context, id uint, input *TariffInput) (*models.InterestRateTariff, error) {
	tariff, err := s.GetTariff(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.TermMonths <= 0 {
		return nil, domain.ErrInvalidTerm
	}
	if input.Rate < 0 || input.Rate > 100 {
		return nil, domain.ErrInvalidInput
	}
	if input.EffectiveFrom != nil && input.EffectiveTo != nil && input.EffectiveTo.Before(*input.EffectiveFrom) {
		return nil, domain.ErrInvalidInput
	}
	if input.Code != tariff.Code {
		taken, err := s.tariffRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	tariff.Code = input.Code
	tariff.Name = input.Name
	tariff.TermMonths = input.TermMonths
	tariff.Rate = input.Rate
	tariff.EffectiveFrom = input.EffectiveFrom
	tariff.EffectiveTo = input.EffectiveTo
	if input.IsActive != nil {
		tariff.IsActive = *input.IsActive
	}

	if err := s.tariffRepo.Update(ctx, tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}

// DeleteTariff soft deletes a tariff
func (s *CatalogService) DeleteTariff(ctx context.Context, id uint) error {
	if err := s.tariffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Asset Categories
// ============================================================

// AssetCategoryInput represents asset category input
type AssetCategoryInput struct {
	Code             string  `json:"code" validate:"required,max=20"`
	Name             string  `json:"name" validate:"required,max=100"`
	Description      string  `json:"description"`
	UsefulLifeMonths int     `json:"useful_life_months" validate:"gt=0"`
	ResidualPercent  float64 `json:"residual_percent" validate:"gte=0,lte=100"`
	IsActive         *bool   `json:"is_active"`
}

// CreateAssetCategory creates an asset category
func (s *CatalogService) CreateAssetCategory(ctx context.Context, input *AssetCategoryInput) (*models.AssetCategory, error) {
	if input.UsefulLifeMonths <= 0 || input.ResidualPercent < 0 || input.ResidualPercent > 100 {
		return nil, domain.ErrInvalidInput
	}
	taken, err := s.assetCatRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	category := &models.AssetCategory{
		Code:             input.Code,
		Name:             input.Name,
		Description:      input.Description,
		UsefulLifeMonths: input.UsefulLifeMonths,
		ResidualPercent:  input.ResidualPercent,
		IsActive:         true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.assetCatRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListAssetCategories lists asset categories with pagination
func (s *CatalogService) ListAssetCategories(ctx context.Context, filter *repositories.CatalogFilter, params *pagination.Params) (*pagination.Window, error) {
	categories, total, err := s.assetCatRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(categories, params, total), nil
}

// GetAssetCategory gets an asset category by ID
func (s *CatalogService) GetAssetCategory(ctx context.Context, id uint) (*models.AssetCategory, error) {
	category, err := s.assetCatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// UpdateAssetCategory updates an asset category
func (s *CatalogService) UpdateAssetCategory(ctx context.Context, id uint, input *AssetCategoryInput) (*models.AssetCategory, error) {
	category, err := s.GetAssetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.UsefulLifeMonths <= 0 || input.ResidualPercent < 0 || input.ResidualPercent > 100 {
		return nil, domain.ErrInvalidInput
	}
	if input.Code != category.Code {
		taken, err := s.assetCatRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	category.Code = input.Code
	category.Name = input.Name
	category.Description = input.Description
	category.UsefulLifeMonths = input.UsefulLifeMonths
	category.ResidualPercent = input.ResidualPercent
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.assetCatRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteAssetCategory soft deletes an asset category
func (s *CatalogService) DeleteAssetCategory(ctx context.Context, id uint) error {
	if err := s.assetCatRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Asset Locations
// ============================================================

// AssetLocationInput represents asset location input
type AssetLocationInput struct {
	Code        string `json:"code" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateAssetLocation creates an asset location
func (s *CatalogService) CreateAssetLocation(ctx context.Context, input *AssetLocationInput) (*models.AssetLocation, error) {
	taken, err := s.locationRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	location := &models.AssetLocation{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// ListAssetLocations lists asset locations with pagination
func (s *CatalogService) ListAssetLocations(ctx context.Context, filter *repositories.CatalogFilter, params *pagination.Params) (*pagination.Window, error) {
	locations, total, err := s.locationRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(locations, params, total), nil
}

// GetAssetLocation gets an asset location by ID
func (s *CatalogService) GetAssetLocation(ctx context.Context, id uint) (*models.AssetLocation, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return location, nil
}

// UpdateAssetLocation updates an asset location
func (s *CatalogService) UpdateAssetLocation(ctx context.Context, id uint, input *AssetLocationInput) (*models.AssetLocation, error) {
	location, err := s.GetAssetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != location.Code {
		taken, err := s.locationRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	location.Code = input.Code
	location.Name = input.Name
	location.Description = input.Description
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteAssetLocation soft deletes an asset location
func (s *CatalogService) DeleteAssetLocation(ctx context.Context, id uint) error {
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
