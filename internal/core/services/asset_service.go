package services

import (
	"context"
	"errors"
	"log"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetService handles fixed asset business logic
type AssetService struct {
	assetRepo    *repositories.AssetRepository
	deprRepo     *repositories.DepreciationRepository
	assetCatRepo *repositories.AssetCategoryRepository
	locationRepo *repositories.AssetLocationRepository
}

// NewAssetService creates a new asset service
func NewAssetService(
	assetRepo *repositories.AssetRepository,
	deprRepo *repositories.DepreciationRepository,
	assetCatRepo *repositories.AssetCategoryRepository,
	locationRepo *repositories.AssetLocationRepository,
) *AssetService {
	return &AssetService{
		assetRepo:    assetRepo,
		deprRepo:     deprRepo,
		assetCatRepo: assetCatRepo,
		locationRepo: locationRepo,
	}
}

// AssetInput represents fixed asset create/update input
type AssetInput struct {
	Code            string    `json:"code" validate:"required,max=30"`
	Name            string    `json:"name" validate:"required,max=150"`
	CategoryID      uint      `json:"category_id" validate:"required"`
	LocationID      uint      `json:"location_id" validate:"required"`
	AcquisitionDate time.Time `json:"acquisition_date" validate:"required"`
	AcquisitionCost int64     `json:"acquisition_cost" validate:"required,gt=0"`
	IsActive        *bool     `json:"is_active"`
}

// CreateAsset registers a fixed asset
func (s *AssetService) CreateAsset(ctx context.Context, input *AssetInput) (*models.FixedAsset, error) {
	if input.AcquisitionCost <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.assetCatRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, input.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	taken, err := s.assetRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	asset := &models.FixedAsset{
		Code:            input.Code,
		Name:            input.Name,
		CategoryID:      input.CategoryID,
		LocationID:      input.LocationID,
		AcquisitionDate: input.AcquisitionDate,
		AcquisitionCost: input.AcquisitionCost,
		IsActive:        true,
	}
	if input.IsActive != nil {
		asset.IsActive = *input.IsActive
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	log.Printf("✅ Fixed asset registered: %s", asset.Code)
	return asset, nil
}

// ListAssets lists fixed assets with pagination
func (s *AssetService) ListAssets(ctx context.Context, filter *repositories.AssetFilter, params *pagination.Params) (*pagination.Window, error) {
	assets, total, err := s.assetRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(assets, params, total), nil
}

// GetAsset gets a fixed asset by ID
func (s *AssetService) GetAsset(ctx context.Context, id uint) (*models.FixedAsset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// UpdateAsset updates a fixed asset
func (s *AssetService) UpdateAsset(ctx context.Context, id uint, input *AssetInput) (*models.FixedAsset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.AcquisitionCost <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Code != asset.Code {
		taken, err := s.assetRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}

	asset.Code = input.Code
	asset.Name = input.Name
	asset.CategoryID = input.CategoryID
	asset.LocationID = input.LocationID
	asset.AcquisitionDate = input.AcquisitionDate
	asset.AcquisitionCost = input.AcquisitionCost
	if input.IsActive != nil {
		asset.IsActive = *input.IsActive
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AttachImage stores the uploaded image path on an asset
func (s *AssetService) AttachImage(ctx context.Context, id uint, imagePath, imageName string) (*models.FixedAsset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	asset.ImagePath = imagePath
	asset.ImageName = imageName

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// DeleteAsset soft deletes a fixed asset
func (s *AssetService) DeleteAsset(ctx context.Context, id uint) error {
	if err := s.assetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// GetDepreciationSchedule lists the recorded depreciation lines for an asset
func (s *AssetService) GetDepreciationSchedule(ctx context.Context, id uint) ([]*models.AssetDepreciation, error) {
	if _, err := s.GetAsset(ctx, id); err != nil {
		return nil, err
	}
	return s.deprRepo.ListByAsset(ctx, id)
}

// ============================================================
// Depreciation math
// ============================================================

// MonthlyDepreciation computes the straight line monthly expense for an
// asset: (cost - residual) / useful life months, rounded to whole rupiah.
func MonthlyDepreciation(cost int64, residualPercent float64, usefulLifeMonths int) int64 {
	if cost <= 0 || usefulLifeMonths <= 0 {
		return 0
	}
	costDec := decimal.NewFromInt(cost)
	residual := costDec.Mul(decimal.NewFromFloat(residualPercent)).Div(decimal.NewFromInt(100))
	base := costDec.Sub(residual)
	return base.Div(decimal.NewFromInt(int64(usefulLifeMonths))).Round(0).IntPart()
}

// ResidualValue computes the floor book value for an asset
func ResidualValue(cost int64, residualPercent float64) int64 {
	return decimal.NewFromInt(cost).
		Mul(decimal.NewFromFloat(residualPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).IntPart()
}

// DepreciationLine computes the next depreciation line for an asset given
// the amount accumulated so far. The expense is clamped so the book value
// never drops below the residual floor, and zero means fully depreciated.
func DepreciationLine(asset *models.FixedAsset, accumulated int64) (expense, newAccumulated, bookValue int64) {
	if asset.Category == nil {
		return 0, accumulated, asset.AcquisitionCost - accumulated
	}

	floor := ResidualValue(asset.AcquisitionCost, asset.Category.ResidualPercent)
	monthly := MonthlyDepreciation(asset.AcquisitionCost, asset.Category.ResidualPercent, asset.Category.UsefulLifeMonths)

	remaining := asset.AcquisitionCost - accumulated - floor
	if remaining <= 0 {
		return 0, accumulated, asset.AcquisitionCost - accumulated
	}

	expense = monthly
	if expense > remaining {
		expense = remaining
	}
	newAccumulated = accumulated + expense
	bookValue = asset.AcquisitionCost - newAccumulated
	return expense, newAccumulated, bookValue
}
