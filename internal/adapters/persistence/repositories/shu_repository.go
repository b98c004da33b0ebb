package repositories

import (
	"context"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SHURepository handles SHU allocation data access
type SHURepository struct {
	db *gorm.DB
}

// NewSHURepository creates a new SHU repository
func NewSHURepository(db *gorm.DB) *SHURepository {
	return &SHURepository{db: db}
}

// Create creates an allocation with its lines
func (r *SHURepository) Create(ctx context.Context, allocation *models.SHUAllocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

// GetByID gets an allocation by ID with lines
func (r *SHURepository) GetByID(ctx context.Context, id uint) (*models.SHUAllocation, error) {
	var allocation models.SHUAllocation
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&allocation, id).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// GetByFiscalYear gets the allocation for a fiscal year
func (r *SHURepository) GetByFiscalYear(ctx context.Context, year int) (*models.SHUAllocation, error) {
	var allocation models.SHUAllocation
	err := r.db.WithContext(ctx).
		Where("fiscal_year = ?", year).
		Preload("Lines").
		First(&allocation).Error
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// List lists allocations with pagination, newest fiscal year first
func (r *SHURepository) List(ctx context.Context, offset, limit int) ([]*models.SHUAllocation, int64, error) {
	var allocations []*models.SHUAllocation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SHUAllocation{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Lines").
		Order("fiscal_year DESC").
		Offset(offset).
		Limit(limit).
		Find(&allocations).Error

	return allocations, total, err
}

// Update updates an allocation and replaces its lines in one transaction
func (r *SHURepository) Update(ctx context.Context, allocation *models.SHUAllocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allocation_id = ?", allocation.ID).Delete(&models.SHUAllocationLine{}).Error; err != nil {
			return err
		}
		return tx.Save(allocation).Error
	})
}

// Delete removes an allocation and its lines
func (r *SHURepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.SHUAllocation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("allocation_id = ?", id).Delete(&models.SHUAllocationLine{}).Error
	})
}

// CreateDistributions stores member distribution rows in batch
func (r *SHURepository) CreateDistributions(ctx context.Context, distributions []*models.SHUDistribution) error {
	if len(distributions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(distributions, 200).Error
}

// ListDistributions lists member distributions for an allocation
func (r *SHURepository) ListDistributions(ctx context.Context, allocationID uint, offset, limit int) ([]*models.SHUDistribution, int64, error) {
	var distributions []*models.SHUDistribution
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.SHUDistribution{}).
		Where("allocation_id = ?", allocationID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member").
		Order("amount DESC").
		Offset(offset).
		Limit(limit).
		Find(&distributions).Error

	return distributions, total, err
}
