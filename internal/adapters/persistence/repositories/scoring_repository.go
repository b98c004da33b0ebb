package repositories

import (
	"context"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ScoringRepository handles scoring criteria and rule data access
type ScoringRepository struct {
	db *gorm.DB
}

// NewScoringRepository creates a new scoring repository
func NewScoringRepository(db *gorm.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// CreateCriterion creates a new scoring criterion with its rules
func (r *ScoringRepository) CreateCriterion(ctx context.Context, criterion *models.ScoringCriterion) error {
	return r.db.WithContext(ctx).Create(criterion).Error
}

// GetCriterionByID gets a criterion by ID with rules
func (r *ScoringRepository) GetCriterionByID(ctx context.Context, id uint) (*models.ScoringCriterion, error) {
	var criterion models.ScoringCriterion
	err := r.db.WithContext(ctx).
		Preload("Rules").
		First(&criterion, id).Error
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}

// ExistsByCode checks if a criterion code is taken
func (r *ScoringRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ScoringCriterion{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// ListCriteria lists criteria with pagination
func (r *ScoringRepository) ListCriteria(ctx context.Context, filter *CatalogFilter, offset, limit int) ([]*models.ScoringCriterion, int64, error) {
	var criteria []*models.ScoringCriterion
	var total int64

	query := applyCatalogFilter(r.db.WithContext(ctx).Model(&models.ScoringCriterion{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Rules").
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&criteria).Error

	return criteria, total, err
}

// ListActiveCriteria lists all active criteria with rules, no pagination
func (r *ScoringRepository) ListActiveCriteria(ctx context.Context) ([]*models.ScoringCriterion, error) {
	var criteria []*models.ScoringCriterion
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Rules").
		Order("code ASC").
		Find(&criteria).Error
	return criteria, err
}

// UpdateCriterion updates a criterion and replaces its rules in one transaction
func (r *ScoringRepository) UpdateCriterion(ctx context.Context, criterion *models.ScoringCriterion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("criterion_id = ?", criterion.ID).Delete(&models.ScoringRule{}).Error; err != nil {
			return err
		}
		return tx.Save(criterion).Error
	})
}

// DeleteCriterion soft deletes a criterion and its rules
func (r *ScoringRepository) DeleteCriterion(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.ScoringCriterion{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("criterion_id = ?", id).Delete(&models.ScoringRule{}).Error
	})
}
