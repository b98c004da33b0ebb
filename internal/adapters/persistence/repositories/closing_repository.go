package repositories

import (
	"context"
	"fmt"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ClosingRunRepository handles closing run data access
type ClosingRunRepository struct {
	db *gorm.DB
}

// NewClosingRunRepository creates a new closing run repository
func NewClosingRunRepository(db *gorm.DB) *ClosingRunRepository {
	return &ClosingRunRepository{db: db}
}

// Create creates a new closing run record
func (r *ClosingRunRepository) Create(ctx context.Context, run *models.ClosingRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// GetByID gets a closing run by ID
func (r *ClosingRunRepository) GetByID(ctx context.Context, id uint) (*models.ClosingRun, error) {
	var run models.ClosingRun
	err := r.db.WithContext(ctx).First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetLatestForPeriod gets the most recent run for a period and type
func (r *ClosingRunRepository) GetLatestForPeriod(ctx context.Context, period, closingType string) (*models.ClosingRun, error) {
	var run models.ClosingRun
	err := r.db.WithContext(ctx).
		Where("period = ? AND closing_type = ?", period, closingType).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetLatest gets the most recent run of any type. Used by the dashboard.
func (r *ClosingRunRepository) GetLatest(ctx context.Context) (*models.ClosingRun, error) {
	var run models.ClosingRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// CountCompletedMonths counts completed month end runs in a fiscal year
func (r *ClosingRunRepository) CountCompletedMonths(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClosingRun{}).
		Where("closing_type = ? AND status = ? AND period LIKE ?",
			models.ClosingTypeEOM, models.RunStatusCompleted, fmt.Sprintf("%04d-%%", year)).
		Distinct("period").
		Count(&count).Error
	return count, err
}

// List lists closing runs with pagination, newest first
func (r *ClosingRunRepository) List(ctx context.Context, closingType string, offset, limit int) ([]*models.ClosingRun, int64, error) {
	var runs []*models.ClosingRun
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ClosingRun{})
	if closingType != "" {
		query = query.Where("closing_type = ?", closingType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&runs).Error

	return runs, total, err
}

// Update updates a closing run record
func (r *ClosingRunRepository) Update(ctx context.Context, run *models.ClosingRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// ============================================================
// Auto Debit Runs
// ============================================================

// AutoDebitRepository handles auto debit run data access
type AutoDebitRepository struct {
	db *gorm.DB
}

// NewAutoDebitRepository creates a new auto debit repository
func NewAutoDebitRepository(db *gorm.DB) *AutoDebitRepository {
	return &AutoDebitRepository{db: db}
}

// Create creates a run with its items
func (r *AutoDebitRepository) Create(ctx context.Context, run *models.AutoDebitRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Save persists run counters together with any new item rows
func (r *AutoDebitRepository) Save(ctx context.Context, run *models.AutoDebitRun) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(run).Error
}

// GetByID gets an auto debit run by ID with items
func (r *AutoDebitRepository) GetByID(ctx context.Context, id uint) (*models.AutoDebitRun, error) {
	var run models.AutoDebitRun
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List lists auto debit runs with pagination, newest first
func (r *AutoDebitRepository) List(ctx context.Context, offset, limit int) ([]*models.AutoDebitRun, int64, error) {
	var runs []*models.AutoDebitRun
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AutoDebitRun{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("run_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&runs).Error

	return runs, total, err
}

// ExistsForDate checks whether a run already happened on a date
func (r *AutoDebitRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	day := date.Format("2006-01-02")
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AutoDebitRun{}).
		Where("DATE(run_date) = ?", day).
		Count(&count).Error
	return count > 0, err
}

// ============================================================
// Import Runs
// ============================================================

// ImportRunRepository handles import run data access
type ImportRunRepository struct {
	db *gorm.DB
}

// NewImportRunRepository creates a new import run repository
func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Create creates an import run record
func (r *ImportRunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// GetByID gets an import run by ID
func (r *ImportRunRepository) GetByID(ctx context.Context, id uint) (*models.ImportRun, error) {
	var run models.ImportRun
	err := r.db.WithContext(ctx).First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List lists import runs with pagination, newest first
func (r *ImportRunRepository) List(ctx context.Context, resource string, offset, limit int) ([]*models.ImportRun, int64, error) {
	var runs []*models.ImportRun
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ImportRun{})
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&runs).Error

	return runs, total, err
}
