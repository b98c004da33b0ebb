package repositories

import (
	"context"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AuditRepository handles audit trail data access
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit entry
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByEntity lists audit entries for one record, newest first
func (r *AuditRepository) ListByEntity(ctx context.Context, entity string, entityID uint) ([]*models.AuditEntry, error) {
	var entries []*models.AuditEntry
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// List lists recent audit entries with pagination
func (r *AuditRepository) List(ctx context.Context, entity string, offset, limit int) ([]*models.AuditEntry, int64, error) {
	var entries []*models.AuditEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AuditEntry{})
	if entity != "" {
		query = query.Where("entity = ?", entity)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error

	return entries, total, err
}
