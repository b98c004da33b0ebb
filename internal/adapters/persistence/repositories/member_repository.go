package repositories

import (
	"context"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberFilter holds optional member list filters.
// Nil/zero fields are omitted from the query entirely.
type MemberFilter struct {
	Search     string
	Status     *int
	MemberType string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// MemberRepository handles member data access
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID with documents
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByCode checks if a member code is taken
func (r *MemberRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists members with pagination and optional filters
func (r *MemberRepository) List(ctx context.Context, filter *MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := applyMemberFilter(r.db.WithContext(ctx).Model(&models.Member{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error

	return members, total, err
}

// ListAll lists all members matching a filter without pagination (export)
func (r *MemberRepository) ListAll(ctx context.Context, filter *MemberFilter) ([]*models.Member, error) {
	var members []*models.Member
	err := applyMemberFilter(r.db.WithContext(ctx).Model(&models.Member{}), filter).
		Order("code ASC").
		Find(&members).Error
	return members, err
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete soft deletes a member. Deleting an unknown or already-deleted
// id reports not found rather than silent success.
func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts members per workflow status
func (r *MemberRepository) CountByStatus(ctx context.Context, status int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func applyMemberFilter(query *gorm.DB, filter *MemberFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", like, like)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MemberType != "" {
		query = query.Where("member_type = ?", filter.MemberType)
	}
	if filter.DateFrom != nil {
		query = query.Where("join_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("join_date <= ?", *filter.DateTo)
	}
	return query
}

// ============================================================
// Member Documents
// ============================================================

// MemberDocumentRepository handles member document data access
type MemberDocumentRepository struct {
	db *gorm.DB
}

// NewMemberDocumentRepository creates a new member document repository
func NewMemberDocumentRepository(db *gorm.DB) *MemberDocumentRepository {
	return &MemberDocumentRepository{db: db}
}

// Create stores a new document record
func (r *MemberDocumentRepository) Create(ctx context.Context, doc *models.MemberDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByID gets a document by ID
func (r *MemberDocumentRepository) GetByID(ctx context.Context, id uint) (*models.MemberDocument, error) {
	var doc models.MemberDocument
	err := r.db.WithContext(ctx).First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByMemberID lists documents for a member
func (r *MemberDocumentRepository) ListByMemberID(ctx context.Context, memberID uint) ([]*models.MemberDocument, error) {
	var docs []*models.MemberDocument
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// Update updates a document record
func (r *MemberDocumentRepository) Update(ctx context.Context, doc *models.MemberDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete hard deletes a document record
func (r *MemberDocumentRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.MemberDocument{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// Death Claims
// ============================================================

// DeathClaimFilter holds optional death claim list filters
type DeathClaimFilter struct {
	Search   string
	Status   *int
	MemberID *uint
}

// DeathClaimRepository handles death claim data access
type DeathClaimRepository struct {
	db *gorm.DB
}

// NewDeathClaimRepository creates a new death claim repository
func NewDeathClaimRepository(db *gorm.DB) *DeathClaimRepository {
	return &DeathClaimRepository{db: db}
}

// Create creates a new death claim
func (r *DeathClaimRepository) Create(ctx context.Context, claim *models.DeathClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetByID gets a death claim by ID with member
func (r *DeathClaimRepository) GetByID(ctx context.Context, id uint) (*models.DeathClaim, error) {
	var claim models.DeathClaim
	err := r.db.WithContext(ctx).
		Preload("Member").
		First(&claim, id).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// List lists death claims with pagination and optional filters
func (r *DeathClaimRepository) List(ctx context.Context, filter *DeathClaimFilter, offset, limit int) ([]*models.DeathClaim, int64, error) {
	var claims []*models.DeathClaim
	var total int64

	query := r.db.WithContext(ctx).Model(&models.DeathClaim{})
	if filter != nil {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where("claim_no LIKE ? OR beneficiary LIKE ?", like, like)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.MemberID != nil {
			query = query.Where("member_id = ?", *filter.MemberID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&claims).Error

	return claims, total, err
}

// CountByStatus counts death claims per workflow status
func (r *DeathClaimRepository) CountByStatus(ctx context.Context, status int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DeathClaim{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Update updates a death claim
func (r *DeathClaimRepository) Update(ctx context.Context, claim *models.DeathClaim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// Delete soft deletes a death claim
func (r *DeathClaimRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.DeathClaim{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
