package repositories

import (
	"context"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Savings Accounts
// ============================================================

// SavingsAccountRepository handles savings account data access
type SavingsAccountRepository struct {
	db *gorm.DB
}

// NewSavingsAccountRepository creates a new savings account repository
func NewSavingsAccountRepository(db *gorm.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: db}
}

// Create creates a new savings account
func (r *SavingsAccountRepository) Create(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID gets a savings account by ID with member and product
func (r *SavingsAccountRepository) GetByID(ctx context.Context, id uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Product").
		First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByAccountNo gets a savings account by account number
func (r *SavingsAccountRepository) GetByAccountNo(ctx context.Context, accountNo string) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("account_no = ?", accountNo).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List lists savings accounts with pagination
func (r *SavingsAccountRepository) List(ctx context.Context, search string, memberID *uint, offset, limit int) ([]*models.SavingsAccount, int64, error) {
	var accounts []*models.SavingsAccount
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SavingsAccount{})
	if search != "" {
		query = query.Where("account_no LIKE ?", "%"+search+"%")
	}
	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member").
		Preload("Product").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&accounts).Error

	return accounts, total, err
}

// ListActive lists all active accounts with their product, no pagination.
// Used by the auto debit run.
func (r *SavingsAccountRepository) ListActive(ctx context.Context) ([]*models.SavingsAccount, error) {
	var accounts []*models.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Product").
		Order("account_no ASC").
		Find(&accounts).Error
	return accounts, err
}

// Update updates a savings account
func (r *SavingsAccountRepository) Update(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// ApplyTransaction posts a transaction and moves the balance atomically
func (r *SavingsAccountRepository) ApplyTransaction(ctx context.Context, account *models.SavingsAccount, txn *models.SavingsTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(account).Update("balance", txn.BalanceAfter).Error; err != nil {
			return err
		}
		return tx.Create(txn).Error
	})
}

// ListTransactions lists transactions for an account, newest first
func (r *SavingsAccountRepository) ListTransactions(ctx context.Context, accountID uint, offset, limit int) ([]*models.SavingsTransaction, int64, error) {
	var txns []*models.SavingsTransaction
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.SavingsTransaction{}).
		Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txns).Error

	return txns, total, err
}

// SumBalances sums balances across active accounts
func (r *SavingsAccountRepository) SumBalances(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.SavingsAccount{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&sum).Error
	return sum, err
}

// ============================================================
// Time Deposit Bilyets
// ============================================================

// BilyetFilter holds optional bilyet list filters
type BilyetFilter struct {
	Search   string
	Status   string
	MemberID *uint
}

// BilyetRepository handles time deposit bilyet data access
type BilyetRepository struct {
	db *gorm.DB
}

// NewBilyetRepository creates a new bilyet repository
func NewBilyetRepository(db *gorm.DB) *BilyetRepository {
	return &BilyetRepository{db: db}
}

// Create creates a new bilyet
func (r *BilyetRepository) Create(ctx context.Context, bilyet *models.TimeDepositBilyet) error {
	return r.db.WithContext(ctx).Create(bilyet).Error
}

// GetByID gets a bilyet by ID with member and tariff
func (r *BilyetRepository) GetByID(ctx context.Context, id uint) (*models.TimeDepositBilyet, error) {
	var bilyet models.TimeDepositBilyet
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Tariff").
		First(&bilyet, id).Error
	if err != nil {
		return nil, err
	}
	return &bilyet, nil
}

// List lists bilyets with pagination and optional filters
func (r *BilyetRepository) List(ctx context.Context, filter *BilyetFilter, offset, limit int) ([]*models.TimeDepositBilyet, int64, error) {
	var bilyets []*models.TimeDepositBilyet
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TimeDepositBilyet{})
	if filter != nil {
		if filter.Search != "" {
			query = query.Where("bilyet_no LIKE ?", "%"+filter.Search+"%")
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
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
		Order("open_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&bilyets).Error

	return bilyets, total, err
}

// ListAll lists all bilyets matching a filter, no pagination. Used by CSV export.
func (r *BilyetRepository) ListAll(ctx context.Context, filter *BilyetFilter) ([]*models.TimeDepositBilyet, error) {
	var bilyets []*models.TimeDepositBilyet
	query := r.db.WithContext(ctx).Model(&models.TimeDepositBilyet{})
	if filter != nil {
		if filter.Search != "" {
			query = query.Where("bilyet_no LIKE ?", "%"+filter.Search+"%")
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.MemberID != nil {
			query = query.Where("member_id = ?", *filter.MemberID)
		}
	}
	err := query.
		Preload("Member").
		Order("open_date ASC").
		Find(&bilyets).Error
	return bilyets, err
}

// ListActive lists all active bilyets, no pagination. Used by closing runs.
func (r *BilyetRepository) ListActive(ctx context.Context) ([]*models.TimeDepositBilyet, error) {
	var bilyets []*models.TimeDepositBilyet
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BilyetStatusActive).
		Order("bilyet_no ASC").
		Find(&bilyets).Error
	return bilyets, err
}

// ListMaturedBy lists active bilyets whose maturity date has passed
func (r *BilyetRepository) ListMaturedBy(ctx context.Context, cutoff time.Time) ([]*models.TimeDepositBilyet, error) {
	var bilyets []*models.TimeDepositBilyet
	err := r.db.WithContext(ctx).
		Where("status = ? AND maturity_date <= ?", models.BilyetStatusActive, cutoff).
		Find(&bilyets).Error
	return bilyets, err
}

// Update updates a bilyet
func (r *BilyetRepository) Update(ctx context.Context, bilyet *models.TimeDepositBilyet) error {
	return r.db.WithContext(ctx).Save(bilyet).Error
}

// Delete soft deletes a bilyet
func (r *BilyetRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.TimeDepositBilyet{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumActiveNominal sums the principal of active bilyets
func (r *BilyetRepository) SumActiveNominal(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.TimeDepositBilyet{}).
		Where("status = ?", models.BilyetStatusActive).
		Select("COALESCE(SUM(nominal), 0)").
		Scan(&sum).Error
	return sum, err
}

// ============================================================
// Interest Accruals
// ============================================================

// AccrualRepository handles interest accrual data access
type AccrualRepository struct {
	db *gorm.DB
}

// NewAccrualRepository creates a new accrual repository
func NewAccrualRepository(db *gorm.DB) *AccrualRepository {
	return &AccrualRepository{db: db}
}

// Create records an accrual line
func (r *AccrualRepository) Create(ctx context.Context, accrual *models.InterestAccrual) error {
	return r.db.WithContext(ctx).Create(accrual).Error
}

// ExistsForPeriod checks whether a bilyet already has an accrual for a period
func (r *AccrualRepository) ExistsForPeriod(ctx context.Context, bilyetID uint, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InterestAccrual{}).
		Where("bilyet_id = ? AND period = ?", bilyetID, period).
		Count(&count).Error
	return count > 0, err
}

// ListByBilyet lists all accrual lines of one bilyet, oldest first
func (r *AccrualRepository) ListByBilyet(ctx context.Context, bilyetID uint) ([]*models.InterestAccrual, error) {
	var accruals []*models.InterestAccrual
	err := r.db.WithContext(ctx).
		Where("bilyet_id = ?", bilyetID).
		Order("period ASC").
		Find(&accruals).Error
	return accruals, err
}

// ListByPeriod lists accruals for a period with pagination
func (r *AccrualRepository) ListByPeriod(ctx context.Context, period string, offset, limit int) ([]*models.InterestAccrual, int64, error) {
	var accruals []*models.InterestAccrual
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.InterestAccrual{}).
		Where("period = ?", period)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Bilyet").
		Order("bilyet_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&accruals).Error

	return accruals, total, err
}

// SumByPeriod sums accrued interest for a period
func (r *AccrualRepository) SumByPeriod(ctx context.Context, period string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.InterestAccrual{}).
		Where("period = ?", period).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// SumByBilyet sums the interest accrued on one bilyet to date
func (r *AccrualRepository) SumByBilyet(ctx context.Context, bilyetID uint) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.InterestAccrual{}).
		Where("bilyet_id = ?", bilyetID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
