package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositService handles savings accounts and time deposit bilyets
type DepositService struct {
	accountRepo *repositories.SavingsAccountRepository
	bilyetRepo  *repositories.BilyetRepository
	accrualRepo *repositories.AccrualRepository
	tariffRepo  *repositories.TariffRepository
	memberRepo  *repositories.MemberRepository
	productRepo *repositories.SavingsProductRepository
}

// NewDepositService creates a new deposit service
func NewDepositService(
	accountRepo *repositories.SavingsAccountRepository,
	bilyetRepo *repositories.BilyetRepository,
	accrualRepo *repositories.AccrualRepository,
	tariffRepo *repositories.TariffRepository,
	memberRepo *repositories.MemberRepository,
	productRepo *repositories.SavingsProductRepository,
) *DepositService {
	return &DepositService{
		accountRepo: accountRepo,
		bilyetRepo:  bilyetRepo,
		accrualRepo: accrualRepo,
		tariffRepo:  tariffRepo,
		memberRepo:  memberRepo,
		productRepo: productRepo,
	}
}

// ============================================================
// Savings Accounts
// ============================================================

// OpenAccountInput represents open savings account input
type OpenAccountInput struct {
	MemberID       uint  `json:"member_id" validate:"required"`
	ProductID      uint  `json:"product_id" validate:"required"`
	InitialDeposit int64 `json:"initial_deposit" validate:"gte=0"`
}

// SavingsTxInput represents a manual deposit or withdrawal
type SavingsTxInput struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description"`
}

// OpenAccount opens a savings account for an approved member
func (s *DepositService) OpenAccount(ctx context.Context, actorID uint, input *OpenAccountInput) (*models.SavingsAccount, error) {
	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if member.Status != models.StatusApproved {
		return nil, domain.ErrMemberNotApproved
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrInvalidInput
	}
	if input.InitialDeposit < product.MinBalance {
		return nil, domain.ErrInvalidInput
	}

	account := &models.SavingsAccount{
		AccountNo: fmt.Sprintf("SA-%s-%s", product.Code, strings.ToUpper(uuid.New().String()[:8])),
		MemberID:  member.ID,
		ProductID: product.ID,
		Balance:   0,
		IsActive:  true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if input.InitialDeposit > 0 {
		txn := &models.SavingsTransaction{
			AccountID:    account.ID,
			TxType:       models.SavingsTxDeposit,
			Amount:       input.InitialDeposit,
			BalanceAfter: input.InitialDeposit,
			Description:  "Setoran awal",
			PerformedBy:  &actorID,
		}
		if err := s.accountRepo.ApplyTransaction(ctx, account, txn); err != nil {
			return nil, err
		}
		account.Balance = input.InitialDeposit
	}

	log.Printf("✅ Savings account opened: %s", account.AccountNo)
	return account, nil
}

// ListAccounts lists savings accounts with pagination
func (s *DepositService) ListAccounts(ctx context.Context, search string, memberID *uint, params *pagination.Params) (*pagination.Window, error) {
	accounts, total, err := s.accountRepo.List(ctx, search, memberID, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(accounts, params, total), nil
}

// GetAccount gets a savings account by ID
func (s *DepositService) GetAccount(ctx context.Context, id uint) (*models.SavingsAccount, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByNo gets a savings account by its account number.
// Tellers work from the printed number, not the database ID.
func (s *DepositService) GetAccountByNo(ctx context.Context, accountNo string) (*models.SavingsAccount, error) {
	account, err := s.accountRepo.GetByAccountNo(ctx, accountNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// Deposit posts a deposit to an account
func (s *DepositService) Deposit(ctx context.Context, actorID, accountID uint, input *SavingsTxInput) (*models.SavingsTransaction, error) {
	return s.postTransaction(ctx, actorID, accountID, models.SavingsTxDeposit, input.Amount, input.Description)
}

// Withdraw posts a withdrawal from an account
func (s *DepositService) Withdraw(ctx context.Context, actorID, accountID uint, input *SavingsTxInput) (*models.SavingsTransaction, error) {
	return s.postTransaction(ctx, actorID, accountID, models.SavingsTxWithdraw, input.Amount, input.Description)
}

func (s *DepositService) postTransaction(ctx context.Context, actorID, accountID uint, txType string, amount int64, description string) (*models.SavingsTransaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, domain.ErrInvalidInput
	}

	balanceAfter := account.Balance
	switch txType {
	case models.SavingsTxDeposit, models.SavingsTxInterest, models.SavingsTxSHU:
		balanceAfter += amount
	case models.SavingsTxWithdraw, models.SavingsTxAutoDebit:
		if account.Balance < amount {
			return nil, domain.ErrInvalidInput
		}
		if account.Product != nil && account.Balance-amount < account.Product.MinBalance {
			return nil, domain.ErrInvalidInput
		}
		balanceAfter -= amount
	default:
		return nil, domain.ErrInvalidInput
	}

	txn := &models.SavingsTransaction{
		AccountID:    account.ID,
		TxType:       txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		PerformedBy:  &actorID,
	}
	if err := s.accountRepo.ApplyTransaction(ctx, account, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactions lists account transactions with pagination
func (s *DepositService) ListTransactions(ctx context.Context, accountID uint, params *pagination.Params) (*pagination.Window, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	txns, total, err := s.accountRepo.ListTransactions(ctx, accountID, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(txns, params, total), nil
}

// ============================================================
// Time Deposit Bilyets
// ============================================================

// BilyetInput represents open bilyet input
type BilyetInput struct {
	MemberID   uint       `json:"member_id" validate:"required"`
	TermMonths int        `json:"term_months" validate:"required,gt=0"`
	Nominal    int64      `json:"nominal" validate:"required,gt=0"`
	OpenDate   *time.Time `json:"open_date"`
	Rollover   bool       `json:"rollover"`
}

// OpenBilyet opens a time deposit bilyet. The rate is snapshotted from
// the tariff effective on the open date, so later tariff changes never
// reprice an existing bilyet.
func (s *DepositService) OpenBilyet(ctx context.Context, actorID uint, input *BilyetInput) (*models.TimeDepositBilyet, error) {
	if input.TermMonths <= 0 {
		return nil, domain.ErrInvalidTerm
	}
	if input.Nominal <= 0 {
		return nil, domain.ErrInvalidInput
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if member.Status != models.StatusApproved {
		return nil, domain.ErrMemberNotApproved
	}

	openDate := time.Now()
	if input.OpenDate != nil {
		openDate = *input.OpenDate
	}

	tariff, err := s.tariffRepo.GetRateForTerm(ctx, input.TermMonths, openDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTariffNotFound
		}
		return nil, err
	}

	bilyet := &models.TimeDepositBilyet{
		BilyetNo:     fmt.Sprintf("SB-%s-%s", openDate.Format("200601"), strings.ToUpper(uuid.New().String()[:8])),
		MemberID:     member.ID,
		TariffID:     tariff.ID,
		Nominal:      input.Nominal,
		TermMonths:   input.TermMonths,
		Rate:         tariff.Rate,
		OpenDate:     openDate,
		MaturityDate: openDate.AddDate(0, input.TermMonths, 0),
		Rollover:     input.Rollover,
		Status:       models.BilyetStatusActive,
	}

	if err := s.bilyetRepo.Create(ctx, bilyet); err != nil {
		return nil, err
	}

	log.Printf("✅ Bilyet opened: %s (%d months at %.2f%%)", bilyet.BilyetNo, bilyet.TermMonths, bilyet.Rate)
	return bilyet, nil
}

// ListBilyets lists bilyets with pagination
func (s *DepositService) ListBilyets(ctx context.Context, filter *repositories.BilyetFilter, params *pagination.Params) (*pagination.Window, error) {
	bilyets, total, err := s.bilyetRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(bilyets, params, total), nil
}

// GetBilyet gets a bilyet by ID
func (s *DepositService) GetBilyet(ctx context.Context, id uint) (*models.TimeDepositBilyet, error) {
	bilyet, err := s.bilyetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBilyetNotFound
		}
		return nil, err
	}
	return bilyet, nil
}

// CloseBilyet closes an active or matured bilyet
func (s *DepositService) CloseBilyet(ctx context.Context, actorID, id uint) (*models.TimeDepositBilyet, error) {
	bilyet, err := s.GetBilyet(ctx, id)
	if err != nil {
		return nil, err
	}
	if bilyet.Status == models.BilyetStatusClosed {
		return nil, domain.ErrBilyetNotActive
	}

	bilyet.Status = models.BilyetStatusClosed
	if err := s.bilyetRepo.Update(ctx, bilyet); err != nil {
		return nil, err
	}

	log.Printf("✅ Bilyet closed: %s", bilyet.BilyetNo)
	return bilyet, nil
}

// BilyetInterestSummary is the accrued interest report for one bilyet
type BilyetInterestSummary struct {
	Bilyet       *models.TimeDepositBilyet `json:"bilyet"`
	AccruedTotal int64                     `json:"accrued_total"`
	Accruals     []*models.InterestAccrual `json:"accruals"`
}

// GetBilyetInterest reports the interest accrued on a bilyet to date
func (s *DepositService) GetBilyetInterest(ctx context.Context, id uint) (*BilyetInterestSummary, error) {
	bilyet, err := s.GetBilyet(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.accrualRepo.SumByBilyet(ctx, id)
	if err != nil {
		return nil, err
	}

	accruals, err := s.accrualRepo.ListByBilyet(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BilyetInterestSummary{
		Bilyet:       bilyet,
		AccruedTotal: total,
		Accruals:     accruals,
	}, nil
}

// ListAccrualsByPeriod lists accrual lines for a period
func (s *DepositService) ListAccrualsByPeriod(ctx context.Context, period string, params *pagination.Params) (*pagination.Window, error) {
	accruals, total, err := s.accrualRepo.ListByPeriod(ctx, period, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(accruals, params, total), nil
}

// ============================================================
// Interest math
// ============================================================

// AccrueInterest computes simple interest on a principal for a number
// of days at an annual rate, banker's rounded to whole rupiah.
//
//	interest = nominal * rate/100 * days/365
func AccrueInterest(nominal int64, annualRate float64, days int) int64 {
	if nominal <= 0 || annualRate <= 0 || days <= 0 {
		return 0
	}
	principal := decimal.NewFromInt(nominal)
	rate := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(100))
	fraction := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(365))
	return principal.Mul(rate).Mul(fraction).RoundBank(0).IntPart()
}

// AccrualDaysInMonth counts the days of a month the bilyet was live:
// from the later of open date and month start, to the earlier of
// maturity date and month end, inclusive.
func AccrualDaysInMonth(bilyet *models.TimeDepositBilyet, year int, month time.Month) int {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	start := monthStart
	open := calendarDay(bilyet.OpenDate)
	if open.After(start) {
		start = open
	}

	end := monthEnd
	maturity := calendarDay(bilyet.MaturityDate)
	if maturity.Before(end) {
		end = maturity
	}

	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// calendarDay strips a timestamp to its calendar date in the zone it
// was recorded in. Truncating against the UTC epoch would shift dates
// stored with a non-UTC offset.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
