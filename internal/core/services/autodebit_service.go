package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ErrRunAlreadyToday means an auto debit batch already ran on the date
var ErrRunAlreadyToday = errors.New("auto debit already ran for this date")

// AutoDebitService debits monthly admin fees from active savings
// accounts in a batch, recording a per-account outcome for each.
type AutoDebitService struct {
	runRepo     *repositories.AutoDebitRepository
	accountRepo *repositories.SavingsAccountRepository
}

// NewAutoDebitService creates a new auto debit service
func NewAutoDebitService(
	runRepo *repositories.AutoDebitRepository,
	accountRepo *repositories.SavingsAccountRepository,
) *AutoDebitService {
	return &AutoDebitService{
		runRepo:     runRepo,
		accountRepo: accountRepo,
	}
}

// TriggerRun starts an asynchronous auto debit batch for a date.
// One batch per calendar date.
func (s *AutoDebitService) TriggerRun(ctx context.Context, actorID *uint, runDate time.Time) (*models.AutoDebitRun, error) {
	exists, err := s.runRepo.ExistsForDate(ctx, runDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRunAlreadyToday
	}

	run := &models.AutoDebitRun{
		RunNo:       fmt.Sprintf("AD-%s", runDate.Format("20060102")),
		RunDate:     runDate,
		Status:      models.RunStatusRunning,
		TriggeredBy: actorID,
		StartedAt:   time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	go s.execute(run)

	log.Printf("🚀 Auto debit run started: %s", run.RunNo)
	return run, nil
}

// GetRun gets an auto debit run with its item outcomes
func (s *AutoDebitService) GetRun(ctx context.Context, id uint) (*models.AutoDebitRun, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// ListRuns lists auto debit runs with pagination
func (s *AutoDebitService) ListRuns(ctx context.Context, params *pagination.Params) (*pagination.Window, error) {
	runs, total, err := s.runRepo.List(ctx, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(runs, params, total), nil
}

// execute walks every active account and debits its product admin fee.
// A failed account never aborts the batch; the failure reason lands on
// the item record instead.
func (s *AutoDebitService) execute(run *models.AutoDebitRun) {
	ctx := context.Background()

	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		s.finish(ctx, run, models.RunStatusFailed)
		log.Printf("❌ Auto debit run %s failed: %v", run.RunNo, err)
		return
	}

	for _, account := range accounts {
		item := models.AutoDebitItem{
			RunID:     run.ID,
			AccountID: account.ID,
		}

		switch {
		case account.Product == nil || account.Product.AdminFee <= 0:
			continue
		case account.Balance < account.Product.AdminFee:
			item.Amount = account.Product.AdminFee
			item.Success = false
			item.Reason = "saldo tidak mencukupi"
			run.Failed++
		case account.Balance-account.Product.AdminFee < account.Product.MinBalance:
			item.Amount = account.Product.AdminFee
			item.Success = false
			item.Reason = "saldo akan turun di bawah saldo minimum"
			run.Failed++
		default:
			fee := account.Product.AdminFee
			txn := &models.SavingsTransaction{
				AccountID:    account.ID,
				TxType:       models.SavingsTxAutoDebit,
				Amount:       fee,
				BalanceAfter: account.Balance - fee,
				Reference:    run.RunNo,
				Description:  "Biaya administrasi bulanan",
			}
			if err := s.accountRepo.ApplyTransaction(ctx, account, txn); err != nil {
				item.Amount = fee
				item.Success = false
				item.Reason = err.Error()
				run.Failed++
			} else {
				item.Amount = fee
				item.Success = true
				run.Processed++
				run.TotalAmount += fee
			}
		}

		run.Items = append(run.Items, item)
	}

	s.finish(ctx, run, models.RunStatusCompleted)
	log.Printf("✅ Auto debit run %s completed: %d debited (%d), %d failed",
		run.RunNo, run.Processed, run.TotalAmount, run.Failed)
}

func (s *AutoDebitService) finish(ctx context.Context, run *models.AutoDebitRun, status string) {
	now := time.Now()
	run.Status = status
	run.FinishedAt = &now

	// Save run counters together with the item rows
	if err := s.runRepo.Save(ctx, run); err != nil {
		log.Printf("❌ Failed to persist auto debit run %s: %v", run.RunNo, err)
	}
}
