package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ClosingService runs month end and year end closings asynchronously.
// Triggering a close returns the run record immediately; progress is
// polled through GetRun.
type ClosingService struct {
	runRepo     *repositories.ClosingRunRepository
	bilyetRepo  *repositories.BilyetRepository
	accrualRepo *repositories.AccrualRepository
	assetRepo   *repositories.AssetRepository
	deprRepo    *repositories.DepreciationRepository
	auditRepo   *repositories.AuditRepository
}

// NewClosingService creates a new closing service
func NewClosingService(
	runRepo *repositories.ClosingRunRepository,
	bilyetRepo *repositories.BilyetRepository,
	accrualRepo *repositories.AccrualRepository,
	assetRepo *repositories.AssetRepository,
	deprRepo *repositories.DepreciationRepository,
	auditRepo *repositories.AuditRepository,
) *ClosingService {
	return &ClosingService{
		runRepo:     runRepo,
		bilyetRepo:  bilyetRepo,
		accrualRepo: accrualRepo,
		assetRepo:   assetRepo,
		deprRepo:    deprRepo,
		auditRepo:   auditRepo,
	}
}

// ValidatePeriod checks a YYYY-MM period string
func ValidatePeriod(period string) error {
	if !periodPattern.MatchString(period) {
		return domain.ErrInvalidInput
	}
	return nil
}

// TriggerMonthEnd starts an asynchronous month end close for a period.
// A period that already completed is a conflict; a run still in
// progress must finish first.
func (s *ClosingService) TriggerMonthEnd(ctx context.Context, actorID *uint, period string) (*models.ClosingRun, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}

	latest, err := s.runRepo.GetLatestForPeriod(ctx, period, models.ClosingTypeEOM)
	if err == nil {
		switch latest.Status {
		case models.RunStatusCompleted:
			return nil, domain.ErrPeriodAlreadyClosed
		case models.RunStatusRunning:
			return nil, domain.ErrPeriodInProgress
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	run := &models.ClosingRun{
		Period:      period,
		ClosingType: models.ClosingTypeEOM,
		Status:      models.RunStatusRunning,
		TriggeredBy: actorID,
		StartedAt:   time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	go s.runMonthEnd(run)

	log.Printf("🚀 Month end close started for %s (run %d)", period, run.ID)
	return run, nil
}

// TriggerYearEnd starts an asynchronous year end close. All twelve
// month end closes of the fiscal year must be completed first.
func (s *ClosingService) TriggerYearEnd(ctx context.Context, actorID *uint, year int) (*models.ClosingRun, error) {
	if year < 2000 || year > 2200 {
		return nil, domain.ErrInvalidInput
	}
	period := fmt.Sprintf("%04d-12", year)

	latest, err := s.runRepo.GetLatestForPeriod(ctx, period, models.ClosingTypeEOY)
	if err == nil {
		switch latest.Status {
		case models.RunStatusCompleted:
			return nil, domain.ErrPeriodAlreadyClosed
		case models.RunStatusRunning:
			return nil, domain.ErrPeriodInProgress
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	months, err := s.runRepo.CountCompletedMonths(ctx, year)
	if err != nil {
		return nil, err
	}
	if months < 12 {
		return nil, domain.ErrIncompleteYear
	}

	run := &models.ClosingRun{
		Period:      period,
		ClosingType: models.ClosingTypeEOY,
		Status:      models.RunStatusRunning,
		TriggeredBy: actorID,
		StartedAt:   time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	go s.runYearEnd(run, year)

	log.Printf("🚀 Year end close started for %d (run %d)", year, run.ID)
	return run, nil
}

// GetRun gets a closing run by ID
func (s *ClosingService) GetRun(ctx context.Context, id uint) (*models.ClosingRun, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// ListRuns lists closing runs with pagination
func (s *ClosingService) ListRuns(ctx context.Context, closingType string, params *pagination.Params) (*pagination.Window, error) {
	runs, total, err := s.runRepo.List(ctx, closingType, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(runs, params, total), nil
}

// runMonthEnd executes the month end close in the background: interest
// accruals for active bilyets and depreciation lines for active assets.
// Per-record work is idempotent, so a failed run can be retriggered.
func (s *ClosingService) runMonthEnd(run *models.ClosingRun) {
	ctx := context.Background()

	year, month := parsePeriod(run.Period)

	if err := s.accrueBilyets(ctx, run, year, month); err != nil {
		s.failRun(ctx, run, err)
		return
	}
	if err := s.depreciateAssets(ctx, run); err != nil {
		s.failRun(ctx, run, err)
		return
	}

	s.completeRun(ctx, run)
	log.Printf("✅ Month end close completed for %s: %d accruals (%d), %d depreciation lines (%d)",
		run.Period, run.AccrualCount, run.AccruedAmount, run.DepreciationCount, run.DepreciatedAmount)
}

// runYearEnd executes the year end close: mature any bilyets whose term
// ended within the year, rolling over those flagged for it.
func (s *ClosingService) runYearEnd(run *models.ClosingRun, year int) {
	ctx := context.Background()

	cutoff := time.Date(year, 12, 31, 23, 59, 59, 0, time.Local)
	bilyets, err := s.bilyetRepo.ListMaturedBy(ctx, cutoff)
	if err != nil {
		s.failRun(ctx, run, err)
		return
	}

	for _, bilyet := range bilyets {
		if bilyet.Rollover {
			bilyet.OpenDate = bilyet.MaturityDate
			bilyet.MaturityDate = bilyet.MaturityDate.AddDate(0, bilyet.TermMonths, 0)
		} else {
			bilyet.Status = models.BilyetStatusMatured
		}
		if err := s.bilyetRepo.Update(ctx, bilyet); err != nil {
			s.failRun(ctx, run, err)
			return
		}
		run.MaturedCount++
	}

	s.completeRun(ctx, run)
	log.Printf("✅ Year end close completed for %d: %d bilyets matured or rolled", year, run.MaturedCount)
}

func (s *ClosingService) accrueBilyets(ctx context.Context, run *models.ClosingRun, year int, month time.Month) error {
	bilyets, err := s.bilyetRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, bilyet := range bilyets {
		exists, err := s.accrualRepo.ExistsForPeriod(ctx, bilyet.ID, run.Period)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		days := AccrualDaysInMonth(bilyet, year, month)
		if days == 0 {
			continue
		}
		amount := AccrueInterest(bilyet.Nominal, bilyet.Rate, days)

		accrual := &models.InterestAccrual{
			BilyetID: bilyet.ID,
			Period:   run.Period,
			Days:     days,
			Rate:     bilyet.Rate,
			Amount:   amount,
			RunID:    run.ID,
		}
		if err := s.accrualRepo.Create(ctx, accrual); err != nil {
			return err
		}

		run.AccrualCount++
	}

	// The period total includes lines kept from an earlier failed
	// attempt, not just the ones this run wrote.
	total, err := s.accrualRepo.SumByPeriod(ctx, run.Period)
	if err != nil {
		return err
	}
	run.AccruedAmount = total
	return nil
}

func (s *ClosingService) depreciateAssets(ctx context.Context, run *models.ClosingRun) error {
	assets, err := s.assetRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		exists, err := s.deprRepo.ExistsForPeriod(ctx, asset.ID, run.Period)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		var accumulated int64
		latest, err := s.deprRepo.GetLatestByAsset(ctx, asset.ID)
		if err == nil {
			accumulated = latest.AccumulatedAmount
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		expense, newAccumulated, bookValue := DepreciationLine(asset, accumulated)
		if expense == 0 {
			continue
		}

		line := &models.AssetDepreciation{
			AssetID:           asset.ID,
			Period:            run.Period,
			Amount:            expense,
			AccumulatedAmount: newAccumulated,
			BookValue:         bookValue,
			RunID:             run.ID,
		}
		if err := s.deprRepo.Create(ctx, line); err != nil {
			return err
		}

		run.DepreciationCount++
	}

	total, err := s.deprRepo.SumByPeriod(ctx, run.Period)
	if err != nil {
		return err
	}
	run.DepreciatedAmount = total
	return nil
}

func (s *ClosingService) completeRun(ctx context.Context, run *models.ClosingRun) {
	now := time.Now()
	run.Status = models.RunStatusCompleted
	run.FinishedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		log.Printf("❌ Failed to persist closing run %d: %v", run.ID, err)
		return
	}

	actor := uint(0)
	if run.TriggeredBy != nil {
		actor = *run.TriggeredBy
	}
	entry := &models.AuditEntry{
		Entity:      "closing_run",
		EntityID:    run.ID,
		Action:      models.AuditActionClose,
		Description: fmt.Sprintf("Period %s closed (%s)", run.Period, run.ClosingType),
		PerformedBy: actor,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record closing audit entry: %v", err)
	}
}

func (s *ClosingService) failRun(ctx context.Context, run *models.ClosingRun, cause error) {
	now := time.Now()
	run.Status = models.RunStatusFailed
	run.ErrorMessage = cause.Error()
	run.FinishedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		log.Printf("❌ Failed to persist failed closing run %d: %v", run.ID, err)
	}
	log.Printf("❌ Closing run %d failed: %v", run.ID, cause)
}

func parsePeriod(period string) (int, time.Month) {
	year, _ := strconv.Atoi(period[:4])
	month, _ := strconv.Atoi(period[5:7])
	return year, time.Month(month)
}

// CurrentPeriod returns the YYYY-MM period for a point in time
func CurrentPeriod(t time.Time) string {
	return t.Format("2006-01")
}

// IsLastDayOfMonth reports whether t falls on its month's final day
func IsLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}
