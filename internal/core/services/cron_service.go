package services

import (
	"context"
	"errors"
	"log"
	"time"

	"koperasi-adminhub/internal/config"
	"koperasi-adminhub/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService schedules the recurring batch jobs: the daily auto debit
// batch and the automatic month end close.
type CronService struct {
	cron       *cron.Cron
	closingSvc *ClosingService
	debitSvc   *AutoDebitService
	cfg        *config.Config
}

// NewCronService creates a new cron service
func NewCronService(closingSvc *ClosingService, debitSvc *AutoDebitService, cfg *config.Config) *CronService {
	return &CronService{
		cron:       cron.New(),
		closingSvc: closingSvc,
		debitSvc:   debitSvc,
		cfg:        cfg,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	if !s.cfg.Cron.Enabled {
		log.Println("⚠️ Cron jobs disabled by configuration")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Cron.AutoDebitSpec, s.runAutoDebit); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.Cron.MonthEndSpec, s.runMonthEnd); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🕐 Cron jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron jobs stopped")
}

func (s *CronService) runAutoDebit() {
	ctx := context.Background()
	if _, err := s.debitSvc.TriggerRun(ctx, nil, time.Now()); err != nil {
		if errors.Is(err, ErrRunAlreadyToday) {
			return
		}
		log.Printf("❌ Scheduled auto debit failed to start: %v", err)
	}
}

// runMonthEnd fires on the last few days of every month and only closes
// when the current day really is the month's final day.
func (s *CronService) runMonthEnd() {
	now := time.Now()
	if !IsLastDayOfMonth(now) {
		return
	}

	ctx := context.Background()
	period := CurrentPeriod(now)
	if _, err := s.closingSvc.TriggerMonthEnd(ctx, nil, period); err != nil {
		if errors.Is(err, domain.ErrPeriodAlreadyClosed) || errors.Is(err, domain.ErrPeriodInProgress) {
			return
		}
		log.Printf("❌ Scheduled month end close failed to start: %v", err)
	}
}
