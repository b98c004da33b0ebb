package services

import (
	"context"
	"errors"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/pkg/format"

	"gorm.io/gorm"
)

// DashboardService aggregates the admin dashboard summary
type DashboardService struct {
	memberRepo  *repositories.MemberRepository
	claimRepo   *repositories.DeathClaimRepository
	accountRepo *repositories.SavingsAccountRepository
	bilyetRepo  *repositories.BilyetRepository
	assetRepo   *repositories.AssetRepository
	closingRepo *repositories.ClosingRunRepository
	auditRepo   *repositories.AuditRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo *repositories.MemberRepository,
	claimRepo *repositories.DeathClaimRepository,
	accountRepo *repositories.SavingsAccountRepository,
	bilyetRepo *repositories.BilyetRepository,
	assetRepo *repositories.AssetRepository,
	closingRepo *repositories.ClosingRunRepository,
	auditRepo *repositories.AuditRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:  memberRepo,
		claimRepo:   claimRepo,
		accountRepo: accountRepo,
		bilyetRepo:  bilyetRepo,
		assetRepo:   assetRepo,
		closingRepo: closingRepo,
		auditRepo:   auditRepo,
	}
}

// MemberStats holds member counts per workflow status
type MemberStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// DashboardSummary is the admin landing page payload
type DashboardSummary struct {
	Members            MemberStats `json:"members"`
	PendingDeathClaims int64       `json:"pending_death_claims"`
	TotalSavings       int64       `json:"total_savings"`
	TotalSavingsLabel  string      `json:"total_savings_label"`
	TotalDeposits      int64       `json:"total_deposits"`
	TotalDepositsLabel string      `json:"total_deposits_label"`
	TotalAssetCost     int64       `json:"total_asset_cost"`
	TotalAssetLabel    string      `json:"total_asset_label"`

	LastClosingRun *models.ClosingRun `json:"last_closing_run,omitempty"`
}

// GetSummary builds the dashboard summary
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	for status, target := range map[int]*int64{
		models.StatusPending:  &summary.Members.Pending,
		models.StatusApproved: &summary.Members.Approved,
		models.StatusRejected: &summary.Members.Rejected,
	} {
		count, err := s.memberRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		*target = count
	}
	summary.Members.Total = summary.Members.Pending + summary.Members.Approved + summary.Members.Rejected

	pendingClaims, err := s.claimRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	summary.PendingDeathClaims = pendingClaims

	savings, err := s.accountRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalSavings = savings
	summary.TotalSavingsLabel = format.Rupiah(savings)

	deposits, err := s.bilyetRepo.SumActiveNominal(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalDeposits = deposits
	summary.TotalDepositsLabel = format.Rupiah(deposits)

	assetCost, err := s.assetRepo.SumActiveCost(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalAssetCost = assetCost
	summary.TotalAssetLabel = format.Rupiah(assetCost)

	lastRun, err := s.closingRepo.GetLatest(ctx)
	if err == nil {
		summary.LastClosingRun = lastRun
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return summary, nil
}

// RecentActivity lists the latest audit entries for the dashboard feed
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	entries, _, err := s.auditRepo.List(ctx, "", 0, limit)
	return entries, err
}
