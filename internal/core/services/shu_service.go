package services

import (
	"context"
	"errors"
	"log"
	"sort"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SHU errors
var (
	ErrAllocationExists      = errors.New("allocation sheet for this fiscal year already exists")
	ErrAllocationCalculated  = errors.New("allocation sheet is already calculated")
	ErrAllocationDistributed = errors.New("allocation sheet is already distributed")
	ErrNoMemberBasis         = errors.New("no member has a savings basis to distribute against")
)

// SHUService handles surplus allocation business logic
type SHUService struct {
	shuRepo     *repositories.SHURepository
	accountRepo *repositories.SavingsAccountRepository
	memberRepo  *repositories.MemberRepository
}

// NewSHUService creates a new SHU service
func NewSHUService(
	shuRepo *repositories.SHURepository,
	accountRepo *repositories.SavingsAccountRepository,
	memberRepo *repositories.MemberRepository,
) *SHUService {
	return &SHUService{
		shuRepo:     shuRepo,
		accountRepo: accountRepo,
		memberRepo:  memberRepo,
	}
}

// AllocationLineInput represents one allocation percentage line
type AllocationLineInput struct {
	Category   string  `json:"category" validate:"required,max=50"`
	Percentage float64 `json:"percentage" validate:"gt=0,lte=100"`
}

// AllocationInput represents allocation sheet input
type AllocationInput struct {
	FiscalYear   int                   `json:"fiscal_year" validate:"required"`
	TotalSurplus int64                 `json:"total_surplus" validate:"required,gt=0"`
	Lines        []AllocationLineInput `json:"lines" validate:"required,min=1"`
}

// validateLines checks the percentages sum to exactly 100.
// The comparison is exact on decimals, not on floats.
func validateLines(lines []AllocationLineInput) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	sum := decimal.Zero
	for _, line := range lines {
		if line.Percentage <= 0 {
			return domain.ErrInvalidInput
		}
		sum = sum.Add(decimal.NewFromFloat(line.Percentage))
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return domain.ErrPercentagesNotWhole
	}
	return nil
}

// CreateAllocation creates the allocation sheet for a fiscal year
func (s *SHUService) CreateAllocation(ctx context.Context, input *AllocationInput) (*models.SHUAllocation, error) {
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}
	if input.TotalSurplus <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.shuRepo.GetByFiscalYear(ctx, input.FiscalYear); err == nil {
		return nil, ErrAllocationExists
	}

	allocation := &models.SHUAllocation{
		FiscalYear:   input.FiscalYear,
		TotalSurplus: input.TotalSurplus,
		Lines:        make([]models.SHUAllocationLine, len(input.Lines)),
	}
	for i, line := range input.Lines {
		allocation.Lines[i] = models.SHUAllocationLine{
			Category:   line.Category,
			Percentage: line.Percentage,
		}
	}

	if err := s.shuRepo.Create(ctx, allocation); err != nil {
		return nil, err
	}

	log.Printf("✅ SHU allocation sheet created for %d", allocation.FiscalYear)
	return allocation, nil
}

// ListAllocations lists allocation sheets with pagination
func (s *SHUService) ListAllocations(ctx context.Context, params *pagination.Params) (*pagination.Window, error) {
	allocations, total, err := s.shuRepo.List(ctx, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(allocations, params, total), nil
}

// GetAllocation gets an allocation sheet by ID
func (s *SHUService) GetAllocation(ctx context.Context, id uint) (*models.SHUAllocation, error) {
	allocation, err := s.shuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAllocationNotFound
		}
		return nil, err
	}
	return allocation, nil
}

// UpdateAllocation replaces the sheet's lines before calculation
func (s *SHUService) UpdateAllocation(ctx context.Context, id uint, input *AllocationInput) (*models.SHUAllocation, error) {
	allocation, err := s.GetAllocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if allocation.Calculated {
		return nil, ErrAllocationCalculated
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}
	if input.TotalSurplus <= 0 {
		return nil, domain.ErrInvalidInput
	}

	allocation.TotalSurplus = input.TotalSurplus
	allocation.Lines = make([]models.SHUAllocationLine, len(input.Lines))
	for i, line := range input.Lines {
		allocation.Lines[i] = models.SHUAllocationLine{
			AllocationID: allocation.ID,
			Category:     line.Category,
			Percentage:   line.Percentage,
		}
	}

	if err := s.shuRepo.Update(ctx, allocation); err != nil {
		return nil, err
	}
	return allocation, nil
}

// DeleteAllocation removes an uncalculated allocation sheet
func (s *SHUService) DeleteAllocation(ctx context.Context, id uint) error {
	allocation, err := s.GetAllocation(ctx, id)
	if err != nil {
		return err
	}
	if allocation.Calculated {
		return ErrAllocationCalculated
	}
	return s.shuRepo.Delete(ctx, id)
}

// Calculate computes the nominal split of the surplus across the lines
// using largest remainder rounding, so the nominals always sum exactly
// to the surplus.
func (s *SHUService) Calculate(ctx context.Context, id uint) (*models.SHUAllocation, error) {
	allocation, err := s.GetAllocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if allocation.Calculated {
		return nil, ErrAllocationCalculated
	}

	percentages := make([]float64, len(allocation.Lines))
	for i, line := range allocation.Lines {
		percentages[i] = line.Percentage
	}
	nominals, err := SplitByPercentages(allocation.TotalSurplus, percentages)
	if err != nil {
		return nil, err
	}

	for i := range allocation.Lines {
		allocation.Lines[i].Nominal = nominals[i]
	}
	allocation.Calculated = true

	if err := s.shuRepo.Update(ctx, allocation); err != nil {
		return nil, err
	}

	log.Printf("✅ SHU allocation calculated for %d (surplus %d)", allocation.FiscalYear, allocation.TotalSurplus)
	return allocation, nil
}

// Distribute splits the member share line across approved members in
// proportion to their savings balances.
func (s *SHUService) Distribute(ctx context.Context, id uint, memberCategory string) (*models.SHUAllocation, error) {
	allocation, err := s.GetAllocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allocation.Calculated {
		return nil, domain.ErrInvalidInput
	}
	if allocation.Distributed {
		return nil, ErrAllocationDistributed
	}

	var memberPool int64
	found := false
	for _, line := range allocation.Lines {
		if line.Category == memberCategory {
			memberPool = line.Nominal
			found = true
			break
		}
	}
	if !found || memberPool <= 0 {
		return nil, domain.ErrInvalidInput
	}

	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// Aggregate balances per member
	basis := make(map[uint]int64)
	var totalBasis int64
	for _, account := range accounts {
		basis[account.MemberID] += account.Balance
		totalBasis += account.Balance
	}
	if totalBasis <= 0 {
		return nil, ErrNoMemberBasis
	}

	memberIDs := make([]uint, 0, len(basis))
	for memberID := range basis {
		memberIDs = append(memberIDs, memberID)
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	// Proportional split with largest remainder on the member pool
	weights := make([]float64, len(memberIDs))
	totalDec := decimal.NewFromInt(totalBasis)
	for i, memberID := range memberIDs {
		w, _ := decimal.NewFromInt(basis[memberID]).
			Mul(decimal.NewFromInt(100)).
			Div(totalDec).Float64()
		weights[i] = w
	}
	amounts := splitByWeights(memberPool, weights)

	distributions := make([]*models.SHUDistribution, 0, len(memberIDs))
	for i, memberID := range memberIDs {
		if amounts[i] == 0 {
			continue
		}
		distributions = append(distributions, &models.SHUDistribution{
			AllocationID: allocation.ID,
			MemberID:     memberID,
			Basis:        basis[memberID],
			Amount:       amounts[i],
		})
	}

	if err := s.shuRepo.CreateDistributions(ctx, distributions); err != nil {
		return nil, err
	}

	allocation.Distributed = true
	if err := s.shuRepo.Update(ctx, allocation); err != nil {
		return nil, err
	}

	log.Printf("✅ SHU distributed for %d across %d members", allocation.FiscalYear, len(distributions))
	return allocation, nil
}

// ListDistributions lists member distributions for an allocation
func (s *SHUService) ListDistributions(ctx context.Context, id uint, params *pagination.Params) (*pagination.Window, error) {
	if _, err := s.GetAllocation(ctx, id); err != nil {
		return nil, err
	}
	distributions, total, err := s.shuRepo.ListDistributions(ctx, id, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(distributions, params, total), nil
}

// ============================================================
// Largest remainder split
// ============================================================

// SplitByPercentages divides a total by percentage lines that must sum
// to 100. Each line gets the floor of its exact share; the leftover
// rupiah go to the largest fractional remainders, ties broken by line
// order. The returned parts always sum to total.
func SplitByPercentages(total int64, percentages []float64) ([]int64, error) {
	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return nil, domain.ErrPercentagesNotWhole
	}
	return splitByWeights(total, percentages), nil
}

// splitByWeights performs the largest remainder division. Weights are
// treated as proportions of their own sum.
func splitByWeights(total int64, weights []float64) []int64 {
	n := len(weights)
	parts := make([]int64, n)
	if n == 0 || total == 0 {
		return parts
	}

	weightSum := decimal.Zero
	for _, w := range weights {
		weightSum = weightSum.Add(decimal.NewFromFloat(w))
	}
	if weightSum.IsZero() {
		return parts
	}

	type remainder struct {
		index int
		frac  decimal.Decimal
	}

	totalDec := decimal.NewFromInt(total)
	remainders := make([]remainder, n)
	var assigned int64

	for i, w := range weights {
		exact := totalDec.Mul(decimal.NewFromFloat(w)).Div(weightSum)
		floor := exact.Floor()
		parts[i] = floor.IntPart()
		assigned += parts[i]
		remainders[i] = remainder{index: i, frac: exact.Sub(floor)}
	}

	leftover := total - assigned
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac.GreaterThan(remainders[j].frac)
	})
	for i := int64(0); i < leftover; i++ {
		parts[remainders[i%int64(n)].index]++
	}

	return parts
}
