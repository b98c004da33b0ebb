package services

import (
	"context"
	"errors"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Scoring errors
var (
	ErrWeightSumInvalid = errors.New("active criteria weights must sum to 100")
	ErrMissingValue     = errors.New("missing input value for criterion")
	ErrNoMatchingRule   = errors.New("no rule matches the input value")
)

// ScoringService handles credit scoring configuration and evaluation
type ScoringService struct {
	scoringRepo *repositories.ScoringRepository
}

// NewScoringService creates a new scoring service
func NewScoringService(scoringRepo *repositories.ScoringRepository) *ScoringService {
	return &ScoringService{scoringRepo: scoringRepo}
}

// ============================================================
// Criteria configuration
// ============================================================

// ScoringRuleInput represents one rule band
type ScoringRuleInput struct {
	Operator  string  `json:"operator" validate:"required"`
	BoundLow  float64 `json:"bound_low"`
	BoundHigh float64 `json:"bound_high"`
	Points    int     `json:"points" validate:"gte=0,lte=100"`
}

// CriterionInput represents scoring criterion input
type CriterionInput struct {
	Code          string             `json:"code" validate:"required,max=20"`
	Name          string             `json:"name" validate:"required,max=100"`
	Description   string             `json:"description"`
	WeightPercent float64            `json:"weight_percent" validate:"gt=0,lte=100"`
	IsActive      *bool              `json:"is_active"`
	Rules         []ScoringRuleInput `json:"rules" validate:"required,min=1"`
}

func validOperator(op string) bool {
	switch op {
	case models.RuleOpLT, models.RuleOpLTE, models.RuleOpGT, models.RuleOpGTE, models.RuleOpBetween:
		return true
	}
	return false
}

func buildRules(inputs []ScoringRuleInput) ([]models.ScoringRule, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	rules := make([]models.ScoringRule, len(inputs))
	for i, in := range inputs {
		if !validOperator(in.Operator) {
			return nil, domain.ErrInvalidInput
		}
		if in.Operator == models.RuleOpBetween && in.BoundHigh < in.BoundLow {
			return nil, domain.ErrInvalidInput
		}
		if in.Points < 0 || in.Points > 100 {
			return nil, domain.ErrInvalidInput
		}
		rules[i] = models.ScoringRule{
			Operator:  in.Operator,
			BoundLow:  in.BoundLow,
			BoundHigh: in.BoundHigh,
			Points:    in.Points,
			IsActive:  true,
		}
	}
	return rules, nil
}

// CreateCriterion creates a scoring criterion with its rule bands
func (s *ScoringService) CreateCriterion(ctx context.Context, input *CriterionInput) (*models.ScoringCriterion, error) {
	if input.WeightPercent <= 0 || input.WeightPercent > 100 {
		return nil, domain.ErrInvalidInput
	}
	rules, err := buildRules(input.Rules)
	if err != nil {
		return nil, err
	}
	taken, err := s.scoringRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEntry
	}

	criterion := &models.ScoringCriterion{
		Code:          input.Code,
		Name:          input.Name,
		Description:   input.Description,
		WeightPercent: input.WeightPercent,
		IsActive:      true,
		Rules:         rules,
	}
	if input.IsActive != nil {
		criterion.IsActive = *input.IsActive
	}

	if err := s.scoringRepo.CreateCriterion(ctx, criterion); err != nil {
		return nil, err
	}
	return criterion, nil
}

// ListCriteria lists criteria with pagination
func (s *ScoringService) ListCriteria(ctx context.Context, filter *repositories.CatalogFilter, params *pagination.Params) (*pagination.Window, error) {
	criteria, total, err := s.scoringRepo.ListCriteria(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(criteria, params, total), nil
}

// GetCriterion gets a criterion by ID
func (s *ScoringService) GetCriterion(ctx context.Context, id uint) (*models.ScoringCriterion, error) {
	criterion, err := s.scoringRepo.GetCriterionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return criterion, nil
}

// UpdateCriterion updates a criterion and replaces its rules
func (s *ScoringService) UpdateCriterion(ctx context.Context, id uint, input *CriterionInput) (*models.ScoringCriterion, error) {
	criterion, err := s.GetCriterion(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.WeightPercent <= 0 || input.WeightPercent > 100 {
		return nil, domain.ErrInvalidInput
	}
	rules, err := buildRules(input.Rules)
	if err != nil {
		return nil, err
	}
	if input.Code != criterion.Code {
		taken, err := s.scoringRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEntry
		}
	}
	for i := range rules {
		rules[i].CriterionID = criterion.ID
	}

	criterion.Code = input.Code
	criterion.Name = input.Name
	criterion.Description = input.Description
	criterion.WeightPercent = input.WeightPercent
	criterion.Rules = rules
	if input.IsActive != nil {
		criterion.IsActive = *input.IsActive
	}

	if err := s.scoringRepo.UpdateCriterion(ctx, criterion); err != nil {
		return nil, err
	}
	return criterion, nil
}

// DeleteCriterion soft deletes a criterion
func (s *ScoringService) DeleteCriterion(ctx context.Context, id uint) error {
	if err := s.scoringRepo.DeleteCriterion(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Evaluation
// ============================================================

// ScoreInput maps criterion codes to measured values
type ScoreInput struct {
	Values map[string]float64 `json:"values" validate:"required"`
}

// CriterionScore is the per-criterion evaluation result
type CriterionScore struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Value    float64 `json:"value"`
	Points   int     `json:"points"`
	Weighted float64 `json:"weighted"`
}

// ScoreResult is the full evaluation result
type ScoreResult struct {
	TotalScore float64          `json:"total_score"`
	Grade      string           `json:"grade"`
	Criteria   []CriterionScore `json:"criteria"`
}

// Score evaluates measured values against the active criteria set.
// The active weights must sum to exactly 100 before any evaluation runs.
func (s *ScoringService) Score(ctx context.Context, input *ScoreInput) (*ScoreResult, error) {
	criteria, err := s.scoringRepo.ListActiveCriteria(ctx)
	if err != nil {
		return nil, err
	}
	if len(criteria) == 0 {
		return nil, ErrWeightSumInvalid
	}

	sum := decimal.Zero
	for _, c := range criteria {
		sum = sum.Add(decimal.NewFromFloat(c.WeightPercent))
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return nil, ErrWeightSumInvalid
	}

	result := &ScoreResult{Criteria: make([]CriterionScore, 0, len(criteria))}
	total := decimal.Zero

	for _, c := range criteria {
		value, ok := input.Values[c.Code]
		if !ok {
			return nil, ErrMissingValue
		}

		points := -1
		for i := range c.Rules {
			rule := c.Rules[i]
			if rule.IsActive && rule.Matches(value) {
				points = rule.Points
				break
			}
		}
		if points < 0 {
			return nil, ErrNoMatchingRule
		}

		weighted := decimal.NewFromInt(int64(points)).
			Mul(decimal.NewFromFloat(c.WeightPercent)).
			Div(decimal.NewFromInt(100))
		total = total.Add(weighted)

		wf, _ := weighted.Round(2).Float64()
		result.Criteria = append(result.Criteria, CriterionScore{
			Code:     c.Code,
			Name:     c.Name,
			Weight:   c.WeightPercent,
			Value:    value,
			Points:   points,
			Weighted: wf,
		})
	}

	result.TotalScore, _ = total.Round(2).Float64()
	result.Grade = gradeFor(result.TotalScore)
	return result, nil
}

// gradeFor maps a total score to a letter grade
func gradeFor(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
