package services

import (
	"errors"
	"testing"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/core/domain"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{80, "A"},
		{79.99, "B"},
		{65, "B"},
		{64.99, "C"},
		{50, "C"},
		{49.99, "D"},
		{0, "D"},
	}

	for _, tt := range tests {
		if got := gradeFor(tt.score); got != tt.want {
			t.Errorf("gradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoringRuleMatches(t *testing.T) {
	tests := []struct {
		name  string
		rule  models.ScoringRule
		value float64
		want  bool
	}{
		{"lt hit", models.ScoringRule{Operator: models.RuleOpLT, BoundLow: 12}, 11, true},
		{"lt boundary miss", models.ScoringRule{Operator: models.RuleOpLT, BoundLow: 12}, 12, false},
		{"lte boundary hit", models.ScoringRule{Operator: models.RuleOpLTE, BoundLow: 12}, 12, true},
		{"gt hit", models.ScoringRule{Operator: models.RuleOpGT, BoundLow: 24}, 25, true},
		{"gte boundary hit", models.ScoringRule{Operator: models.RuleOpGTE, BoundLow: 24}, 24, true},
		{"between inside", models.ScoringRule{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 24}, 18, true},
		{"between low edge", models.ScoringRule{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 24}, 12, true},
		{"between high edge", models.ScoringRule{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 24}, 24, true},
		{"between outside", models.ScoringRule{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 24}, 25, false},
		{"unknown operator", models.ScoringRule{Operator: "eq", BoundLow: 10}, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.value); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestBuildRules(t *testing.T) {
	t.Run("valid rules", func(t *testing.T) {
		rules, err := buildRules([]ScoringRuleInput{
			{Operator: models.RuleOpLT, BoundLow: 12, Points: 40},
			{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 24, Points: 70},
			{Operator: models.RuleOpGTE, BoundLow: 24, Points: 100},
		})
		if err != nil {
			t.Fatalf("buildRules() error = %v", err)
		}
		if len(rules) != 3 {
			t.Fatalf("len = %d, want 3", len(rules))
		}
		for i, r := range rules {
			if !r.IsActive {
				t.Errorf("rule[%d] not active", i)
			}
		}
	})

	invalid := []struct {
		name   string
		inputs []ScoringRuleInput
	}{
		{"empty", nil},
		{"bad operator", []ScoringRuleInput{{Operator: "eq", Points: 10}}},
		{"inverted between bounds", []ScoringRuleInput{{Operator: models.RuleOpBetween, BoundLow: 24, BoundHigh: 12, Points: 10}}},
		{"negative points", []ScoringRuleInput{{Operator: models.RuleOpLT, BoundLow: 1, Points: -5}}},
		{"points above 100", []ScoringRuleInput{{Operator: models.RuleOpLT, BoundLow: 1, Points: 120}}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildRules(tt.inputs); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
