package services

import (
	"errors"
	"testing"

	"koperasi-adminhub/internal/core/domain"
)

func TestSplitByPercentages(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		percentages []float64
		want        []int64
	}{
		{"even split", 100000, []float64{40, 30, 20, 10}, []int64{40000, 30000, 20000, 10000}},
		{"largest remainder wins", 100, []float64{33.33, 33.33, 33.34}, []int64{33, 33, 34}},
		{"single line", 999, []float64{100}, []int64{999}},
		{"remainder tie broken by order", 1, []float64{50, 50}, []int64{1, 0}},
		{"zero total", 0, []float64{60, 40}, []int64{0, 0}},
		{"indivisible", 10, []float64{33.33, 33.33, 33.34}, []int64{3, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitByPercentages(tt.total, tt.percentages)
			if err != nil {
				t.Fatalf("SplitByPercentages() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			var sum int64
			for i, part := range got {
				if part != tt.want[i] {
					t.Errorf("part[%d] = %d, want %d", i, part, tt.want[i])
				}
				sum += part
			}
			if sum != tt.total {
				t.Errorf("parts sum = %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestSplitByPercentagesRejectsBadSum(t *testing.T) {
	tests := []struct {
		name        string
		percentages []float64
	}{
		{"sum below 100", []float64{50, 49}},
		{"sum above 100", []float64{50, 51}},
		{"near miss", []float64{33.33, 33.33, 33.33}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SplitByPercentages(1000, tt.percentages); !errors.Is(err, domain.ErrPercentagesNotWhole) {
				t.Errorf("error = %v, want ErrPercentagesNotWhole", err)
			}
		})
	}
}

func TestSplitByWeights(t *testing.T) {
	// Weights are proportions of their own sum, not percentages.
	parts := splitByWeights(1000, []float64{1, 1, 2})
	want := []int64{250, 250, 500}
	for i, p := range parts {
		if p != want[i] {
			t.Errorf("part[%d] = %d, want %d", i, p, want[i])
		}
	}

	// A zero weight never receives a share of the remainder.
	parts = splitByWeights(7, []float64{0, 1})
	if parts[0] != 0 || parts[1] != 7 {
		t.Errorf("parts = %v, want [0 7]", parts)
	}

	// All-zero weights distribute nothing.
	parts = splitByWeights(100, []float64{0, 0})
	if parts[0] != 0 || parts[1] != 0 {
		t.Errorf("parts = %v, want [0 0]", parts)
	}
}
