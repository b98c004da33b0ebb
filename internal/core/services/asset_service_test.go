package services

import (
	"testing"

	"koperasi-adminhub/internal/adapters/persistence/models"
)

func TestMonthlyDepreciation(t *testing.T) {
	tests := []struct {
		name            string
		cost            int64
		residualPercent float64
		lifeMonths      int
		want            int64
	}{
		// (48,000,000 - 4,800,000) / 48 = 900,000
		{"electronics", 48_000_000, 10, 48, 900_000},
		// no residual: 12,000,000 / 96 = 125,000
		{"furniture no residual", 12_000_000, 0, 96, 125_000},
		// (1,000,000 - 200,000) / 96 = 8,333.33 -> 8,333
		{"rounded down", 1_000_000, 20, 96, 8333},
		{"zero cost", 0, 10, 48, 0},
		{"zero life", 1_000_000, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyDepreciation(tt.cost, tt.residualPercent, tt.lifeMonths)
			if got != tt.want {
				t.Errorf("MonthlyDepreciation = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResidualValue(t *testing.T) {
	if got := ResidualValue(48_000_000, 10); got != 4_800_000 {
		t.Errorf("ResidualValue = %d, want 4800000", got)
	}
	if got := ResidualValue(1_000_000, 0); got != 0 {
		t.Errorf("ResidualValue = %d, want 0", got)
	}
}

func TestDepreciationLine(t *testing.T) {
	asset := &models.FixedAsset{
		AcquisitionCost: 1_000_000,
		Category: &models.AssetCategory{
			UsefulLifeMonths: 12,
			ResidualPercent:  10,
		},
	}
	// floor 100,000; monthly (1,000,000 - 100,000) / 12 = 75,000

	t.Run("normal month", func(t *testing.T) {
		expense, acc, book := DepreciationLine(asset, 0)
		if expense != 75_000 || acc != 75_000 || book != 925_000 {
			t.Errorf("got (%d, %d, %d), want (75000, 75000, 925000)", expense, acc, book)
		}
	})

	t.Run("final month clamps to residual floor", func(t *testing.T) {
		expense, acc, book := DepreciationLine(asset, 850_000)
		if expense != 50_000 || acc != 900_000 || book != 100_000 {
			t.Errorf("got (%d, %d, %d), want (50000, 900000, 100000)", expense, acc, book)
		}
	})

	t.Run("fully depreciated posts nothing", func(t *testing.T) {
		expense, acc, book := DepreciationLine(asset, 900_000)
		if expense != 0 || acc != 900_000 || book != 100_000 {
			t.Errorf("got (%d, %d, %d), want (0, 900000, 100000)", expense, acc, book)
		}
	})

	t.Run("missing category posts nothing", func(t *testing.T) {
		bare := &models.FixedAsset{AcquisitionCost: 500_000}
		expense, acc, book := DepreciationLine(bare, 100_000)
		if expense != 0 || acc != 100_000 || book != 400_000 {
			t.Errorf("got (%d, %d, %d), want (0, 100000, 400000)", expense, acc, book)
		}
	})
}
