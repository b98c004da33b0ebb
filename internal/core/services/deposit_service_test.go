package services

import (
	"testing"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
)

func TestAccrueInterest(t *testing.T) {
	tests := []struct {
		name    string
		nominal int64
		rate    float64
		days    int
		want    int64
	}{
		// 10,000,000 * 5% * 30/365 = 41,095.89 -> 41,096
		{"thirty days", 10_000_000, 5.00, 30, 41096},
		// full year at 4.5% is exactly the annual rate
		{"full year", 10_000_000, 4.50, 365, 450_000},
		// 50,000,000 * 5.75% * 31/365 = 244,178.08 -> 244,178
		{"december at twelve month rate", 50_000_000, 5.75, 31, 244178},
		// exact half rupiah rounds to even: 0.5 -> 0, 1.5 -> 2
		{"half rounds down to even", 5, 10.00, 365, 0},
		{"half rounds up to even", 15, 10.00, 365, 2},
		{"zero nominal", 0, 5.00, 30, 0},
		{"zero rate", 10_000_000, 0, 30, 0},
		{"zero days", 10_000_000, 5.00, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccrueInterest(tt.nominal, tt.rate, tt.days); got != tt.want {
				t.Errorf("AccrueInterest(%d, %v, %d) = %d, want %d", tt.nominal, tt.rate, tt.days, got, tt.want)
			}
		})
	}
}

func TestAccrualDaysInMonth(t *testing.T) {
	bilyet := &models.TimeDepositBilyet{
		OpenDate:     time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		MaturityDate: time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"opening month counts from open date", 2025, time.January, 17},
		{"mid-term full month", 2025, time.February, 28},
		{"maturity month counts to maturity date", 2025, time.July, 15},
		{"after maturity", 2025, time.August, 0},
		{"before open", 2024, time.December, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccrualDaysInMonth(bilyet, tt.year, tt.month); got != tt.want {
				t.Errorf("AccrualDaysInMonth(%d-%02d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestAccrualDaysInMonthLocalZone(t *testing.T) {
	// Dates recorded with a non-UTC offset must keep their local
	// calendar day. 2025-01-16 02:00 WIB is still the 15th in UTC,
	// but the bilyet opened on the 16th.
	wib := time.FixedZone("WIB", 7*3600)
	bilyet := &models.TimeDepositBilyet{
		OpenDate:     time.Date(2025, time.January, 16, 2, 0, 0, 0, wib),
		MaturityDate: time.Date(2025, time.July, 16, 2, 0, 0, 0, wib),
	}

	if got := AccrualDaysInMonth(bilyet, 2025, time.January); got != 16 {
		t.Errorf("January days = %d, want 16", got)
	}
	if got := AccrualDaysInMonth(bilyet, 2025, time.July); got != 16 {
		t.Errorf("July days = %d, want 16", got)
	}
}

func TestAccrualDaysInMonthSameDayTerm(t *testing.T) {
	// Open and maturity on the same day still accrues one day.
	bilyet := &models.TimeDepositBilyet{
		OpenDate:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		MaturityDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	if got := AccrualDaysInMonth(bilyet, 2025, time.March); got != 1 {
		t.Errorf("AccrualDaysInMonth = %d, want 1", got)
	}
}
