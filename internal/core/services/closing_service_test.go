package services

import (
	"testing"
	"time"
)

func TestValidatePeriod(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06"}
	for _, p := range valid {
		if err := ValidatePeriod(p); err != nil {
			t.Errorf("ValidatePeriod(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{"", "2025", "2025-13", "2025-00", "2025-1", "202501", "2025-01-15", "abcd-01"}
	for _, p := range invalid {
		if err := ValidatePeriod(p); err == nil {
			t.Errorf("ValidatePeriod(%q) = nil, want error", p)
		}
	}
}

func TestCurrentPeriod(t *testing.T) {
	got := CurrentPeriod(time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC))
	if got != "2025-03" {
		t.Errorf("CurrentPeriod = %q, want 2025-03", got)
	}
}

func TestIsLastDayOfMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		if got := IsLastDayOfMonth(tt.date); got != tt.want {
			t.Errorf("IsLastDayOfMonth(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}
