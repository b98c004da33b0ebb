package format

import (
	"testing"
	"time"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{2500000, "Rp 2.500.000"},
		{1234567890, "Rp 1.234.567.890"},
		{-75000, "(Rp 75.000)"},
	}

	for _, tt := range tests {
		if got := Rupiah(tt.amount); got != tt.want {
			t.Errorf("Rupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 10, 30, 0, 0, time.UTC)
	if got := Date(d); got != "07/03/2025" {
		t.Errorf("Date = %q, want 07/03/2025", got)
	}
	if got := Date(time.Time{}); got != "" {
		t.Errorf("zero date = %q, want empty", got)
	}
	if got := DatePtr(nil); got != "" {
		t.Errorf("nil date = %q, want empty", got)
	}
}

func TestWorkflowStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{0, "Pending"},
		{1, "Approved"},
		{2, "Rejected"},
		{9, "Unknown"},
	}

	for _, tt := range tests {
		if got := WorkflowStatus(tt.status); got != tt.want {
			t.Errorf("WorkflowStatus(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestCatalogStatus(t *testing.T) {
	if got := CatalogStatus(true); got != "Aktif" {
		t.Errorf("CatalogStatus(true) = %q", got)
	}
	if got := CatalogStatus(false); got != "Nonaktif" {
		t.Errorf("CatalogStatus(false) = %q", got)
	}
}
