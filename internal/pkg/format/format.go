package format

import (
	"strconv"
	"strings"
	"time"
)

// Rupiah formats an amount as localized currency with zero decimal places.
// Negative (expense) values are parenthesized rather than signed.
func Rupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	formatted := "Rp " + b.String()
	if negative {
		return "(" + formatted + ")"
	}
	return formatted
}

// Date formats a date in the dd/mm/yyyy pattern used across reports
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// DatePtr formats an optional date
func DatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Date(*t)
}

// Period formats a month period as YYYY-MM
func Period(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Workflow status labels (Pending=0, Approved=1, Rejected=2)
var workflowLabels = map[int]string{
	0: "Pending",
	1: "Approved",
	2: "Rejected",
}

// WorkflowStatus renders a tri-state workflow status code as a label
func WorkflowStatus(status int) string {
	if label, ok := workflowLabels[status]; ok {
		return label
	}
	return "Unknown"
}

// CatalogStatus renders a binary catalog status flag as a label
func CatalogStatus(active bool) string {
	if active {
		return "Aktif"
	}
	return "Nonaktif"
}
