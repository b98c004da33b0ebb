package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Closing & Batch Run Tables
// ============================================================

// Closing run types
const (
	ClosingTypeEOM = "EOM"
	ClosingTypeEOY = "EOY"
)

// Run statuses (closing, auto-debit, import)
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ClosingRun tutup buku bulanan/tahunan
type ClosingRun struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Period            string     `gorm:"size:7;not null;index" json:"period"`
	ClosingType       string     `gorm:"size:10;not null;index" json:"closing_type"`
	Status            string     `gorm:"size:20;not null;default:'RUNNING'" json:"status"`
	AccrualCount      int        `gorm:"not null;default:0" json:"accrual_count"`
	AccruedAmount     int64      `gorm:"not null;default:0" json:"accrued_amount"`
	DepreciationCount int        `gorm:"not null;default:0" json:"depreciation_count"`
	DepreciatedAmount int64      `gorm:"not null;default:0" json:"depreciated_amount"`
	MaturedCount      int        `gorm:"not null;default:0" json:"matured_count"`
	ErrorMessage      string     `gorm:"type:text" json:"error_message,omitempty"`
	TriggeredBy       *uint      `json:"triggered_by"`
	StartedAt         time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (ClosingRun) TableName() string {
	return "closing_runs"
}

// AutoDebitRun batch auto-debet simpanan
type AutoDebitRun struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RunNo       string     `gorm:"size:40;uniqueIndex;not null" json:"run_no"`
	RunDate     time.Time  `gorm:"type:date;not null;index" json:"run_date"`
	Status      string     `gorm:"size:20;not null;default:'RUNNING'" json:"status"`
	Processed   int        `gorm:"not null;default:0" json:"processed"`
	Failed      int        `gorm:"not null;default:0" json:"failed"`
	TotalAmount int64      `gorm:"not null;default:0" json:"total_amount"`
	TriggeredBy *uint      `json:"triggered_by"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Items []AutoDebitItem `gorm:"foreignKey:RunID" json:"items,omitempty"`
}

func (AutoDebitRun) TableName() string {
	return "auto_debit_runs"
}

// AutoDebitItem hasil per rekening dalam satu run
type AutoDebitItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     uint      `gorm:"not null;index" json:"run_id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Success   bool      `gorm:"not null" json:"success"`
	Reason    string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Account *SavingsAccount `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (AutoDebitItem) TableName() string {
	return "auto_debit_items"
}

// ImportRun hasil import massal (CSV)
type ImportRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunNo      string    `gorm:"size:40;uniqueIndex;not null" json:"run_no"`
	Resource   string    `gorm:"size:30;not null" json:"resource"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	Processed  int       `gorm:"not null;default:0" json:"processed"`
	Failed     int       `gorm:"not null;default:0" json:"failed"`
	RowErrors  string    `gorm:"type:text" json:"-"` // JSON map row -> reason
	UploadedBy uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

// ============================================================
// SHU Tables
// ============================================================

// SHUAllocation lembar alokasi SHU per tahun buku
type SHUAllocation struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FiscalYear   int            `gorm:"not null;uniqueIndex" json:"fiscal_year"`
	TotalSurplus int64          `gorm:"not null;default:0" json:"total_surplus"`
	Calculated   bool           `gorm:"default:false" json:"calculated"`
	Distributed  bool           `gorm:"default:false" json:"distributed"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Lines []SHUAllocationLine `gorm:"foreignKey:AllocationID" json:"lines,omitempty"`
}

func (SHUAllocation) TableName() string {
	return "shu_allocations"
}

// SHUAllocationLine baris persentase alokasi
type SHUAllocationLine struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AllocationID uint      `gorm:"not null;index" json:"allocation_id"`
	Category     string    `gorm:"size:50;not null" json:"category"`
	Percentage   float64   `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Nominal      int64     `gorm:"not null;default:0" json:"nominal"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SHUAllocationLine) TableName() string {
	return "shu_allocation_lines"
}

// SHUDistribution bagian SHU per anggota
type SHUDistribution struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AllocationID uint      `gorm:"not null;index" json:"allocation_id"`
	MemberID     uint      `gorm:"not null;index" json:"member_id"`
	Basis        int64     `gorm:"not null" json:"basis"`
	Amount       int64     `gorm:"not null" json:"amount"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (SHUDistribution) TableName() string {
	return "shu_distributions"
}
