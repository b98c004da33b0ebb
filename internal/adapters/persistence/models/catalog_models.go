package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog (Master) Tables
// ============================================================

// SavingsProduct jenis simpanan (Master)
type SavingsProduct struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	InterestRate float64        `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MinBalance   int64          `gorm:"not null;default:0" json:"min_balance"`
	AdminFee     int64          `gorm:"not null;default:0" json:"admin_fee"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SavingsProduct) TableName() string {
	return "savings_products"
}

// LoanCategory jenis pinjaman (Master)
type LoanCategory struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	InterestRate  float64        `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MaxTermMonths int            `gorm:"not null;default:12" json:"max_term_months"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanCategory) TableName() string {
	return "loan_categories"
}

// InterestRateTariff tarif bunga simpanan berjangka (Master)
type InterestRateTariff struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	TermMonths    int            `gorm:"not null;index" json:"term_months"`
	Rate          float64        `gorm:"type:decimal(5,2);not null" json:"rate"`
	EffectiveFrom *time.Time     `gorm:"type:date" json:"effective_from"`
	EffectiveTo   *time.Time     `gorm:"type:date" json:"effective_to"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InterestRateTariff) TableName() string {
	return "interest_rate_tariffs"
}

// CoversDate reports whether the tariff is effective at the given date
func (t *InterestRateTariff) CoversDate(date time.Time) bool {
	if t.EffectiveFrom != nil && date.Before(*t.EffectiveFrom) {
		return false
	}
	if t.EffectiveTo != nil && date.After(*t.EffectiveTo) {
		return false
	}
	return true
}

// AssetCategory golongan aset (Master)
type AssetCategory struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Code             string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name             string         `gorm:"size:100;not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	UsefulLifeMonths int            `gorm:"not null;default:48" json:"useful_life_months"`
	ResidualPercent  float64        `gorm:"type:decimal(5,2);not null;default:0" json:"residual_percent"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AssetCategory) TableName() string {
	return "asset_categories"
}

// AssetLocation lokasi aset (Master)
type AssetLocation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AssetLocation) TableName() string {
	return "asset_locations"
}

// ScoringCriterion kriteria penilaian kredit (Master)
type ScoringCriterion struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	WeightPercent float64        `gorm:"type:decimal(5,2);not null" json:"weight_percent"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Rules []ScoringRule `gorm:"foreignKey:CriterionID" json:"rules,omitempty"`
}

func (ScoringCriterion) TableName() string {
	return "scoring_criteria"
}

// Scoring rule operators
const (
	RuleOpLT      = "lt"
	RuleOpLTE     = "lte"
	RuleOpGT      = "gt"
	RuleOpGTE     = "gte"
	RuleOpBetween = "between"
)

// ScoringRule aturan penilaian per kriteria
type ScoringRule struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CriterionID uint           `gorm:"not null;index" json:"criterion_id"`
	Operator    string         `gorm:"size:10;not null" json:"operator"`
	BoundLow    float64        `gorm:"type:decimal(15,2)" json:"bound_low"`
	BoundHigh   float64        `gorm:"type:decimal(15,2)" json:"bound_high"`
	Points      int            `gorm:"not null" json:"points"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Criterion *ScoringCriterion `gorm:"foreignKey:CriterionID" json:"criterion,omitempty"`
}

func (ScoringRule) TableName() string {
	return "scoring_rules"
}

// Matches reports whether a value satisfies the rule
func (r *ScoringRule) Matches(value float64) bool {
	switch r.Operator {
	case RuleOpLT:
		return value < r.BoundLow
	case RuleOpLTE:
		return value <= r.BoundLow
	case RuleOpGT:
		return value > r.BoundLow
	case RuleOpGTE:
		return value >= r.BoundLow
	case RuleOpBetween:
		return value >= r.BoundLow && value <= r.BoundHigh
	default:
		return false
	}
}
