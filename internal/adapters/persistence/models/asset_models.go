package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Fixed Asset Tables
// ============================================================

// FixedAsset aset tetap
type FixedAsset struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name            string         `gorm:"size:150;not null" json:"name"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	LocationID      uint           `gorm:"not null;index" json:"location_id"`
	AcquisitionDate time.Time      `gorm:"type:date;not null" json:"acquisition_date"`
	AcquisitionCost int64          `gorm:"not null" json:"acquisition_cost"`
	ImagePath       string         `gorm:"size:255" json:"-"`
	ImageName       string         `gorm:"size:255" json:"image_name,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Category *AssetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Location *AssetLocation `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (FixedAsset) TableName() string {
	return "fixed_assets"
}

// AssetDepreciation baris penyusutan bulanan (EOM output)
type AssetDepreciation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AssetID           uint      `gorm:"not null;index:idx_depr_asset_period,unique" json:"asset_id"`
	Period            string    `gorm:"size:7;not null;index:idx_depr_asset_period,unique" json:"period"`
	Amount            int64     `gorm:"not null" json:"amount"`
	AccumulatedAmount int64     `gorm:"not null" json:"accumulated_amount"`
	BookValue         int64     `gorm:"not null" json:"book_value"`
	RunID             uint      `gorm:"not null;index" json:"run_id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	Asset *FixedAsset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (AssetDepreciation) TableName() string {
	return "asset_depreciations"
}
