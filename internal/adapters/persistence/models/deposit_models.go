package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Savings & Time Deposit Tables
// ============================================================

// SavingsAccount rekening simpanan anggota
type SavingsAccount struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AccountNo string         `gorm:"size:30;uniqueIndex;not null" json:"account_no"`
	MemberID  uint           `gorm:"not null;index" json:"member_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Balance   int64          `gorm:"not null;default:0" json:"balance"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Member  *Member         `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Product *SavingsProduct `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

// Savings transaction types
const (
	SavingsTxDeposit   = "DEPOSIT"
	SavingsTxWithdraw  = "WITHDRAW"
	SavingsTxAutoDebit = "AUTO_DEBIT"
	SavingsTxInterest  = "INTEREST"
	SavingsTxSHU       = "SHU"
)

// SavingsTransaction mutasi simpanan
type SavingsTransaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AccountID    uint      `gorm:"not null;index" json:"account_id"`
	TxType       string    `gorm:"size:20;not null" json:"tx_type"`
	Amount       int64     `gorm:"not null" json:"amount"`
	BalanceAfter int64     `gorm:"not null" json:"balance_after"`
	Reference    string    `gorm:"size:50;index" json:"reference"`
	Description  string    `gorm:"type:text" json:"description"`
	PerformedBy  *uint     `json:"performed_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Account *SavingsAccount `gorm:"foreignKey:AccountID" json:"-"`
}

func (SavingsTransaction) TableName() string {
	return "savings_transactions"
}

// Bilyet statuses
const (
	BilyetStatusActive  = "ACTIVE"
	BilyetStatusMatured = "MATURED"
	BilyetStatusClosed  = "CLOSED"
)

// TimeDepositBilyet bilyet simpanan berjangka
type TimeDepositBilyet struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BilyetNo     string         `gorm:"size:40;uniqueIndex;not null" json:"bilyet_no"`
	MemberID     uint           `gorm:"not null;index" json:"member_id"`
	TariffID     uint           `gorm:"not null" json:"tariff_id"`
	Nominal      int64          `gorm:"not null" json:"nominal"`
	TermMonths   int            `gorm:"not null" json:"term_months"`
	Rate         float64        `gorm:"type:decimal(5,2);not null" json:"rate"`
	OpenDate     time.Time      `gorm:"type:date;not null" json:"open_date"`
	MaturityDate time.Time      `gorm:"type:date;not null" json:"maturity_date"`
	Rollover     bool           `gorm:"default:false" json:"rollover"`
	Status       string         `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Member *Member             `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Tariff *InterestRateTariff `gorm:"foreignKey:TariffID" json:"tariff,omitempty"`
}

func (TimeDepositBilyet) TableName() string {
	return "time_deposit_bilyets"
}

// InterestAccrual bunga berjalan per bilyet per periode (EOM output)
type InterestAccrual struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BilyetID  uint      `gorm:"not null;index:idx_accrual_bilyet_period,unique" json:"bilyet_id"`
	Period    string    `gorm:"size:7;not null;index:idx_accrual_bilyet_period,unique" json:"period"`
	Days      int       `gorm:"not null" json:"days"`
	Rate      float64   `gorm:"type:decimal(5,2);not null" json:"rate"`
	Amount    int64     `gorm:"not null" json:"amount"`
	RunID     uint      `gorm:"not null;index" json:"run_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Bilyet *TimeDepositBilyet `gorm:"foreignKey:BilyetID" json:"bilyet,omitempty"`
}

func (InterestAccrual) TableName() string {
	return "interest_accruals"
}
