package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Operator Tables
// ============================================================

// User represents operator accounts (admin dashboard users)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Role      string         `gorm:"size:20;default:'OFFICER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Workflow Status (membership, death claims)
// ============================================================

const (
	StatusPending  = 0
	StatusApproved = 1
	StatusRejected = 2
)

// ============================================================
// Member Tables (anggota)
// ============================================================

// Member types (discriminant for the polymorphic profile)
const (
	MemberTypeIndividu   = "individu"
	MemberTypePerusahaan = "perusahaan"
)

// IndividuProfile holds fields specific to individual members
type IndividuProfile struct {
	NIK        string     `gorm:"size:20" json:"nik,omitempty"`
	BirthPlace string     `gorm:"size:100" json:"birth_place,omitempty"`
	BirthDate  *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Occupation string     `gorm:"size:100" json:"occupation,omitempty"`
}

// PerusahaanProfile holds fields specific to company members
type PerusahaanProfile struct {
	RegistrationNo string `gorm:"size:50" json:"registration_no,omitempty"`
	NPWP           string `gorm:"size:30" json:"npwp,omitempty"`
	ContactPerson  string `gorm:"size:100" json:"contact_person,omitempty"`
	ContactPhone   string `gorm:"size:30" json:"contact_phone,omitempty"`
}

// Member represents cooperative members. The member_type discriminant
// selects which embedded profile is meaningful; validation is exhaustive
// over both arms.
type Member struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Code       string             `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name       string             `gorm:"size:150;not null" json:"name"`
	MemberType string             `gorm:"size:20;not null;index" json:"member_type"`
	Address    string             `gorm:"type:text" json:"address"`
	Phone      string             `gorm:"size:30" json:"phone"`
	Email      string             `gorm:"size:100" json:"email"`
	JoinDate   time.Time          `gorm:"type:date" json:"join_date"`
	Status     int                `gorm:"not null;default:0;index" json:"status"`
	Individu   *IndividuProfile   `gorm:"embedded;embeddedPrefix:individu_" json:"individu,omitempty"`
	Perusahaan *PerusahaanProfile `gorm:"embedded;embeddedPrefix:perusahaan_" json:"perusahaan,omitempty"`
	DecidedBy  *uint              `json:"decided_by"`
	DecidedAt  *time.Time         `json:"decided_at"`
	Remark     string             `gorm:"type:text" json:"remark"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Documents []MemberDocument `gorm:"foreignKey:MemberID" json:"documents,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// MemberDocument represents uploaded member documents (KTP, forms, etc.)
type MemberDocument struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MemberID   uint      `gorm:"not null;index" json:"member_id"`
	DocType    string    `gorm:"size:50;not null" json:"doc_type"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FilePath   string    `gorm:"size:255;not null" json:"-"`
	FileSize   int64     `json:"file_size"`
	UploadedBy uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (MemberDocument) TableName() string {
	return "member_documents"
}

// DeathClaim represents death-claim workflow records (santunan)
type DeathClaim struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	MemberID    uint           `gorm:"not null;index" json:"member_id"`
	ClaimNo     string         `gorm:"size:30;uniqueIndex;not null" json:"claim_no"`
	DeathDate   time.Time      `gorm:"type:date;not null" json:"death_date"`
	Beneficiary string         `gorm:"size:150;not null" json:"beneficiary"`
	Amount      int64          `gorm:"not null" json:"amount"`
	Status      int            `gorm:"not null;default:0;index" json:"status"`
	DecidedBy   *uint          `json:"decided_by"`
	DecidedAt   *time.Time     `json:"decided_at"`
	Remark      string         `gorm:"type:text" json:"remark"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (DeathClaim) TableName() string {
	return "death_claims"
}

// ============================================================
// Audit Trail
// ============================================================

// AuditEntry records workflow transitions and closing outcomes
type AuditEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Entity      string    `gorm:"size:50;not null;index" json:"entity"`
	EntityID    uint      `gorm:"not null;index" json:"entity_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	FromStatus  *int      `json:"from_status"`
	ToStatus    *int      `json:"to_status"`
	Description string    `gorm:"type:text" json:"description"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

// Audit actions
const (
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionApprove = "APPROVE"
	AuditActionReject  = "REJECT"
	AuditActionDelete  = "DELETE"
	AuditActionClose   = "CLOSE"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Members
		&Member{},
		&MemberDocument{},
		&DeathClaim{},
		&AuditEntry{},
		// Catalog
		&SavingsProduct{},
		&LoanCategory{},
		&InterestRateTariff{},
		&AssetCategory{},
		&AssetLocation{},
		&ScoringCriterion{},
		&ScoringRule{},
		// Savings & deposits
		&SavingsAccount{},
		&SavingsTransaction{},
		&TimeDepositBilyet{},
		&InterestAccrual{},
		// Assets
		&FixedAsset{},
		&AssetDepreciation{},
		// Closing & batch
		&ClosingRun{},
		&AutoDebitRun{},
		&AutoDebitItem{},
		&ImportRun{},
		// SHU
		&SHUAllocation{},
		&SHUAllocationLine{},
		&SHUDistribution{},
	)
}
