package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// MemberService handles membership business logic
type MemberService struct {
	memberRepo *repositories.MemberRepository
	docRepo    *repositories.MemberDocumentRepository
	claimRepo  *repositories.DeathClaimRepository
	auditRepo  *repositories.AuditRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo *repositories.MemberRepository,
	docRepo *repositories.MemberDocumentRepository,
	claimRepo *repositories.DeathClaimRepository,
	auditRepo *repositories.AuditRepository,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		docRepo:    docRepo,
		claimRepo:  claimRepo,
		auditRepo:  auditRepo,
	}
}

// MemberInput represents member create/update input.
// Exactly one profile must be set, matching MemberType.
type MemberInput struct {
	Code       string                    `json:"code" validate:"required,max=20"`
	Name       string                    `json:"name" validate:"required,max=150"`
	MemberType string                    `json:"member_type" validate:"required"`
	Address    string                    `json:"address"`
	Phone      string                    `json:"phone"`
	Email      string                    `json:"email"`
	JoinDate   time.Time                 `json:"join_date"`
	Individu   *models.IndividuProfile   `json:"individu"`
	Perusahaan *models.PerusahaanProfile `json:"perusahaan"`
}

// DecisionInput represents an approve/reject decision
type DecisionInput struct {
	Remark string `json:"remark"`
}

// validateProfile enforces the member type discriminant. Both arms are
// checked so an input carrying the wrong profile fails loudly.
func validateProfile(input *MemberInput) error {
	switch input.MemberType {
	case models.MemberTypeIndividu:
		if input.Individu == nil || input.Perusahaan != nil {
			return domain.ErrInvalidMemberType
		}
		if input.Individu.NIK == "" {
			return domain.ErrInvalidInput
		}
	case models.MemberTypePerusahaan:
		if input.Perusahaan == nil || input.Individu != nil {
			return domain.ErrInvalidMemberType
		}
		if input.Perusahaan.RegistrationNo == "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidMemberType
	}
	return nil
}

// CreateMember registers a new member in pending status
func (s *MemberService) CreateMember(ctx context.Context, actorID uint, input *MemberInput) (*models.Member, error) {
	if err := validateProfile(input); err != nil {
		return nil, err
	}

	taken, err := s.memberRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrMemberCodeTaken
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now()
	}

	member := &models.Member{
		Code:       input.Code,
		Name:       input.Name,
		MemberType: input.MemberType,
		Address:    input.Address,
		Phone:      input.Phone,
		Email:      input.Email,
		JoinDate:   joinDate,
		Status:     models.StatusPending,
		Individu:   input.Individu,
		Perusahaan: input.Perusahaan,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, member.ID, models.AuditActionCreate, nil, intPtr(models.StatusPending),
		fmt.Sprintf("Member %s registered", member.Code), actorID)

	log.Printf("✅ Member created: %s (%s)", member.Code, member.MemberType)
	return member, nil
}

// ListMembers lists members with pagination and filters
func (s *MemberService) ListMembers(ctx context.Context, filter *repositories.MemberFilter, params *pagination.Params) (*pagination.Window, error) {
	members, total, err := s.memberRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(members, params, total), nil
}

// GetMember gets a member by ID
func (s *MemberService) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// UpdateMember updates member data. The member type cannot change once
// the member is approved.
func (s *MemberService) UpdateMember(ctx context.Context, actorID, id uint, input *MemberInput) (*models.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateProfile(input); err != nil {
		return nil, err
	}
	if member.Status == models.StatusApproved && input.MemberType != member.MemberType {
		return nil, domain.ErrInvalidMemberType
	}

	if input.Code != member.Code {
		taken, err := s.memberRepo.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrMemberCodeTaken
		}
		member.Code = input.Code
	}

	member.Name = input.Name
	member.MemberType = input.MemberType
	member.Address = input.Address
	member.Phone = input.Phone
	member.Email = input.Email
	if !input.JoinDate.IsZero() {
		member.JoinDate = input.JoinDate
	}
	member.Individu = input.Individu
	member.Perusahaan = input.Perusahaan

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, member.ID, models.AuditActionUpdate, nil, nil,
		fmt.Sprintf("Member %s updated", member.Code), actorID)

	return member, nil
}

// ApproveMember moves a pending member to approved
func (s *MemberService) ApproveMember(ctx context.Context, actorID, id uint, input *DecisionInput) (*models.Member, error) {
	return s.decideMember(ctx, actorID, id, models.StatusApproved, models.AuditActionApprove, input.Remark)
}

// RejectMember moves a pending member to rejected
func (s *MemberService) RejectMember(ctx context.Context, actorID, id uint, input *DecisionInput) (*models.Member, error) {
	return s.decideMember(ctx, actorID, id, models.StatusRejected, models.AuditActionReject, input.Remark)
}

func (s *MemberService) decideMember(ctx context.Context, actorID, id uint, toStatus int, action, remark string) (*models.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.Status != models.StatusPending {
		return nil, domain.ErrAlreadyDecided
	}

	from := member.Status
	now := time.Now()
	member.Status = toStatus
	member.DecidedBy = &actorID
	member.DecidedAt = &now
	member.Remark = remark

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, member.ID, action, &from, &toStatus,
		fmt.Sprintf("Member %s %s", member.Code, action), actorID)

	log.Printf("✅ Member %s: %s", action, member.Code)
	return member, nil
}

// DeleteMember soft deletes a member
func (s *MemberService) DeleteMember(ctx context.Context, actorID, id uint) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	s.recordAudit(ctx, id, models.AuditActionDelete, nil, nil, "Member deleted", actorID)
	return nil
}

// GetMemberAudit lists the audit trail for a member
func (s *MemberService) GetMemberAudit(ctx context.Context, id uint) ([]*models.AuditEntry, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByEntity(ctx, "member", id)
}

// ============================================================
// Documents
// ============================================================

// AddDocument records an uploaded member document
func (s *MemberService) AddDocument(ctx context.Context, actorID, memberID uint, docType, fileName, filePath string, fileSize int64) (*models.MemberDocument, error) {
	if _, err := s.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	doc := &models.MemberDocument{
		MemberID:   memberID,
		DocType:    docType,
		FileName:   fileName,
		FilePath:   filePath,
		FileSize:   fileSize,
		UploadedBy: actorID,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments lists documents for a member
func (s *MemberService) ListDocuments(ctx context.Context, memberID uint) ([]*models.MemberDocument, error) {
	if _, err := s.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByMemberID(ctx, memberID)
}

// GetDocument gets a document by ID
func (s *MemberService) GetDocument(ctx context.Context, id uint) (*models.MemberDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document record
func (s *MemberService) DeleteDocument(ctx context.Context, id uint) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDocumentNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Death Claims
// ============================================================

// DeathClaimInput represents death claim input
type DeathClaimInput struct {
	MemberID    uint      `json:"member_id" validate:"required"`
	DeathDate   time.Time `json:"death_date" validate:"required"`
	Beneficiary string    `json:"beneficiary" validate:"required"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
}

// CreateDeathClaim files a death claim for an approved member
func (s *MemberService) CreateDeathClaim(ctx context.Context, actorID uint, input *DeathClaimInput) (*models.DeathClaim, error) {
	member, err := s.GetMember(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if member.Status != models.StatusApproved {
		return nil, domain.ErrMemberNotApproved
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	claim := &models.DeathClaim{
		MemberID:    input.MemberID,
		ClaimNo:     fmt.Sprintf("DC-%s-%d", time.Now().Format("200601"), time.Now().UnixNano()%1000000),
		DeathDate:   input.DeathDate,
		Beneficiary: input.Beneficiary,
		Amount:      input.Amount,
		Status:      models.StatusPending,
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.recordAuditEntity(ctx, "death_claim", claim.ID, models.AuditActionCreate, nil, intPtr(models.StatusPending),
		fmt.Sprintf("Death claim %s filed for member %s", claim.ClaimNo, member.Code), actorID)

	log.Printf("✅ Death claim filed: %s", claim.ClaimNo)
	return claim, nil
}

// ListDeathClaims lists death claims with pagination
func (s *MemberService) ListDeathClaims(ctx context.Context, filter *repositories.DeathClaimFilter, params *pagination.Params) (*pagination.Window, error) {
	claims, total, err := s.claimRepo.List(ctx, filter, params.Offset, params.Paginate)
	if err != nil {
		return nil, err
	}
	return pagination.NewWindow(claims, params, total), nil
}

// GetDeathClaim gets a death claim by ID
func (s *MemberService) GetDeathClaim(ctx context.Context, id uint) (*models.DeathClaim, error) {
	claim, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeathClaimNotFound
		}
		return nil, err
	}
	return claim, nil
}

// ApproveDeathClaim approves a pending death claim
func (s *MemberService) ApproveDeathClaim(ctx context.Context, actorID, id uint, input *DecisionInput) (*models.DeathClaim, error) {
	return s.decideDeathClaim(ctx, actorID, id, models.StatusApproved, models.AuditActionApprove, input.Remark)
}

// RejectDeathClaim rejects a pending death claim
func (s *MemberService) RejectDeathClaim(ctx context.Context, actorID, id uint, input *DecisionInput) (*models.DeathClaim, error) {
	return s.decideDeathClaim(ctx, actorID, id, models.StatusRejected, models.AuditActionReject, input.Remark)
}

func (s *MemberService) decideDeathClaim(ctx context.Context, actorID, id uint, toStatus int, action, remark string) (*models.DeathClaim, error) {
	claim, err := s.GetDeathClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	if claim.Status != models.StatusPending {
		return nil, domain.ErrAlreadyDecided
	}

	from := claim.Status
	now := time.Now()
	claim.Status = toStatus
	claim.DecidedBy = &actorID
	claim.DecidedAt = &now
	claim.Remark = remark

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.recordAuditEntity(ctx, "death_claim", claim.ID, action, &from, &toStatus,
		fmt.Sprintf("Death claim %s %s", claim.ClaimNo, action), actorID)

	log.Printf("✅ Death claim %s: %s", action, claim.ClaimNo)
	return claim, nil
}

// ============================================================
// Audit helpers
// ============================================================

func (s *MemberService) recordAudit(ctx context.Context, memberID uint, action string, from, to *int, description string, actorID uint) {
	s.recordAuditEntity(ctx, "member", memberID, action, from, to, description, actorID)
}

func (s *MemberService) recordAuditEntity(ctx context.Context, entity string, entityID uint, action string, from, to *int, description string, actorID uint) {
	entry := &models.AuditEntry{
		Entity:      entity,
		EntityID:    entityID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: actorID,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		// Audit failure must not fail the business operation
		log.Printf("⚠️ Failed to record audit entry: %v", err)
	}
}

func intPtr(v int) *int {
	return &v
}
