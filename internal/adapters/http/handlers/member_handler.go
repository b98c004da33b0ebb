package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/config"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MemberHandler handles member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
	cfg           *config.Config
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, cfg *config.Config) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		cfg:           cfg,
	}
}

// actorID extracts the authenticated operator ID from locals
func actorID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// CreateMember handles member registration
// @Summary Create member
// @Description Register a new member (individu or perusahaan)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MemberInput true "Member data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.CreateMember(c.Context(), actorID(c), &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", member)
}

// ListMembers handles member listing with filters
// @Summary List members
// @Description List members with search, status, type, and join date filters
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param status query int false "Status filter (0 pending, 1 approved, 2 rejected)"
// @Param member_type query string false "Member type (individu or perusahaan)"
// @Param date_from query string false "Join date from (yyyy-mm-dd)"
// @Param date_to query string false "Join date to (yyyy-mm-dd)"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := &repositories.MemberFilter{
		Search:     c.Query("search"),
		Status:     queryIntPtr(c, "status"),
		MemberType: c.Query("member_type"),
		DateFrom:   queryDatePtr(c, "date_from"),
		DateTo:     queryDatePtr(c, "date_to"),
	}

	window, err := h.memberService.ListMembers(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve members")
	}

	return response.Success(c, "Members retrieved successfully", window)
}

// GetMember handles fetching a single member with documents
// @Summary Get member
// @Description Get a member by ID with its documents
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetMember(c.Context(), id)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve member")
	}

	return response.Success(c, "Member retrieved successfully", member)
}

// UpdateMember handles member update
// @Summary Update member
// @Description Update a member's registration data
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.MemberInput true "Member data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.UpdateMember(c.Context(), actorID(c), id, &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to update member")
	}

	return response.Success(c, "Member updated successfully", member)
}

// ApproveMember handles member approval
// @Summary Approve member
// @Description Approve a pending member registration
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.DecisionInput false "Decision remark"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members/{id}/approve [post]
func (h *MemberHandler) ApproveMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.DecisionInput
	_ = c.BodyParser(&input)

	member, err := h.memberService.ApproveMember(c.Context(), actorID(c), id, &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to approve member")
	}

	return response.Success(c, "Member approved successfully", member)
}

// RejectMember handles member rejection
// @Summary Reject member
// @Description Reject a pending member registration
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.DecisionInput false "Decision remark"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /members/{id}/reject [post]
func (h *MemberHandler) RejectMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.DecisionInput
	_ = c.BodyParser(&input)

	member, err := h.memberService.RejectMember(c.Context(), actorID(c), id, &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to reject member")
	}

	return response.Success(c, "Member rejected successfully", member)
}

// DeleteMember handles member deletion
// @Summary Delete member
// @Description Delete a member by ID
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.DeleteMember(c.Context(), actorID(c), id); err != nil {
		return h.mapMemberError(c, err, "Failed to delete member")
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// GetMemberAudit returns the audit trail for a member
// @Summary Get member audit trail
// @Description Get audit entries for a member, newest first
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/{id}/audit [get]
func (h *MemberHandler) GetMemberAudit(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	entries, err := h.memberService.GetMemberAudit(c.Context(), id)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve audit trail")
	}

	return response.Success(c, "Audit trail retrieved successfully", entries)
}

// mapMemberError maps member domain errors to HTTP responses
func (h *MemberHandler) mapMemberError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, "Member not found")
	case errors.Is(err, domain.ErrDocumentNotFound):
		return response.NotFound(c, "Document not found")
	case errors.Is(err, domain.ErrDeathClaimNotFound):
		return response.NotFound(c, "Death claim not found")
	case errors.Is(err, domain.ErrMemberCodeTaken):
		return response.Conflict(c, "Member code already taken")
	case errors.Is(err, domain.ErrAlreadyDecided):
		return response.Conflict(c, "Record has already been decided")
	case errors.Is(err, domain.ErrMemberNotApproved):
		return response.BadRequest(c, "Member is not approved")
	case errors.Is(err, domain.ErrInvalidMemberType):
		return response.UnprocessableEntity(c, "Member profile does not match member type")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ============================================================
// Documents
// ============================================================

// UploadDocument handles member document upload
// @Summary Upload member document
// @Description Upload a document file for a member (multipart)
// @Tags Members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param doc_type formData string true "Document type"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /members/{id}/documents [post]
func (h *MemberHandler) UploadDocument(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	docType := c.FormValue("doc_type")
	if docType == "" {
		return response.BadRequest(c, "Document type is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Document file is required")
	}

	maxSize := int64(h.cfg.Upload.MaxSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return response.BadRequest(c, fmt.Sprintf("File exceeds maximum size of %d MB", h.cfg.Upload.MaxSizeMB))
	}

	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return response.InternalServerError(c, "Failed to prepare upload directory")
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(h.cfg.Upload.Dir, storedName)
	if err := c.SaveFile(file, storedPath); err != nil {
		return response.InternalServerError(c, "Failed to save uploaded file")
	}

	doc, err := h.memberService.AddDocument(c.Context(), actorID(c), id, docType, file.Filename, storedPath, file.Size)
	if err != nil {
		_ = os.Remove(storedPath)
		return h.mapMemberError(c, err, "Failed to record document")
	}

	return response.Created(c, "Document uploaded successfully", doc)
}

// ListDocuments returns a member's documents
// @Summary List member documents
// @Description List all documents uploaded for a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Envelope
// @Router /members/{id}/documents [get]
func (h *MemberHandler) ListDocuments(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	docs, err := h.memberService.ListDocuments(c.Context(), id)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve documents")
	}

	return response.Success(c, "Documents retrieved successfully", docs)
}

// DownloadDocument streams a stored document file
// @Summary Download member document
// @Description Download a member document by document ID
// @Tags Members
// @Produce octet-stream
// @Security BearerAuth
// @Param docId path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /members/documents/{docId} [get]
func (h *MemberHandler) DownloadDocument(c *fiber.Ctx) error {
	docID, err := parseParamUint(c, "docId")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.memberService.GetDocument(c.Context(), docID)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve document")
	}

	return c.Download(doc.FilePath, doc.FileName)
}

// DeleteDocument removes a member document
// @Summary Delete member document
// @Description Delete a member document by document ID
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param docId path int true "Document ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /members/documents/{docId} [delete]
func (h *MemberHandler) DeleteDocument(c *fiber.Ctx) error {
	docID, err := parseParamUint(c, "docId")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.memberService.GetDocument(c.Context(), docID)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve document")
	}

	if err := h.memberService.DeleteDocument(c.Context(), docID); err != nil {
		return h.mapMemberError(c, err, "Failed to delete document")
	}

	_ = os.Remove(doc.FilePath)

	return response.Success(c, "Document deleted successfully", nil)
}

// ============================================================
// Death Claims
// ============================================================

// CreateDeathClaim registers a death claim for an approved member
// @Summary Create death claim
// @Description Register a death claim for an approved member
// @Tags DeathClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DeathClaimInput true "Claim data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /death-claims [post]
func (h *MemberHandler) CreateDeathClaim(c *fiber.Ctx) error {
	var input services.DeathClaimInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	claim, err := h.memberService.CreateDeathClaim(c.Context(), actorID(c), &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to create death claim")
	}

	return response.Created(c, "Death claim created successfully", claim)
}

// ListDeathClaims lists death claims with filters
// @Summary List death claims
// @Description List death claims with search, status, and member filters
// @Tags DeathClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by claim number or beneficiary"
// @Param status query int false "Status filter"
// @Param member_id query int false "Member ID filter"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /death-claims [get]
func (h *MemberHandler) ListDeathClaims(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := &repositories.DeathClaimFilter{
		Search:   c.Query("search"),
		Status:   queryIntPtr(c, "status"),
		MemberID: queryUintPtr(c, "member_id"),
	}

	window, err := h.memberService.ListDeathClaims(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve death claims")
	}

	return response.Success(c, "Death claims retrieved successfully", window)
}

// GetDeathClaim fetches a single death claim
// @Summary Get death claim
// @Description Get a death claim by ID
// @Tags DeathClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /death-claims/{id} [get]
func (h *MemberHandler) GetDeathClaim(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.memberService.GetDeathClaim(c.Context(), id)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to retrieve death claim")
	}

	return response.Success(c, "Death claim retrieved successfully", claim)
}

// ApproveDeathClaim approves a pending death claim
// @Summary Approve death claim
// @Description Approve a pending death claim
// @Tags DeathClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param body body services.DecisionInput false "Decision remark"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /death-claims/{id}/approve [post]
func (h *MemberHandler) ApproveDeathClaim(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var input services.DecisionInput
	_ = c.BodyParser(&input)

	claim, err := h.memberService.ApproveDeathClaim(c.Context(), actorID(c), id, &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to approve death claim")
	}

	return response.Success(c, "Death claim approved successfully", claim)
}

// RejectDeathClaim rejects a pending death claim
// @Summary Reject death claim
// @Description Reject a pending death claim
// @Tags DeathClaims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Claim ID"
// @Param body body services.DecisionInput false "Decision remark"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /death-claims/{id}/reject [post]
func (h *MemberHandler) RejectDeathClaim(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var input services.DecisionInput
	_ = c.BodyParser(&input)

	claim, err := h.memberService.RejectDeathClaim(c.Context(), actorID(c), id, &input)
	if err != nil {
		return h.mapMemberError(c, err, "Failed to reject death claim")
	}

	return response.Success(c, "Death claim rejected successfully", claim)
}

// parseParamUint parses a named uint route parameter
func parseParamUint(c *fiber.Ctx, name string) (uint, error) {
	return parseUintValue(c.Params(name))
}
