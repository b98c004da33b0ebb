package handlers

import (
	"errors"

	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SHUHandler handles annual surplus allocation endpoints
type SHUHandler struct {
	shuService *services.SHUService
}

// NewSHUHandler creates a new SHU handler
func NewSHUHandler(shuService *services.SHUService) *SHUHandler {
	return &SHUHandler{shuService: shuService}
}

// mapSHUError maps SHU errors to HTTP responses
func mapSHUError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrAllocationNotFound):
		return response.NotFound(c, "Allocation not found")
	case errors.Is(err, services.ErrAllocationExists):
		return response.Conflict(c, "Allocation for this fiscal year already exists")
	case errors.Is(err, services.ErrAllocationCalculated):
		return response.Conflict(c, "Allocation has already been calculated")
	case errors.Is(err, services.ErrAllocationDistributed):
		return response.Conflict(c, "Allocation has already been distributed")
	case errors.Is(err, services.ErrNoMemberBasis):
		return response.UnprocessableEntity(c, "No member savings basis available for distribution")
	case errors.Is(err, domain.ErrPercentagesNotWhole):
		return response.UnprocessableEntity(c, "Allocation line percentages must sum to exactly 100")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// CreateAllocation creates an allocation plan for a fiscal year
// @Summary Create SHU allocation
// @Tags SHU
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AllocationInput true "Allocation data"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /shu/allocations [post]
func (h *SHUHandler) CreateAllocation(c *fiber.Ctx) error {
	var input services.AllocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	allocation, err := h.shuService.CreateAllocation(c.Context(), &input)
	if err != nil {
		return mapSHUError(c, err, "Failed to create allocation")
	}

	return response.Created(c, "Allocation created successfully", allocation)
}

// ListAllocations lists SHU allocations, newest fiscal year first
// @Summary List SHU allocations
// @Tags SHU
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /shu/allocations [get]
func (h *SHUHandler) ListAllocations(c *fiber.Ctx) error {
	window, err := h.shuService.ListAllocations(c.Context(), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve allocations")
	}
	return response.Success(c, "Allocations retrieved successfully", window)
}

// GetAllocation fetches an allocation with its lines
// @Summary Get SHU allocation
// @Tags SHU
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shu/allocations/{id} [get]
func (h *SHUHandler) GetAllocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	allocation, err := h.shuService.GetAllocation(c.Context(), id)
	if err != nil {
		return mapSHUError(c, err, "Failed to retrieve allocation")
	}
	return response.Success(c, "Allocation retrieved successfully", allocation)
}

// UpdateAllocation updates an allocation that has not been calculated
// @Summary Update SHU allocation
// @Tags SHU
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Param body body services.AllocationInput true "Allocation data"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shu/allocations/{id} [put]
func (h *SHUHandler) UpdateAllocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	var input services.AllocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	allocation, err := h.shuService.UpdateAllocation(c.Context(), id, &input)
	if err != nil {
		return mapSHUError(c, err, "Failed to update allocation")
	}
	return response.Success(c, "Allocation updated successfully", allocation)
}

// DeleteAllocation deletes an allocation that has not been calculated
// @Summary Delete SHU allocation
// @Tags SHU
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shu/allocations/{id} [delete]
func (h *SHUHandler) DeleteAllocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	if err := h.shuService.DeleteAllocation(c.Context(), id); err != nil {
		return mapSHUError(c, err, "Failed to delete allocation")
	}
	return response.Success(c, "Allocation deleted successfully", nil)
}

// Calculate splits the total surplus across allocation lines
// @Summary Calculate SHU allocation
// @Tags SHU
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shu/allocations/{id}/calculate [post]
func (h *SHUHandler) Calculate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	allocation, err := h.shuService.Calculate(c.Context(), id)
	if err != nil {
		return mapSHUError(c, err, "Failed to calculate allocation")
	}
	return response.Success(c, "Allocation calculated successfully", allocation)
}

// DistributeRequest selects the allocation line distributed to members
type DistributeRequest struct {
	MemberCategory string `json:"member_category"`
}

// Distribute splits the member pool line across members by savings balance
// @Summary Distribute SHU to members
// @Tags SHU
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Param body body DistributeRequest true "Member pool line category"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /shu/allocations/{id}/distribute [post]
func (h *SHUHandler) Distribute(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	var req DistributeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MemberCategory == "" {
		return response.BadRequest(c, "Member category is required")
	}

	allocation, err := h.shuService.Distribute(c.Context(), id, req.MemberCategory)
	if err != nil {
		return mapSHUError(c, err, "Failed to distribute allocation")
	}
	return response.Success(c, "Allocation distributed successfully", allocation)
}

// ListDistributions lists per-member distribution rows
// @Summary List SHU distributions
// @Tags SHU
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /shu/allocations/{id}/distributions [get]
func (h *SHUHandler) ListDistributions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	window, err := h.shuService.ListDistributions(c.Context(), id, pagination.GetParams(c))
	if err != nil {
		return mapSHUError(c, err, "Failed to retrieve distributions")
	}
	return response.Success(c, "Distributions retrieved successfully", window)
}
