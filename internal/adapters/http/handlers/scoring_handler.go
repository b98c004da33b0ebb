package handlers

import (
	"errors"

	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScoringHandler handles loan eligibility scoring endpoints
type ScoringHandler struct {
	scoringService *services.ScoringService
}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler(scoringService *services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService}
}

// mapScoringError maps scoring errors to HTTP responses
func mapScoringError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Criterion not found")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Criterion code already in use")
	case errors.Is(err, services.ErrWeightSumInvalid):
		return response.UnprocessableEntity(c, "Active criteria weights must sum to 100")
	case errors.Is(err, services.ErrMissingValue):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoMatchingRule):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// CreateCriterion creates a scoring criterion with its rule bands
// @Summary Create scoring criterion
// @Tags Scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CriterionInput true "Criterion data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /scoring/criteria [post]
func (h *ScoringHandler) CreateCriterion(c *fiber.Ctx) error {
	var input services.CriterionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	criterion, err := h.scoringService.CreateCriterion(c.Context(), &input)
	if err != nil {
		return mapScoringError(c, err, "Failed to create criterion")
	}

	return response.Created(c, "Criterion created successfully", criterion)
}

// ListCriteria lists scoring criteria
// @Summary List scoring criteria
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /scoring/criteria [get]
func (h *ScoringHandler) ListCriteria(c *fiber.Ctx) error {
	window, err := h.scoringService.ListCriteria(c.Context(), catalogFilter(c), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve criteria")
	}
	return response.Success(c, "Criteria retrieved successfully", window)
}

// GetCriterion fetches a scoring criterion with its rules
// @Summary Get scoring criterion
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Criterion ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scoring/criteria/{id} [get]
func (h *ScoringHandler) GetCriterion(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid criterion ID")
	}

	criterion, err := h.scoringService.GetCriterion(c.Context(), id)
	if err != nil {
		return mapScoringError(c, err, "Failed to retrieve criterion")
	}
	return response.Success(c, "Criterion retrieved successfully", criterion)
}

// UpdateCriterion updates a criterion, replacing its rule bands
// @Summary Update scoring criterion
// @Tags Scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Criterion ID"
// @Param body body services.CriterionInput true "Criterion data"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scoring/criteria/{id} [put]
func (h *ScoringHandler) UpdateCriterion(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid criterion ID")
	}

	var input services.CriterionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	criterion, err := h.scoringService.UpdateCriterion(c.Context(), id, &input)
	if err != nil {
		return mapScoringError(c, err, "Failed to update criterion")
	}
	return response.Success(c, "Criterion updated successfully", criterion)
}

// DeleteCriterion deletes a criterion and its rules
// @Summary Delete scoring criterion
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Criterion ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scoring/criteria/{id} [delete]
func (h *ScoringHandler) DeleteCriterion(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid criterion ID")
	}

	if err := h.scoringService.DeleteCriterion(c.Context(), id); err != nil {
		return mapScoringError(c, err, "Failed to delete criterion")
	}
	return response.Success(c, "Criterion deleted successfully", nil)
}

// Score evaluates an applicant against the active criteria
// @Summary Score loan applicant
// @Tags Scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ScoreInput true "Applicant values keyed by criterion code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /scoring/score [post]
func (h *ScoringHandler) Score(c *fiber.Ctx) error {
	var input services.ScoreInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.scoringService.Score(c.Context(), &input)
	if err != nil {
		return mapScoringError(c, err, "Failed to score applicant")
	}
	return response.Success(c, "Applicant scored successfully", result)
}
