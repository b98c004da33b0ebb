package handlers

import (
	"errors"
	"time"

	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClosingHandler handles period closing and auto debit run endpoints
type ClosingHandler struct {
	closingService *services.ClosingService
	debitService   *services.AutoDebitService
}

// NewClosingHandler creates a new closing handler
func NewClosingHandler(closingService *services.ClosingService, debitService *services.AutoDebitService) *ClosingHandler {
	return &ClosingHandler{
		closingService: closingService,
		debitService:   debitService,
	}
}

// mapClosingError maps closing errors to HTTP responses
func mapClosingError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		return response.NotFound(c, "Run not found")
	case errors.Is(err, domain.ErrPeriodAlreadyClosed):
		return response.Conflict(c, "Period has already been closed")
	case errors.Is(err, domain.ErrPeriodInProgress):
		return response.Conflict(c, "A closing run for this period is still in progress")
	case errors.Is(err, domain.ErrIncompleteYear):
		return response.UnprocessableEntity(c, "All twelve months must be closed before year-end closing")
	case errors.Is(err, services.ErrRunAlreadyToday):
		return response.Conflict(c, "Auto debit has already run today")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// MonthEndRequest names the period to close
type MonthEndRequest struct {
	Period string `json:"period"`
}

// YearEndRequest names the fiscal year to close
type YearEndRequest struct {
	Year int `json:"year"`
}

// TriggerMonthEnd starts an asynchronous month-end closing run
// @Summary Trigger month-end closing
// @Description Start interest accrual and depreciation posting for a period. The run executes in the background; poll the run for status.
// @Tags Closing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MonthEndRequest true "Period (yyyy-mm)"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /closing/month-end [post]
func (h *ClosingHandler) TriggerMonthEnd(c *fiber.Ctx) error {
	var req MonthEndRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := services.ValidatePeriod(req.Period); err != nil {
		return response.BadRequest(c, "Period must be in yyyy-mm format")
	}

	actor := actorID(c)
	run, err := h.closingService.TriggerMonthEnd(c.Context(), &actor, req.Period)
	if err != nil {
		return mapClosingError(c, err, "Failed to trigger month-end closing")
	}

	return response.Accepted(c, "Month-end closing started", run)
}

// TriggerYearEnd starts an asynchronous year-end closing run
// @Summary Trigger year-end closing
// @Description Mature or roll over time deposits for the fiscal year. Requires all twelve months closed.
// @Tags Closing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body YearEndRequest true "Fiscal year"
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /closing/year-end [post]
func (h *ClosingHandler) TriggerYearEnd(c *fiber.Ctx) error {
	var req YearEndRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Year < 2000 || req.Year > 2200 {
		return response.BadRequest(c, "Invalid fiscal year")
	}

	actor := actorID(c)
	run, err := h.closingService.TriggerYearEnd(c.Context(), &actor, req.Year)
	if err != nil {
		return mapClosingError(c, err, "Failed to trigger year-end closing")
	}

	return response.Accepted(c, "Year-end closing started", run)
}

// GetClosingRun fetches a closing run for status polling
// @Summary Get closing run
// @Tags Closing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /closing/runs/{id} [get]
func (h *ClosingHandler) GetClosingRun(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid run ID")
	}

	run, err := h.closingService.GetRun(c.Context(), id)
	if err != nil {
		return mapClosingError(c, err, "Failed to retrieve run")
	}
	return response.Success(c, "Run retrieved successfully", run)
}

// ListClosingRuns lists closing runs, newest first
// @Summary List closing runs
// @Tags Closing
// @Produce json
// @Security BearerAuth
// @Param closing_type query string false "Run type filter (EOM or EOY)"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /closing/runs [get]
func (h *ClosingHandler) ListClosingRuns(c *fiber.Ctx) error {
	window, err := h.closingService.ListRuns(c.Context(), c.Query("closing_type"), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve runs")
	}
	return response.Success(c, "Runs retrieved successfully", window)
}

// ============================================================
// Auto Debit
// ============================================================

// TriggerAutoDebit starts an asynchronous admin fee debit run
// @Summary Trigger auto debit run
// @Description Debit monthly admin fees from active savings accounts. The run executes in the background.
// @Tags Closing
// @Produce json
// @Security BearerAuth
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auto-debit/runs [post]
func (h *ClosingHandler) TriggerAutoDebit(c *fiber.Ctx) error {
	actor := actorID(c)
	run, err := h.debitService.TriggerRun(c.Context(), &actor, time.Now())
	if err != nil {
		return mapClosingError(c, err, "Failed to trigger auto debit run")
	}

	return response.Accepted(c, "Auto debit run started", run)
}

// GetAutoDebitRun fetches an auto debit run with its items
// @Summary Get auto debit run
// @Tags Closing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auto-debit/runs/{id} [get]
func (h *ClosingHandler) GetAutoDebitRun(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid run ID")
	}

	run, err := h.debitService.GetRun(c.Context(), id)
	if err != nil {
		return mapClosingError(c, err, "Failed to retrieve run")
	}
	return response.Success(c, "Run retrieved successfully", run)
}

// ListAutoDebitRuns lists auto debit runs, newest first
// @Summary List auto debit runs
// @Tags Closing
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /auto-debit/runs [get]
func (h *ClosingHandler) ListAutoDebitRuns(c *fiber.Ctx) error {
	window, err := h.debitService.ListRuns(c.Context(), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve runs")
	}
	return response.Success(c, "Runs retrieved successfully", window)
}
