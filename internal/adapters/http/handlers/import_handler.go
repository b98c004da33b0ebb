package handlers

import (
	"errors"
	"fmt"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ImportHandler handles member CSV import and export endpoints
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportMembers processes a member CSV upload row by row
// @Summary Import members from CSV
// @Description Import members from an uploaded CSV file. Bad rows are reported per row number and never abort the import.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /import/members [post]
func (h *ImportHandler) ImportMembers(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "CSV file is required")
	}

	src, err := file.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to open uploaded file")
	}
	defer src.Close()

	result, err := h.importService.ImportMembers(c.Context(), actorID(c), file.Filename, src)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "CSV header is invalid: code, name, and member_type columns are required")
		}
		return response.InternalServerError(c, "Failed to import members")
	}

	return response.Success(c, result.Message, result)
}

// DownloadTemplate serves the member import CSV template
// @Summary Download member import template
// @Tags Import
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /import/members/template [get]
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="member_import_template.csv"`)

	if err := h.importService.WriteTemplate(c.Response().BodyWriter()); err != nil {
		return response.InternalServerError(c, "Failed to generate template")
	}
	return nil
}

// ExportMembers streams the member registry as CSV
// @Summary Export members to CSV
// @Tags Import
// @Produce text/csv
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param status query int false "Status filter"
// @Param member_type query string false "Member type filter"
// @Success 200 {file} file
// @Router /import/members/export [get]
func (h *ImportHandler) ExportMembers(c *fiber.Ctx) error {
	filter := &repositories.MemberFilter{
		Search:     c.Query("search"),
		Status:     queryIntPtr(c, "status"),
		MemberType: c.Query("member_type"),
		DateFrom:   queryDatePtr(c, "date_from"),
		DateTo:     queryDatePtr(c, "date_to"),
	}

	fileName := fmt.Sprintf("members_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if err := h.importService.ExportMembers(c.Context(), filter, c.Response().BodyWriter()); err != nil {
		return response.InternalServerError(c, "Failed to export members")
	}
	return nil
}

// ExportBilyets streams the time deposit bilyet registry as CSV
// @Summary Export time deposit bilyets to CSV
// @Tags Import
// @Produce text/csv
// @Security BearerAuth
// @Param search query string false "Search by bilyet number"
// @Param status query string false "Status filter"
// @Param member_id query int false "Member ID filter"
// @Success 200 {file} file
// @Router /import/bilyets/export [get]
func (h *ImportHandler) ExportBilyets(c *fiber.Ctx) error {
	filter := &repositories.BilyetFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		MemberID: queryUintPtr(c, "member_id"),
	}

	fileName := fmt.Sprintf("bilyets_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if err := h.importService.ExportBilyets(c.Context(), filter, c.Response().BodyWriter()); err != nil {
		return response.InternalServerError(c, "Failed to export bilyets")
	}
	return nil
}

// ListImportRuns lists past import runs
// @Summary List import runs
// @Tags Import
// @Produce json
// @Security BearerAuth
// @Param resource query string false "Resource filter"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /import/runs [get]
func (h *ImportHandler) ListImportRuns(c *fiber.Ctx) error {
	window, err := h.importService.ListRuns(c.Context(), c.Query("resource"), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve import runs")
	}
	return response.Success(c, "Import runs retrieved successfully", window)
}
