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

// AssetHandler handles fixed asset endpoints
type AssetHandler struct {
	assetService *services.AssetService
	cfg          *config.Config
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService, cfg *config.Config) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		cfg:          cfg,
	}
}

// mapAssetError maps asset domain errors to HTTP responses
func mapAssetError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Asset not found")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Asset code already in use")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// CreateAsset registers a fixed asset
// @Summary Create fixed asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssetInput true "Asset data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var input services.AssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.CreateAsset(c.Context(), &input)
	if err != nil {
		return mapAssetError(c, err, "Failed to create asset")
	}

	return response.Created(c, "Asset created successfully", asset)
}

// ListAssets lists fixed assets with filters
// @Summary List fixed assets
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param category_id query int false "Category filter"
// @Param location_id query int false "Location filter"
// @Param is_active query bool false "Active filter"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	filter := &repositories.AssetFilter{
		Search:     c.Query("search"),
		CategoryID: queryUintPtr(c, "category_id"),
		LocationID: queryUintPtr(c, "location_id"),
		IsActive:   queryBoolPtr(c, "is_active"),
	}

	window, err := h.assetService.ListAssets(c.Context(), filter, pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve assets")
	}
	return response.Success(c, "Assets retrieved successfully", window)
}

// GetAsset fetches a fixed asset
// @Summary Get fixed asset
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	asset, err := h.assetService.GetAsset(c.Context(), id)
	if err != nil {
		return mapAssetError(c, err, "Failed to retrieve asset")
	}
	return response.Success(c, "Asset retrieved successfully", asset)
}

// UpdateAsset updates a fixed asset
// @Summary Update fixed asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.AssetInput true "Asset data"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.AssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.UpdateAsset(c.Context(), id, &input)
	if err != nil {
		return mapAssetError(c, err, "Failed to update asset")
	}
	return response.Success(c, "Asset updated successfully", asset)
}

// UploadImage attaches an image to an asset. The form is posted as
// multipart, so browser clients tunnel PUT through a _method field.
// @Summary Upload asset image
// @Tags Assets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param image formData file true "Asset image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assets/{id}/image [put]
func (h *AssetHandler) UploadImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	maxSize := int64(h.cfg.Upload.MaxSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return response.BadRequest(c, fmt.Sprintf("File exceeds maximum size of %d MB", h.cfg.Upload.MaxSizeMB))
	}

	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return response.BadRequest(c, "Image must be jpg, jpeg, png, or webp")
	}

	imageDir := filepath.Join(h.cfg.Upload.Dir, "assets")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return response.InternalServerError(c, "Failed to prepare upload directory")
	}

	storedPath := filepath.Join(imageDir, uuid.New().String()+ext)
	if err := c.SaveFile(file, storedPath); err != nil {
		return response.InternalServerError(c, "Failed to save image")
	}

	asset, err := h.assetService.AttachImage(c.Context(), id, storedPath, file.Filename)
	if err != nil {
		_ = os.Remove(storedPath)
		return mapAssetError(c, err, "Failed to attach image")
	}

	return response.Success(c, "Asset image uploaded successfully", asset)
}

// DeleteAsset deletes a fixed asset
// @Summary Delete fixed asset
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	if err := h.assetService.DeleteAsset(c.Context(), id); err != nil {
		return mapAssetError(c, err, "Failed to delete asset")
	}
	return response.Success(c, "Asset deleted successfully", nil)
}

// GetDepreciationSchedule returns posted depreciation lines for an asset
// @Summary Get asset depreciation schedule
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/{id}/depreciation [get]
func (h *AssetHandler) GetDepreciationSchedule(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	lines, err := h.assetService.GetDepreciationSchedule(c.Context(), id)
	if err != nil {
		return mapAssetError(c, err, "Failed to retrieve depreciation schedule")
	}
	return response.Success(c, "Depreciation schedule retrieved successfully", lines)
}
