package handlers

import (
	"errors"

	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"
	"koperasi-adminhub/internal/core/services"
	"koperasi-adminhub/internal/pkg/pagination"
	"koperasi-adminhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles master data catalog endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// catalogFilter builds the common search/is_active filter
func catalogFilter(c *fiber.Ctx) *repositories.CatalogFilter {
	return &repositories.CatalogFilter{
		Search:   c.Query("search"),
		IsActive: queryBoolPtr(c, "is_active"),
	}
}

// mapCatalogError maps catalog domain errors to HTTP responses
func mapCatalogError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Code already in use")
	case errors.Is(err, domain.ErrInvalidTerm):
		return response.BadRequest(c, "Invalid term in months")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ============================================================
// Savings Products
// ============================================================

// CreateSavingsProduct handles savings product creation
// @Summary Create savings product
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SavingsProductInput true "Product data"
// @Success 201 {object} response.Envelope
// @Router /catalog/savings-products [post]
func (h *CatalogHandler) CreateSavingsProduct(c *fiber.Ctx) error {
	var input services.SavingsProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.catalogService.CreateSavingsProduct(c.Context(), &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to create savings product")
	}

	return response.Created(c, "Savings product created successfully", product)
}

// ListSavingsProducts lists savings products
// @Summary List savings products
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /catalog/savings-products [get]
func (h *CatalogHandler) ListSavingsProducts(c *fiber.Ctx) error {
	window, err := h.catalogService.ListSavingsProducts(c.Context(), catalogFilter(c), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve savings products")
	}
	return response.Success(c, "Savings products retrieved successfully", window)
}

// GetSavingsProduct fetches a savings product
// @Summary Get savings product
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/savings-products/{id} [get]
func (h *CatalogHandler) GetSavingsProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.catalogService.GetSavingsProduct(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err, "Failed to retrieve savings product")
	}
	return response.Success(c, "Savings product retrieved successfully", product)
}

// UpdateSavingsProduct updates a savings product
// @Summary Update savings product
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.SavingsProductInput true "Product data"
// @Success 200 {object} response.Envelope
// @Router /catalog/savings-products/{id} [put]
func (h *CatalogHandler) UpdateSavingsProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.SavingsProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.catalogService.UpdateSavingsProduct(c.Context(), id, &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to update savings product")
	}
	return response.Success(c, "Savings product updated successfully", product)
}

// DeleteSavingsProduct deletes a savings product
// @Summary Delete savings product
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/savings-products/{id} [delete]
func (h *CatalogHandler) DeleteSavingsProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.catalogService.DeleteSavingsProduct(c.Context(), id); err != nil {
		return mapCatalogError(c, err, "Failed to delete savings product")
	}
	return response.Success(c, "Savings product deleted successfully", nil)
}

// ============================================================
// Loan Categories
// ============================================================

// CreateLoanCategory handles loan category creation
// @Summary Create loan category
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.LoanCategoryInput true "Category data"
// @Success 201 {object} response.Envelope
// @Router /catalog/loan-categories [post]
func (h *CatalogHandler) CreateLoanCategory(c *fiber.Ctx) error {
	var input services.LoanCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.CreateLoanCategory(c.Context(), &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to create loan category")
	}
	return response.Created(c, "Loan category created successfully", category)
}

// ListLoanCategories lists loan categories
// @Summary List loan categories
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /catalog/loan-categories [get]
func (h *CatalogHandler) ListLoanCategories(c *fiber.Ctx) error {
	window, err := h.catalogService.ListLoanCategories(c.Context(), catalogFilter(c), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve loan categories")
	}
	return response.Success(c, "Loan categories retrieved successfully", window)
}

// GetLoanCategory fetches a loan category
// @Summary Get loan category
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/loan-categories/{id} [get]
func (h *CatalogHandler) GetLoanCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.catalogService.GetLoanCategory(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err, "Failed to retrieve loan category")
	}
	return response.Success(c, "Loan category retrieved successfully", category)
}

// UpdateLoanCategory updates a loan category
// @Summary Update loan category
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body services.LoanCategoryInput true "Category data"
// @Success 200 {object} response.Envelope
// @Router /catalog/loan-categories/{id} [put]
func (h *CatalogHandler) UpdateLoanCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.LoanCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.UpdateLoanCategory(c.Context(), id, &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to update loan category")
	}
	return response.Success(c, "Loan category updated successfully", category)
}

// DeleteLoanCategory deletes a loan category
// @Summary Delete loan category
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/loan-categories/{id} [delete]
func (h *CatalogHandler) DeleteLoanCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.catalogService.DeleteLoanCategory(c.Context(), id); err != nil {
		return mapCatalogError(c, err, "Failed to delete loan category")
	}
	return response.Success(c, "Loan category deleted successfully", nil)
}

// ============================================================
// Interest Rate Tariffs
// ============================================================

// CreateTariff handles tariff creation
// @Summary Create interest rate tariff
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TariffInput true "Tariff data"
// @Success 201 {object} response.Envelope
// @Router /catalog/tariffs [post]
func (h *CatalogHandler) CreateTariff(c *fiber.Ctx) error {
	var input services.TariffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tariff, err := h.catalogService.CreateTariff(c.Context(), &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to create tariff")
	}
	return response.Created(c, "Tariff created successfully", tariff)
}

// ListTariffs lists tariffs
// @Summary List interest rate tariffs
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Param term_months query int false "Term filter in months"
// @Success 200 {object} response.Envelope
// @Router /catalog/tariffs [get]
func (h *CatalogHandler) ListTariffs(c *fiber.Ctx) error {
	window, err := h.catalogService.ListTariffs(c.Context(), catalogFilter(c), queryIntPtr(c, "term_months"), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve tariffs")
	}
	return response.Success(c, "Tariffs retrieved successfully", window)
}

// GetTariff fetches a tariff
// @Summary Get interest rate tariff
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tariff ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/tariffs/{id} [get]
func (h *CatalogHandler) GetTariff(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid tariff ID")
	}

	tariff, err := h.catalogService.GetTariff(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err, "Failed to retrieve tariff")
	}
	return response.Success(c, "Tariff retrieved successfully", tariff)
}

// UpdateTariff updates a tariff
// @Summary Update interest rate tariff
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tariff ID"
// @Param body body services.TariffInput true "Tariff data"
// @Success 200 {object} response.Envelope
// @Router /catalog/tariffs/{id} [put]
func (h *CatalogHandler) UpdateTariff(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid tariff ID")
	}

	var input services.TariffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tariff, err := h.catalogService.UpdateTariff(c.Context(), id, &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to update tariff")
	}
	return response.Success(c, "Tariff updated successfully", tariff)
}

// DeleteTariff deletes a tariff
// @Summary Delete interest rate tariff
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tariff ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/tariffs/{id} [delete]
func (h *CatalogHandler) DeleteTariff(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid tariff ID")
	}

	if err := h.catalogService.DeleteTariff(c.Context(), id); err != nil {
		return mapCatalogError(c, err, "Failed to delete tariff")
	}
	return response.Success(c, "Tariff deleted successfully", nil)
}

// ============================================================
// Asset Categories
// ============================================================

// CreateAssetCategory handles asset category creation
// @Summary Create asset category
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssetCategoryInput true "Category data"
// @Success 201 {object} response.Envelope
// @Router /catalog/asset-categories [post]
func (h *CatalogHandler) CreateAssetCategory(c *fiber.Ctx) error {
	var input services.AssetCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.CreateAssetCategory(c.Context(), &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to create asset category")
	}
	return response.Created(c, "Asset category created successfully", category)
}

// ListAssetCategories lists asset categories
// @Summary List asset categories
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-categories [get]
func (h *CatalogHandler) ListAssetCategories(c *fiber.Ctx) error {
	window, err := h.catalogService.ListAssetCategories(c.Context(), catalogFilter(c), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve asset categories")
	}
	return response.Success(c, "Asset categories retrieved successfully", window)
}

// GetAssetCategory fetches an asset category
// @Summary Get asset category
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-categories/{id} [get]
func (h *CatalogHandler) GetAssetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.catalogService.GetAssetCategory(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err, "Failed to retrieve asset category")
	}
	return response.Success(c, "Asset category retrieved successfully", category)
}

// UpdateAssetCategory updates an asset category
// @Summary Update asset category
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body services.AssetCategoryInput true "Category data"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-categories/{id} [put]
func (h *CatalogHandler) UpdateAssetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.AssetCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.UpdateAssetCategory(c.Context(), id, &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to update asset category")
	}
	return response.Success(c, "Asset category updated successfully", category)
}

// DeleteAssetCategory deletes an asset category
// @Summary Delete asset category
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-categories/{id} [delete]
func (h *CatalogHandler) DeleteAssetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.catalogService.DeleteAssetCategory(c.Context(), id); err != nil {
		return mapCatalogError(c, err, "Failed to delete asset category")
	}
	return response.Success(c, "Asset category deleted successfully", nil)
}

// ============================================================
// Asset Locations
// ============================================================

// CreateAssetLocation handles asset location creation
// @Summary Create asset location
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssetLocationInput true "Location data"
// @Success 201 {object} response.Envelope
// @Router /catalog/asset-locations [post]
func (h *CatalogHandler) CreateAssetLocation(c *fiber.Ctx) error {
	var input services.AssetLocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	location, err := h.catalogService.CreateAssetLocation(c.Context(), &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to create asset location")
	}
	return response.Created(c, "Asset location created successfully", location)
}

// ListAssetLocations lists asset locations
// @Summary List asset locations
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by code or name"
// @Param is_active query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-locations [get]
func (h *CatalogHandler) ListAssetLocations(c *fiber.Ctx) error {
	window, err := h.catalogService.ListAssetLocations(c.Context(), catalogFilter(c), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve asset locations")
	}
	return response.Success(c, "Asset locations retrieved successfully", window)
}

// GetAssetLocation fetches an asset location
// @Summary Get asset location
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-locations/{id} [get]
func (h *CatalogHandler) GetAssetLocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	location, err := h.catalogService.GetAssetLocation(c.Context(), id)
	if err != nil {
		return mapCatalogError(c, err, "Failed to retrieve asset location")
	}
	return response.Success(c, "Asset location retrieved successfully", location)
}

// UpdateAssetLocation updates an asset location
// @Summary Update asset location
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param body body services.AssetLocationInput true "Location data"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-locations/{id} [put]
func (h *CatalogHandler) UpdateAssetLocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	var input services.AssetLocationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	location, err := h.catalogService.UpdateAssetLocation(c.Context(), id, &input)
	if err != nil {
		return mapCatalogError(c, err, "Failed to update asset location")
	}
	return response.Success(c, "Asset location updated successfully", location)
}

// DeleteAssetLocation deletes an asset location
// @Summary Delete asset location
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/asset-locations/{id} [delete]
func (h *CatalogHandler) DeleteAssetLocation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	if err := h.catalogService.DeleteAssetLocation(c.Context(), id); err != nil {
		return mapCatalogError(c, err, "Failed to delete asset location")
	}
	return response.Success(c, "Asset location deleted successfully", nil)
}
