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

// DepositHandler handles savings account and time deposit endpoints
type DepositHandler struct {
	depositService *services.DepositService
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(depositService *services.DepositService) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// mapDepositError maps deposit domain errors to HTTP responses
func mapDepositError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, "Member not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, domain.ErrBilyetNotFound):
		return response.NotFound(c, "Bilyet not found")
	case errors.Is(err, domain.ErrTariffNotFound):
		return response.NotFound(c, "No active tariff for the requested term")
	case errors.Is(err, domain.ErrMemberNotApproved):
		return response.BadRequest(c, "Member is not approved")
	case errors.Is(err, domain.ErrBilyetNotActive):
		return response.Conflict(c, "Bilyet is not active")
	case errors.Is(err, domain.ErrInvalidTerm):
		return response.BadRequest(c, "Invalid term in months")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ============================================================
// Savings Accounts
// ============================================================

// OpenAccount opens a savings account for an approved member
// @Summary Open savings account
// @Tags Savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.OpenAccountInput true "Account data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /savings/accounts [post]
func (h *DepositHandler) OpenAccount(c *fiber.Ctx) error {
	var input services.OpenAccountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.depositService.OpenAccount(c.Context(), actorID(c), &input)
	if err != nil {
		return mapDepositError(c, err, "Failed to open savings account")
	}

	return response.Created(c, "Savings account opened successfully", account)
}

// ListAccounts lists savings accounts
// @Summary List savings accounts
// @Tags Savings
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by account number or member name"
// @Param member_id query int false "Member ID filter"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /savings/accounts [get]
func (h *DepositHandler) ListAccounts(c *fiber.Ctx) error {
	window, err := h.depositService.ListAccounts(c.Context(), c.Query("search"), queryUintPtr(c, "member_id"), pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve savings accounts")
	}
	return response.Success(c, "Savings accounts retrieved successfully", window)
}

// GetAccount fetches a savings account
// @Summary Get savings account
// @Tags Savings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /savings/accounts/{id} [get]
func (h *DepositHandler) GetAccount(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	account, err := h.depositService.GetAccount(c.Context(), id)
	if err != nil {
		return mapDepositError(c, err, "Failed to retrieve savings account")
	}
	return response.Success(c, "Savings account retrieved successfully", account)
}

// GetAccountByNumber gets a savings account by its printed account number
// @Summary Get savings account by account number
// @Tags Savings
// @Produce json
// @Security BearerAuth
// @Param accountNo path string true "Account number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /savings/accounts/number/{accountNo} [get]
func (h *DepositHandler) GetAccountByNumber(c *fiber.Ctx) error {
	accountNo := c.Params("accountNo")
	if accountNo == "" {
		return response.BadRequest(c, "Account number is required")
	}

	account, err := h.depositService.GetAccountByNo(c.Context(), accountNo)
	if err != nil {
		return mapDepositError(c, err, "Failed to retrieve savings account")
	}
	return response.Success(c, "Savings account retrieved successfully", account)
}

// Deposit posts a deposit transaction
// @Summary Deposit to savings account
// @Tags Savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body services.SavingsTxInput true "Transaction data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /savings/accounts/{id}/deposit [post]
func (h *DepositHandler) Deposit(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var input services.SavingsTxInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	txn, err := h.depositService.Deposit(c.Context(), actorID(c), id, &input)
	if err != nil {
		return mapDepositError(c, err, "Failed to post deposit")
	}

	return response.Created(c, "Deposit posted successfully", txn)
}

// Withdraw posts a withdrawal transaction
// @Summary Withdraw from savings account
// @Tags Savings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param body body services.SavingsTxInput true "Transaction data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /savings/accounts/{id}/withdraw [post]
func (h *DepositHandler) Withdraw(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var input services.SavingsTxInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	txn, err := h.depositService.Withdraw(c.Context(), actorID(c), id, &input)
	if err != nil {
		return mapDepositError(c, err, "Failed to post withdrawal")
	}

	return response.Created(c, "Withdrawal posted successfully", txn)
}

// ListTransactions lists an account's transaction history
// @Summary List account transactions
// @Tags Savings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /savings/accounts/{id}/transactions [get]
func (h *DepositHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	window, err := h.depositService.ListTransactions(c.Context(), id, pagination.GetParams(c))
	if err != nil {
		return mapDepositError(c, err, "Failed to retrieve transactions")
	}
	return response.Success(c, "Transactions retrieved successfully", window)
}

// ============================================================
// Time Deposit Bilyets
// ============================================================

// OpenBilyet opens a time deposit bilyet
// @Summary Open time deposit bilyet
// @Tags TimeDeposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BilyetInput true "Bilyet data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /time-deposits [post]
func (h *DepositHandler) OpenBilyet(c *fiber.Ctx) error {
	var input services.BilyetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bilyet, err := h.depositService.OpenBilyet(c.Context(), actorID(c), &input)
	if err != nil {
		return mapDepositError(c, err, "Failed to open bilyet")
	}

	return response.Created(c, "Bilyet opened successfully", bilyet)
}

// ListBilyets lists time deposit bilyets
// @Summary List time deposit bilyets
// @Tags TimeDeposits
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by bilyet number"
// @Param status query string false "Status filter (ACTIVE, CLOSED, MATURED)"
// @Param member_id query int false "Member ID filter"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Router /time-deposits [get]
func (h *DepositHandler) ListBilyets(c *fiber.Ctx) error {
	filter := &repositories.BilyetFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		MemberID: queryUintPtr(c, "member_id"),
	}

	window, err := h.depositService.ListBilyets(c.Context(), filter, pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve bilyets")
	}
	return response.Success(c, "Bilyets retrieved successfully", window)
}

// GetBilyet fetches a time deposit bilyet
// @Summary Get time deposit bilyet
// @Tags TimeDeposits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bilyet ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /time-deposits/{id} [get]
func (h *DepositHandler) GetBilyet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid bilyet ID")
	}

	bilyet, err := h.depositService.GetBilyet(c.Context(), id)
	if err != nil {
		return mapDepositError(c, err, "Failed to retrieve bilyet")
	}
	return response.Success(c, "Bilyet retrieved successfully", bilyet)
}

// CloseBilyet closes an active bilyet
// @Summary Close time deposit bilyet
// @Tags TimeDeposits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bilyet ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /time-deposits/{id}/close [post]
func (h *DepositHandler) CloseBilyet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid bilyet ID")
	}

	bilyet, err := h.depositService.CloseBilyet(c.Context(), actorID(c), id)
	if err != nil {
		return mapDepositError(c, err, "Failed to close bilyet")
	}
	return response.Success(c, "Bilyet closed successfully", bilyet)
}

// GetBilyetInterest returns accrued interest summary for a bilyet
// @Summary Get bilyet interest summary
// @Tags TimeDeposits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bilyet ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /time-deposits/{id}/interest [get]
func (h *DepositHandler) GetBilyetInterest(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid bilyet ID")
	}

	summary, err := h.depositService.GetBilyetInterest(c.Context(), id)
	if err != nil {
		return mapDepositError(c, err, "Failed to retrieve interest summary")
	}
	return response.Success(c, "Interest summary retrieved successfully", summary)
}

// ListAccruals lists interest accruals for a period
// @Summary List interest accruals by period
// @Tags TimeDeposits
// @Produce json
// @Security BearerAuth
// @Param period query string true "Period (yyyy-mm)"
// @Param page query int false "Page number"
// @Param paginate query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /time-deposits/accruals [get]
func (h *DepositHandler) ListAccruals(c *fiber.Ctx) error {
	period := c.Query("period")
	if err := services.ValidatePeriod(period); err != nil {
		return response.BadRequest(c, "Period must be in yyyy-mm format")
	}

	window, err := h.depositService.ListAccrualsByPeriod(c.Context(), period, pagination.GetParams(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve accruals")
	}
	return response.Success(c, "Accruals retrieved successfully", window)
}
