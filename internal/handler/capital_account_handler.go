package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/middleware"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CapitalAccountHandler handles capital account HTTP requests
type CapitalAccountHandler struct {
	accountService *service.CapitalAccountService
}

// NewCapitalAccountHandler creates a new CapitalAccountHandler
func NewCapitalAccountHandler(accountService *service.CapitalAccountService) *CapitalAccountHandler {
	return &CapitalAccountHandler{accountService: accountService}
}

// CapitalAccountRequest is the create and update body. Amounts are decimal strings.
type CapitalAccountRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	Balance     string `json:"balance"`
	AnnualYield string `json:"annualYield"`
	Notes       string `json:"notes"`
}

// CapitalAccountResponse represents a capital account in API responses
type CapitalAccountResponse struct {
	ID           int32  `json:"id"`
	HouseholdID  int32  `json:"householdId"`
	Name         string `json:"name"`
	AccountType  string `json:"accountType"`
	Balance      string `json:"balance"`
	AnnualYield  string `json:"annualYield"`
	MonthlyYield string `json:"monthlyYield"`
	IsLiquid     bool   `json:"isLiquid"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func (r CapitalAccountRequest) toInput() (service.CapitalAccountInput, *amountParser) {
	p := &amountParser{}
	input := service.CapitalAccountInput{
		Name:        r.Name,
		AccountType: r.AccountType,
		Balance:     p.zeroDefault("balance", r.Balance),
		AnnualYield: p.zeroDefault("annualYield", r.AnnualYield),
		Notes:       r.Notes,
	}
	return input, p
}

// CreateAccount godoc
// @Summary Create a capital account
// @Description Create a checking, savings or retirement account
// @Tags capital-accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CapitalAccountRequest true "Capital account"
// @Success 201 {object} CapitalAccountResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /capital-accounts [post]
func (h *CapitalAccountHandler) CreateAccount(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req CapitalAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	account, err := h.accountService.CreateAccount(householdID, input)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to create capital account")
		return NewInternalError(c, "Failed to create capital account")
	}

	log.Info().Int32("household_id", householdID).Int32("account_id", account.ID).Str("name", account.Name).Msg("Capital account created")
	return c.JSON(http.StatusCreated, toCapitalAccountResponse(account))
}

// GetAccounts godoc
// @Summary List capital accounts
// @Tags capital-accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CapitalAccountResponse
// @Failure 401 {object} ProblemDetails
// @Router /capital-accounts [get]
func (h *CapitalAccountHandler) GetAccounts(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	accounts, err := h.accountService.GetAccounts(householdID)
	if err != nil {
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to get capital accounts")
		return NewInternalError(c, "Failed to get capital accounts")
	}

	response := make([]CapitalAccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toCapitalAccountResponse(account)
	}
	return c.JSON(http.StatusOK, response)
}

// GetAccount godoc
// @Summary Get a capital account
// @Tags capital-accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} CapitalAccountResponse
// @Failure 404 {object} ProblemDetails
// @Router /capital-accounts/{id} [get]
func (h *CapitalAccountHandler) GetAccount(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	account, err := h.accountService.GetAccountByID(householdID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCapitalAccountNotFound) {
			return NewNotFoundError(c, "Capital account not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("account_id", id).Msg("Failed to get capital account")
		return NewInternalError(c, "Failed to get capital account")
	}
	return c.JSON(http.StatusOK, toCapitalAccountResponse(account))
}

// UpdateAccount godoc
// @Summary Update a capital account
// @Tags capital-accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body CapitalAccountRequest true "Capital account"
// @Success 200 {object} CapitalAccountResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /capital-accounts/{id} [put]
func (h *CapitalAccountHandler) UpdateAccount(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req CapitalAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	account, err := h.accountService.UpdateAccount(householdID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCapitalAccountNotFound) {
			return NewNotFoundError(c, "Capital account not found")
		}
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("account_id", id).Msg("Failed to update capital account")
		return NewInternalError(c, "Failed to update capital account")
	}

	log.Info().Int32("household_id", householdID).Int32("account_id", account.ID).Msg("Capital account updated")
	return c.JSON(http.StatusOK, toCapitalAccountResponse(account))
}

// DeleteAccount godoc
// @Summary Delete a capital account
// @Tags capital-accounts
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /capital-accounts/{id} [delete]
func (h *CapitalAccountHandler) DeleteAccount(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := h.accountService.DeleteAccount(householdID, id); err != nil {
		if errors.Is(err, domain.ErrCapitalAccountNotFound) {
			return NewNotFoundError(c, "Capital account not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("account_id", id).Msg("Failed to delete capital account")
		return NewInternalError(c, "Failed to delete capital account")
	}

	log.Info().Int32("household_id", householdID).Int32("account_id", id).Msg("Capital account deleted")
	return c.NoContent(http.StatusNoContent)
}

func toCapitalAccountResponse(account *domain.CapitalAccount) CapitalAccountResponse {
	return CapitalAccountResponse{
		ID:           account.ID,
		HouseholdID:  account.HouseholdID,
		Name:         account.Name,
		AccountType:  account.AccountType,
		Balance:      formatMoney(account.Balance),
		AnnualYield:  formatRate(account.AnnualYield),
		MonthlyYield: formatMoney(account.MonthlyYield()),
		IsLiquid:     account.IsLiquidAccount(),
		Notes:        account.Notes,
		CreatedAt:    account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    account.UpdatedAt.Format(time.RFC3339),
	}
}
