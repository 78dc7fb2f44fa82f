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

// LoanHandler handles loan HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequest is the create and update body. Every amount is required.
type LoanRequest struct {
	Name       string `json:"name"`
	Lender     string `json:"lender"`
	Balance    string `json:"balance"`
	APR        string `json:"apr"`
	MinPayment string `json:"minPayment"`
	Notes      string `json:"notes"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID              int32  `json:"id"`
	HouseholdID     int32  `json:"householdId"`
	Name            string `json:"name"`
	Lender          string `json:"lender"`
	Balance         string `json:"balance"`
	APR             string `json:"apr"`
	MinPayment      string `json:"minPayment"`
	MonthlyInterest string `json:"monthlyInterest"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func (r LoanRequest) toInput() (service.LoanInput, *amountParser) {
	p := &amountParser{}
	input := service.LoanInput{
		Name:       r.Name,
		Lender:     r.Lender,
		Balance:    p.required("balance", r.Balance),
		APR:        p.required("apr", r.APR),
		MinPayment: p.required("minPayment", r.MinPayment),
		Notes:      r.Notes,
	}
	return input, p
}

// CreateLoan godoc
// @Summary Create a loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LoanRequest true "Loan"
// @Success 201 {object} LoanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req LoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	loan, err := h.loanService.CreateLoan(householdID, input)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to create loan")
		return NewInternalError(c, "Failed to create loan")
	}

	log.Info().Int32("household_id", householdID).Int32("loan_id", loan.ID).Str("name", loan.Name).Msg("Loan created")
	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// GetLoans godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LoanResponse
// @Failure 401 {object} ProblemDetails
// @Router /loans [get]
func (h *LoanHandler) GetLoans(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	loans, err := h.loanService.GetLoans(householdID)
	if err != nil {
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to get loans")
		return NewInternalError(c, "Failed to get loans")
	}

	response := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		response[i] = toLoanResponse(loan)
	}
	return c.JSON(http.StatusOK, response)
}

// GetLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} LoanResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	loan, err := h.loanService.GetLoanByID(householdID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("loan_id", id).Msg("Failed to get loan")
		return NewInternalError(c, "Failed to get loan")
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// UpdateLoan godoc
// @Summary Update a loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body LoanRequest true "Loan"
// @Success 200 {object} LoanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req LoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	loan, err := h.loanService.UpdateLoan(householdID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("loan_id", id).Msg("Failed to update loan")
		return NewInternalError(c, "Failed to update loan")
	}

	log.Info().Int32("household_id", householdID).Int32("loan_id", loan.ID).Msg("Loan updated")
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// DeleteLoan godoc
// @Summary Delete a loan
// @Tags loans
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	if err := h.loanService.DeleteLoan(householdID, id); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("loan_id", id).Msg("Failed to delete loan")
		return NewInternalError(c, "Failed to delete loan")
	}

	log.Info().Int32("household_id", householdID).Int32("loan_id", id).Msg("Loan deleted")
	return c.NoContent(http.StatusNoContent)
}

func toLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:              loan.ID,
		HouseholdID:     loan.HouseholdID,
		Name:            loan.Name,
		Lender:          loan.Lender,
		Balance:         formatMoney(loan.Balance),
		APR:             formatRate(loan.APR),
		MinPayment:      formatMoney(loan.MinPayment),
		MonthlyInterest: formatMoney(loan.MonthlyInterest()),
		Notes:           loan.Notes,
		CreatedAt:       loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       loan.UpdatedAt.Format(time.RFC3339),
	}
}
