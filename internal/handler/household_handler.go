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

// HouseholdHandler handles household budget HTTP requests
type HouseholdHandler struct {
	householdService *service.HouseholdService
}

// NewHouseholdHandler creates a new HouseholdHandler
func NewHouseholdHandler(householdService *service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

// UpdateBudgetRequest sets the monthly figures used by the financial status. Both are required.
type UpdateBudgetRequest struct {
	EmployerIncome string `json:"employerIncome"`
	FixedExpenses  string `json:"fixedExpenses"`
}

// HouseholdResponse represents a household in API responses
type HouseholdResponse struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	EmployerIncome string `json:"employerIncome"`
	FixedExpenses  string `json:"fixedExpenses"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// GetHousehold godoc
// @Summary Get the current household
// @Tags household
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HouseholdResponse
// @Failure 401 {object} ProblemDetails
// @Router /household [get]
func (h *HouseholdHandler) GetHousehold(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	household, err := h.householdService.GetHousehold(householdID)
	if err != nil {
		if errors.Is(err, domain.ErrHouseholdNotFound) {
			return NewNotFoundError(c, "Household not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to get household")
		return NewInternalError(c, "Failed to get household")
	}
	return c.JSON(http.StatusOK, toHouseholdResponse(household))
}

// UpdateBudget godoc
// @Summary Update the household budget
// @Description Set monthly employer income and fixed expenses
// @Tags household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateBudgetRequest true "Budget"
// @Success 200 {object} HouseholdResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /household/budget [put]
func (h *HouseholdHandler) UpdateBudget(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	p := &amountParser{}
	income := p.required("employerIncome", req.EmployerIncome)
	fixed := p.required("fixedExpenses", req.FixedExpenses)
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	household, err := h.householdService.UpdateBudget(householdID, income, fixed)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "employerIncome", Message: "Income and expenses must be non-negative"},
			})
		}
		if errors.Is(err, domain.ErrHouseholdNotFound) {
			return NewNotFoundError(c, "Household not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Int32("household_id", householdID).Msg("Household budget updated")
	return c.JSON(http.StatusOK, toHouseholdResponse(household))
}

func toHouseholdResponse(household *domain.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:             household.ID,
		Name:           household.Name,
		EmployerIncome: formatMoney(household.EmployerIncome),
		FixedExpenses:  formatMoney(household.FixedExpenses),
		CreatedAt:      household.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      household.UpdatedAt.Format(time.RFC3339),
	}
}
