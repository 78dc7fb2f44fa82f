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

// CreditCardHandler handles credit card HTTP requests
type CreditCardHandler struct {
	cardService *service.CreditCardService
}

// NewCreditCardHandler creates a new CreditCardHandler
func NewCreditCardHandler(cardService *service.CreditCardService) *CreditCardHandler {
	return &CreditCardHandler{cardService: cardService}
}

// CreditCardRequest is the create and update body. Balance is required; an empty apr
// applies the default card APR and empty payment fields mean 0.
type CreditCardRequest struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Balance     string `json:"balance"`
	APR         string `json:"apr,omitempty"`
	UserPayment string `json:"userPayment,omitempty"`
	Fees        string `json:"fees,omitempty"`
	Notes       string `json:"notes"`
}

// CreditCardResponse represents a credit card in API responses
type CreditCardResponse struct {
	ID              int32  `json:"id"`
	HouseholdID     int32  `json:"householdId"`
	Name            string `json:"name"`
	Issuer          string `json:"issuer"`
	Provider        string `json:"provider"`
	Balance         string `json:"balance"`
	APR             string `json:"apr"`
	UserPayment     string `json:"userPayment"`
	Fees            string `json:"fees"`
	MinimumPayment  string `json:"minimumPayment"`
	PlannedPayment  string `json:"plannedPayment"`
	MonthlyInterest string `json:"monthlyInterest"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func (r CreditCardRequest) toInput() (service.CreditCardInput, *amountParser) {
	p := &amountParser{}
	input := service.CreditCardInput{
		Name:        r.Name,
		Issuer:      r.Issuer,
		Balance:     p.required("balance", r.Balance),
		APR:         p.optional("apr", r.APR),
		UserPayment: p.zeroDefault("userPayment", r.UserPayment),
		Fees:        p.zeroDefault("fees", r.Fees),
		Notes:       r.Notes,
	}
	return input, p
}

// CreateCard godoc
// @Summary Create a credit card
// @Description The issuer selects the minimum payment rule
// @Tags credit-cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreditCardRequest true "Credit card"
// @Success 201 {object} CreditCardResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /credit-cards [post]
func (h *CreditCardHandler) CreateCard(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req CreditCardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	card, err := h.cardService.CreateCard(householdID, input)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to create credit card")
		return NewInternalError(c, "Failed to create credit card")
	}

	log.Info().Int32("household_id", householdID).Int32("card_id", card.ID).Str("issuer", string(card.Issuer)).Msg("Credit card created")
	return c.JSON(http.StatusCreated, toCreditCardResponse(card))
}

// GetCards godoc
// @Summary List credit cards
// @Tags credit-cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CreditCardResponse
// @Failure 401 {object} ProblemDetails
// @Router /credit-cards [get]
func (h *CreditCardHandler) GetCards(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	cards, err := h.cardService.GetCards(householdID)
	if err != nil {
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to get credit cards")
		return NewInternalError(c, "Failed to get credit cards")
	}

	response := make([]CreditCardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCreditCardResponse(card)
	}
	return c.JSON(http.StatusOK, response)
}

// GetCard godoc
// @Summary Get a credit card
// @Tags credit-cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} CreditCardResponse
// @Failure 404 {object} ProblemDetails
// @Router /credit-cards/{id} [get]
func (h *CreditCardHandler) GetCard(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	card, err := h.cardService.GetCardByID(householdID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCreditCardNotFound) {
			return NewNotFoundError(c, "Credit card not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("card_id", id).Msg("Failed to get credit card")
		return NewInternalError(c, "Failed to get credit card")
	}
	return c.JSON(http.StatusOK, toCreditCardResponse(card))
}

// UpdateCard godoc
// @Summary Update a credit card
// @Tags credit-cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body CreditCardRequest true "Credit card"
// @Success 200 {object} CreditCardResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /credit-cards/{id} [put]
func (h *CreditCardHandler) UpdateCard(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	var req CreditCardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	card, err := h.cardService.UpdateCard(householdID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCreditCardNotFound) {
			return NewNotFoundError(c, "Credit card not found")
		}
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("card_id", id).Msg("Failed to update credit card")
		return NewInternalError(c, "Failed to update credit card")
	}

	log.Info().Int32("household_id", householdID).Int32("card_id", card.ID).Msg("Credit card updated")
	return c.JSON(http.StatusOK, toCreditCardResponse(card))
}

// DeleteCard godoc
// @Summary Delete a credit card
// @Tags credit-cards
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /credit-cards/{id} [delete]
func (h *CreditCardHandler) DeleteCard(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid card ID", nil)
	}

	if err := h.cardService.DeleteCard(householdID, id); err != nil {
		if errors.Is(err, domain.ErrCreditCardNotFound) {
			return NewNotFoundError(c, "Credit card not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("card_id", id).Msg("Failed to delete credit card")
		return NewInternalError(c, "Failed to delete credit card")
	}

	log.Info().Int32("household_id", householdID).Int32("card_id", id).Msg("Credit card deleted")
	return c.NoContent(http.StatusNoContent)
}

func toCreditCardResponse(card *domain.CreditCard) CreditCardResponse {
	summary := card.Summary()
	return CreditCardResponse{
		ID:              card.ID,
		HouseholdID:     card.HouseholdID,
		Name:            card.Name,
		Issuer:          string(card.Issuer),
		Provider:        summary.Provider,
		Balance:         formatMoney(card.Balance),
		APR:             formatRate(card.APR),
		UserPayment:     formatMoney(card.UserPayment),
		Fees:            formatMoney(card.Fees),
		MinimumPayment:  formatMoney(summary.MinimumPayment),
		PlannedPayment:  formatMoney(summary.PlannedPayment),
		MonthlyInterest: formatMoney(summary.MonthlyInterest),
		Notes:           card.Notes,
		CreatedAt:       card.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       card.UpdatedAt.Format(time.RFC3339),
	}
}
