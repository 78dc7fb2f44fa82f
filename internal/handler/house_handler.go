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

// HouseHandler handles house listing HTTP requests
type HouseHandler struct {
	houseService *service.HouseService
}

// NewHouseHandler creates a new HouseHandler
func NewHouseHandler(houseService *service.HouseService) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

// HouseRequest is the create and update body. Price and estRentPerUnit are required.
type HouseRequest struct {
	Name                 string `json:"name"`
	HouseType            string `json:"houseType"`
	Price                string `json:"price"`
	EstRentPerUnit       string `json:"estRentPerUnit"`
	AppraisedRentPerUnit string `json:"appraisedRentPerUnit,omitempty"`
	Notes                string `json:"notes"`
}

// HouseResponse represents a house listing in API responses
type HouseResponse struct {
	ID                   int32   `json:"id"`
	HouseholdID          int32   `json:"householdId"`
	Name                 string  `json:"name"`
	HouseType            string  `json:"houseType"`
	NumUnits             int     `json:"numUnits"`
	Price                string  `json:"price"`
	EstRentPerUnit       string  `json:"estRentPerUnit"`
	AppraisedRentPerUnit *string `json:"appraisedRentPerUnit,omitempty"`
	Notes                string  `json:"notes"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

func (r HouseRequest) toInput() (service.HouseInput, *amountParser) {
	p := &amountParser{}
	input := service.HouseInput{
		Name:                 r.Name,
		HouseType:            r.HouseType,
		Price:                p.required("price", r.Price),
		EstRentPerUnit:       p.required("estRentPerUnit", r.EstRentPerUnit),
		AppraisedRentPerUnit: p.optional("appraisedRentPerUnit", r.AppraisedRentPerUnit),
		Notes:                r.Notes,
	}
	return input, p
}

// CreateHouse godoc
// @Summary Create a house listing
// @Tags houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HouseRequest true "House"
// @Success 201 {object} HouseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /houses [post]
func (h *HouseHandler) CreateHouse(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req HouseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	house, err := h.houseService.CreateHouse(householdID, input)
	if err != nil {
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to create house")
		return NewInternalError(c, "Failed to create house")
	}

	log.Info().Int32("household_id", householdID).Int32("house_id", house.ID).Str("name", house.Name).Msg("House created")
	return c.JSON(http.StatusCreated, toHouseResponse(house))
}

// GetHouses godoc
// @Summary List house listings
// @Tags houses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} HouseResponse
// @Failure 401 {object} ProblemDetails
// @Router /houses [get]
func (h *HouseHandler) GetHouses(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	houses, err := h.houseService.GetHouses(householdID)
	if err != nil {
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to get houses")
		return NewInternalError(c, "Failed to get houses")
	}

	response := make([]HouseResponse, len(houses))
	for i, house := range houses {
		response[i] = toHouseResponse(house)
	}
	return c.JSON(http.StatusOK, response)
}

// GetHouse godoc
// @Summary Get a house listing
// @Tags houses
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Success 200 {object} HouseResponse
// @Failure 404 {object} ProblemDetails
// @Router /houses/{id} [get]
func (h *HouseHandler) GetHouse(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid house ID", nil)
	}

	house, err := h.houseService.GetHouseByID(householdID, id)
	if err != nil {
		if errors.Is(err, domain.ErrHouseNotFound) {
			return NewNotFoundError(c, "House not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("house_id", id).Msg("Failed to get house")
		return NewInternalError(c, "Failed to get house")
	}
	return c.JSON(http.StatusOK, toHouseResponse(house))
}

// UpdateHouse godoc
// @Summary Update a house listing
// @Tags houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Param request body HouseRequest true "House"
// @Success 200 {object} HouseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /houses/{id} [put]
func (h *HouseHandler) UpdateHouse(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid house ID", nil)
	}

	var req HouseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, p := req.toInput()
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	house, err := h.houseService.UpdateHouse(householdID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrHouseNotFound) {
			return NewNotFoundError(c, "House not found")
		}
		if details, ok := validationDetails(err); ok {
			return NewValidationError(c, "Validation failed", details)
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("house_id", id).Msg("Failed to update house")
		return NewInternalError(c, "Failed to update house")
	}

	log.Info().Int32("household_id", householdID).Int32("house_id", house.ID).Msg("House updated")
	return c.JSON(http.StatusOK, toHouseResponse(house))
}

// DeleteHouse godoc
// @Summary Delete a house listing
// @Tags houses
// @Security BearerAuth
// @Param id path int true "House ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /houses/{id} [delete]
func (h *HouseHandler) DeleteHouse(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	id, err := parseID(c)
	if err != nil {
		return NewValidationError(c, "Invalid house ID", nil)
	}

	if err := h.houseService.DeleteHouse(householdID, id); err != nil {
		if errors.Is(err, domain.ErrHouseNotFound) {
			return NewNotFoundError(c, "House not found")
		}
		log.Error().Err(err).Int32("household_id", householdID).Int32("house_id", id).Msg("Failed to delete house")
		return NewInternalError(c, "Failed to delete house")
	}

	log.Info().Int32("household_id", householdID).Int32("house_id", id).Msg("House deleted")
	return c.NoContent(http.StatusNoContent)
}

func toHouseResponse(house *domain.House) HouseResponse {
	return HouseResponse{
		ID:                   house.ID,
		HouseholdID:          house.HouseholdID,
		Name:                 house.Name,
		HouseType:            string(house.HouseType),
		NumUnits:             house.NumUnits(),
		Price:                formatMoney(house.Price),
		EstRentPerUnit:       formatMoney(house.EstRentPerUnit),
		AppraisedRentPerUnit: formatMoneyPtr(house.AppraisedRentPerUnit),
		Notes:                house.Notes,
		CreatedAt:            house.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            house.UpdatedAt.Format(time.RFC3339),
	}
}
