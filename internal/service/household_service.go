package service

import (
	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// HouseholdService handles the household budget
type HouseholdService struct {
	householdRepo  domain.HouseholdRepository
	eventPublisher websocket.EventPublisher
}

// NewHouseholdService creates a new HouseholdService
func NewHouseholdService(householdRepo domain.HouseholdRepository) *HouseholdService {
	return &HouseholdService{householdRepo: householdRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *HouseholdService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetHousehold retrieves a household
func (s *HouseholdService) GetHousehold(householdID int32) (*domain.Household, error) {
	return s.householdRepo.GetByID(householdID)
}

// UpdateBudget sets the monthly employer income and fixed expenses.
// Negative values fail with domain.ErrInvalidAmount.
func (s *HouseholdService) UpdateBudget(householdID int32, employerIncome, fixedExpenses decimal.Decimal) (*domain.Household, error) {
	if err := domain.ValidateNonNegative(employerIncome, fixedExpenses); err != nil {
		return nil, err
	}

	updated, err := s.householdRepo.UpdateBudget(householdID, employerIncome, fixedExpenses)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.HouseholdBudgetUpdated(updated))
	return updated, nil
}

func publish(publisher websocket.EventPublisher, householdID int32, event websocket.Event) {
	if publisher != nil {
		publisher.Publish(householdID, event)
	}
}
