package service

import (
	"strings"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// HouseService handles house listing business logic
type HouseService struct {
	houseRepo      domain.HouseRepository
	eventPublisher websocket.EventPublisher
}

// NewHouseService creates a new HouseService
func NewHouseService(houseRepo domain.HouseRepository) *HouseService {
	return &HouseService{houseRepo: houseRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *HouseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// HouseInput holds the editable fields of a house listing
type HouseInput struct {
	Name                 string
	HouseType            string
	Price                decimal.Decimal
	EstRentPerUnit       decimal.Decimal
	AppraisedRentPerUnit *decimal.Decimal
	Notes                string
}

func (in HouseInput) build(householdID int32) (*domain.House, error) {
	house := &domain.House{
		HouseholdID:          householdID,
		Name:                 in.Name,
		HouseType:            domain.HouseType(strings.ToLower(strings.TrimSpace(in.HouseType))),
		Price:                in.Price,
		EstRentPerUnit:       in.EstRentPerUnit,
		AppraisedRentPerUnit: in.AppraisedRentPerUnit,
		Notes:                in.Notes,
	}
	if err := house.Validate(); err != nil {
		return nil, err
	}
	return house, nil
}

// CreateHouse validates and stores a new house listing
func (s *HouseService) CreateHouse(householdID int32, input HouseInput) (*domain.House, error) {
	house, err := input.build(householdID)
	if err != nil {
		return nil, err
	}

	created, err := s.houseRepo.Create(house)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Created(websocket.EntityTypeHouse, created))
	return created, nil
}

// GetHouses retrieves all houses of a household in insertion order
func (s *HouseService) GetHouses(householdID int32) ([]*domain.House, error) {
	return s.houseRepo.GetAllByHousehold(householdID)
}

// GetHouseByID retrieves a house within a household
func (s *HouseService) GetHouseByID(householdID int32, id int32) (*domain.House, error) {
	return s.houseRepo.GetByID(householdID, id)
}

// UpdateHouse replaces every editable field of a house
func (s *HouseService) UpdateHouse(householdID int32, id int32, input HouseInput) (*domain.House, error) {
	house, err := input.build(householdID)
	if err != nil {
		return nil, err
	}
	house.ID = id

	updated, err := s.houseRepo.Update(house)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Updated(websocket.EntityTypeHouse, updated))
	return updated, nil
}

// DeleteHouse removes a house
func (s *HouseService) DeleteHouse(householdID int32, id int32) error {
	if err := s.houseRepo.Delete(householdID, id); err != nil {
		return err
	}
	publish(s.eventPublisher, householdID, websocket.Deleted(websocket.EntityTypeHouse, id))
	return nil
}
