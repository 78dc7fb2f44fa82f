package service

import (
	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// CreditCardService handles credit card business logic
type CreditCardService struct {
	cardRepo       domain.CreditCardRepository
	eventPublisher websocket.EventPublisher
}

// NewCreditCardService creates a new CreditCardService
func NewCreditCardService(cardRepo domain.CreditCardRepository) *CreditCardService {
	return &CreditCardService{cardRepo: cardRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CreditCardService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreditCardInput holds the editable fields of a credit card.
// A nil APR means domain.DefaultCardAPR.
type CreditCardInput struct {
	Name        string
	Issuer      string
	Balance     decimal.Decimal
	APR         *decimal.Decimal
	UserPayment decimal.Decimal
	Fees        decimal.Decimal
	Notes       string
}

func (in CreditCardInput) build(householdID int32) (*domain.CreditCard, error) {
	issuer, err := domain.ParseIssuer(in.Issuer)
	if err != nil {
		return nil, err
	}
	apr := domain.DefaultCardAPR
	if in.APR != nil {
		apr = *in.APR
	}
	card, err := domain.NewCreditCard(in.Name, issuer, in.Balance, apr, in.UserPayment, in.Fees)
	if err != nil {
		return nil, err
	}
	if len(in.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}
	card.HouseholdID = householdID
	card.Notes = in.Notes
	return card, nil
}

// CreateCard validates and stores a new credit card
func (s *CreditCardService) CreateCard(householdID int32, input CreditCardInput) (*domain.CreditCard, error) {
	card, err := input.build(householdID)
	if err != nil {
		return nil, err
	}

	created, err := s.cardRepo.Create(card)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Created(websocket.EntityTypeCreditCard, created))
	return created, nil
}

// GetCards retrieves all credit cards of a household
func (s *CreditCardService) GetCards(householdID int32) ([]*domain.CreditCard, error) {
	return s.cardRepo.GetAllByHousehold(householdID)
}

// GetCardByID retrieves a credit card within a household
func (s *CreditCardService) GetCardByID(householdID int32, id int32) (*domain.CreditCard, error) {
	return s.cardRepo.GetByID(householdID, id)
}

// UpdateCard replaces every editable field of a credit card
func (s *CreditCardService) UpdateCard(householdID int32, id int32, input CreditCardInput) (*domain.CreditCard, error) {
	card, err := input.build(householdID)
	if err != nil {
		return nil, err
	}
	card.ID = id

	updated, err := s.cardRepo.Update(card)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Updated(websocket.EntityTypeCreditCard, updated))
	return updated, nil
}

// DeleteCard removes a credit card
func (s *CreditCardService) DeleteCard(householdID int32, id int32) error {
	if err := s.cardRepo.Delete(householdID, id); err != nil {
		return err
	}
	publish(s.eventPublisher, householdID, websocket.Deleted(websocket.EntityTypeCreditCard, id))
	return nil
}
