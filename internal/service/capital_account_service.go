package service

import (
	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// CapitalAccountService handles capital account business logic
type CapitalAccountService struct {
	accountRepo    domain.CapitalAccountRepository
	eventPublisher websocket.EventPublisher
}

// NewCapitalAccountService creates a new CapitalAccountService
func NewCapitalAccountService(accountRepo domain.CapitalAccountRepository) *CapitalAccountService {
	return &CapitalAccountService{accountRepo: accountRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CapitalAccountService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CapitalAccountInput holds the editable fields of a capital account
type CapitalAccountInput struct {
	Name        string
	AccountType string
	Balance     decimal.Decimal
	AnnualYield decimal.Decimal
	Notes       string
}

func (in CapitalAccountInput) build(householdID int32) (*domain.CapitalAccount, error) {
	account, err := domain.NewCapitalAccount(in.Name, in.AccountType, in.Balance, in.AnnualYield, in.Notes)
	if err != nil {
		return nil, err
	}
	account.HouseholdID = householdID
	return account, nil
}

// CreateAccount validates and stores a new capital account
func (s *CapitalAccountService) CreateAccount(householdID int32, input CapitalAccountInput) (*domain.CapitalAccount, error) {
	account, err := input.build(householdID)
	if err != nil {
		return nil, err
	}

	created, err := s.accountRepo.Create(account)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Created(websocket.EntityTypeCapitalAccount, created))
	return created, nil
}

// GetAccounts retrieves all capital accounts of a household
func (s *CapitalAccountService) GetAccounts(householdID int32) ([]*domain.CapitalAccount, error) {
	return s.accountRepo.GetAllByHousehold(householdID)
}

// GetAccountByID retrieves a capital account within a household
func (s *CapitalAccountService) GetAccountByID(householdID int32, id int32) (*domain.CapitalAccount, error) {
	return s.accountRepo.GetByID(householdID, id)
}

// UpdateAccount replaces every editable field of a capital account
func (s *CapitalAccountService) UpdateAccount(householdID int32, id int32, input CapitalAccountInput) (*domain.CapitalAccount, error) {
	account, err := input.build(householdID)
	if err != nil {
		return nil, err
	}
	account.ID = id

	updated, err := s.accountRepo.Update(account)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Updated(websocket.EntityTypeCapitalAccount, updated))
	return updated, nil
}

// DeleteAccount removes a capital account
func (s *CapitalAccountService) DeleteAccount(householdID int32, id int32) error {
	if err := s.accountRepo.Delete(householdID, id); err != nil {
		return err
	}
	publish(s.eventPublisher, householdID, websocket.Deleted(websocket.EntityTypeCapitalAccount, id))
	return nil
}
