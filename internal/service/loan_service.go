package service

import (
	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// LoanService handles loan business logic
type LoanService struct {
	loanRepo       domain.LoanRepository
	eventPublisher websocket.EventPublisher
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *LoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// LoanInput holds the editable fields of a loan
type LoanInput struct {
	Name       string
	Lender     string
	Balance    decimal.Decimal
	APR        decimal.Decimal
	MinPayment decimal.Decimal
	Notes      string
}

func (in LoanInput) build(householdID int32) (*domain.Loan, error) {
	loan := &domain.Loan{
		HouseholdID: householdID,
		Name:        in.Name,
		Lender:      in.Lender,
		Balance:     in.Balance,
		APR:         in.APR,
		MinPayment:  in.MinPayment,
		Notes:       in.Notes,
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	return loan, nil
}

// CreateLoan validates and stores a new loan
func (s *LoanService) CreateLoan(householdID int32, input LoanInput) (*domain.Loan, error) {
	loan, err := input.build(householdID)
	if err != nil {
		return nil, err
	}

	created, err := s.loanRepo.Create(loan)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Created(websocket.EntityTypeLoan, created))
	return created, nil
}

// GetLoans retrieves all loans of a household
func (s *LoanService) GetLoans(householdID int32) ([]*domain.Loan, error) {
	return s.loanRepo.GetAllByHousehold(householdID)
}

// GetLoanByID retrieves a loan within a household
func (s *LoanService) GetLoanByID(householdID int32, id int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(householdID, id)
}

// UpdateLoan replaces every editable field of a loan
func (s *LoanService) UpdateLoan(householdID int32, id int32, input LoanInput) (*domain.Loan, error) {
	loan, err := input.build(householdID)
	if err != nil {
		return nil, err
	}
	loan.ID = id

	updated, err := s.loanRepo.Update(loan)
	if err != nil {
		return nil, err
	}

	publish(s.eventPublisher, householdID, websocket.Updated(websocket.EntityTypeLoan, updated))
	return updated, nil
}

// DeleteLoan removes a loan
func (s *LoanService) DeleteLoan(householdID int32, id int32) error {
	if err := s.loanRepo.Delete(householdID, id); err != nil {
		return err
	}
	publish(s.eventPublisher, householdID, websocket.Deleted(websocket.EntityTypeLoan, id))
	return nil
}
