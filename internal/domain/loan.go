package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an installment debt such as a car or student loan
type Loan struct {
	ID          int32           `json:"id"`
	HouseholdID int32           `json:"householdId"`
	Name        string          `json:"name"`
	Lender      string          `json:"lender"`
	Balance     decimal.Decimal `json:"balance"`
	APR         decimal.Decimal `json:"apr"`
	MinPayment  decimal.Decimal `json:"minPayment"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// LoanSummary is the rounded read-only projection of a Loan
type LoanSummary struct {
	Name            string          `json:"name"`
	Lender          string          `json:"lender"`
	Balance         decimal.Decimal `json:"balance"`
	APR             decimal.Decimal `json:"apr"`
	MinPayment      decimal.Decimal `json:"minPayment"`
	MonthlyInterest decimal.Decimal `json:"monthlyInterest"`
}

// Validate checks the loan fields and trims its name. Amounts must not be negative.
func (l *Loan) Validate() error {
	name, err := ValidateName(l.Name)
	if err != nil {
		return err
	}
	l.Name = name
	if len(l.Lender) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(l.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return ValidateNonNegative(l.Balance, l.APR, l.MinPayment)
}

// MonthlyInterest returns apr/12 × balance
func (l *Loan) MonthlyInterest() decimal.Decimal {
	return l.Balance.Mul(l.APR).Div(twelve)
}

// Summary returns the rounded projection of the loan
func (l *Loan) Summary() LoanSummary {
	return LoanSummary{
		Name:            l.Name,
		Lender:          l.Lender,
		Balance:         RoundCurrency(l.Balance),
		APR:             RoundRate(l.APR),
		MinPayment:      RoundCurrency(l.MinPayment),
		MonthlyInterest: RoundCurrency(l.MonthlyInterest()),
	}
}

// LoanRepository defines persistence operations for loans
type LoanRepository interface {
	Create(loan *Loan) (*Loan, error)
	GetByID(householdID int32, id int32) (*Loan, error)
	GetAllByHousehold(householdID int32) ([]*Loan, error)
	Update(loan *Loan) (*Loan, error)
	Delete(householdID int32, id int32) error
}
