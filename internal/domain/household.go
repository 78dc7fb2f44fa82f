package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Household is the tenant owning accounts, cards, loans and houses. It also
// carries the two scalar inputs of its FinancialStatus.
type Household struct {
	ID             int32           `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Name           string          `json:"name"`
	EmployerIncome decimal.Decimal `json:"employerIncome"` // monthly
	FixedExpenses  decimal.Decimal `json:"fixedExpenses"`  // monthly
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HouseholdRepository defines the interface for household persistence operations
type HouseholdRepository interface {
	GetByID(id int32) (*Household, error)
	GetByUserID(userID uuid.UUID) (*Household, error)
	GetByUserAuth0ID(auth0ID string) (*Household, error)
	GetAll() ([]*Household, error)
	Create(household *Household) (*Household, error)
	UpdateBudget(id int32, employerIncome, fixedExpenses decimal.Decimal) (*Household, error)
}
