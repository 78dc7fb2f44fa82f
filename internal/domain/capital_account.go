package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Known capital account types. Any other value is accepted and classified as
// retirement (non-liquid).
const (
	AccountTypeChecking  = "checking"
	AccountTypeSavings   = "savings"
	AccountType401k      = "401k"
	AccountTypeRothIRA   = "rothira"
	AccountTypeBrokerage = "brokerage"
)

// CapitalAccount is a capital holding such as a checking, savings, retirement or brokerage account
type CapitalAccount struct {
	ID          int32           `json:"id"`
	HouseholdID int32           `json:"householdId"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AnnualYield decimal.Decimal `json:"annualYield"` // fraction, 0.042 is 4.2%
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CapitalAccountSummary is the rounded read-only projection of a CapitalAccount
type CapitalAccountSummary struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	AnnualYield  decimal.Decimal `json:"annualYield"`
	MonthlyYield decimal.Decimal `json:"monthlyYield"`
	IsLiquid     bool            `json:"isLiquid"`
	IsRetirement bool            `json:"isRetirement"`
	Notes        string          `json:"notes"`
}

// NewCapitalAccount validates its input and returns a CapitalAccount.
// The account type is stored lower-cased. The balance may be negative for an overdraft.
func NewCapitalAccount(name, accountType string, balance, annualYield decimal.Decimal, notes string) (*CapitalAccount, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	accountType = NormalizeAccountType(accountType)
	if accountType == "" {
		return nil, ErrAccountTypeRequired
	}
	if len(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	return &CapitalAccount{
		Name:        name,
		AccountType: accountType,
		Balance:     balance,
		AnnualYield: annualYield,
		Notes:       notes,
	}, nil
}

// NormalizeAccountType lower-cases and trims an account type
func NormalizeAccountType(accountType string) string {
	return strings.ToLower(strings.TrimSpace(accountType))
}

// MonthlyYield returns balance × annual yield / 12
func (a *CapitalAccount) MonthlyYield() decimal.Decimal {
	return a.Balance.Mul(a.AnnualYield).Div(twelve)
}

// IsLiquidAccount reports whether the account is checking or savings
func (a *CapitalAccount) IsLiquidAccount() bool {
	switch NormalizeAccountType(a.AccountType) {
	case AccountTypeChecking, AccountTypeSavings:
		return true
	}
	return false
}

// IsRetirementAccount is the negation of IsLiquidAccount: brokerage and
// unrecognized types land in the retirement bucket too.
func (a *CapitalAccount) IsRetirementAccount() bool {
	return !a.IsLiquidAccount()
}

// Summary returns the rounded projection of the account
func (a *CapitalAccount) Summary() CapitalAccountSummary {
	return CapitalAccountSummary{
		Name:         a.Name,
		Type:         a.AccountType,
		Balance:      RoundCurrency(a.Balance),
		AnnualYield:  RoundRate(a.AnnualYield),
		MonthlyYield: RoundCurrency(a.MonthlyYield()),
		IsLiquid:     a.IsLiquidAccount(),
		IsRetirement: a.IsRetirementAccount(),
		Notes:        a.Notes,
	}
}

// CapitalAccountRepository defines persistence operations for capital accounts
type CapitalAccountRepository interface {
	Create(account *CapitalAccount) (*CapitalAccount, error)
	GetByID(householdID int32, id int32) (*CapitalAccount, error)
	GetAllByHousehold(householdID int32) ([]*CapitalAccount, error)
	Update(account *CapitalAccount) (*CapitalAccount, error)
	Delete(householdID int32, id int32) error
}
