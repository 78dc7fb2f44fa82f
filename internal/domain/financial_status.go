package domain

import "github.com/shopspring/decimal"

// FinancialStatus aggregates a household's cards and accounts against its
// monthly income and fixed expenses. It never mutates its inputs.
type FinancialStatus struct {
	EmployerIncome  decimal.Decimal
	FixedExpenses   decimal.Decimal
	CreditCards     []*CreditCard
	CapitalAccounts []*CapitalAccount
}

// FinancialStatusSummary is the aggregate read-only record of a FinancialStatus
type FinancialStatusSummary struct {
	TotalLiquidAccounts        decimal.Decimal `json:"totalLiquidAccounts"`
	TotalRetirementAccounts    decimal.Decimal `json:"totalRetirementAccounts"`
	TotalAccounts              decimal.Decimal `json:"totalAccounts"`
	EmployerIncome             decimal.Decimal `json:"employerIncome"`
	FixedExpenses              decimal.Decimal `json:"fixedExpenses"`
	TotalCreditCardDebt        decimal.Decimal `json:"totalCreditCardDebt"`
	TotalMinimumPayments       decimal.Decimal `json:"totalMinimumPayments"`
	TotalPlannedCreditPayments decimal.Decimal `json:"totalPlannedCreditPayments"`
	TotalMonthlyDebt           decimal.Decimal `json:"totalMonthlyDebt"`
	MonthlyCashFlow            decimal.Decimal `json:"monthlyCashFlow"`
	DTIRatio                   decimal.Decimal `json:"dtiRatio"`
}

// NewFinancialStatus builds a status from explicit collections. Nil
// collections are treated as empty. Income and fixed expenses must not be negative.
func NewFinancialStatus(employerIncome, fixedExpenses decimal.Decimal, cards []*CreditCard, accounts []*CapitalAccount) (*FinancialStatus, error) {
	if err := ValidateNonNegative(employerIncome, fixedExpenses); err != nil {
		return nil, err
	}
	return &FinancialStatus{
		EmployerIncome:  employerIncome,
		FixedExpenses:   fixedExpenses,
		CreditCards:     cards,
		CapitalAccounts: accounts,
	}, nil
}

func (s *FinancialStatus) sumCards(f func(*CreditCard) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, card := range s.CreditCards {
		total = total.Add(f(card))
	}
	return total
}

func (s *FinancialStatus) sumAccounts(include func(*CapitalAccount) bool) decimal.Decimal {
	total := decimal.Zero
	for _, account := range s.CapitalAccounts {
		if include(account) {
			total = total.Add(account.Balance)
		}
	}
	return total
}

// TotalCreditCardDebt sums card balances
func (s *FinancialStatus) TotalCreditCardDebt() decimal.Decimal {
	return s.sumCards(func(c *CreditCard) decimal.Decimal { return c.Balance })
}

// TotalMinimumPayments sums card minimum payments
func (s *FinancialStatus) TotalMinimumPayments() decimal.Decimal {
	return s.sumCards((*CreditCard).MinimumPayment)
}

// TotalPlannedPayments sums card planned payments
func (s *FinancialStatus) TotalPlannedPayments() decimal.Decimal {
	return s.sumCards((*CreditCard).PlannedPayment)
}

// TotalMonthlyDebt is fixed expenses plus planned card payments
func (s *FinancialStatus) TotalMonthlyDebt() decimal.Decimal {
	return s.FixedExpenses.Add(s.TotalPlannedPayments())
}

// MonthlyCashFlow is employer income minus total monthly debt
func (s *FinancialStatus) MonthlyCashFlow() decimal.Decimal {
	return s.EmployerIncome.Sub(s.TotalMonthlyDebt())
}

// DTIRatio divides total monthly debt by employer income.
// Returns ErrDivisionByZero when income is zero.
func (s *FinancialStatus) DTIRatio() (decimal.Decimal, error) {
	if s.EmployerIncome.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return s.TotalMonthlyDebt().Div(s.EmployerIncome), nil
}

// TotalLiquidAccounts sums checking and savings balances
func (s *FinancialStatus) TotalLiquidAccounts() decimal.Decimal {
	return s.sumAccounts((*CapitalAccount).IsLiquidAccount)
}

// TotalRetirementAccounts sums every non-liquid balance
func (s *FinancialStatus) TotalRetirementAccounts() decimal.Decimal {
	return s.sumAccounts((*CapitalAccount).IsRetirementAccount)
}

// TotalAccounts is liquid plus retirement
func (s *FinancialStatus) TotalAccounts() decimal.Decimal {
	return s.TotalLiquidAccounts().Add(s.TotalRetirementAccounts())
}

// Summary aggregates every metric. It fails with ErrDivisionByZero when the
// DTI ratio is undefined.
func (s *FinancialStatus) Summary() (*FinancialStatusSummary, error) {
	dti, err := s.DTIRatio()
	if err != nil {
		return nil, err
	}
	return &FinancialStatusSummary{
		TotalLiquidAccounts:        s.TotalLiquidAccounts(),
		TotalRetirementAccounts:    s.TotalRetirementAccounts(),
		TotalAccounts:              s.TotalAccounts(),
		EmployerIncome:             s.EmployerIncome,
		FixedExpenses:              s.FixedExpenses,
		TotalCreditCardDebt:        s.TotalCreditCardDebt(),
		TotalMinimumPayments:       s.TotalMinimumPayments(),
		TotalPlannedCreditPayments: s.TotalPlannedPayments(),
		TotalMonthlyDebt:           s.TotalMonthlyDebt(),
		MonthlyCashFlow:            s.MonthlyCashFlow(),
		DTIRatio:                   dti,
	}, nil
}
