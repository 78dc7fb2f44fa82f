package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Screening constants
var (
	// SelfSufficiencyFactor is the share of gross rent kept after the 25%
	// vacancy and expense haircut.
	SelfSufficiencyFactor = decimal.RequireFromString("0.75")
	// ClosingCostPercent is the closing cost share assumed by cash-on-cash return
	ClosingCostPercent = decimal.RequireFromString("0.03")
)

// MaxLoanTermYears bounds DTIParams.LoanTermYears
const MaxLoanTermYears = 100

// DownPaymentParams are the inputs of EstimatePriceByDownPayment
type DownPaymentParams struct {
	DownPaymentPercent decimal.Decimal `json:"downPaymentPercent"`
	ClosingCostPercent decimal.Decimal `json:"closingCostPercent"`
	ReserveMonths      decimal.Decimal `json:"reserveMonths"`
	PITIEstimate       decimal.Decimal `json:"pitiEstimate"`
}

// DefaultDownPaymentParams returns FHA-style defaults: 3.5% down, 3% closing, 3 months reserve
func DefaultDownPaymentParams() DownPaymentParams {
	return DownPaymentParams{
		DownPaymentPercent: decimal.RequireFromString("0.035"),
		ClosingCostPercent: ClosingCostPercent,
		ReserveMonths:      decimal.NewFromInt(3),
	}
}

// Validate rejects negative parameters and a non-positive upfront percentage
// with ErrInvalidInput.
func (p DownPaymentParams) Validate() error {
	if ValidateNonNegative(p.DownPaymentPercent, p.ClosingCostPercent, p.ReserveMonths, p.PITIEstimate) != nil {
		return ErrInvalidInput
	}
	if !p.DownPaymentPercent.Add(p.ClosingCostPercent).IsPositive() {
		return ErrInvalidInput
	}
	return nil
}

// DTIParams are the inputs of EstimatePriceByDTI
type DTIParams struct {
	DTILimit              decimal.Decimal `json:"dtiLimit"`
	APR                   decimal.Decimal `json:"apr"`
	LoanTermYears         int             `json:"loanTermYears"`
	MonthlyTaxesInsurance decimal.Decimal `json:"monthlyTaxesInsurance"`
}

// DefaultDTIParams returns a 43% DTI limit on a 30 year loan at 7%
func DefaultDTIParams() DTIParams {
	return DTIParams{
		DTILimit:      decimal.RequireFromString("0.43"),
		APR:           decimal.RequireFromString("0.07"),
		LoanTermYears: 30,
	}
}

// Validate rejects negative parameters and a loan term outside
// [0, MaxLoanTermYears] with ErrInvalidInput.
func (p DTIParams) Validate() error {
	if ValidateNonNegative(p.DTILimit, p.APR, p.MonthlyTaxesInsurance) != nil {
		return ErrInvalidInput
	}
	if p.LoanTermYears < 0 || p.LoanTermYears > MaxLoanTermYears {
		return ErrInvalidInput
	}
	return nil
}

// PropertyFinder evaluates properties against a FinancialStatus.
// It holds no state besides the status it reads.
type PropertyFinder struct {
	status *FinancialStatus
}

// NewPropertyFinder returns a PropertyFinder reading the given status
func NewPropertyFinder(status *FinancialStatus) *PropertyFinder {
	return &PropertyFinder{status: status}
}

// EstimatePriceByDownPayment returns the price whose down payment and closing
// costs the liquid cash covers after setting aside the PITI reserve. Floored at 0.
// Returns 0 when the upfront percentage is not positive.
func (f *PropertyFinder) EstimatePriceByDownPayment(p DownPaymentParams) decimal.Decimal {
	liquidCash := f.status.TotalLiquidAccounts()
	reserveRequirement := p.PITIEstimate.Mul(p.ReserveMonths)
	upfrontPercent := p.DownPaymentPercent.Add(p.ClosingCostPercent)
	// total upfront only gates the estimate; it is not part of the result
	if !upfrontPercent.Add(reserveRequirement).IsPositive() || !upfrontPercent.IsPositive() {
		return decimal.Zero
	}
	estPrice := liquidCash.Sub(reserveRequirement).Div(upfrontPercent)
	return decimal.Max(estPrice, decimal.Zero)
}

// EstimatePriceByDTI converts the housing payment left under the DTI limit
// into a loan principal with the fixed-rate amortization formula. Floored at 0.
func (f *PropertyFinder) EstimatePriceByDTI(p DTIParams) decimal.Decimal {
	maxHousingPayment := f.status.EmployerIncome.Mul(p.DTILimit).Sub(p.MonthlyTaxesInsurance)
	return decimal.Max(LoanPrincipal(maxHousingPayment, p.APR, p.LoanTermYears), decimal.Zero)
}

// FHASelfSufficiencyTest reports whether 75% of appraised gross rent covers PITI
func (f *PropertyFinder) FHASelfSufficiencyTest(property Property, pitiEstimate decimal.Decimal) bool {
	netRent := property.GrossMonthlyRent().Mul(SelfSufficiencyFactor)
	return netRent.GreaterThanOrEqual(pitiEstimate)
}

// CashOnCashReturn divides annual net rent by the cash invested (down payment
// plus 3% closing). Returns 0 when nothing is invested.
func (f *PropertyFinder) CashOnCashReturn(property Property, downPaymentPercent, annualExpenses decimal.Decimal) decimal.Decimal {
	annualIncome := property.GrossMonthlyRent().Mul(twelve)
	annualCashFlow := annualIncome.Sub(annualExpenses)
	investment := property.SellingPrice.Mul(downPaymentPercent.Add(ClosingCostPercent))
	if !investment.IsPositive() {
		return decimal.Zero
	}
	return annualCashFlow.Div(investment)
}

// BreakEvenRent returns the monthly rent per unit covering PITI and expenses.
// Returns 0 for a property without units.
func (f *PropertyFinder) BreakEvenRent(property Property, pitiEstimate, annualExpenses decimal.Decimal) decimal.Decimal {
	if property.NumUnits <= 0 {
		return decimal.Zero
	}
	totalAnnualCost := pitiEstimate.Mul(twelve).Add(annualExpenses)
	return totalAnnualCost.Div(twelve).Div(decimal.NewFromInt(int64(property.NumUnits)))
}

// annuityFactor returns (1 − (1+r)^−n) / r for the monthly rate of apr over
// termYears, or n when the rate vanishes. ok is false when the factor is not finite.
func annuityFactor(apr decimal.Decimal, termYears int) (factor decimal.Decimal, ok bool) {
	n := int64(termYears) * 12
	r := apr.Div(twelve).InexactFloat64()
	if 1+r == 1 {
		return decimal.NewFromInt(n), true
	}
	f := (1 - math.Pow(1+r, -float64(n))) / r
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// LoanPrincipal returns the principal a monthly payment amortizes over
// termYears at apr: payment × (1 − (1+r)^−n) / r, or payment × n at zero rate.
// Returns 0 when the amortization factor overflows.
func LoanPrincipal(payment, apr decimal.Decimal, termYears int) decimal.Decimal {
	factor, ok := annuityFactor(apr, termYears)
	if !ok {
		return decimal.Zero
	}
	return payment.Mul(factor)
}

// MonthlyPayment is the inverse of LoanPrincipal: principal × r / (1 − (1+r)^−n).
// Returns 0 for a zero-length term.
func MonthlyPayment(principal, apr decimal.Decimal, termYears int) decimal.Decimal {
	factor, ok := annuityFactor(apr, termYears)
	if !ok || factor.IsZero() {
		return decimal.Zero
	}
	return principal.Div(factor)
}
