package domain

import "github.com/shopspring/decimal"

// PropertyAnalysis holds the screening results of one property
type PropertyAnalysis struct {
	SelfSufficiency      bool            `json:"selfSufficiency"`
	CashOnCashReturn     decimal.Decimal `json:"cashOnCashReturn"`
	BreakEvenRentPerUnit decimal.Decimal `json:"breakEvenRentPerUnit"`
}

// Portfolio is an ordered, append-only collection of properties
type Portfolio struct {
	properties []Property
}

// NewPortfolio returns a portfolio holding the given properties in order
func NewPortfolio(properties ...Property) *Portfolio {
	p := &Portfolio{}
	for _, property := range properties {
		p.AddProperty(property)
	}
	return p
}

// AddProperty appends a property. Names are not checked for uniqueness.
func (p *Portfolio) AddProperty(property Property) {
	p.properties = append(p.properties, property)
}

// Properties returns a copy of the properties in insertion order
func (p *Portfolio) Properties() []Property {
	out := make([]Property, len(p.properties))
	copy(out, p.properties)
	return out
}

// Len returns the number of properties
func (p *Portfolio) Len() int {
	return len(p.properties)
}

// DuplicateNames returns every name held by more than one property, in first-seen order
func (p *Portfolio) DuplicateNames() []string {
	seen := make(map[string]int, len(p.properties))
	var dups []string
	for _, property := range p.properties {
		seen[property.Name]++
		if seen[property.Name] == 2 {
			dups = append(dups, property.Name)
		}
	}
	return dups
}

// AnalyzePortfolio screens every property with its PITI estimate and annual
// expenses looked up by name (0 when absent). Cash-on-cash return uses the
// default down payment. Properties sharing a name overwrite earlier results.
func (p *Portfolio) AnalyzePortfolio(finder *PropertyFinder, pitiEstimates, annualExpenses map[string]decimal.Decimal) map[string]PropertyAnalysis {
	downPayment := DefaultDownPaymentParams().DownPaymentPercent
	results := make(map[string]PropertyAnalysis, len(p.properties))
	for _, property := range p.properties {
		piti := pitiEstimates[property.Name]
		expenses := annualExpenses[property.Name]
		results[property.Name] = PropertyAnalysis{
			SelfSufficiency:      finder.FHASelfSufficiencyTest(property, piti),
			CashOnCashReturn:     finder.CashOnCashReturn(property, downPayment, expenses),
			BreakEvenRentPerUnit: finder.BreakEvenRent(property, piti, expenses),
		}
	}
	return results
}
