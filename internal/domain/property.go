package domain

import "github.com/shopspring/decimal"

// Property is an immutable snapshot of a prospective real-estate purchase
type Property struct {
	Name                 string          `json:"name"`
	SellingPrice         decimal.Decimal `json:"sellingPrice"`
	CurrentRentPerUnit   decimal.Decimal `json:"currentRentPerUnit"`
	NumUnits             int             `json:"numUnits"`
	AppraisedRentPerUnit decimal.Decimal `json:"appraisedRentPerUnit"`
}

// NewProperty returns a Property. A nil or zero appraisedRentPerUnit falls
// back to currentRentPerUnit.
func NewProperty(name string, sellingPrice, currentRentPerUnit decimal.Decimal, numUnits int, appraisedRentPerUnit *decimal.Decimal) Property {
	appraised := currentRentPerUnit
	if appraisedRentPerUnit != nil && !appraisedRentPerUnit.IsZero() {
		appraised = *appraisedRentPerUnit
	}
	return Property{
		Name:                 name,
		SellingPrice:         sellingPrice,
		CurrentRentPerUnit:   currentRentPerUnit,
		NumUnits:             numUnits,
		AppraisedRentPerUnit: appraised,
	}
}

// GrossMonthlyRent is appraised rent across all units
func (p Property) GrossMonthlyRent() decimal.Decimal {
	return p.AppraisedRentPerUnit.Mul(decimal.NewFromInt(int64(p.NumUnits)))
}
