package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseType is the unit layout of a house listing
type HouseType string

const (
	HouseTypeSingle HouseType = "single"
	HouseTypeDuplex HouseType = "duplex"
	HouseTypeTri    HouseType = "tri"
	HouseTypeQuad   HouseType = "quad"
)

// HouseTypeToUnits maps house types to their unit count
var HouseTypeToUnits = map[HouseType]int{
	HouseTypeSingle: 1,
	HouseTypeDuplex: 2,
	HouseTypeTri:    3,
	HouseTypeQuad:   4,
}

// House is a persisted listing under consideration for purchase
type House struct {
	ID                   int32            `json:"id"`
	HouseholdID          int32            `json:"householdId"`
	Name                 string           `json:"name"`
	HouseType            HouseType        `json:"houseType"`
	Price                decimal.Decimal  `json:"price"`
	EstRentPerUnit       decimal.Decimal  `json:"estRentPerUnit"`
	AppraisedRentPerUnit *decimal.Decimal `json:"appraisedRentPerUnit,omitempty"`
	Notes                string           `json:"notes"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// Validate checks the house fields and trims its name. Amounts must not be negative.
func (h *House) Validate() error {
	name, err := ValidateName(h.Name)
	if err != nil {
		return err
	}
	h.Name = name
	if _, ok := HouseTypeToUnits[h.HouseType]; !ok {
		return ErrInvalidHouseType
	}
	if len(h.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	if err := ValidateNonNegative(h.Price, h.EstRentPerUnit); err != nil {
		return err
	}
	if h.AppraisedRentPerUnit != nil {
		return ValidateNonNegative(*h.AppraisedRentPerUnit)
	}
	return nil
}

// NumUnits returns the unit count of the house type, 0 when unknown
func (h *House) NumUnits() int {
	return HouseTypeToUnits[h.HouseType]
}

// ToProperty converts the listing into a Property snapshot
func (h *House) ToProperty() Property {
	return NewProperty(h.Name, h.Price, h.EstRentPerUnit, h.NumUnits(), h.AppraisedRentPerUnit)
}

// HouseRepository defines persistence operations for houses
type HouseRepository interface {
	Create(house *House) (*House, error)
	GetByID(householdID int32, id int32) (*House, error)
	GetAllByHousehold(householdID int32) ([]*House, error)
	Update(house *House) (*House, error)
	Delete(householdID int32, id int32) error
}
