package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouse_ToProperty(t *testing.T) {
	house := &House{Name: "Main St Fourplex", HouseType: HouseTypeQuad, Price: dec("800000"), EstRentPerUnit: dec("2000"), AppraisedRentPerUnit: decPtr("2150")}
	require.NoError(t, house.Validate())

	property := house.ToProperty()

	assert.Equal(t, "Main St Fourplex", property.Name)
	assert.Equal(t, 4, property.NumUnits)
	assertDecimal(t, "800000", property.SellingPrice)
	assertDecimal(t, "2000", property.CurrentRentPerUnit)
	assertDecimal(t, "2150", property.AppraisedRentPerUnit)
}

func TestHouse_Validate(t *testing.T) {
	house := &House{Name: "  Oak St  ", HouseType: HouseTypeDuplex, Price: dec("450000")}
	require.NoError(t, house.Validate())
	assert.Equal(t, "Oak St", house.Name)

	bad := &House{Name: "Oak St", HouseType: "castle"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidHouseType)

	unnamed := &House{HouseType: HouseTypeSingle}
	assert.ErrorIs(t, unnamed.Validate(), ErrNameRequired)

	negative := &House{Name: "Oak St", HouseType: HouseTypeSingle, Price: dec("-1")}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidAmount)

	badAppraisal := &House{Name: "Oak St", HouseType: HouseTypeSingle, AppraisedRentPerUnit: decPtr("-900")}
	assert.ErrorIs(t, badAppraisal.Validate(), ErrInvalidAmount)
}

func TestLoan_Summary(t *testing.T) {
	loan := &Loan{Name: "Car", Lender: "Ally", Balance: dec("18250.555"), APR: dec("0.0649"), MinPayment: dec("412.333")}
	require.NoError(t, loan.Validate())

	summary := loan.Summary()

	assertDecimal(t, "18250.56", summary.Balance)
	assertDecimal(t, "0.0649", summary.APR)
	assertDecimal(t, "412.33", summary.MinPayment)
	assertDecimal(t, "98.71", summary.MonthlyInterest)
}

func TestLoan_ValidateRejectsNegativeAmounts(t *testing.T) {
	loan := &Loan{Name: "Car", Balance: dec("100"), APR: dec("-0.01")}
	assert.ErrorIs(t, loan.Validate(), ErrInvalidAmount)
}
