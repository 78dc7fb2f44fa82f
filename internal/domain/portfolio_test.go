package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_AnalyzePortfolio(t *testing.T) {
	status := newStatus(t, "8583", "256", nil, nil)
	finder := NewPropertyFinder(status)

	portfolio := NewPortfolio()
	portfolio.AddProperty(NewProperty("Main St Fourplex", dec("800000"), dec("2000"), 4, nil))
	portfolio.AddProperty(NewProperty("Oak St Duplex", dec("450000"), dec("1500"), 2, nil))

	piti := map[string]decimal.Decimal{"Main St Fourplex": dec("5000"), "Oak St Duplex": dec("2500")}
	expenses := map[string]decimal.Decimal{"Main St Fourplex": dec("10000"), "Oak St Duplex": dec("5000")}

	results := portfolio.AnalyzePortfolio(finder, piti, expenses)
	require.Len(t, results, 2)

	fourplex, ok := results["Main St Fourplex"]
	require.True(t, ok)
	assert.True(t, fourplex.SelfSufficiency)
	assert.InDelta(t, 1.653846, fourplex.CashOnCashReturn.InexactFloat64(), 1e-6)
	assert.InDelta(t, 1458.3333, fourplex.BreakEvenRentPerUnit.InexactFloat64(), 1e-4)

	duplex, ok := results["Oak St Duplex"]
	require.True(t, ok)
	assert.False(t, duplex.SelfSufficiency)
	assert.InDelta(t, 1.059829, duplex.CashOnCashReturn.InexactFloat64(), 1e-6)
	assert.InDelta(t, 1458.3333, duplex.BreakEvenRentPerUnit.InexactFloat64(), 1e-4)
}

func TestPortfolio_MissingEstimatesDefaultToZero(t *testing.T) {
	status := newStatus(t, "8583", "256", nil, nil)

	portfolio := NewPortfolio(NewProperty("Elm Single", dec("300000"), dec("2100"), 1, nil))

	results := portfolio.AnalyzePortfolio(NewPropertyFinder(status), nil, nil)

	elm := results["Elm Single"]
	assert.True(t, elm.SelfSufficiency)
	assert.True(t, elm.BreakEvenRentPerUnit.IsZero())
	assert.InDelta(t, 25200.0/19500.0, elm.CashOnCashReturn.InexactFloat64(), 1e-9)
}

func TestPortfolio_DuplicateNamesLastWriteWins(t *testing.T) {
	status := newStatus(t, "8583", "256", nil, nil)

	portfolio := NewPortfolio(
		NewProperty("Twin", dec("400000"), dec("1000"), 2, nil),
		NewProperty("Other", dec("100000"), dec("900"), 1, nil),
		NewProperty("Twin", dec("400000"), dec("1000"), 4, nil),
	)

	assert.Equal(t, 3, portfolio.Len())
	assert.Equal(t, []string{"Twin"}, portfolio.DuplicateNames())

	results := portfolio.AnalyzePortfolio(NewPropertyFinder(status), map[string]decimal.Decimal{"Twin": dec("1200")}, nil)

	require.Len(t, results, 2)
	assertDecimal(t, "300", results["Twin"].BreakEvenRentPerUnit)
}

func TestPortfolio_PropertiesReturnsCopy(t *testing.T) {
	portfolio := NewPortfolio(NewProperty("A", dec("1"), dec("1"), 1, nil))

	props := portfolio.Properties()
	props[0].Name = "changed"

	assert.Equal(t, "A", portfolio.Properties()[0].Name)
}
