package service

import (
	"context"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioFixture() (*statusFixture, *PortfolioService) {
	f := newStatusFixture()
	f.addHousehold(1, "8583", "256")
	f.houses.AddHouse(&domain.House{HouseholdID: 1, Name: "Main St Fourplex", HouseType: domain.HouseTypeQuad, Price: dec("800000"), EstRentPerUnit: dec("2000")})
	f.houses.AddHouse(&domain.House{HouseholdID: 1, Name: "Oak St Duplex", HouseType: domain.HouseTypeDuplex, Price: dec("450000"), EstRentPerUnit: dec("1500")})
	return f, NewPortfolioService(f.houses, f.status, f.reports)
}

func TestPortfolioService_Analyze(t *testing.T) {
	_, svc := newPortfolioFixture()

	analysis, err := svc.Analyze(1,
		map[string]decimal.Decimal{"Main St Fourplex": dec("5000"), "Oak St Duplex": dec("2500")},
		map[string]decimal.Decimal{"Main St Fourplex": dec("10000"), "Oak St Duplex": dec("5000")},
	)
	require.NoError(t, err)
	require.Len(t, analysis.Properties, 2)

	fourplex := analysis.Properties["Main St Fourplex"]
	assert.True(t, fourplex.SelfSufficiency)
	assert.InDelta(t, 1.653846, fourplex.CashOnCashReturn.InexactFloat64(), 1e-6)
	assert.InDelta(t, 1458.3333, fourplex.BreakEvenRentPerUnit.InexactFloat64(), 1e-4)

	duplex := analysis.Properties["Oak St Duplex"]
	assert.False(t, duplex.SelfSufficiency)
	assert.InDelta(t, 1.059829, duplex.CashOnCashReturn.InexactFloat64(), 1e-6)

	assert.NotNil(t, analysis.DuplicateNames)
	assert.Empty(t, analysis.DuplicateNames)
}

func TestPortfolioService_Analyze_NoHouses(t *testing.T) {
	f := newStatusFixture()
	f.addHousehold(1, "8583", "256")
	svc := NewPortfolioService(f.houses, f.status, f.reports)

	analysis, err := svc.Analyze(1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.Properties)
}

func TestPortfolioService_Analyze_DuplicateNames(t *testing.T) {
	f, svc := newPortfolioFixture()
	f.houses.AddHouse(&domain.House{HouseholdID: 1, Name: "Oak St Duplex", HouseType: domain.HouseTypeQuad, Price: dec("450000"), EstRentPerUnit: dec("1500")})

	analysis, err := svc.Analyze(1, map[string]decimal.Decimal{"Oak St Duplex": dec("2500")}, map[string]decimal.Decimal{"Oak St Duplex": dec("5000")})
	require.NoError(t, err)

	assert.Equal(t, []string{"Oak St Duplex"}, analysis.DuplicateNames)
	require.Len(t, analysis.Properties, 2)
	// the later quad listing wins: (2500*12 + 5000) / 12 / 4 units
	assert.InDelta(t, 35000.0/48.0, analysis.Properties["Oak St Duplex"].BreakEvenRentPerUnit.InexactFloat64(), 1e-6)
}

func TestPortfolioService_Analyze_InvalidEstimate(t *testing.T) {
	_, svc := newPortfolioFixture()

	_, err := svc.Analyze(1, map[string]decimal.Decimal{"Main St Fourplex": dec("-5000")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPortfolioService_Archive(t *testing.T) {
	f, svc := newPortfolioFixture()
	publisher := testutil.NewMockEventPublisher()
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	analysis, err := svc.Analyze(1, nil, nil)
	require.NoError(t, err)

	key, err := svc.Archive(ctx, analysis)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "households/1/portfolio/"))

	objects, err := f.reports.List(ctx, "households/1/portfolio/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, key, objects[0].Key)

	assert.Equal(t, []string{"report.archived"}, publisher.Types())
	assert.Equal(t, int32(1), publisher.Events[0].HouseholdID)
}
