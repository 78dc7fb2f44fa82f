package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusHandlerFixture struct {
	households *testutil.MockHouseholdRepository
	cards      *testutil.MockCreditCardRepository
	accounts   *testutil.MockCapitalAccountRepository
	loans      *testutil.MockLoanRepository
	houses     *testutil.MockHouseRepository
	reports    *storage.MemoryReportRepository
	status     *service.StatusService
}

func newStatusHandlerFixture(income string) *statusHandlerFixture {
	f := &statusHandlerFixture{
		households: testutil.NewMockHouseholdRepository(),
		cards:      testutil.NewMockCreditCardRepository(),
		accounts:   testutil.NewMockCapitalAccountRepository(),
		loans:      testutil.NewMockLoanRepository(),
		houses:     testutil.NewMockHouseRepository(),
		reports:    storage.NewMemoryReportRepository(),
	}
	f.households.AddHousehold(&domain.Household{ID: 1, UserID: uuid.New(), Name: "Home", EmployerIncome: dec(income), FixedExpenses: dec("256")}, "")
	f.status = service.NewStatusService(f.households, f.cards, f.accounts, f.loans, f.reports)
	return f
}

func TestGetSummary_Success(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	f.cards.AddCreditCard(&domain.CreditCard{HouseholdID: 1, Name: "Chase_1", Issuer: domain.IssuerCHAS, Balance: dec("4020.43"), APR: dec("0.1849")})
	f.accounts.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Checking", AccountType: "checking", Balance: dec("3303.05")})
	f.accounts.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "401k", AccountType: "401k", Balance: dec("49167")})
	handler := NewStatusHandler(f.status)

	c, rec := newHouseholdContext(http.MethodGet, "/api/v1/status/summary", "", 1)
	require.NoError(t, handler.GetSummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response StatusSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "3303.05", response.TotalLiquidAccounts)
	assert.Equal(t, "49167.00", response.TotalRetirementAccounts)
	assert.Equal(t, "4020.43", response.TotalCreditCardDebt)
	assert.Equal(t, "102.15", response.TotalMinimumPayments)
	assert.Equal(t, "358.15", response.TotalMonthlyDebt)
	assert.Equal(t, "0.0417", response.DTIRatio)
	require.Len(t, response.CreditCards, 1)
	assert.Equal(t, "chas", response.CreditCards[0].Provider)
	require.Len(t, response.CapitalAccounts, 2)
	assert.True(t, response.CapitalAccounts[0].IsLiquid)
	assert.False(t, response.CapitalAccounts[1].IsLiquid)
	assert.NotNil(t, response.Loans)
}

func TestGetSummary_ZeroIncome(t *testing.T) {
	handler := NewStatusHandler(newStatusHandlerFixture("0").status)

	c, rec := newHouseholdContext(http.MethodGet, "/api/v1/status/summary", "", 1)
	require.NoError(t, handler.GetSummary(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrorTypeUnprocessable, decodeProblem(t, rec).Type)
}

func TestEstimatePrice_Defaults(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	f.accounts.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Savings", AccountType: "savings", Balance: dec("6500")})
	handler := NewStatusHandler(f.status)

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate", "", 1)
	require.NoError(t, handler.EstimatePrice(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response PriceEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "100000.00", response.ByDownPayment)
	assert.True(t, strings.HasPrefix(response.ByDTI, "5547"))
}

func TestEstimatePrice_Overrides(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	f.accounts.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Savings", AccountType: "savings", Balance: dec("6500")})
	handler := NewStatusHandler(f.status)

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate",
		`{"downPaymentPercent": "0.10", "dtiLimit": "0", "monthlyTaxesInsurance": "0"}`, 1)
	require.NoError(t, handler.EstimatePrice(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response PriceEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "50000.00", response.ByDownPayment)
	assert.Equal(t, "0.00", response.ByDTI)
}

func TestEstimatePrice_InvalidParams(t *testing.T) {
	handler := NewStatusHandler(newStatusHandlerFixture("8583").status)

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate", `{"loanTermYears": -1}`, 1)
	require.NoError(t, handler.EstimatePrice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate", `{"apr": "seven"}`, 1)
	require.NoError(t, handler.EstimatePrice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "apr", decodeProblem(t, rec).Errors[0].Field)
}

func TestEstimatePrice_RejectsNegativeAndOverflowingInputs(t *testing.T) {
	handler := NewStatusHandler(newStatusHandlerFixture("8583").status)

	for _, body := range []string{
		`{"apr": "-12"}`,
		`{"apr": "-1"}`,
		`{"downPaymentPercent": "-0.2"}`,
		`{"downPaymentPercent": "0", "closingCostPercent": "0"}`,
		`{"loanTermYears": 5000}`,
	} {
		c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate", body, 1)
		require.NotPanics(t, func() { require.NoError(t, handler.EstimatePrice(c)) }, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestEstimatePrice_ExtremeInputsRenderFinite(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	f.accounts.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Savings", AccountType: "savings", Balance: dec("6500")})
	handler := NewStatusHandler(f.status)

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/price-estimate",
		`{"downPaymentPercent": "1e-16", "dtiLimit": "1e300"}`, 1)
	require.NotPanics(t, func() { require.NoError(t, handler.EstimatePrice(c)) })
	require.Equal(t, http.StatusOK, rec.Code)

	var response PriceEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, dec(response.ByDownPayment).IsPositive())
	assert.True(t, dec(response.ByDTI).IsPositive())
}

func TestArchiveSummary(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	handler := NewStatusHandler(f.status)

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/archive", "", 1)
	require.NoError(t, handler.ArchiveSummary(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response ArchiveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, strings.HasPrefix(response.Key, storage.ReportPrefix(1, storage.ReportKindStatus)))

	_, err := f.reports.Get(c.Request().Context(), response.Key)
	assert.NoError(t, err)
}

func TestArchiveSummary_NotConfigured(t *testing.T) {
	f := newStatusHandlerFixture("8583")
	handler := NewStatusHandler(service.NewStatusService(f.households, f.cards, f.accounts, f.loans, nil))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/status/archive", "", 1)
	require.NoError(t, handler.ArchiveSummary(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
