package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCapitalAccount_Success(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(repo))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/capital-accounts",
		`{"name": "High Yield Savings", "accountType": "savings", "balance": "50047", "annualYield": "0.042"}`, 1)

	require.NoError(t, handler.CreateAccount(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response CapitalAccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "High Yield Savings", response.Name)
	assert.Equal(t, "50047.00", response.Balance)
	assert.Equal(t, "0.0420", response.AnnualYield)
	assert.Equal(t, "175.16", response.MonthlyYield)
	assert.True(t, response.IsLiquid)
	assert.Equal(t, int32(1), response.HouseholdID)
}

func TestCreateCapitalAccount_InvalidBalance(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(repo))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/capital-accounts",
		`{"name": "Checking", "accountType": "checking", "balance": "lots"}`, 1)

	require.NoError(t, handler.CreateAccount(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "balance", problem.Errors[0].Field)
	assert.Empty(t, repo.Accounts)
}

func TestCreateCapitalAccount_MissingType(t *testing.T) {
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(testutil.NewMockCapitalAccountRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/capital-accounts", `{"name": "Checking"}`, 1)

	require.NoError(t, handler.CreateAccount(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "accountType", decodeProblem(t, rec).Errors[0].Field)
}

func TestCreateCapitalAccount_MissingHousehold(t *testing.T) {
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(testutil.NewMockCapitalAccountRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/capital-accounts", `{"name": "Checking"}`, 0)

	require.NoError(t, handler.CreateAccount(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCapitalAccounts(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "WF Checking", AccountType: "checking", Balance: dec("3303.05")})
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Employer 401k", AccountType: "401k", Balance: dec("49167")})
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 2, Name: "Not mine", AccountType: "checking"})
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(repo))

	c, rec := newHouseholdContext(http.MethodGet, "/api/v1/capital-accounts", "", 1)

	require.NoError(t, handler.GetAccounts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response []CapitalAccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "3303.05", response[0].Balance)
	assert.False(t, response[1].IsLiquid)
}

func TestGetCapitalAccounts_Empty(t *testing.T) {
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(testutil.NewMockCapitalAccountRepository()))

	c, rec := newHouseholdContext(http.MethodGet, "/api/v1/capital-accounts", "", 1)

	require.NoError(t, handler.GetAccounts(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateCapitalAccount_NotFound(t *testing.T) {
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(testutil.NewMockCapitalAccountRepository()))

	c, rec := newHouseholdContext(http.MethodPut, "/api/v1/capital-accounts/9",
		`{"name": "Checking", "accountType": "checking", "balance": "10"}`, 1)

	require.NoError(t, handler.UpdateAccount(withID(c, 9)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeProblem(t, rec).Type)
}

func TestDeleteCapitalAccount(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	repo.AddCapitalAccount(&domain.CapitalAccount{ID: 3, HouseholdID: 1, Name: "Checking", AccountType: "checking"})
	handler := NewCapitalAccountHandler(service.NewCapitalAccountService(repo))

	c, rec := newHouseholdContext(http.MethodDelete, "/api/v1/capital-accounts/3", "", 1)
	require.NoError(t, handler.DeleteAccount(withID(c, 3)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newHouseholdContext(http.MethodDelete, "/api/v1/capital-accounts/abc", "", 1)
	require.NoError(t, handler.DeleteAccount(withID(c, "abc")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
