package service

import (
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalAccountService_CreateAccount(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewCapitalAccountService(repo)
	svc.SetEventPublisher(publisher)

	account, err := svc.CreateAccount(1, CapitalAccountInput{
		Name:        "High Yield Savings",
		AccountType: "Savings",
		Balance:     dec("50047"),
		AnnualYield: dec("0.042"),
	})
	require.NoError(t, err)

	assert.NotZero(t, account.ID)
	assert.Equal(t, int32(1), account.HouseholdID)
	assert.True(t, account.IsLiquidAccount())
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "capital_account.created", publisher.Events[0].Event.Type)
	assert.Equal(t, int32(1), publisher.Events[0].HouseholdID)
}

func TestCapitalAccountService_CreateAccount_Validation(t *testing.T) {
	svc := NewCapitalAccountService(testutil.NewMockCapitalAccountRepository())

	_, err := svc.CreateAccount(1, CapitalAccountInput{AccountType: "checking"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateAccount(1, CapitalAccountInput{Name: "Checking"})
	assert.ErrorIs(t, err, domain.ErrAccountTypeRequired)

	overdraft, err := svc.CreateAccount(1, CapitalAccountInput{Name: "Checking", AccountType: "checking", Balance: dec("-20")})
	require.NoError(t, err)
	assert.True(t, overdraft.Balance.Equal(dec("-20")))
}

func TestCapitalAccountService_GetAccounts(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "WF Checking", AccountType: "checking"})
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 2, Name: "Other", AccountType: "checking"})
	repo.AddCapitalAccount(&domain.CapitalAccount{HouseholdID: 1, Name: "Employer 401k", AccountType: "401k"})
	svc := NewCapitalAccountService(repo)

	accounts, err := svc.GetAccounts(1)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "WF Checking", accounts[0].Name)
	assert.Equal(t, "Employer 401k", accounts[1].Name)

	empty, err := svc.GetAccounts(9)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCapitalAccountService_UpdateAndDelete(t *testing.T) {
	repo := testutil.NewMockCapitalAccountRepository()
	repo.AddCapitalAccount(&domain.CapitalAccount{ID: 4, HouseholdID: 1, Name: "Roth", AccountType: "rothira"})
	publisher := testutil.NewMockEventPublisher()
	svc := NewCapitalAccountService(repo)
	svc.SetEventPublisher(publisher)

	updated, err := svc.UpdateAccount(1, 4, CapitalAccountInput{Name: "Roth IRA", AccountType: "rothira", Balance: dec("13676.14"), AnnualYield: dec("0.0656")})
	require.NoError(t, err)
	assert.Equal(t, "Roth IRA", updated.Name)
	assert.True(t, updated.Balance.Equal(dec("13676.14")))

	_, err = svc.GetAccountByID(2, 4)
	assert.ErrorIs(t, err, domain.ErrCapitalAccountNotFound)

	require.NoError(t, svc.DeleteAccount(1, 4))
	_, err = svc.GetAccountByID(1, 4)
	assert.ErrorIs(t, err, domain.ErrCapitalAccountNotFound)

	assert.Equal(t, []string{"capital_account.updated", "capital_account.deleted"}, publisher.Types())
}
