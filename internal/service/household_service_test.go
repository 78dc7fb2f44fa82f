package service

import (
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseholdService_UpdateBudget(t *testing.T) {
	repo := testutil.NewMockHouseholdRepository()
	repo.AddHousehold(&domain.Household{ID: 1, UserID: uuid.New(), Name: "Home"}, "auth0|a")
	publisher := testutil.NewMockEventPublisher()
	svc := NewHouseholdService(repo)
	svc.SetEventPublisher(publisher)

	updated, err := svc.UpdateBudget(1, dec("8583"), dec("256"))
	require.NoError(t, err)
	assert.True(t, updated.EmployerIncome.Equal(dec("8583")))
	assert.True(t, updated.FixedExpenses.Equal(dec("256")))

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, int32(1), publisher.Events[0].HouseholdID)
	assert.Equal(t, "household.updated", publisher.Events[0].Event.Type)
}

func TestHouseholdService_UpdateBudget_Invalid(t *testing.T) {
	repo := testutil.NewMockHouseholdRepository()
	repo.AddHousehold(&domain.Household{ID: 1, UserID: uuid.New()}, "")
	publisher := testutil.NewMockEventPublisher()
	svc := NewHouseholdService(repo)
	svc.SetEventPublisher(publisher)

	tests := []struct {
		name   string
		income string
		fixed  string
	}{
		{"negative income", "-1", "0"},
		{"negative expenses", "1000", "-5"},
		{"negative cents", "0", "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateBudget(1, dec(tt.income), dec(tt.fixed))
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
	assert.Empty(t, publisher.Events)
}

func TestHouseholdService_UpdateBudget_NotFound(t *testing.T) {
	svc := NewHouseholdService(testutil.NewMockHouseholdRepository())

	_, err := svc.UpdateBudget(99, dec("100"), dec("10"))
	assert.ErrorIs(t, err, domain.ErrHouseholdNotFound)
}

func TestHouseholdService_GetHousehold(t *testing.T) {
	repo := testutil.NewMockHouseholdRepository()
	repo.AddHousehold(&domain.Household{ID: 2, UserID: uuid.New(), Name: "Cabin"}, "")
	svc := NewHouseholdService(repo)

	household, err := svc.GetHousehold(2)
	require.NoError(t, err)
	assert.Equal(t, "Cabin", household.Name)
}
