package service

import (
	"strings"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCreditCardService_CreateCard(t *testing.T) {
	repo := testutil.NewMockCreditCardRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewCreditCardService(repo)
	svc.SetEventPublisher(publisher)

	card, err := svc.CreateCard(1, CreditCardInput{
		Name:    "  Chase_1 ",
		Issuer:  "CHAS",
		Balance: dec("4020.43"),
		APR:     decPtr("0.1849"),
		Notes:   "travel card",
	})
	require.NoError(t, err)

	assert.NotZero(t, card.ID)
	assert.Equal(t, int32(1), card.HouseholdID)
	assert.Equal(t, "Chase_1", card.Name)
	assert.Equal(t, domain.IssuerCHAS, card.Issuer)
	assert.True(t, card.APR.Equal(dec("0.1849")))
	assert.Equal(t, "travel card", card.Notes)
	assert.Equal(t, []string{"credit_card.created"}, publisher.Types())
}

func TestCreditCardService_CreateCard_DefaultsAPRAndIssuer(t *testing.T) {
	svc := NewCreditCardService(testutil.NewMockCreditCardRepository())

	card, err := svc.CreateCard(1, CreditCardInput{Name: "Store Card", Balance: dec("300")})
	require.NoError(t, err)

	assert.True(t, domain.DefaultCardAPR.Equal(card.APR))
	assert.Equal(t, domain.IssuerStandard, card.Issuer)
}

func TestCreditCardService_CreateCard_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreditCardInput
		wantErr error
	}{
		{"missing name", CreditCardInput{Name: "  "}, domain.ErrNameRequired},
		{"name too long", CreditCardInput{Name: strings.Repeat("a", domain.MaxNameLength+1)}, domain.ErrNameTooLong},
		{"unknown issuer", CreditCardInput{Name: "Card", Issuer: "nope"}, domain.ErrUnknownIssuer},
		{"negative apr", CreditCardInput{Name: "Card", APR: decPtr("-12")}, domain.ErrInvalidAmount},
		{"negative fees", CreditCardInput{Name: "Card", Fees: dec("-1")}, domain.ErrInvalidAmount},
		{"notes too long", CreditCardInput{Name: "Card", Notes: strings.Repeat("n", domain.MaxNotesLength+1)}, domain.ErrNotesTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockCreditCardRepository()
			publisher := testutil.NewMockEventPublisher()
			svc := NewCreditCardService(repo)
			svc.SetEventPublisher(publisher)

			_, err := svc.CreateCard(1, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.Cards)
			assert.Empty(t, publisher.Events)
		})
	}
}

func TestCreditCardService_UpdateCard(t *testing.T) {
	repo := testutil.NewMockCreditCardRepository()
	repo.AddCreditCard(&domain.CreditCard{ID: 5, HouseholdID: 1, Name: "Old", Issuer: domain.IssuerCITI, APR: dec("0.2")})
	publisher := testutil.NewMockEventPublisher()
	svc := NewCreditCardService(repo)
	svc.SetEventPublisher(publisher)

	updated, err := svc.UpdateCard(1, 5, CreditCardInput{Name: "New", Issuer: "amex", Balance: dec("120"), APR: decPtr("0.25"), UserPayment: dec("60")})
	require.NoError(t, err)

	assert.Equal(t, int32(5), updated.ID)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, domain.IssuerAMEX, updated.Issuer)
	assert.True(t, updated.UserPayment.Equal(dec("60")))
	assert.Equal(t, []string{"credit_card.updated"}, publisher.Types())
}

func TestCreditCardService_UpdateCard_OtherHousehold(t *testing.T) {
	repo := testutil.NewMockCreditCardRepository()
	repo.AddCreditCard(&domain.CreditCard{ID: 5, HouseholdID: 2, Name: "Theirs", Issuer: domain.IssuerStandard})
	svc := NewCreditCardService(repo)

	_, err := svc.UpdateCard(1, 5, CreditCardInput{Name: "Mine"})
	assert.ErrorIs(t, err, domain.ErrCreditCardNotFound)
	assert.Equal(t, "Theirs", repo.Cards[5].Name)
}

func TestCreditCardService_DeleteCard(t *testing.T) {
	repo := testutil.NewMockCreditCardRepository()
	repo.AddCreditCard(&domain.CreditCard{ID: 3, HouseholdID: 1, Name: "Card", Issuer: domain.IssuerStandard})
	publisher := testutil.NewMockEventPublisher()
	svc := NewCreditCardService(repo)
	svc.SetEventPublisher(publisher)

	require.NoError(t, svc.DeleteCard(1, 3))
	assert.Equal(t, []string{"credit_card.deleted"}, publisher.Types())

	assert.ErrorIs(t, svc.DeleteCard(1, 3), domain.ErrCreditCardNotFound)
	assert.Len(t, publisher.Events, 1)
}

func TestCreditCardService_NilPublisher(t *testing.T) {
	svc := NewCreditCardService(testutil.NewMockCreditCardRepository())

	_, err := svc.CreateCard(1, CreditCardInput{Name: "Card"})
	assert.NoError(t, err)
}
