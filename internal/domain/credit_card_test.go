package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestParseIssuer(t *testing.T) {
	issuer, err := ParseIssuer("AMEX")
	require.NoError(t, err)
	assert.Equal(t, IssuerAMEX, issuer)

	issuer, err = ParseIssuer("")
	require.NoError(t, err)
	assert.Equal(t, IssuerStandard, issuer)

	_, err = ParseIssuer("discover")
	assert.ErrorIs(t, err, ErrUnknownIssuer)
}

func TestNewCreditCard_Validation(t *testing.T) {
	_, err := NewCreditCard("", IssuerCHAS, dec("10"), dec("0.2"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewCreditCard("Chase_1", Issuer("visa"), dec("10"), dec("0.2"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrUnknownIssuer)

	_, err = NewCreditCard("Chase_1", IssuerCHAS, dec("10"), dec("-0.2"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewCreditCard("Chase_1", IssuerCHAS, dec("10"), dec("0.2"), decimal.Zero, dec("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// a negative balance is a credit on the card
	card, err := NewCreditCard("Chase_1", IssuerCHAS, dec("-10"), dec("0.2"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, card.MinimumPayment().IsZero())
}

func TestMinimumPayment_ZeroBalanceForEveryIssuer(t *testing.T) {
	for _, issuer := range Issuers() {
		for _, balance := range []string{"0", "-12.5"} {
			card := &CreditCard{Name: "card", Issuer: issuer, Balance: dec(balance), APR: dec("0.25"), UserPayment: dec("300"), Fees: dec("15")}
			assert.Truef(t, card.MinimumPayment().IsZero(), "issuer %s balance %s", issuer, balance)
		}
	}
}

func TestMinimumPayment_Standard(t *testing.T) {
	small := &CreditCard{Name: "small", Issuer: IssuerStandard, Balance: dec("300")}
	assertDecimal(t, "25", small.MinimumPayment())

	large := &CreditCard{Name: "large", Issuer: IssuerStandard, Balance: dec("5000")}
	assertDecimal(t, "100", large.MinimumPayment())

	// the standard policy ignores the user payment
	override := &CreditCard{Name: "override", Issuer: IssuerStandard, Balance: dec("300"), UserPayment: dec("90")}
	assertDecimal(t, "25", override.MinimumPayment())

	unset := &CreditCard{Name: "unset", Balance: dec("300")}
	assertDecimal(t, "25", unset.MinimumPayment())
}

func TestMinimumPayment_WELF(t *testing.T) {
	card := &CreditCard{Name: "WF_1", Issuer: IssuerWELF, Balance: dec("1563.99")}
	assertDecimal(t, "54.73965", card.MinimumPayment())
	assert.True(t, card.MonthlyInterest().IsZero())

	withInterest := &CreditCard{Name: "WF_2", Issuer: IssuerWELF, Balance: dec("2462.34"), APR: dec("0.1765")}
	assertDecimal(t, "86.1819", withInterest.MinimumPayment())

	// below the 40 threshold the whole balance is a candidate
	tiny := &CreditCard{Name: "tiny", Issuer: IssuerWELF, Balance: dec("30")}
	assertDecimal(t, "30", tiny.MinimumPayment())

	floor := &CreditCard{Name: "floor", Issuer: IssuerWELF, Balance: dec("500"), UserPayment: dec("120")}
	assertDecimal(t, "120", floor.MinimumPayment())
}

func TestMinimumPayment_CHAS(t *testing.T) {
	card := &CreditCard{Name: "Chase_1", Issuer: IssuerCHAS, Balance: dec("4020.43"), APR: dec("0.1849")}
	assert.InDelta(t, 102.1524, card.MinimumPayment().InexactFloat64(), 1e-4)

	tiny := &CreditCard{Name: "tiny", Issuer: IssuerCHAS, Balance: dec("20")}
	assertDecimal(t, "20", tiny.MinimumPayment())

	fees := &CreditCard{Name: "fees", Issuer: IssuerCHAS, Balance: dec("1000"), Fees: dec("39")}
	assertDecimal(t, "49", fees.MinimumPayment())
}

func TestMinimumPayment_CITI(t *testing.T) {
	card := &CreditCard{Name: "Citi_1", Issuer: IssuerCITI, Balance: dec("2002.35")}
	assertDecimal(t, "25", card.MinimumPayment())

	// one percent of 4250 is 42.5, rounded half to even
	rounded := &CreditCard{Name: "rounded", Issuer: IssuerCITI, Balance: dec("4250")}
	assertDecimal(t, "42", rounded.MinimumPayment())

	tiny := &CreditCard{Name: "tiny", Issuer: IssuerCITI, Balance: dec("12")}
	assertDecimal(t, "12", tiny.MinimumPayment())
}

func TestMinimumPayment_AMEX(t *testing.T) {
	card := &CreditCard{Name: "Amex_1", Issuer: IssuerAMEX, Balance: dec("11236.98"), APR: dec("0.2124")}
	assert.InDelta(t, 311.2643, card.MinimumPayment().InexactFloat64(), 1e-4)

	noInterest := &CreditCard{Name: "no interest", Issuer: IssuerAMEX, Balance: dec("1500")}
	assertDecimal(t, "40", noInterest.MinimumPayment())

	tiny := &CreditCard{Name: "tiny", Issuer: IssuerAMEX, Balance: dec("39")}
	assertDecimal(t, "39", tiny.MinimumPayment())
}

func TestMinimumPayment_ExactCents(t *testing.T) {
	// sums of exact inputs stay exact
	card := &CreditCard{Name: "fees", Issuer: IssuerCHAS, Balance: dec("3010"), Fees: dec("0.1")}
	assertDecimal(t, "35", card.MinimumPayment())

	card.Balance = dec("3510")
	assertDecimal(t, "35.2", card.MinimumPayment())
}

func TestPlannedPayment(t *testing.T) {
	for _, issuer := range Issuers() {
		unset := &CreditCard{Name: "card", Issuer: issuer, Balance: dec("9000"), APR: dec("0.29")}
		assert.Truef(t, unset.MinimumPayment().Equal(unset.PlannedPayment()), "issuer %s", issuer)

		override := &CreditCard{Name: "card", Issuer: issuer, Balance: dec("9000"), APR: dec("0.29"), UserPayment: dec("150")}
		assert.True(t, override.MinimumPayment().GreaterThan(dec("150")))
		assertDecimal(t, "150", override.PlannedPayment())
	}
}

func TestCreditCard_Summary(t *testing.T) {
	card := &CreditCard{Name: "Chase_1", Issuer: IssuerCHAS, Balance: dec("4020.43"), APR: dec("0.1849")}

	summary := card.Summary()

	assert.Equal(t, "Chase_1", summary.Name)
	assertDecimal(t, "4020.43", summary.Balance)
	assertDecimal(t, "0.1849", summary.APR)
	assertDecimal(t, "102.15", summary.MinimumPayment)
	assertDecimal(t, "102.15", summary.PlannedPayment)
	assertDecimal(t, "61.95", summary.MonthlyInterest)
	assertDecimal(t, "0", summary.Fees)
	assert.Equal(t, "chas", summary.Provider)
}
