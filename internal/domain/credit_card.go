package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// Issuer selects the minimum-payment policy of a credit card
type Issuer string

const (
	IssuerStandard Issuer = "standard"
	IssuerWELF     Issuer = "welf"
	IssuerCHAS     Issuer = "chas"
	IssuerCITI     Issuer = "citi"
	IssuerAMEX     Issuer = "amex"
)

// DefaultCardAPR is applied when a card is created without an APR
var DefaultCardAPR = decimal.RequireFromString("0.20")

var (
	onePercent       = decimal.RequireFromString("0.01")
	twoPercent       = decimal.RequireFromString("0.02")
	threeHalfPercent = decimal.RequireFromString("0.035")
	standardMinimum  = decimal.NewFromInt(25)
	welfMinimumFloor = decimal.NewFromInt(40)
	chasMinimumFloor = decimal.NewFromInt(35)
	citiMinimumFloor = decimal.NewFromInt(25)
	amexMinimumFloor = decimal.NewFromInt(40)
)

// minimumPaymentRule returns the candidates whose maximum is the minimum payment.
// Rules are only consulted for cards with a positive balance.
type minimumPaymentRule func(c *CreditCard) []decimal.Decimal

var minimumPaymentRules = map[Issuer]minimumPaymentRule{
	IssuerStandard: func(c *CreditCard) []decimal.Decimal {
		return []decimal.Decimal{standardMinimum, c.Balance.Mul(twoPercent)}
	},
	IssuerWELF: func(c *CreditCard) []decimal.Decimal {
		return []decimal.Decimal{
			capAt(c.Balance, welfMinimumFloor),
			c.Balance.Mul(threeHalfPercent),
			c.MonthlyInterest().Add(c.Fees).Add(c.Balance.Mul(onePercent)),
			c.UserPayment,
		}
	},
	IssuerCHAS: func(c *CreditCard) []decimal.Decimal {
		return []decimal.Decimal{
			capAt(c.Balance, chasMinimumFloor),
			c.Balance.Mul(onePercent).Add(c.MonthlyInterest()).Add(c.Fees),
			c.UserPayment,
		}
	},
	IssuerCITI: func(c *CreditCard) []decimal.Decimal {
		return []decimal.Decimal{
			capAt(c.Balance, citiMinimumFloor),
			c.Balance.Mul(onePercent).RoundBank(0).Add(c.MonthlyInterest()).Add(c.Fees),
			c.UserPayment,
		}
	},
	IssuerAMEX: func(c *CreditCard) []decimal.Decimal {
		return []decimal.Decimal{
			c.MonthlyInterest().Add(c.Balance.Mul(onePercent)),
			c.Balance.Mul(twoPercent),
			capAt(c.Balance, amexMinimumFloor),
			c.UserPayment,
		}
	},
}

// capAt returns floor when balance reaches it, otherwise the whole balance
func capAt(balance, floor decimal.Decimal) decimal.Decimal {
	if balance.GreaterThanOrEqual(floor) {
		return floor
	}
	return balance
}

// largest picks the maximum candidate on its float view and returns the exact value
func largest(candidates []decimal.Decimal) decimal.Decimal {
	view := make([]float64, len(candidates))
	for i, c := range candidates {
		view[i] = c.InexactFloat64()
	}
	return candidates[floats.MaxIdx(view)]
}

// ParseIssuer maps a case-insensitive issuer code to an Issuer.
// An empty code selects IssuerStandard.
func ParseIssuer(code string) (Issuer, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return IssuerStandard, nil
	}
	issuer := Issuer(code)
	if _, ok := minimumPaymentRules[issuer]; !ok {
		return "", ErrUnknownIssuer
	}
	return issuer, nil
}

// Issuers lists the supported issuer codes
func Issuers() []Issuer {
	return []Issuer{IssuerStandard, IssuerWELF, IssuerCHAS, IssuerCITI, IssuerAMEX}
}

// CreditCard is a revolving balance with an issuer-specific minimum payment
type CreditCard struct {
	ID          int32           `json:"id"`
	HouseholdID int32           `json:"householdId"`
	Name        string          `json:"name"`
	Issuer      Issuer          `json:"issuer"`
	Balance     decimal.Decimal `json:"balance"`
	APR         decimal.Decimal `json:"apr"`
	UserPayment decimal.Decimal `json:"userPayment"` // 0 means use the computed minimum
	Fees        decimal.Decimal `json:"fees"`        // flat monthly fee
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreditCardSummary is the rounded read-only projection of a CreditCard
type CreditCardSummary struct {
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	APR             decimal.Decimal `json:"apr"`
	MinimumPayment  decimal.Decimal `json:"minimumPayment"`
	PlannedPayment  decimal.Decimal `json:"plannedPayment"`
	MonthlyInterest decimal.Decimal `json:"monthlyInterest"`
	Fees            decimal.Decimal `json:"fees"`
	Provider        string          `json:"provider"`
}

// NewCreditCard validates its input and returns a CreditCard for the issuer.
// APR, user payment and fees must not be negative.
func NewCreditCard(name string, issuer Issuer, balance, apr, userPayment, fees decimal.Decimal) (*CreditCard, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	if _, ok := minimumPaymentRules[issuer]; !ok {
		return nil, ErrUnknownIssuer
	}
	if err := ValidateNonNegative(apr, userPayment, fees); err != nil {
		return nil, err
	}
	return &CreditCard{
		Name:        name,
		Issuer:      issuer,
		Balance:     balance,
		APR:         apr,
		UserPayment: userPayment,
		Fees:        fees,
	}, nil
}

// MonthlyInterest returns apr/12 × balance
func (c *CreditCard) MonthlyInterest() decimal.Decimal {
	return c.Balance.Mul(c.APR).Div(twelve)
}

// MinimumPayment applies the issuer policy. A card without a positive
// balance owes nothing, whatever the issuer.
func (c *CreditCard) MinimumPayment() decimal.Decimal {
	if !c.Balance.IsPositive() {
		return decimal.Zero
	}
	rule, ok := minimumPaymentRules[c.Issuer]
	if !ok {
		rule = minimumPaymentRules[IssuerStandard]
	}
	return largest(rule(c))
}

// PlannedPayment returns UserPayment when it is strictly positive, otherwise
// MinimumPayment. A UserPayment of exactly 0 therefore means "not set".
func (c *CreditCard) PlannedPayment() decimal.Decimal {
	if c.UserPayment.IsPositive() {
		return c.UserPayment
	}
	return c.MinimumPayment()
}

// Provider names the minimum-payment variant of the card
func (c *CreditCard) Provider() string {
	if c.Issuer == "" {
		return string(IssuerStandard)
	}
	return string(c.Issuer)
}

// Summary returns the rounded projection of the card
func (c *CreditCard) Summary() CreditCardSummary {
	return CreditCardSummary{
		Name:            c.Name,
		Balance:         RoundCurrency(c.Balance),
		APR:             RoundRate(c.APR),
		MinimumPayment:  RoundCurrency(c.MinimumPayment()),
		PlannedPayment:  RoundCurrency(c.PlannedPayment()),
		MonthlyInterest: RoundCurrency(c.MonthlyInterest()),
		Fees:            RoundCurrency(c.Fees),
		Provider:        c.Provider(),
	}
}

// CreditCardRepository defines persistence operations for credit cards
type CreditCardRepository interface {
	Create(card *CreditCard) (*CreditCard, error)
	GetByID(householdID int32, id int32) (*CreditCard, error)
	GetAllByHousehold(householdID int32) ([]*CreditCard, error)
	Update(card *CreditCard) (*CreditCard, error)
	Delete(householdID int32, id int32) error
}
