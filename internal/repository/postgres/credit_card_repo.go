package postgres

import (
	"context"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditCardColumns = `id, household_id, name, issuer, balance, apr, user_payment, fees, notes, created_at, updated_at`

// CreditCardRepository implements domain.CreditCardRepository using PostgreSQL
type CreditCardRepository struct {
	pool *pgxpool.Pool
}

// NewCreditCardRepository creates a new CreditCardRepository
func NewCreditCardRepository(pool *pgxpool.Pool) *CreditCardRepository {
	return &CreditCardRepository{pool: pool}
}

// Create inserts a new credit card
func (r *CreditCardRepository) Create(card *domain.CreditCard) (*domain.CreditCard, error) {
	nums, err := numericArgs(card.Balance, card.APR, card.UserPayment, card.Fees)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO credit_cards (household_id, name, issuer, balance, apr, user_payment, fees, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+creditCardColumns,
		card.HouseholdID, card.Name, string(card.Issuer), nums[0], nums[1], nums[2], nums[3], card.Notes,
	)
	return scanCreditCard(row)
}

// GetByID retrieves a credit card by ID within a household
func (r *CreditCardRepository) GetByID(householdID int32, id int32) (*domain.CreditCard, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+creditCardColumns+` FROM credit_cards WHERE household_id = $1 AND id = $2`,
		householdID, id,
	)
	card, err := scanCreditCard(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCreditCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// GetAllByHousehold retrieves all credit cards for a household, oldest first
func (r *CreditCardRepository) GetAllByHousehold(householdID int32) ([]*domain.CreditCard, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+creditCardColumns+` FROM credit_cards WHERE household_id = $1 ORDER BY id`,
		householdID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.CreditCard, error) {
		return scanCreditCard(row)
	})
}

// Update overwrites the mutable fields of a credit card
func (r *CreditCardRepository) Update(card *domain.CreditCard) (*domain.CreditCard, error) {
	nums, err := numericArgs(card.Balance, card.APR, card.UserPayment, card.Fees)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`UPDATE credit_cards
		SET name = $3, issuer = $4, balance = $5, apr = $6, user_payment = $7, fees = $8, notes = $9, updated_at = now()
		WHERE household_id = $1 AND id = $2
		RETURNING `+creditCardColumns,
		card.HouseholdID, card.ID, card.Name, string(card.Issuer), nums[0], nums[1], nums[2], nums[3], card.Notes,
	)
	updated, err := scanCreditCard(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCreditCardNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a credit card
func (r *CreditCardRepository) Delete(householdID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM credit_cards WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreditCardNotFound
	}
	return nil
}

func scanCreditCard(row pgx.Row) (*domain.CreditCard, error) {
	var c domain.CreditCard
	var issuer string
	var balance, apr, userPayment, fees pgtype.Numeric
	if err := row.Scan(&c.ID, &c.HouseholdID, &c.Name, &issuer, &balance, &apr, &userPayment, &fees,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Issuer = domain.Issuer(issuer)
	c.Balance = pgNumericToDecimal(balance)
	c.APR = pgNumericToDecimal(apr)
	c.UserPayment = pgNumericToDecimal(userPayment)
	c.Fees = pgNumericToDecimal(fees)
	return &c, nil
}
