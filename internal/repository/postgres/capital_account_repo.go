package postgres

import (
	"context"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const capitalAccountColumns = `id, household_id, name, account_type, balance, annual_yield, notes, created_at, updated_at`

// CapitalAccountRepository implements domain.CapitalAccountRepository using PostgreSQL
type CapitalAccountRepository struct {
	pool *pgxpool.Pool
}

// NewCapitalAccountRepository creates a new CapitalAccountRepository
func NewCapitalAccountRepository(pool *pgxpool.Pool) *CapitalAccountRepository {
	return &CapitalAccountRepository{pool: pool}
}

// Create inserts a new capital account
func (r *CapitalAccountRepository) Create(account *domain.CapitalAccount) (*domain.CapitalAccount, error) {
	nums, err := numericArgs(account.Balance, account.AnnualYield)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO capital_accounts (household_id, name, account_type, balance, annual_yield, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+capitalAccountColumns,
		account.HouseholdID, account.Name, account.AccountType, nums[0], nums[1], account.Notes,
	)
	return scanCapitalAccount(row)
}

// GetByID retrieves a capital account by ID within a household
func (r *CapitalAccountRepository) GetByID(householdID int32, id int32) (*domain.CapitalAccount, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+capitalAccountColumns+` FROM capital_accounts WHERE household_id = $1 AND id = $2`,
		householdID, id,
	)
	account, err := scanCapitalAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCapitalAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAllByHousehold retrieves all capital accounts for a household, oldest first
func (r *CapitalAccountRepository) GetAllByHousehold(householdID int32) ([]*domain.CapitalAccount, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+capitalAccountColumns+` FROM capital_accounts WHERE household_id = $1 ORDER BY id`,
		householdID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.CapitalAccount, error) {
		return scanCapitalAccount(row)
	})
}

// Update overwrites the mutable fields of a capital account
func (r *CapitalAccountRepository) Update(account *domain.CapitalAccount) (*domain.CapitalAccount, error) {
	nums, err := numericArgs(account.Balance, account.AnnualYield)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`UPDATE capital_accounts
		SET name = $3, account_type = $4, balance = $5, annual_yield = $6, notes = $7, updated_at = now()
		WHERE household_id = $1 AND id = $2
		RETURNING `+capitalAccountColumns,
		account.HouseholdID, account.ID, account.Name, account.AccountType, nums[0], nums[1], account.Notes,
	)
	updated, err := scanCapitalAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCapitalAccountNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a capital account
func (r *CapitalAccountRepository) Delete(householdID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM capital_accounts WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCapitalAccountNotFound
	}
	return nil
}

func scanCapitalAccount(row pgx.Row) (*domain.CapitalAccount, error) {
	var a domain.CapitalAccount
	var balance, annualYield pgtype.Numeric
	if err := row.Scan(&a.ID, &a.HouseholdID, &a.Name, &a.AccountType, &balance, &annualYield,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Balance = pgNumericToDecimal(balance)
	a.AnnualYield = pgNumericToDecimal(annualYield)
	return &a, nil
}
