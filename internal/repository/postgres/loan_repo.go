package postgres

import (
	"context"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `id, household_id, name, lender, balance, apr, min_payment, notes, created_at, updated_at`

// LoanRepository implements domain.LoanRepository using PostgreSQL
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Create inserts a new loan
func (r *LoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	nums, err := numericArgs(loan.Balance, loan.APR, loan.MinPayment)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO loans (household_id, name, lender, balance, apr, min_payment, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+loanColumns,
		loan.HouseholdID, loan.Name, loan.Lender, nums[0], nums[1], nums[2], loan.Notes,
	)
	return scanLoan(row)
}

// GetByID retrieves a loan by ID within a household
func (r *LoanRepository) GetByID(householdID int32, id int32) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE household_id = $1 AND id = $2`,
		householdID, id,
	)
	loan, err := scanLoan(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetAllByHousehold retrieves all loans for a household, oldest first
func (r *LoanRepository) GetAllByHousehold(householdID int32) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE household_id = $1 ORDER BY id`,
		householdID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Loan, error) {
		return scanLoan(row)
	})
}

// Update overwrites the mutable fields of a loan
func (r *LoanRepository) Update(loan *domain.Loan) (*domain.Loan, error) {
	nums, err := numericArgs(loan.Balance, loan.APR, loan.MinPayment)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`UPDATE loans
		SET name = $3, lender = $4, balance = $5, apr = $6, min_payment = $7, notes = $8, updated_at = now()
		WHERE household_id = $1 AND id = $2
		RETURNING `+loanColumns,
		loan.HouseholdID, loan.ID, loan.Name, loan.Lender, nums[0], nums[1], nums[2], loan.Notes,
	)
	updated, err := scanLoan(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a loan
func (r *LoanRepository) Delete(householdID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM loans WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var l domain.Loan
	var balance, apr, minPayment pgtype.Numeric
	if err := row.Scan(&l.ID, &l.HouseholdID, &l.Name, &l.Lender, &balance, &apr, &minPayment,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Balance = pgNumericToDecimal(balance)
	l.APR = pgNumericToDecimal(apr)
	l.MinPayment = pgNumericToDecimal(minPayment)
	return &l, nil
}
