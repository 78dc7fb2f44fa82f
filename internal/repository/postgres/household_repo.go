package postgres

import (
	"context"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const householdColumns = `h.id, h.user_id, h.name, h.employer_income, h.fixed_expenses, h.created_at, h.updated_at`

// HouseholdRepository implements domain.HouseholdRepository using PostgreSQL
type HouseholdRepository struct {
	pool *pgxpool.Pool
}

// NewHouseholdRepository creates a new HouseholdRepository
func NewHouseholdRepository(pool *pgxpool.Pool) *HouseholdRepository {
	return &HouseholdRepository{pool: pool}
}

// GetByID retrieves a household by its ID
func (r *HouseholdRepository) GetByID(id int32) (*domain.Household, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+householdColumns+` FROM households h WHERE h.id = $1`, id)
	return r.getOne(row)
}

// GetByUserID retrieves the household owned by a user
func (r *HouseholdRepository) GetByUserID(userID uuid.UUID) (*domain.Household, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+householdColumns+` FROM households h WHERE h.user_id = $1`,
		pgtype.UUID{Bytes: userID, Valid: true})
	return r.getOne(row)
}

// GetByUserAuth0ID retrieves the household owned by the user with the given Auth0 ID
func (r *HouseholdRepository) GetByUserAuth0ID(auth0ID string) (*domain.Household, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+householdColumns+`
		FROM households h JOIN users u ON u.id = h.user_id
		WHERE u.auth0_id = $1`, auth0ID)
	return r.getOne(row)
}

// GetAll retrieves every household, used by the snapshot worker
func (r *HouseholdRepository) GetAll() ([]*domain.Household, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+householdColumns+` FROM households h ORDER BY h.id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Household, error) {
		return scanHousehold(row)
	})
}

// Create inserts a household for a user. A user owns at most one household.
func (r *HouseholdRepository) Create(household *domain.Household) (*domain.Household, error) {
	nums, err := numericArgs(household.EmployerIncome, household.FixedExpenses)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO households AS h (user_id, name, employer_income, fixed_expenses)
		VALUES ($1, $2, $3, $4)
		RETURNING `+householdColumns,
		pgtype.UUID{Bytes: household.UserID, Valid: true}, household.Name, nums[0], nums[1],
	)
	created, err := scanHousehold(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// UpdateBudget sets the monthly employer income and fixed expenses
func (r *HouseholdRepository) UpdateBudget(id int32, employerIncome, fixedExpenses decimal.Decimal) (*domain.Household, error) {
	nums, err := numericArgs(employerIncome, fixedExpenses)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`UPDATE households AS h
		SET employer_income = $2, fixed_expenses = $3, updated_at = now()
		WHERE h.id = $1
		RETURNING `+householdColumns,
		id, nums[0], nums[1],
	)
	return r.getOne(row)
}

func (r *HouseholdRepository) getOne(row pgx.Row) (*domain.Household, error) {
	household, err := scanHousehold(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrHouseholdNotFound
		}
		return nil, err
	}
	return household, nil
}

func scanHousehold(row pgx.Row) (*domain.Household, error) {
	var h domain.Household
	var userID pgtype.UUID
	var income, fixed pgtype.Numeric
	if err := row.Scan(&h.ID, &userID, &h.Name, &income, &fixed, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	h.UserID = uuid.UUID(userID.Bytes)
	h.EmployerIncome = pgNumericToDecimal(income)
	h.FixedExpenses = pgNumericToDecimal(fixed)
	return &h, nil
}
