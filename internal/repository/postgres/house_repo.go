package postgres

import (
	"context"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const houseColumns = `id, household_id, name, house_type, price, est_rent_per_unit, appraised_rent_per_unit, notes, created_at, updated_at`

// HouseRepository implements domain.HouseRepository using PostgreSQL
type HouseRepository struct {
	pool *pgxpool.Pool
}

// NewHouseRepository creates a new HouseRepository
func NewHouseRepository(pool *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{pool: pool}
}

// Create inserts a new house listing
func (r *HouseRepository) Create(house *domain.House) (*domain.House, error) {
	nums, err := numericArgs(house.Price, house.EstRentPerUnit)
	if err != nil {
		return nil, err
	}
	appraised, err := decimalPtrToPgNumeric(house.AppraisedRentPerUnit)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO houses (household_id, name, house_type, price, est_rent_per_unit, appraised_rent_per_unit, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+houseColumns,
		house.HouseholdID, house.Name, string(house.HouseType), nums[0], nums[1], appraised, house.Notes,
	)
	return scanHouse(row)
}

// GetByID retrieves a house by ID within a household
func (r *HouseRepository) GetByID(householdID int32, id int32) (*domain.House, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+houseColumns+` FROM houses WHERE household_id = $1 AND id = $2`,
		householdID, id,
	)
	house, err := scanHouse(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

// GetAllByHousehold retrieves all houses for a household, oldest first
func (r *HouseRepository) GetAllByHousehold(householdID int32) ([]*domain.House, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+houseColumns+` FROM houses WHERE household_id = $1 ORDER BY id`,
		householdID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.House, error) {
		return scanHouse(row)
	})
}

// Update overwrites the mutable fields of a house
func (r *HouseRepository) Update(house *domain.House) (*domain.House, error) {
	nums, err := numericArgs(house.Price, house.EstRentPerUnit)
	if err != nil {
		return nil, err
	}
	appraised, err := decimalPtrToPgNumeric(house.AppraisedRentPerUnit)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(),
		`UPDATE houses
		SET name = $3, house_type = $4, price = $5, est_rent_per_unit = $6, appraised_rent_per_unit = $7,
			notes = $8, updated_at = now()
		WHERE household_id = $1 AND id = $2
		RETURNING `+houseColumns,
		house.HouseholdID, house.ID, house.Name, string(house.HouseType), nums[0], nums[1], appraised, house.Notes,
	)
	updated, err := scanHouse(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrHouseNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a house
func (r *HouseRepository) Delete(householdID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM houses WHERE household_id = $1 AND id = $2`, householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHouseNotFound
	}
	return nil
}

func scanHouse(row pgx.Row) (*domain.House, error) {
	var h domain.House
	var houseType string
	var price, estRent, appraised pgtype.Numeric
	if err := row.Scan(&h.ID, &h.HouseholdID, &h.Name, &houseType, &price, &estRent, &appraised,
		&h.Notes, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	h.HouseType = domain.HouseType(houseType)
	h.Price = pgNumericToDecimal(price)
	h.EstRentPerUnit = pgNumericToDecimal(estRent)
	h.AppraisedRentPerUnit = pgNumericToDecimalPtr(appraised)
	return &h, nil
}
