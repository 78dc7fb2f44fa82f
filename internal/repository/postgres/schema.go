package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates every table the household backend reads and writes.
// Statements are idempotent so Migrate can run on each start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		auth0_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS households (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		employer_income NUMERIC NOT NULL DEFAULT 0,
		fixed_expenses NUMERIC NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS capital_accounts (
		id SERIAL PRIMARY KEY,
		household_id INTEGER NOT NULL REFERENCES households(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		balance NUMERIC NOT NULL DEFAULT 0,
		annual_yield NUMERIC NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS credit_cards (
		id SERIAL PRIMARY KEY,
		household_id INTEGER NOT NULL REFERENCES households(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		issuer TEXT NOT NULL CHECK (issuer IN ('standard', 'welf', 'chas', 'citi', 'amex')),
		balance NUMERIC NOT NULL,
		apr NUMERIC NOT NULL,
		user_payment NUMERIC NOT NULL DEFAULT 0,
		fees NUMERIC NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id SERIAL PRIMARY KEY,
		household_id INTEGER NOT NULL REFERENCES households(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		lender TEXT NOT NULL DEFAULT '',
		balance NUMERIC NOT NULL,
		apr NUMERIC NOT NULL,
		min_payment NUMERIC NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS houses (
		id SERIAL PRIMARY KEY,
		household_id INTEGER NOT NULL REFERENCES households(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		house_type TEXT NOT NULL CHECK (house_type IN ('quad', 'tri', 'duplex', 'single')),
		price NUMERIC NOT NULL,
		est_rent_per_unit NUMERIC NOT NULL DEFAULT 0,
		appraised_rent_per_unit NUMERIC,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_capital_accounts_household ON capital_accounts(household_id)`,
	`CREATE INDEX IF NOT EXISTS idx_credit_cards_household ON credit_cards(household_id)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_household ON loans(household_id)`,
	`CREATE INDEX IF NOT EXISTS idx_houses_household ON houses(household_id)`,
}

// Migrate applies the schema
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
