package domain

import "errors"

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternalError     = errors.New("internal error")
	ErrUserNotFound      = errors.New("user not found")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")
	ErrInvalidAmount     = errors.New("amount must not be negative")

	// ErrDivisionByZero is returned when a ratio is requested against a zero denominator
	// that the caller is expected to guard, e.g. DTI with no employer income.
	ErrDivisionByZero = errors.New("division by zero")
)

// Validation constants
const (
	MaxNameLength  = 255
	MaxNotesLength = 2000
)

// Record errors
var (
	ErrCapitalAccountNotFound = errors.New("capital account not found")
	ErrAccountTypeRequired    = errors.New("account type is required")
	ErrNotesTooLong           = errors.New("notes exceed maximum length")
	ErrCreditCardNotFound     = errors.New("credit card not found")
	ErrUnknownIssuer          = errors.New("unknown credit card issuer")
	ErrLoanNotFound           = errors.New("loan not found")
	ErrHouseNotFound          = errors.New("house not found")
	ErrInvalidHouseType       = errors.New("invalid house type")
	ErrInvalidUnitCount       = errors.New("number of units must be at least 1")
)
