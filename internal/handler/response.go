package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation    = "https://household.app/errors/validation"
	ErrorTypeNotFound      = "https://household.app/errors/not-found"
	ErrorTypeUnauthorized  = "https://household.app/errors/unauthorized"
	ErrorTypeForbidden     = "https://household.app/errors/forbidden"
	ErrorTypeConflict      = "https://household.app/errors/conflict"
	ErrorTypeUnprocessable = "https://household.app/errors/unprocessable"
	ErrorTypeInternal      = "https://household.app/errors/internal"
	ErrorTypeUnavailable   = "https://household.app/errors/unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnprocessableError creates an unprocessable entity error response
func NewUnprocessableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     ErrorTypeUnprocessable,
		Title:    "Unprocessable Entity",
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors maps record validation errors to the request field that caused them
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name must be 255 characters or less"},
	{domain.ErrNotesTooLong, "notes", "Notes must be 2000 characters or less"},
	{domain.ErrAccountTypeRequired, "accountType", "Account type is required"},
	{domain.ErrUnknownIssuer, "issuer", "Issuer must be one of: standard, welf, chas, citi, amex"},
	{domain.ErrInvalidHouseType, "houseType", "House type must be one of: single, duplex, tri, quad"},
	{domain.ErrInvalidAmount, "", "Amounts must not be negative"},
}

// validationDetails reports whether err is a record validation error and which field it concerns
func validationDetails(err error) ([]ValidationError, bool) {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			if fe.field == "" {
				return nil, true
			}
			return []ValidationError{{Field: fe.field, Message: fe.message}}, true
		}
	}
	return nil, false
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

// amountParser collects decimal parse failures across the fields of one request
type amountParser struct {
	errs []ValidationError
}

func (p *amountParser) parse(field, value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: field, Message: "Must be a valid decimal number"})
		return decimal.Zero
	}
	return d
}

// required parses a decimal string that must be present
func (p *amountParser) required(field, value string) decimal.Decimal {
	if value == "" {
		p.errs = append(p.errs, ValidationError{Field: field, Message: "Required"})
		return decimal.Zero
	}
	return p.parse(field, value)
}

// zeroDefault parses a decimal string; empty means zero
func (p *amountParser) zeroDefault(field, value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	return p.parse(field, value)
}

// optional parses a decimal string; empty means absent
func (p *amountParser) optional(field, value string) *decimal.Decimal {
	if value == "" {
		return nil
	}
	v := p.parse(field, value)
	return &v
}

func (p *amountParser) failed(c echo.Context) error {
	return NewValidationError(c, "Invalid amount", p.errs)
}

// formatMoney renders a currency value with two decimals
func formatMoney(v decimal.Decimal) string {
	return v.StringFixedBank(2)
}

// formatRate renders a fraction such as an APR or DTI ratio with four decimals
func formatRate(v decimal.Decimal) string {
	return v.StringFixedBank(4)
}

func formatMoneyPtr(v *decimal.Decimal) *string {
	if v == nil {
		return nil
	}
	s := formatMoney(*v)
	return &s
}
