package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator accepts exactly one token
type fakeValidator struct {
	token   string
	subject string
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (interface{}, error) {
	if token != f.token {
		return nil, errors.New("bad signature")
	}
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: f.subject},
		CustomClaims:     &CustomClaims{Email: "sam@example.com", Name: "Sam"},
	}, nil
}

type mockHouseholdProvider struct {
	householdID int32
	err         error
	calls       int
}

func (m *mockHouseholdProvider) GetHouseholdByAuth0ID(auth0ID string) (int32, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.householdID, nil
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status/summary", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	var seen echo.Context
	err := mw(func(c echo.Context) error {
		reached = true
		seen = c
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec, seen, reached
}

func TestGetAuth0ID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth0 id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c := e.NewContext(req, httptest.NewRecorder())

			tt.setup(c)

			if got := GetAuth0ID(c); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetHouseholdID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, int32(0), GetHouseholdID(c))

	ctx := context.WithValue(c.Request().Context(), HouseholdIDKey, int32(42))
	c.SetRequest(c.Request().WithContext(ctx))
	assert.Equal(t, int32(42), GetHouseholdID(c))
}

func TestGetCustomClaims_NoClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Nil(t, GetClaims(c))
	assert.Nil(t, GetCustomClaims(c))
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := CustomClaims{Email: "test@example.com"}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestAuthenticate_RejectsBadHeaders(t *testing.T) {
	m := NewAuthMiddlewareWithValidator(&fakeValidator{token: "good", subject: "auth0|1"}, &mockHouseholdProvider{householdID: 1})

	tests := []struct {
		name   string
		header string
		detail string
	}{
		{"missing header", "", "missing authorization header"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "invalid authorization header format"},
		{"no token", "Bearer", "invalid authorization header format"},
		{"bad token", "Bearer forged", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, reached := runAuth(t, m.Authenticate(), tt.header)

			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var problem problemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, errorTypeUnauthorized, problem.Type)
			assert.Equal(t, tt.detail, problem.Detail)
			assert.Equal(t, "/api/v1/status/summary", problem.Instance)
		})
	}
}

func TestAuthenticate_InjectsHousehold(t *testing.T) {
	provider := &mockHouseholdProvider{householdID: 42}
	m := NewAuthMiddlewareWithValidator(&fakeValidator{token: "good", subject: "auth0|abc"}, provider)

	rec, c, reached := runAuth(t, m.Authenticate(), "bearer good")

	require.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth0|abc", GetAuth0ID(c))
	assert.Equal(t, int32(42), GetHouseholdID(c))
	require.NotNil(t, GetCustomClaims(c))
	assert.Equal(t, "sam@example.com", GetCustomClaims(c).Email)
}

func TestAuthenticate_UnknownHousehold(t *testing.T) {
	m := NewAuthMiddlewareWithValidator(&fakeValidator{token: "good", subject: "auth0|abc"},
		&mockHouseholdProvider{err: errors.New("household not found")})

	rec, _, reached := runAuth(t, m.Authenticate(), "Bearer good")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateClaimsOnly_SkipsHouseholdLookup(t *testing.T) {
	provider := &mockHouseholdProvider{err: errors.New("household not found")}
	m := NewAuthMiddlewareWithValidator(&fakeValidator{token: "good", subject: "auth0|new"}, provider)

	rec, c, reached := runAuth(t, m.AuthenticateClaimsOnly(), "Bearer good")

	require.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, "auth0|new", GetAuth0ID(c))
	assert.Equal(t, int32(0), GetHouseholdID(c))
}

func TestNewAuthMiddleware(t *testing.T) {
	m, err := NewAuthMiddleware("test.auth0.com", "https://api.household.test", &mockHouseholdProvider{})
	require.NoError(t, err)
	assert.NotNil(t, m.validator)
}
