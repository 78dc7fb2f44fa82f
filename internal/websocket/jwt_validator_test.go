package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHouseholdLookup struct {
	householdID int32
	err         error
}

func (m *mockHouseholdLookup) GetHouseholdByAuth0ID(auth0ID string) (int32, error) {
	return m.householdID, m.err
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestNewAuth0JWTValidator_Success(t *testing.T) {
	lookup := &mockHouseholdLookup{householdID: 1}

	v, err := NewAuth0JWTValidator("test.auth0.com", "https://api.household.test", lookup)
	require.NoError(t, err)
	assert.NotNil(t, v.validator)
	assert.Equal(t, lookup, v.lookup)
}

func TestAuth0JWTValidator_ValidateToken_InvalidJWT(t *testing.T) {
	v, err := NewAuth0JWTValidator("test.auth0.com", "https://api.household.test", &mockHouseholdLookup{householdID: 1})
	require.NoError(t, err)

	session, err := v.ValidateToken(context.Background(), "invalid-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, Session{}, session)
}
