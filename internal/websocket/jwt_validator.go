package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrHouseholdNotFound is returned when the token's subject has no household
var ErrHouseholdNotFound = errors.New("household not found")

// HouseholdLookup resolves the household owned by an Auth0 subject
type HouseholdLookup interface {
	GetHouseholdByAuth0ID(auth0ID string) (householdID int32, err error)
}

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct{}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator validates the token passed on the websocket query string.
// Browsers cannot set an Authorization header on the upgrade request.
type Auth0JWTValidator struct {
	validator *validator.Validator
	lookup    HouseholdLookup
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, lookup HouseholdLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0JWTValidator{
		validator: jwtValidator,
		lookup:    lookup,
	}, nil
}

// ValidateToken validates a JWT and resolves its subject's household
func (v *Auth0JWTValidator) ValidateToken(ctx context.Context, token string) (Session, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	subject := validatedClaims.RegisteredClaims.Subject
	householdID, err := v.lookup.GetHouseholdByAuth0ID(subject)
	if err != nil {
		return Session{}, ErrHouseholdNotFound
	}
	return Session{HouseholdID: householdID, Subject: subject}, nil
}
