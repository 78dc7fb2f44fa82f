package service

import (
	"errors"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultHouseholdName is the name given to the household created on first login
const DefaultHouseholdName = "Home"

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo      domain.UserRepository
	householdRepo domain.HouseholdRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, householdRepo domain.HouseholdRepository) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		householdRepo: householdRepo,
	}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	Household *domain.Household
	IsNewUser bool
}

// AuthenticateUser handles the flow after the Auth0 callback.
// Creates the user and an empty household if they don't exist.
func (s *AuthService) AuthenticateUser(auth0ID, email string, name *string) (*AuthResult, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	household, err := s.householdRepo.GetByUserID(user.ID)
	if err == nil {
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
		return &AuthResult{User: user, Household: household}, nil
	}
	if !errors.Is(err, domain.ErrHouseholdNotFound) {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get household")
		return nil, err
	}

	household, err = s.householdRepo.Create(&domain.Household{
		UserID: user.ID,
		Name:   DefaultHouseholdName,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// A concurrent callback created it first
		household, err = s.householdRepo.GetByUserID(user.ID)
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default household")
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Int32("household_id", household.ID).Msg("Created new user with default household")
	return &AuthResult{User: user, Household: household, IsNewUser: true}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetHouseholdByAuth0ID retrieves a user's household by their Auth0 ID
func (s *AuthService) GetHouseholdByAuth0ID(auth0ID string) (*domain.Household, error) {
	return s.householdRepo.GetByUserAuth0ID(auth0ID)
}
