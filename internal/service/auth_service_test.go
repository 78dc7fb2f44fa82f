package service

import (
	"errors"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestAuthenticateUser_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	householdRepo := testutil.NewMockHouseholdRepository()
	service := NewAuthService(userRepo, householdRepo)

	name := "Test User"
	result, err := service.AuthenticateUser("auth0|12345", "test@example.com", &name)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.IsNewUser {
		t.Error("Expected IsNewUser to be true for new user")
	}
	if result.User.Auth0ID != "auth0|12345" {
		t.Errorf("Expected auth0ID auth0|12345, got %s", result.User.Auth0ID)
	}
	if result.Household == nil {
		t.Fatal("Expected household, got nil")
	}
	if result.Household.Name != DefaultHouseholdName {
		t.Errorf("Expected household name %q, got %s", DefaultHouseholdName, result.Household.Name)
	}
	if result.Household.UserID != result.User.ID {
		t.Error("Expected household to belong to the new user")
	}
	if !result.Household.EmployerIncome.IsZero() || !result.Household.FixedExpenses.IsZero() {
		t.Error("Expected a new household to start with an empty budget")
	}
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	householdRepo := testutil.NewMockHouseholdRepository()
	service := NewAuthService(userRepo, householdRepo)

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|existing", Email: "old@example.com"}
	userRepo.AddUser(user)
	householdRepo.AddHousehold(&domain.Household{ID: 7, UserID: user.ID, Name: "Home", EmployerIncome: dec("8583")}, user.Auth0ID)

	result, err := service.AuthenticateUser("auth0|existing", "new@example.com", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}
	if result.Household.ID != 7 {
		t.Errorf("Expected household 7, got %d", result.Household.ID)
	}
	if result.User.Email != "new@example.com" {
		t.Errorf("Expected email to be refreshed, got %s", result.User.Email)
	}
}

func TestAuthenticateUser_UserRepoError(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	userRepo.CreateFn = func(auth0ID, email string, name *string) (*domain.User, error) {
		return nil, errors.New("db down")
	}
	service := NewAuthService(userRepo, testutil.NewMockHouseholdRepository())

	if _, err := service.AuthenticateUser("auth0|x", "x@example.com", nil); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestAuthenticateUser_HouseholdLookupError(t *testing.T) {
	householdRepo := testutil.NewMockHouseholdRepository()
	householdRepo.GetByUserIDFn = func(userID uuid.UUID) (*domain.Household, error) {
		return nil, errors.New("db down")
	}
	service := NewAuthService(testutil.NewMockUserRepository(), householdRepo)

	if _, err := service.AuthenticateUser("auth0|x", "x@example.com", nil); err == nil {
		t.Fatal("Expected error, got nil")
	}
	if len(householdRepo.Households) != 0 {
		t.Error("Expected no household to be created on lookup failure")
	}
}

func TestGetHouseholdByAuth0ID(t *testing.T) {
	householdRepo := testutil.NewMockHouseholdRepository()
	householdRepo.AddHousehold(&domain.Household{ID: 3, UserID: uuid.New()}, "auth0|owner")
	service := NewAuthService(testutil.NewMockUserRepository(), householdRepo)

	household, err := service.GetHouseholdByAuth0ID("auth0|owner")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if household.ID != 3 {
		t.Errorf("Expected household 3, got %d", household.ID)
	}

	if _, err := service.GetHouseholdByAuth0ID("auth0|nobody"); !errors.Is(err, domain.ErrHouseholdNotFound) {
		t.Errorf("Expected ErrHouseholdNotFound, got %v", err)
	}
}
