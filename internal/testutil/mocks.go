package testutil

import (
	"sync"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name)
	}
	if user, ok := m.Users[auth0ID]; ok {
		user.Email = email
		if name != nil {
			user.Name = name
		}
		return user, nil
	}
	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.AddUser(user)
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockHouseholdRepository is a mock implementation of domain.HouseholdRepository
type MockHouseholdRepository struct {
	Households     map[int32]*domain.Household
	ByUserID       map[uuid.UUID]*domain.Household
	ByUserAuth0ID  map[string]*domain.Household
	NextID         int32
	GetAllFn       func() ([]*domain.Household, error)
	UpdateBudgetFn func(id int32, employerIncome, fixedExpenses decimal.Decimal) (*domain.Household, error)
	GetByUserIDFn  func(userID uuid.UUID) (*domain.Household, error)
}

// NewMockHouseholdRepository creates a new MockHouseholdRepository
func NewMockHouseholdRepository() *MockHouseholdRepository {
	return &MockHouseholdRepository{
		Households:    make(map[int32]*domain.Household),
		ByUserID:      make(map[uuid.UUID]*domain.Household),
		ByUserAuth0ID: make(map[string]*domain.Household),
		NextID:        1,
	}
}

// GetByID retrieves a household by ID
func (m *MockHouseholdRepository) GetByID(id int32) (*domain.Household, error) {
	if h, ok := m.Households[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHouseholdNotFound
}

// GetByUserID retrieves a household by user ID
func (m *MockHouseholdRepository) GetByUserID(userID uuid.UUID) (*domain.Household, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(userID)
	}
	if h, ok := m.ByUserID[userID]; ok {
		return h, nil
	}
	return nil, domain.ErrHouseholdNotFound
}

// GetByUserAuth0ID retrieves a household by the owner's Auth0 ID
func (m *MockHouseholdRepository) GetByUserAuth0ID(auth0ID string) (*domain.Household, error) {
	if h, ok := m.ByUserAuth0ID[auth0ID]; ok {
		return h, nil
	}
	return nil, domain.ErrHouseholdNotFound
}

// GetAll retrieves every household ordered by ID
func (m *MockHouseholdRepository) GetAll() ([]*domain.Household, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	all := make([]*domain.Household, 0, len(m.Households))
	for id := int32(1); id < m.NextID; id++ {
		if h, ok := m.Households[id]; ok {
			all = append(all, h)
		}
	}
	return all, nil
}

// Create creates a household; a user may own only one
func (m *MockHouseholdRepository) Create(household *domain.Household) (*domain.Household, error) {
	if _, exists := m.ByUserID[household.UserID]; exists {
		return nil, domain.ErrAlreadyExists
	}
	household.ID = m.NextID
	m.NextID++
	m.Households[household.ID] = household
	m.ByUserID[household.UserID] = household
	return household, nil
}

// UpdateBudget updates the income and fixed expenses of a household
func (m *MockHouseholdRepository) UpdateBudget(id int32, employerIncome, fixedExpenses decimal.Decimal) (*domain.Household, error) {
	if m.UpdateBudgetFn != nil {
		return m.UpdateBudgetFn(id, employerIncome, fixedExpenses)
	}
	h, ok := m.Households[id]
	if !ok {
		return nil, domain.ErrHouseholdNotFound
	}
	h.EmployerIncome = employerIncome
	h.FixedExpenses = fixedExpenses
	return h, nil
}

// AddHousehold adds a household owned by auth0ID (helper for tests)
func (m *MockHouseholdRepository) AddHousehold(household *domain.Household, auth0ID string) {
	if household.ID == 0 {
		household.ID = m.NextID
	}
	if household.ID >= m.NextID {
		m.NextID = household.ID + 1
	}
	m.Households[household.ID] = household
	m.ByUserID[household.UserID] = household
	if auth0ID != "" {
		m.ByUserAuth0ID[auth0ID] = household
	}
}

// MockCapitalAccountRepository is a mock implementation of domain.CapitalAccountRepository
type MockCapitalAccountRepository struct {
	Accounts map[int32]*domain.CapitalAccount
	Order    []int32
	NextID   int32
	CreateFn func(account *domain.CapitalAccount) (*domain.CapitalAccount, error)
	GetAllFn func(householdID int32) ([]*domain.CapitalAccount, error)
	UpdateFn func(account *domain.CapitalAccount) (*domain.CapitalAccount, error)
	DeleteFn func(householdID int32, id int32) error
}

// NewMockCapitalAccountRepository creates a new MockCapitalAccountRepository
func NewMockCapitalAccountRepository() *MockCapitalAccountRepository {
	return &MockCapitalAccountRepository{
		Accounts: make(map[int32]*domain.CapitalAccount),
		NextID:   1,
	}
}

// Create creates a new capital account
func (m *MockCapitalAccountRepository) Create(account *domain.CapitalAccount) (*domain.CapitalAccount, error) {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	m.AddCapitalAccount(account)
	return account, nil
}

// GetByID retrieves a capital account within a household
func (m *MockCapitalAccountRepository) GetByID(householdID int32, id int32) (*domain.CapitalAccount, error) {
	account, ok := m.Accounts[id]
	if !ok || account.HouseholdID != householdID {
		return nil, domain.ErrCapitalAccountNotFound
	}
	return account, nil
}

// GetAllByHousehold retrieves a household's capital accounts in insertion order
func (m *MockCapitalAccountRepository) GetAllByHousehold(householdID int32) ([]*domain.CapitalAccount, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(householdID)
	}
	out := []*domain.CapitalAccount{}
	for _, id := range m.Order {
		if a, ok := m.Accounts[id]; ok && a.HouseholdID == householdID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Update replaces a stored capital account
func (m *MockCapitalAccountRepository) Update(account *domain.CapitalAccount) (*domain.CapitalAccount, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(account)
	}
	existing, ok := m.Accounts[account.ID]
	if !ok || existing.HouseholdID != account.HouseholdID {
		return nil, domain.ErrCapitalAccountNotFound
	}
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now()
	m.Accounts[account.ID] = account
	return account, nil
}

// Delete removes a capital account
func (m *MockCapitalAccountRepository) Delete(householdID int32, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(householdID, id)
	}
	account, ok := m.Accounts[id]
	if !ok || account.HouseholdID != householdID {
		return domain.ErrCapitalAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}

// AddCapitalAccount adds an account to the mock repository (helper for tests)
func (m *MockCapitalAccountRepository) AddCapitalAccount(account *domain.CapitalAccount) {
	if account.ID == 0 {
		account.ID = m.NextID
	}
	if account.ID >= m.NextID {
		m.NextID = account.ID + 1
	}
	m.Accounts[account.ID] = account
	m.Order = append(m.Order, account.ID)
}

// MockCreditCardRepository is a mock implementation of domain.CreditCardRepository
type MockCreditCardRepository struct {
	Cards    map[int32]*domain.CreditCard
	Order    []int32
	NextID   int32
	CreateFn func(card *domain.CreditCard) (*domain.CreditCard, error)
	GetAllFn func(householdID int32) ([]*domain.CreditCard, error)
	UpdateFn func(card *domain.CreditCard) (*domain.CreditCard, error)
	DeleteFn func(householdID int32, id int32) error
}

// NewMockCreditCardRepository creates a new MockCreditCardRepository
func NewMockCreditCardRepository() *MockCreditCardRepository {
	return &MockCreditCardRepository{
		Cards:  make(map[int32]*domain.CreditCard),
		NextID: 1,
	}
}

// Create creates a new credit card
func (m *MockCreditCardRepository) Create(card *domain.CreditCard) (*domain.CreditCard, error) {
	if m.CreateFn != nil {
		return m.CreateFn(card)
	}
	m.AddCreditCard(card)
	return card, nil
}

// GetByID retrieves a credit card within a household
func (m *MockCreditCardRepository) GetByID(householdID int32, id int32) (*domain.CreditCard, error) {
	card, ok := m.Cards[id]
	if !ok || card.HouseholdID != householdID {
		return nil, domain.ErrCreditCardNotFound
	}
	return card, nil
}

// GetAllByHousehold retrieves a household's credit cards in insertion order
func (m *MockCreditCardRepository) GetAllByHousehold(householdID int32) ([]*domain.CreditCard, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(householdID)
	}
	out := []*domain.CreditCard{}
	for _, id := range m.Order {
		if c, ok := m.Cards[id]; ok && c.HouseholdID == householdID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Update replaces a stored credit card
func (m *MockCreditCardRepository) Update(card *domain.CreditCard) (*domain.CreditCard, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(card)
	}
	existing, ok := m.Cards[card.ID]
	if !ok || existing.HouseholdID != card.HouseholdID {
		return nil, domain.ErrCreditCardNotFound
	}
	card.CreatedAt = existing.CreatedAt
	card.UpdatedAt = time.Now()
	m.Cards[card.ID] = card
	return card, nil
}

// Delete removes a credit card
func (m *MockCreditCardRepository) Delete(householdID int32, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(householdID, id)
	}
	card, ok := m.Cards[id]
	if !ok || card.HouseholdID != householdID {
		return domain.ErrCreditCardNotFound
	}
	delete(m.Cards, id)
	return nil
}

// AddCreditCard adds a card to the mock repository (helper for tests)
func (m *MockCreditCardRepository) AddCreditCard(card *domain.CreditCard) {
	if card.ID == 0 {
		card.ID = m.NextID
	}
	if card.ID >= m.NextID {
		m.NextID = card.ID + 1
	}
	m.Cards[card.ID] = card
	m.Order = append(m.Order, card.ID)
}

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans    map[int32]*domain.Loan
	Order    []int32
	NextID   int32
	CreateFn func(loan *domain.Loan) (*domain.Loan, error)
	UpdateFn func(loan *domain.Loan) (*domain.Loan, error)
	DeleteFn func(householdID int32, id int32) error
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		Loans:  make(map[int32]*domain.Loan),
		NextID: 1,
	}
}

// Create creates a new loan
func (m *MockLoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	if m.CreateFn != nil {
		return m.CreateFn(loan)
	}
	m.AddLoan(loan)
	return loan, nil
}

// GetByID retrieves a loan within a household
func (m *MockLoanRepository) GetByID(householdID int32, id int32) (*domain.Loan, error) {
	loan, ok := m.Loans[id]
	if !ok || loan.HouseholdID != householdID {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// GetAllByHousehold retrieves a household's loans in insertion order
func (m *MockLoanRepository) GetAllByHousehold(householdID int32) ([]*domain.Loan, error) {
	out := []*domain.Loan{}
	for _, id := range m.Order {
		if l, ok := m.Loans[id]; ok && l.HouseholdID == householdID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Update replaces a stored loan
func (m *MockLoanRepository) Update(loan *domain.Loan) (*domain.Loan, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(loan)
	}
	existing, ok := m.Loans[loan.ID]
	if !ok || existing.HouseholdID != loan.HouseholdID {
		return nil, domain.ErrLoanNotFound
	}
	loan.CreatedAt = existing.CreatedAt
	loan.UpdatedAt = time.Now()
	m.Loans[loan.ID] = loan
	return loan, nil
}

// Delete removes a loan
func (m *MockLoanRepository) Delete(householdID int32, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(householdID, id)
	}
	loan, ok := m.Loans[id]
	if !ok || loan.HouseholdID != householdID {
		return domain.ErrLoanNotFound
	}
	delete(m.Loans, id)
	return nil
}

// AddLoan adds a loan to the mock repository (helper for tests)
func (m *MockLoanRepository) AddLoan(loan *domain.Loan) {
	if loan.ID == 0 {
		loan.ID = m.NextID
	}
	if loan.ID >= m.NextID {
		m.NextID = loan.ID + 1
	}
	m.Loans[loan.ID] = loan
	m.Order = append(m.Order, loan.ID)
}

// MockHouseRepository is a mock implementation of domain.HouseRepository
type MockHouseRepository struct {
	Houses   map[int32]*domain.House
	Order    []int32
	NextID   int32
	CreateFn func(house *domain.House) (*domain.House, error)
	GetAllFn func(householdID int32) ([]*domain.House, error)
	UpdateFn func(house *domain.House) (*domain.House, error)
	DeleteFn func(householdID int32, id int32) error
}

// NewMockHouseRepository creates a new MockHouseRepository
func NewMockHouseRepository() *MockHouseRepository {
	return &MockHouseRepository{
		Houses: make(map[int32]*domain.House),
		NextID: 1,
	}
}

// Create creates a new house
func (m *MockHouseRepository) Create(house *domain.House) (*domain.House, error) {
	if m.CreateFn != nil {
		return m.CreateFn(house)
	}
	m.AddHouse(house)
	return house, nil
}

// GetByID retrieves a house within a household
func (m *MockHouseRepository) GetByID(householdID int32, id int32) (*domain.House, error) {
	house, ok := m.Houses[id]
	if !ok || house.HouseholdID != householdID {
		return nil, domain.ErrHouseNotFound
	}
	return house, nil
}

// GetAllByHousehold retrieves a household's houses in insertion order
func (m *MockHouseRepository) GetAllByHousehold(householdID int32) ([]*domain.House, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(householdID)
	}
	out := []*domain.House{}
	for _, id := range m.Order {
		if h, ok := m.Houses[id]; ok && h.HouseholdID == householdID {
			out = append(out, h)
		}
	}
	return out, nil
}

// Update replaces a stored house
func (m *MockHouseRepository) Update(house *domain.House) (*domain.House, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(house)
	}
	existing, ok := m.Houses[house.ID]
	if !ok || existing.HouseholdID != house.HouseholdID {
		return nil, domain.ErrHouseNotFound
	}
	house.CreatedAt = existing.CreatedAt
	house.UpdatedAt = time.Now()
	m.Houses[house.ID] = house
	return house, nil
}

// Delete removes a house
func (m *MockHouseRepository) Delete(householdID int32, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(householdID, id)
	}
	house, ok := m.Houses[id]
	if !ok || house.HouseholdID != householdID {
		return domain.ErrHouseNotFound
	}
	delete(m.Houses, id)
	return nil
}

// AddHouse adds a house to the mock repository (helper for tests)
func (m *MockHouseRepository) AddHouse(house *domain.House) {
	if house.ID == 0 {
		house.ID = m.NextID
	}
	if house.ID >= m.NextID {
		m.NextID = house.ID + 1
	}
	m.Houses[house.ID] = house
	m.Order = append(m.Order, house.ID)
}

// PublishedEvent records one call to MockEventPublisher.Publish
type PublishedEvent struct {
	HouseholdID int32
	Event       websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish implements websocket.EventPublisher
func (m *MockEventPublisher) Publish(householdID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{HouseholdID: householdID, Event: event})
}

// Types returns the event types published so far, in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
