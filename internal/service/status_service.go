package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// StatusService assembles a household's FinancialStatus and the estimates built on it
type StatusService struct {
	householdRepo  domain.HouseholdRepository
	cardRepo       domain.CreditCardRepository
	accountRepo    domain.CapitalAccountRepository
	loanRepo       domain.LoanRepository
	reports        storage.ReportRepository
	eventPublisher websocket.EventPublisher
}

// NewStatusService creates a new StatusService. reports may be nil when archiving is unused.
func NewStatusService(
	householdRepo domain.HouseholdRepository,
	cardRepo domain.CreditCardRepository,
	accountRepo domain.CapitalAccountRepository,
	loanRepo domain.LoanRepository,
	reports storage.ReportRepository,
) *StatusService {
	return &StatusService{
		householdRepo: householdRepo,
		cardRepo:      cardRepo,
		accountRepo:   accountRepo,
		loanRepo:      loanRepo,
		reports:       reports,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *StatusService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// StatusReport is the status summary with the per-record summaries behind it
type StatusReport struct {
	HouseholdID     int32                          `json:"householdId"`
	Status          *domain.FinancialStatusSummary `json:"status"`
	CreditCards     []domain.CreditCardSummary     `json:"creditCards"`
	CapitalAccounts []domain.CapitalAccountSummary `json:"capitalAccounts"`
	Loans           []domain.LoanSummary           `json:"loans"`
	GeneratedAt     time.Time                      `json:"generatedAt"`
}

// PriceEstimate holds both purchase price estimates
type PriceEstimate struct {
	ByDownPayment decimal.Decimal          `json:"byDownPayment"`
	ByDTI         decimal.Decimal          `json:"byDti"`
	DownPayment   domain.DownPaymentParams `json:"downPayment"`
	DTI           domain.DTIParams         `json:"dti"`
}

// BuildStatus loads the household budget, cards and accounts into a fresh FinancialStatus
func (s *StatusService) BuildStatus(householdID int32) (*domain.FinancialStatus, error) {
	household, err := s.householdRepo.GetByID(householdID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.GetAllByHousehold(householdID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.GetAllByHousehold(householdID)
	if err != nil {
		return nil, err
	}
	return domain.NewFinancialStatus(household.EmployerIncome, household.FixedExpenses, cards, accounts)
}

// Summary returns the status summary and per-record summaries.
// Fails with domain.ErrDivisionByZero when the household has no employer income.
func (s *StatusService) Summary(householdID int32) (*StatusReport, error) {
	status, err := s.BuildStatus(householdID)
	if err != nil {
		return nil, err
	}
	summary, err := status.Summary()
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.GetAllByHousehold(householdID)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		HouseholdID:     householdID,
		Status:          summary,
		CreditCards:     make([]domain.CreditCardSummary, 0, len(status.CreditCards)),
		CapitalAccounts: make([]domain.CapitalAccountSummary, 0, len(status.CapitalAccounts)),
		Loans:           make([]domain.LoanSummary, 0, len(loans)),
		GeneratedAt:     time.Now().UTC(),
	}
	for _, card := range status.CreditCards {
		report.CreditCards = append(report.CreditCards, card.Summary())
	}
	for _, account := range status.CapitalAccounts {
		report.CapitalAccounts = append(report.CapitalAccounts, account.Summary())
	}
	for _, loan := range loans {
		report.Loans = append(report.Loans, loan.Summary())
	}
	return report, nil
}

// EstimatePrice runs both purchase price estimates against the household status.
// Negative parameters, a non-positive upfront percentage and a loan term outside
// [0, domain.MaxLoanTermYears] fail with domain.ErrInvalidInput.
func (s *StatusService) EstimatePrice(householdID int32, downPayment domain.DownPaymentParams, dti domain.DTIParams) (*PriceEstimate, error) {
	if err := downPayment.Validate(); err != nil {
		return nil, err
	}
	if err := dti.Validate(); err != nil {
		return nil, err
	}

	status, err := s.BuildStatus(householdID)
	if err != nil {
		return nil, err
	}
	finder := domain.NewPropertyFinder(status)

	return &PriceEstimate{
		ByDownPayment: finder.EstimatePriceByDownPayment(downPayment),
		ByDTI:         finder.EstimatePriceByDTI(dti),
		DownPayment:   downPayment,
		DTI:           dti,
	}, nil
}

// ArchiveSummary stores the current status report, announces it to the
// household and returns its key
func (s *StatusService) ArchiveSummary(ctx context.Context, householdID int32) (string, error) {
	report, err := s.Summary(householdID)
	if err != nil {
		return "", err
	}
	key, err := archiveReport(ctx, s.reports, householdID, storage.ReportKindStatus, report)
	if err != nil {
		return "", err
	}
	publish(s.eventPublisher, householdID, websocket.ReportArchived(map[string]string{
		"kind": storage.ReportKindStatus,
		"key":  key,
	}))
	return key, nil
}
