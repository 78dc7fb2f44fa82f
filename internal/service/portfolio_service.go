package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PortfolioService screens a household's house listings
type PortfolioService struct {
	houseRepo      domain.HouseRepository
	statusService  *StatusService
	reports        storage.ReportRepository
	eventPublisher websocket.EventPublisher
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(houseRepo domain.HouseRepository, statusService *StatusService, reports storage.ReportRepository) *PortfolioService {
	return &PortfolioService{
		houseRepo:     houseRepo,
		statusService: statusService,
		reports:       reports,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *PortfolioService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// PortfolioAnalysis is the screening result keyed by property name
type PortfolioAnalysis struct {
	HouseholdID    int32                              `json:"householdId"`
	Properties     map[string]domain.PropertyAnalysis `json:"properties"`
	DuplicateNames []string                           `json:"duplicateNames"`
	GeneratedAt    time.Time                          `json:"generatedAt"`
}

// Analyze loads the household's houses in insertion order and screens them.
// Estimates are looked up by house name; missing names count as 0.
// Negative estimates fail with domain.ErrInvalidAmount.
func (s *PortfolioService) Analyze(householdID int32, pitiEstimates, annualExpenses map[string]decimal.Decimal) (*PortfolioAnalysis, error) {
	for _, m := range []map[string]decimal.Decimal{pitiEstimates, annualExpenses} {
		for _, v := range m {
			if err := domain.ValidateNonNegative(v); err != nil {
				return nil, err
			}
		}
	}

	status, err := s.statusService.BuildStatus(householdID)
	if err != nil {
		return nil, err
	}
	houses, err := s.houseRepo.GetAllByHousehold(householdID)
	if err != nil {
		return nil, err
	}

	portfolio := domain.NewPortfolio()
	for _, house := range houses {
		portfolio.AddProperty(house.ToProperty())
	}

	dups := portfolio.DuplicateNames()
	if dups == nil {
		dups = []string{}
	}
	if len(dups) > 0 {
		log.Warn().
			Int32("household_id", householdID).
			Strs("names", dups).
			Msg("Duplicate property names in portfolio, later entries overwrite earlier ones")
	}

	return &PortfolioAnalysis{
		HouseholdID:    householdID,
		Properties:     portfolio.AnalyzePortfolio(domain.NewPropertyFinder(status), pitiEstimates, annualExpenses),
		DuplicateNames: dups,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// Archive stores an analysis in the report archive and returns its key
func (s *PortfolioService) Archive(ctx context.Context, analysis *PortfolioAnalysis) (string, error) {
	key, err := archiveReport(ctx, s.reports, analysis.HouseholdID, storage.ReportKindPortfolio, analysis)
	if err != nil {
		return "", err
	}
	publish(s.eventPublisher, analysis.HouseholdID, websocket.ReportArchived(map[string]string{
		"kind": storage.ReportKindPortfolio,
		"key":  key,
	}))
	return key, nil
}
