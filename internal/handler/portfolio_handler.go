package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/middleware"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PortfolioHandler screens the household's house listings
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// PortfolioAnalysisRequest carries per-house estimates keyed by house name
type PortfolioAnalysisRequest struct {
	PITIEstimates  map[string]string `json:"pitiEstimates"`
	AnnualExpenses map[string]string `json:"annualExpenses"`
	Archive        bool              `json:"archive"`
}

// PropertyAnalysisResponse is the screening result of one house
type PropertyAnalysisResponse struct {
	SelfSufficiency      bool   `json:"selfSufficiency"`
	CashOnCashReturn     string `json:"cashOnCashReturn"`
	BreakEvenRentPerUnit string `json:"breakEvenRentPerUnit"`
}

// PortfolioAnalysisResponse is the screening result keyed by house name
type PortfolioAnalysisResponse struct {
	Properties     map[string]PropertyAnalysisResponse `json:"properties"`
	DuplicateNames []string                            `json:"duplicateNames"`
	GeneratedAt    string                              `json:"generatedAt"`
	ArchiveKey     string                              `json:"archiveKey,omitempty"`
}

// Analyze godoc
// @Summary Analyze the house portfolio
// @Description Self sufficiency, cash on cash return and break even rent per house. Names that repeat keep the later listing.
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PortfolioAnalysisRequest false "Estimates by house name"
// @Success 200 {object} PortfolioAnalysisResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /portfolio/analysis [post]
func (h *PortfolioHandler) Analyze(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req PortfolioAnalysisRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return NewValidationError(c, "Invalid request body", nil)
		}
	}

	p := &amountParser{}
	piti := parseAmountMap(p, "pitiEstimates", req.PITIEstimates)
	expenses := parseAmountMap(p, "annualExpenses", req.AnnualExpenses)
	if len(p.errs) > 0 {
		return p.failed(c)
	}

	analysis, err := h.portfolioService.Analyze(householdID, piti, expenses)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Estimates must not be negative", nil)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to analyze portfolio")
		return NewInternalError(c, "Failed to analyze portfolio")
	}

	resp := toPortfolioAnalysisResponse(analysis)
	if req.Archive {
		key, err := h.portfolioService.Archive(c.Request().Context(), analysis)
		if err != nil {
			if errors.Is(err, service.ErrArchiveNotConfigured) {
				return NewUnavailableError(c, "Report archive is not configured")
			}
			log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to archive portfolio analysis")
			return NewInternalError(c, "Failed to archive portfolio analysis")
		}
		resp.ArchiveKey = key
		log.Info().Int32("household_id", householdID).Str("key", key).Msg("Portfolio analysis archived")
	}

	return c.JSON(http.StatusOK, resp)
}

func parseAmountMap(p *amountParser, field string, values map[string]string) map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(values))
	for name, value := range values {
		result[name] = p.required(field+"."+name, value)
	}
	return result
}

func toPortfolioAnalysisResponse(analysis *service.PortfolioAnalysis) PortfolioAnalysisResponse {
	properties := make(map[string]PropertyAnalysisResponse, len(analysis.Properties))
	for name, result := range analysis.Properties {
		properties[name] = PropertyAnalysisResponse{
			SelfSufficiency:      result.SelfSufficiency,
			CashOnCashReturn:     formatRate(result.CashOnCashReturn),
			BreakEvenRentPerUnit: formatMoney(result.BreakEvenRentPerUnit),
		}
	}
	return PortfolioAnalysisResponse{
		Properties:     properties,
		DuplicateNames: analysis.DuplicateNames,
		GeneratedAt:    analysis.GeneratedAt.Format(time.RFC3339),
	}
}
