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

// StatusHandler serves the financial status summary and purchase price estimates
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// StatusSummaryResponse is the household financial status
type StatusSummaryResponse struct {
	TotalLiquidAccounts        string                   `json:"totalLiquidAccounts"`
	TotalRetirementAccounts    string                   `json:"totalRetirementAccounts"`
	TotalAccounts              string                   `json:"totalAccounts"`
	EmployerIncome             string                   `json:"employerIncome"`
	FixedExpenses              string                   `json:"fixedExpenses"`
	TotalCreditCardDebt        string                   `json:"totalCreditCardDebt"`
	TotalMinimumPayments       string                   `json:"totalMinimumPayments"`
	TotalPlannedCreditPayments string                   `json:"totalPlannedCreditPayments"`
	TotalMonthlyDebt           string                   `json:"totalMonthlyDebt"`
	MonthlyCashFlow            string                   `json:"monthlyCashFlow"`
	DTIRatio                   string                   `json:"dtiRatio"`
	CreditCards                []CardSummaryResponse    `json:"creditCards"`
	CapitalAccounts            []AccountSummaryResponse `json:"capitalAccounts"`
	Loans                      []LoanSummaryResponse    `json:"loans"`
	GeneratedAt                string                   `json:"generatedAt"`
}

// CardSummaryResponse is one credit card line of the status summary
type CardSummaryResponse struct {
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Balance         string `json:"balance"`
	APR             string `json:"apr"`
	MinimumPayment  string `json:"minimumPayment"`
	PlannedPayment  string `json:"plannedPayment"`
	MonthlyInterest string `json:"monthlyInterest"`
	Fees            string `json:"fees"`
}

// AccountSummaryResponse is one capital account line of the status summary
type AccountSummaryResponse struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Balance      string `json:"balance"`
	AnnualYield  string `json:"annualYield"`
	MonthlyYield string `json:"monthlyYield"`
	IsLiquid     bool   `json:"isLiquid"`
}

// LoanSummaryResponse is one loan line of the status summary
type LoanSummaryResponse struct {
	Name            string `json:"name"`
	Lender          string `json:"lender"`
	Balance         string `json:"balance"`
	APR             string `json:"apr"`
	MinPayment      string `json:"minPayment"`
	MonthlyInterest string `json:"monthlyInterest"`
}

// PriceEstimateRequest overrides the default estimate parameters. Empty fields keep the default.
type PriceEstimateRequest struct {
	DownPaymentPercent    string `json:"downPaymentPercent,omitempty"`
	ClosingCostPercent    string `json:"closingCostPercent,omitempty"`
	ReserveMonths         string `json:"reserveMonths,omitempty"`
	PITIEstimate          string `json:"pitiEstimate,omitempty"`
	DTILimit              string `json:"dtiLimit,omitempty"`
	APR                   string `json:"apr,omitempty"`
	LoanTermYears         *int   `json:"loanTermYears,omitempty"`
	MonthlyTaxesInsurance string `json:"monthlyTaxesInsurance,omitempty"`
}

// PriceEstimateResponse holds both purchase price estimates
type PriceEstimateResponse struct {
	ByDownPayment string `json:"byDownPayment"`
	ByDTI         string `json:"byDti"`
}

// ArchiveResponse names the stored report
type ArchiveResponse struct {
	Key string `json:"key"`
}

// GetSummary godoc
// @Summary Get the financial status summary
// @Description Totals, monthly debt, cash flow and DTI ratio. Fails with 422 while employer income is zero.
// @Tags status
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /status/summary [get]
func (h *StatusHandler) GetSummary(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	report, err := h.statusService.Summary(householdID)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) {
			return NewUnprocessableError(c, "Employer income must be set before the DTI ratio can be computed")
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to build status summary")
		return NewInternalError(c, "Failed to build status summary")
	}
	return c.JSON(http.StatusOK, toStatusSummaryResponse(report))
}

// EstimatePrice godoc
// @Summary Estimate an affordable purchase price
// @Description Runs the down payment and DTI estimates against the current status
// @Tags status
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PriceEstimateRequest false "Estimate parameters"
// @Success 200 {object} PriceEstimateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /status/price-estimate [post]
func (h *StatusHandler) EstimatePrice(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	var req PriceEstimateRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return NewValidationError(c, "Invalid request body", nil)
		}
	}

	downPayment := domain.DefaultDownPaymentParams()
	dti := domain.DefaultDTIParams()
	p := &amountParser{}
	overrides := []struct {
		field string
		value string
		dst   *decimal.Decimal
	}{
		{"downPaymentPercent", req.DownPaymentPercent, &downPayment.DownPaymentPercent},
		{"closingCostPercent", req.ClosingCostPercent, &downPayment.ClosingCostPercent},
		{"reserveMonths", req.ReserveMonths, &downPayment.ReserveMonths},
		{"pitiEstimate", req.PITIEstimate, &downPayment.PITIEstimate},
		{"dtiLimit", req.DTILimit, &dti.DTILimit},
		{"apr", req.APR, &dti.APR},
		{"monthlyTaxesInsurance", req.MonthlyTaxesInsurance, &dti.MonthlyTaxesInsurance},
	}
	for _, o := range overrides {
		if v := p.optional(o.field, o.value); v != nil {
			*o.dst = *v
		}
	}
	if len(p.errs) > 0 {
		return p.failed(c)
	}
	if req.LoanTermYears != nil {
		dti.LoanTermYears = *req.LoanTermYears
	}

	estimate, err := h.statusService.EstimatePrice(householdID, downPayment, dti)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Invalid estimate parameters", nil)
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to estimate price")
		return NewInternalError(c, "Failed to estimate price")
	}

	return c.JSON(http.StatusOK, PriceEstimateResponse{
		ByDownPayment: formatMoney(estimate.ByDownPayment),
		ByDTI:         formatMoney(estimate.ByDTI),
	})
}

// ArchiveSummary godoc
// @Summary Archive the current status summary
// @Tags status
// @Produce json
// @Security BearerAuth
// @Success 201 {object} ArchiveResponse
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /status/archive [post]
func (h *StatusHandler) ArchiveSummary(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	key, err := h.statusService.ArchiveSummary(c.Request().Context(), householdID)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) {
			return NewUnprocessableError(c, "Employer income must be set before the DTI ratio can be computed")
		}
		if errors.Is(err, service.ErrArchiveNotConfigured) {
			return NewUnavailableError(c, "Report archive is not configured")
		}
		log.Error().Err(err).Int32("household_id", householdID).Msg("Failed to archive status summary")
		return NewInternalError(c, "Failed to archive status summary")
	}

	log.Info().Int32("household_id", householdID).Str("key", key).Msg("Status summary archived")
	return c.JSON(http.StatusCreated, ArchiveResponse{Key: key})
}

func toStatusSummaryResponse(report *service.StatusReport) StatusSummaryResponse {
	s := report.Status
	resp := StatusSummaryResponse{
		TotalLiquidAccounts:        formatMoney(s.TotalLiquidAccounts),
		TotalRetirementAccounts:    formatMoney(s.TotalRetirementAccounts),
		TotalAccounts:              formatMoney(s.TotalAccounts),
		EmployerIncome:             formatMoney(s.EmployerIncome),
		FixedExpenses:              formatMoney(s.FixedExpenses),
		TotalCreditCardDebt:        formatMoney(s.TotalCreditCardDebt),
		TotalMinimumPayments:       formatMoney(s.TotalMinimumPayments),
		TotalPlannedCreditPayments: formatMoney(s.TotalPlannedCreditPayments),
		TotalMonthlyDebt:           formatMoney(s.TotalMonthlyDebt),
		MonthlyCashFlow:            formatMoney(s.MonthlyCashFlow),
		DTIRatio:                   formatRate(s.DTIRatio),
		CreditCards:                make([]CardSummaryResponse, len(report.CreditCards)),
		CapitalAccounts:            make([]AccountSummaryResponse, len(report.CapitalAccounts)),
		Loans:                      make([]LoanSummaryResponse, len(report.Loans)),
		GeneratedAt:                report.GeneratedAt.Format(time.RFC3339),
	}
	for i, card := range report.CreditCards {
		resp.CreditCards[i] = CardSummaryResponse{
			Name:            card.Name,
			Provider:        card.Provider,
			Balance:         formatMoney(card.Balance),
			APR:             formatRate(card.APR),
			MinimumPayment:  formatMoney(card.MinimumPayment),
			PlannedPayment:  formatMoney(card.PlannedPayment),
			MonthlyInterest: formatMoney(card.MonthlyInterest),
			Fees:            formatMoney(card.Fees),
		}
	}
	for i, account := range report.CapitalAccounts {
		resp.CapitalAccounts[i] = AccountSummaryResponse{
			Name:         account.Name,
			Type:         account.Type,
			Balance:      formatMoney(account.Balance),
			AnnualYield:  formatRate(account.AnnualYield),
			MonthlyYield: formatMoney(account.MonthlyYield),
			IsLiquid:     account.IsLiquid,
		}
	}
	for i, loan := range report.Loans {
		resp.Loans[i] = LoanSummaryResponse{
			Name:            loan.Name,
			Lender:          loan.Lender,
			Balance:         formatMoney(loan.Balance),
			APR:             formatRate(loan.APR),
			MinPayment:      formatMoney(loan.MinPayment),
			MonthlyInterest: formatMoney(loan.MonthlyInterest),
		}
	}
	return resp
}
