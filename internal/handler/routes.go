package handler

import (
	"github.com/dafibh/fortuna/household-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every API handler for route registration
type Handlers struct {
	Auth           *AuthHandler
	Household      *HouseholdHandler
	CapitalAccount *CapitalAccountHandler
	CreditCard     *CreditCardHandler
	Loan           *LoanHandler
	House          *HouseHandler
	Status         *StatusHandler
	Portfolio      *PortfolioHandler
	Report         *ReportHandler
	WebSocket      *WebSocketHandler
}

// RegisterRoutes sets up all API routes. rateLimit may be nil.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit echo.MiddlewareFunc, h Handlers, servers ...Server) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec(servers...))

	// WebSocket (token in query string, browsers cannot set headers on upgrade)
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	api := e.Group("/api/v1")

	protected := func(g *echo.Group) {
		g.Use(authMiddleware.Authenticate())
		if rateLimit != nil {
			g.Use(rateLimit)
		}
	}

	// Auth routes. The callback runs before a household exists.
	callback := api.Group("/auth/callback")
	callback.Use(authMiddleware.AuthenticateClaimsOnly())
	callback.POST("", h.Auth.Callback)

	auth := api.Group("/auth")
	protected(auth)
	auth.GET("/me", h.Auth.Me)

	household := api.Group("/household")
	protected(household)
	household.GET("", h.Household.GetHousehold)
	household.PUT("/budget", h.Household.UpdateBudget)

	accounts := api.Group("/capital-accounts")
	protected(accounts)
	accounts.POST("", h.CapitalAccount.CreateAccount)
	accounts.GET("", h.CapitalAccount.GetAccounts)
	accounts.GET("/:id", h.CapitalAccount.GetAccount)
	accounts.PUT("/:id", h.CapitalAccount.UpdateAccount)
	accounts.DELETE("/:id", h.CapitalAccount.DeleteAccount)

	cards := api.Group("/credit-cards")
	protected(cards)
	cards.POST("", h.CreditCard.CreateCard)
	cards.GET("", h.CreditCard.GetCards)
	cards.GET("/:id", h.CreditCard.GetCard)
	cards.PUT("/:id", h.CreditCard.UpdateCard)
	cards.DELETE("/:id", h.CreditCard.DeleteCard)

	loans := api.Group("/loans")
	protected(loans)
	loans.POST("", h.Loan.CreateLoan)
	loans.GET("", h.Loan.GetLoans)
	loans.GET("/:id", h.Loan.GetLoan)
	loans.PUT("/:id", h.Loan.UpdateLoan)
	loans.DELETE("/:id", h.Loan.DeleteLoan)

	houses := api.Group("/houses")
	protected(houses)
	houses.POST("", h.House.CreateHouse)
	houses.GET("", h.House.GetHouses)
	houses.GET("/:id", h.House.GetHouse)
	houses.PUT("/:id", h.House.UpdateHouse)
	houses.DELETE("/:id", h.House.DeleteHouse)

	status := api.Group("/status")
	protected(status)
	status.GET("/summary", h.Status.GetSummary)
	status.POST("/price-estimate", h.Status.EstimatePrice)
	status.POST("/archive", h.Status.ArchiveSummary)

	portfolio := api.Group("/portfolio")
	protected(portfolio)
	portfolio.POST("/analysis", h.Portfolio.Analyze)

	reports := api.Group("/reports")
	protected(reports)
	reports.GET("", h.Report.ListReports)
	reports.GET("/content", h.Report.GetReport)
}
