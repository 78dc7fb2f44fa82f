package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/middleware"
	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler lists and serves archived reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportObjectResponse describes one archived report
type ReportObjectResponse struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}

// ListReports godoc
// @Summary List archived reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param kind query string true "Report kind" Enums(status, portfolio)
// @Success 200 {array} ReportObjectResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /reports [get]
func (h *ReportHandler) ListReports(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	kind := c.QueryParam("kind")
	objects, err := h.reportService.ListReports(c.Request().Context(), householdID, kind)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportKind) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "kind", Message: "Kind must be one of: status, portfolio"},
			})
		}
		if errors.Is(err, service.ErrArchiveNotConfigured) {
			return NewUnavailableError(c, "Report archive is not configured")
		}
		log.Error().Err(err).Int32("household_id", householdID).Str("kind", kind).Msg("Failed to list reports")
		return NewInternalError(c, "Failed to list reports")
	}

	response := make([]ReportObjectResponse, len(objects))
	for i, obj := range objects {
		response[i] = ReportObjectResponse{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.Format(time.RFC3339),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetReport godoc
// @Summary Get an archived report
// @Description Returns the stored JSON document
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param key query string true "Report key"
// @Success 200 {object} object
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /reports/content [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
	householdID := middleware.GetHouseholdID(c)
	if householdID == 0 {
		return NewUnauthorizedError(c, "Household required")
	}

	key := c.QueryParam("key")
	if key == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "key", Message: "Key is required"},
		})
	}

	data, err := h.reportService.GetReport(c.Request().Context(), householdID, key)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		if errors.Is(err, service.ErrArchiveNotConfigured) {
			return NewUnavailableError(c, "Report archive is not configured")
		}
		log.Error().Err(err).Int32("household_id", householdID).Str("key", key).Msg("Failed to get report")
		return NewInternalError(c, "Failed to get report")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
