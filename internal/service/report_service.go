package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
)

// ErrInvalidReportKind is returned for a report kind other than status or portfolio
var ErrInvalidReportKind = errors.New("invalid report kind")

// ErrArchiveNotConfigured is returned when no report repository is wired
var ErrArchiveNotConfigured = errors.New("report archive not configured")

// ReportService lists and reads archived reports of a household
type ReportService struct {
	reports storage.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reports storage.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func validReportKind(kind string) bool {
	return kind == storage.ReportKindStatus || kind == storage.ReportKindPortfolio
}

// ListReports returns the household's reports of kind, newest first
func (s *ReportService) ListReports(ctx context.Context, householdID int32, kind string) ([]storage.ReportObject, error) {
	if !validReportKind(kind) {
		return nil, ErrInvalidReportKind
	}
	if s.reports == nil {
		return nil, ErrArchiveNotConfigured
	}
	return s.reports.List(ctx, storage.ReportPrefix(householdID, kind))
}

// GetReport returns a stored report body. Keys of other households are reported as missing.
func (s *ReportService) GetReport(ctx context.Context, householdID int32, key string) ([]byte, error) {
	if s.reports == nil {
		return nil, ErrArchiveNotConfigured
	}
	if !strings.HasPrefix(key, fmt.Sprintf("households/%d/", householdID)) {
		return nil, storage.ErrReportNotFound
	}
	return s.reports.Get(ctx, key)
}

func archiveReport(ctx context.Context, reports storage.ReportRepository, householdID int32, kind string, v interface{}) (string, error) {
	if reports == nil {
		return "", ErrArchiveNotConfigured
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s report: %w", kind, err)
	}
	key := storage.GenerateReportKey(householdID, kind, time.Now())
	if err := reports.Put(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}
