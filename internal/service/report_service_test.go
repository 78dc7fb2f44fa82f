package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_ListReports(t *testing.T) {
	reports := storage.NewMemoryReportRepository()
	ctx := context.Background()
	svc := NewReportService(reports)

	statusKey, err := archiveReport(ctx, reports, 1, storage.ReportKindStatus, map[string]int{"a": 1})
	require.NoError(t, err)
	_, err = archiveReport(ctx, reports, 1, storage.ReportKindPortfolio, map[string]int{"b": 2})
	require.NoError(t, err)
	_, err = archiveReport(ctx, reports, 2, storage.ReportKindStatus, map[string]int{"c": 3})
	require.NoError(t, err)

	objects, err := svc.ListReports(ctx, 1, storage.ReportKindStatus)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, statusKey, objects[0].Key)

	_, err = svc.ListReports(ctx, 1, "weekly")
	assert.ErrorIs(t, err, ErrInvalidReportKind)
}

func TestReportService_GetReport(t *testing.T) {
	reports := storage.NewMemoryReportRepository()
	ctx := context.Background()
	svc := NewReportService(reports)

	key := storage.GenerateReportKey(2, storage.ReportKindStatus, time.Now())
	require.NoError(t, reports.Put(ctx, key, []byte(`{"householdId":2}`), "application/json"))

	data, err := svc.GetReport(ctx, 2, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"householdId":2}`, string(data))

	_, err = svc.GetReport(ctx, 1, key)
	assert.ErrorIs(t, err, storage.ErrReportNotFound)

	_, err = svc.GetReport(ctx, 2, "households/2/status/missing.json")
	assert.ErrorIs(t, err, storage.ErrReportNotFound)
}

func TestReportService_NotConfigured(t *testing.T) {
	svc := NewReportService(nil)

	_, err := svc.ListReports(context.Background(), 1, storage.ReportKindStatus)
	assert.ErrorIs(t, err, ErrArchiveNotConfigured)

	_, err = svc.GetReport(context.Background(), 1, "households/1/status/x.json")
	assert.ErrorIs(t, err, ErrArchiveNotConfigured)
}
