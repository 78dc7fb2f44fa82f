package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrReportNotFound is returned when no report is stored under a key
var ErrReportNotFound = errors.New("report not found")

// Report kinds, used as the second path segment of a report key
const (
	ReportKindStatus    = "status"
	ReportKindPortfolio = "portfolio"
)

// ReportObject describes a stored report without its body
type ReportObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ReportRepository defines the interface for archived report storage
type ReportRepository interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]ReportObject, error)
}

// ReportPrefix is the key prefix for all reports of a kind in a household
func ReportPrefix(householdID int32, kind string) string {
	return fmt.Sprintf("households/%d/%s/", householdID, kind)
}

// GenerateReportKey creates a unique, time ordered key for a new report
func GenerateReportKey(householdID int32, kind string, at time.Time) string {
	filename := fmt.Sprintf("%s-%s.json", at.UTC().Format("20060102T150405Z"), uuid.New().String())
	return path.Join(fmt.Sprintf("households/%d", householdID), kind, filename)
}
