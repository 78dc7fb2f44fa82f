package storage

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryReport struct {
	data         []byte
	lastModified time.Time
}

// MemoryReportRepository keeps reports in process memory. Used when no bucket is configured.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]memoryReport
}

// NewMemoryReportRepository creates an empty in-memory report repository
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]memoryReport)}
}

// Put stores a copy of data under key
func (r *MemoryReportRepository) Put(_ context.Context, key string, data []byte, _ string) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[key] = memoryReport{data: buf, lastModified: time.Now()}
	return nil
}

// Get returns a copy of the report stored under key
func (r *MemoryReportRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[key]
	if !ok {
		return nil, ErrReportNotFound
	}
	buf := make([]byte, len(report.data))
	copy(buf, report.data)
	return buf, nil
}

// List returns every report under prefix, newest key first
func (r *MemoryReportRepository) List(_ context.Context, prefix string) ([]ReportObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	objects := make([]ReportObject, 0)
	for key, report := range r.reports {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, ReportObject{
				Key:          key,
				Size:         int64(len(report.data)),
				LastModified: report.lastModified,
			})
		}
	}
	sortNewestFirst(objects)
	return objects, nil
}
