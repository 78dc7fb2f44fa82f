package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/rs/zerolog"
)

// SnapshotWorker periodically archives the status report of every household
type SnapshotWorker struct {
	statusService *StatusService
	householdRepo domain.HouseholdRepository
	logger        zerolog.Logger
	interval      time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	mu            sync.Mutex
	running       bool
}

// SnapshotWorkerConfig holds configuration for the snapshot worker
type SnapshotWorkerConfig struct {
	Interval time.Duration // How often to archive status reports
}

// DefaultSnapshotWorkerConfig returns a daily snapshot
func DefaultSnapshotWorkerConfig() SnapshotWorkerConfig {
	return SnapshotWorkerConfig{Interval: 24 * time.Hour}
}

// SnapshotResult counts the outcome of one pass over all households
type SnapshotResult struct {
	Archived int
	Skipped  int
	Errors   int
}

// NewSnapshotWorker creates a new snapshot worker
func NewSnapshotWorker(
	statusService *StatusService,
	householdRepo domain.HouseholdRepository,
	logger zerolog.Logger,
	config SnapshotWorkerConfig,
) *SnapshotWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultSnapshotWorkerConfig().Interval
	}

	return &SnapshotWorker{
		statusService: statusService,
		householdRepo: householdRepo,
		logger:        logger.With().Str("component", "snapshot_worker").Logger(),
		interval:      config.Interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins the background snapshots. A second call is a no-op.
func (w *SnapshotWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting snapshot worker")

	go w.run(ctx)
}

// Stop gracefully stops the worker and waits for the current pass to finish
func (w *SnapshotWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping snapshot worker")
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
	w.logger.Info().Msg("Snapshot worker stopped")
}

func (w *SnapshotWorker) run(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	w.SnapshotAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.SnapshotAll(ctx)
		}
	}
}

// SnapshotAll archives one status report per household.
// Households without employer income have no DTI and are skipped.
func (w *SnapshotWorker) SnapshotAll(ctx context.Context) SnapshotResult {
	var result SnapshotResult
	startTime := time.Now()

	households, err := w.householdRepo.GetAll()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to get households for snapshot")
		result.Errors++
		return result
	}

	for _, household := range households {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Context cancelled, stopping snapshot")
			return result
		case <-w.stopCh:
			w.logger.Info().Msg("Stop signal received, stopping snapshot")
			return result
		default:
		}

		key, err := w.statusService.ArchiveSummary(ctx, household.ID)
		switch {
		case errors.Is(err, domain.ErrDivisionByZero):
			w.logger.Debug().Int32("household_id", household.ID).Msg("Skipping snapshot, no employer income")
			result.Skipped++
		case err != nil:
			w.logger.Error().Err(err).Int32("household_id", household.ID).Msg("Failed to archive status snapshot")
			result.Errors++
		default:
			w.logger.Debug().Int32("household_id", household.ID).Str("key", key).Msg("Archived status snapshot")
			result.Archived++
		}
	}

	w.logger.Info().
		Int("households", len(households)).
		Int("archived", result.Archived).
		Int("skipped", result.Skipped).
		Int("errors", result.Errors).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed status snapshot")
	return result
}

// IsRunning returns whether the worker is currently running
func (w *SnapshotWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
