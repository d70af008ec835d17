package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"amendo/internal/config"
	"amendo/internal/ledger"
	"amendo/internal/logging"
	"amendo/internal/services"
	"amendo/internal/services/amendo"
)

// LockFileName is created in the state directory while a watch runs.
const LockFileName = "watch.lock"

// ErrAlreadyWatching is returned when another process holds the watch lock.
var ErrAlreadyWatching = errors.New("another watcher is already running")

// OverviewFetcher retrieves a job overview.
type OverviewFetcher interface {
	JobOverview(ctx context.Context, jobID int64) (amendo.Overview, error)
}

// Result summarizes one Watch call.
type Result struct {
	JobID    int64
	Status   ledger.Status
	Attempts int
	Overview amendo.Overview
	Entry    *ledger.Entry
}

// Watcher polls overviews and records them in the ledger.
type Watcher struct {
	client   OverviewFetcher
	store    *ledger.Store
	logger   *slog.Logger
	interval time.Duration
	attempts int
	lockPath string
	sleep    func(ctx context.Context, d time.Duration) error
}

// New constructs a watcher using the polling settings from cfg.
func New(cfg *config.Config, client OverviewFetcher, store *ledger.Store, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || client == nil || store == nil {
		return nil, errors.New("watcher requires config, client, and ledger")
	}
	attempts := cfg.Polling.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Watcher{
		client:   client,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "watch"),
		interval: cfg.PollInterval(),
		attempts: attempts,
		lockPath: LockPath(cfg),
		sleep:    sleepContext,
	}, nil
}

// LockPath returns the location of the watch lock file for cfg.
func LockPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.StateDir, LockFileName)
}

// Active reports whether some process currently holds the watch lock.
func Active(cfg *config.Config) (bool, error) {
	lock := flock.New(LockPath(cfg))
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("check watch lock: %w", err)
	}
	if !ok {
		return true, nil
	}
	return false, lock.Unlock()
}

// Watch polls the job until it reaches a terminal status or the attempts are
// used up. The job must already be in the ledger.
func (w *Watcher) Watch(ctx context.Context, jobID int64) (Result, error) {
	ctx = services.WithJobID(ctx, jobID)
	logger := logging.WithContext(ctx, w.logger)

	lock := flock.New(w.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire watch lock: %w", err)
	}
	if !ok {
		return Result{}, fmt.Errorf("%w (lock %s)", ErrAlreadyWatching, w.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release watch lock", logging.Args(logging.Error(err))...)
		}
	}()

	entry, err := w.store.GetByJobID(ctx, jobID)
	if err != nil {
		return Result{}, err
	}
	if entry == nil {
		return Result{}, services.Wrap(services.ErrNotFound, "watch", fmt.Sprintf("job %d", jobID), "not in the ledger", nil)
	}

	result := Result{JobID: jobID, Status: entry.Status, Entry: entry}
	for attempt := 1; attempt <= w.attempts; attempt++ {
		if attempt > 1 {
			if err := w.sleep(ctx, w.interval); err != nil {
				return result, services.Wrap(services.ErrTimeout, "watch", fmt.Sprintf("job %d", jobID), "polling interrupted", err)
			}
		}

		overview, err := w.client.JobOverview(ctx, jobID)
		if err != nil {
			return result, err
		}
		status := DeriveStatus(overview.Fields)
		updated, err := w.store.RecordOverview(ctx, jobID, status, overview.Raw)
		if err != nil {
			return result, err
		}

		result.Attempts = attempt
		result.Status = status
		result.Overview = overview
		result.Entry = updated

		logger.Info("polled job overview", logging.Args(
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", w.attempts),
			logging.String("status", string(status)),
		)...)
		if status.IsTerminal() {
			break
		}
	}
	return result, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
