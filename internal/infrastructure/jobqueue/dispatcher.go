package jobqueue

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

const (
	defaultDrainBatchSize = 50
	defaultDrainWorkers   = 4
	defaultDrainInterval  = 30 * time.Second
	defaultMaxAttempts    = 10
)

// EntryPublisher delivers one outbox entry to its destination.
type EntryPublisher interface {
	Publish(ctx context.Context, entry outbox.Entry) error
}

type DispatcherConfig struct {
	BatchSize   int
	Workers     int
	Interval    time.Duration
	MaxAttempts int
}

// Dispatcher drains the outbox: pending entries are delivered concurrently
// and marked delivered or failed. Entries past MaxAttempts are left for
// manual reconciliation and not retried.
type Dispatcher struct {
	outboxRepo  outbox.Repository
	publisher   EntryPublisher
	logger      *logging.Logger
	batchSize   int
	workers     int
	interval    time.Duration
	maxAttempts int
}

// DrainReport summarizes one outbox sweep.
type DrainReport struct {
	Delivered int
	Failed    int
	Exhausted int
}

func NewDispatcher(outboxRepo outbox.Repository, publisher EntryPublisher, cfg DispatcherConfig, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultDrainBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultDrainWorkers
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultDrainInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Dispatcher{
		outboxRepo:  outboxRepo,
		publisher:   publisher,
		logger:      logger,
		batchSize:   cfg.BatchSize,
		workers:     cfg.Workers,
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Drain delivers one batch of pending entries.
func (d *Dispatcher) Drain(ctx context.Context) (DrainReport, error) {
	entries, err := d.outboxRepo.ListPending(ctx, d.batchSize)
	if err != nil {
		return DrainReport{}, err
	}
	if len(entries) == 0 {
		return DrainReport{}, nil
	}

	var (
		mu     sync.Mutex
		report DrainReport
	)

	workers := pool.New().WithMaxGoroutines(d.workers)
	for _, entry := range entries {
		entry := entry
		workers.Go(func() {
			if entry.Attempts >= d.maxAttempts {
				mu.Lock()
				report.Exhausted++
				mu.Unlock()
				return
			}

			if err := d.publisher.Publish(ctx, entry); err != nil {
				d.logger.WarnContext(ctx, "outbox delivery failed",
					"entryId", entry.ID,
					"attempts", entry.Attempts,
					"error", err.Error(),
				)
				if markErr := d.outboxRepo.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
					d.logger.ErrorContext(ctx, "outbox mark failed errored", "entryId", entry.ID, "error", markErr.Error())
				}
				mu.Lock()
				report.Failed++
				mu.Unlock()
				return
			}

			if markErr := d.outboxRepo.MarkDelivered(ctx, entry.ID); markErr != nil {
				d.logger.ErrorContext(ctx, "outbox mark delivered errored", "entryId", entry.ID, "error", markErr.Error())
			}
			mu.Lock()
			report.Delivered++
			mu.Unlock()
		})
	}
	workers.Wait()

	return report, nil
}

// Run drains on a fixed interval until the context closes.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := d.Drain(ctx)
			if err != nil {
				d.logger.ErrorContext(ctx, "outbox drain failed", "error", err.Error())
				continue
			}
			if report.Delivered > 0 || report.Failed > 0 {
				d.logger.InfoContext(ctx, "outbox drained",
					"delivered", report.Delivered,
					"failed", report.Failed,
					"exhausted", report.Exhausted,
				)
			}
		}
	}
}
