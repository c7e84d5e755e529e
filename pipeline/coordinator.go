package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/justapithecus/grove/log"
	"github.com/justapithecus/grove/types"
)

// JobRunner executes one catalog entry to completion.
// Satisfied by (*Executor).Execute; tests inject fakes.
type JobRunner func(ctx context.Context, entry types.CatalogEntry) types.JobOutcome

// Event is emitted exactly once per finished job, after the run counters
// have been advanced. Completed and Failed are the counter values as of
// this job's completion.
type Event struct {
	// Entry is the catalog entry the job processed.
	Entry types.CatalogEntry
	// Outcome is the job's outcome.
	Outcome types.JobOutcome
	// Completed is the number of jobs finished so far, this one included.
	Completed uint64
	// Failed is the number of failed jobs so far.
	Failed uint64
}

// CoordinatorConfig configures a pipeline run.
type CoordinatorConfig struct {
	// Workers is the fixed worker pool size. Must be at least 1.
	Workers int
	// RunID identifies the run in logs and the summary. Generated when empty.
	RunID string
	// Observer, when set, receives one Event per finished job. It may be
	// called from any worker goroutine.
	Observer func(Event)
	// Logger receives run-level diagnostics. Nil discards them.
	Logger *log.Logger
}

// Coordinator owns the bounded worker pool and the run counters.
//
// Jobs are independent: the coordinator imposes no inter-job ordering and
// completion order is unspecified. Counters are advanced atomically once
// per job, so the final summary is exact regardless of scheduling.
type Coordinator struct {
	config CoordinatorConfig
	run    JobRunner

	completed atomic.Uint64
	failed    atomic.Uint64
}

// NewCoordinator creates a coordinator dispatching jobs to run.
func NewCoordinator(config CoordinatorConfig, run JobRunner) *Coordinator {
	if config.RunID == "" {
		config.RunID = uuid.New().String()
	}
	if config.Logger == nil {
		config.Logger = log.Nop()
	}
	return &Coordinator{config: config, run: run}
}

// RunID returns the identifier of this coordinator's run.
func (c *Coordinator) RunID() string {
	return c.config.RunID
}

// Run dispatches one task per entry across the worker pool and blocks
// until every dispatched task finishes, then returns the final counters.
//
// A cancelled context stops further dispatch; in-flight jobs run to
// completion and the context error is returned alongside the partial
// summary. Per-job failures never produce an error here.
func (c *Coordinator) Run(ctx context.Context, entries []types.CatalogEntry) (types.RunSummary, error) {
	if c.config.Workers < 1 {
		return types.RunSummary{}, fmt.Errorf("worker pool size must be at least 1, got %d", c.config.Workers)
	}

	start := time.Now()
	c.config.Logger.Info("run started", map[string]any{
		"entries": len(entries),
		"workers": c.config.Workers,
	})

	sem := make(chan struct{}, c.config.Workers)
	var wg sync.WaitGroup

	var dispatchErr error
dispatch:
	for _, entry := range entries {
		// Checked before the semaphore so cancellation wins even when a
		// worker slot is free.
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		}

		wg.Add(1)
		go func(entry types.CatalogEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := c.run(ctx, entry)

			completed := c.completed.Add(1)
			failed := c.failed.Load()
			if outcome.IsFailure() {
				failed = c.failed.Add(1)
				c.config.Logger.Warn("job failed", map[string]any{
					"grammar": entry.Name,
					"stage":   string(outcome.Stage),
					"error":   outcome.Message,
				})
			} else {
				c.config.Logger.Info("job completed", map[string]any{
					"grammar":  entry.Name,
					"artifact": outcome.ArtifactPath,
				})
			}

			if c.config.Observer != nil {
				c.config.Observer(Event{
					Entry:     entry,
					Outcome:   outcome,
					Completed: completed,
					Failed:    failed,
				})
			}
		}(entry)
	}

	wg.Wait()

	summary := types.RunSummary{
		RunID:     c.config.RunID,
		Total:     uint64(len(entries)),
		Completed: c.completed.Load(),
		Failed:    c.failed.Load(),
		Duration:  time.Since(start),
	}
	c.config.Logger.Info("run finished", map[string]any{
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"duration":  summary.Duration.String(),
	})
	return summary, dispatchErr
}
