// Package engine orchestrates a single crawl run: it seeds the task pool,
// drains completions until the task graph is exhausted, and hands the
// aggregated results to the configured sink.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/crawler"
	"github.com/mdevereaux/spiderling/internal/pool"
	"github.com/mdevereaux/spiderling/internal/progress"
)

// Config holds the per-run settings the engine needs.
type Config struct {
	RunID    string
	Seeds    []string
	MaxDepth int
}

// Summary is a point-in-time snapshot of run counters, exposed on the status
// endpoint and logged when the run finishes.
type Summary struct {
	RunID        string        `json:"run_id"`
	PagesStored  int64         `json:"pages_stored"`
	FetchErrors  int64         `json:"fetch_errors"`
	TasksSkipped int64         `json:"tasks_skipped"`
	TasksRun     int64         `json:"tasks_run"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Done         bool          `json:"done"`
}

// Engine coordinates the pool, tracker, visited store, and collaborators for
// one crawl run. Create one per run; it is not reusable.
type Engine struct {
	cfg       Config
	pool      *pool.Pool
	tracker   *pool.Tracker
	visited   *crawler.VisitedStore
	fetcher   crawler.Fetcher
	extractor crawler.Extractor
	sink      crawler.Sink
	clock     crawler.Clock
	hub       *progress.Hub
	logger    *zap.Logger

	pagesStored  atomic.Int64
	fetchErrors  atomic.Int64
	tasksSkipped atomic.Int64
	tasksRun     atomic.Int64
	started      time.Time
	done         atomic.Bool
}

// New constructs an Engine.
func New(
	cfg Config,
	taskPool *pool.Pool,
	tracker *pool.Tracker,
	visited *crawler.VisitedStore,
	fetcher crawler.Fetcher,
	extractor crawler.Extractor,
	sink crawler.Sink,
	clock crawler.Clock,
	hub *progress.Hub,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:       cfg,
		pool:      taskPool,
		tracker:   tracker,
		visited:   visited,
		fetcher:   fetcher,
		extractor: extractor,
		sink:      sink,
		clock:     clock,
		hub:       hub,
		logger:    logger,
		// Fixed at construction so Status() stays race-free while the
		// observability server reads it mid-run.
		started: clock.Now(),
	}
}

// Run executes the crawl to exhaustion and writes the aggregated results.
// Cancelling ctx is cooperative: tasks that observe it stop fetching and
// scheduling, but every already-submitted handle is still drained and the
// partial results are still written. The only error Run returns is a failed
// final write.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("starting crawl",
		zap.String("run_id", e.cfg.RunID),
		zap.Strings("seeds", e.cfg.Seeds),
		zap.Int("max_depth", e.cfg.MaxDepth),
	)

	for _, seed := range e.cfg.Seeds {
		e.schedule(ctx, crawler.Task{URL: seed, Depth: 0})
	}

	e.tracker.DrainAll(func(c crawler.Completion) {
		e.logger.Debug("task complete", zap.String("marker", c.String()))
	})
	e.pool.Close()
	e.done.Store(true)

	summary := e.Status()
	e.emit(progress.Event{
		Stage: progress.StageRunDone,
		Dur:   summary.Elapsed,
	})
	e.logger.Info("crawl drained",
		zap.String("run_id", e.cfg.RunID),
		zap.Int64("pages_stored", summary.PagesStored),
		zap.Int64("fetch_errors", summary.FetchErrors),
		zap.Int64("tasks_skipped", summary.TasksSkipped),
		zap.Int64("tasks_run", summary.TasksRun),
		zap.Duration("elapsed", summary.Elapsed),
	)

	// The final write must happen even when the run was cancelled, so the
	// sink gets a context that survives ctx.
	if err := e.sink.Write(context.WithoutCancel(ctx), e.visited.Snapshot()); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Status returns the current run counters. Safe to call from the
// observability server while the run is in flight.
func (e *Engine) Status() Summary {
	elapsed := e.clock.Now().Sub(e.started)
	return Summary{
		RunID:        e.cfg.RunID,
		PagesStored:  e.pagesStored.Load(),
		FetchErrors:  e.fetchErrors.Load(),
		TasksSkipped: e.tasksSkipped.Load(),
		TasksRun:     e.tasksRun.Load(),
		Elapsed:      elapsed,
		Done:         e.done.Load(),
	}
}

func (e *Engine) schedule(ctx context.Context, task crawler.Task) {
	h := e.pool.Submit(func() crawler.Completion {
		return e.scrape(ctx, task)
	})
	e.tracker.Register(h)
}

func (e *Engine) emit(evt progress.Event) {
	evt.RunID = e.cfg.RunID
	evt.TS = e.clock.Now().UTC()
	e.hub.Emit(evt)
}
