package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/api"
	"github.com/mdevereaux/spiderling/internal/clock/system"
	"github.com/mdevereaux/spiderling/internal/config"
	"github.com/mdevereaux/spiderling/internal/crawler"
	"github.com/mdevereaux/spiderling/internal/engine"
	"github.com/mdevereaux/spiderling/internal/extractor"
	collyfetcher "github.com/mdevereaux/spiderling/internal/fetcher/colly"
	"github.com/mdevereaux/spiderling/internal/id/uuid"
	"github.com/mdevereaux/spiderling/internal/logging"
	"github.com/mdevereaux/spiderling/internal/pool"
	"github.com/mdevereaux/spiderling/internal/progress"
	"github.com/mdevereaux/spiderling/internal/progress/sinks"
	"github.com/mdevereaux/spiderling/internal/sink"
)

// newCrawlCmd creates and configures the 'crawl' subcommand.
func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Starts a crawl run",
		Long: `Runs a single crawl over the configured seed URLs. An interrupt
(SIGINT/SIGTERM) stops new fetches cooperatively; the run drains its
outstanding tasks and still writes the partial results.`,

		RunE: runCrawlCommand,
	}
	return cmd
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()

	runID, err := uuid.New().NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	// The interrupt cancels this context; tasks observe it cooperatively
	// and the engine still drains before writing output.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := progress.NewHub(
		progress.Config{Logger: logger.Named("progress")},
		sinks.NewLogSink(logger.Named("progress")),
		sinks.NewPrometheusSink(),
	)
	defer hub.Close()

	taskPool := pool.New(cfg.Crawler.MaxWorkers)
	eng := engine.New(
		engine.Config{
			RunID:    runID,
			Seeds:    cfg.Crawler.Seeds,
			MaxDepth: cfg.Crawler.MaxDepth,
		},
		taskPool,
		pool.NewTracker(),
		crawler.NewVisitedStore(),
		collyfetcher.New(collyfetcher.Config{
			UserAgent: cfg.HTTP.UserAgent,
			Timeout:   cfg.HTTP.Timeout(),
		}),
		extractor.New(),
		sink.Select(cfg.Output.Target, logger.Named("sink")),
		system.New(),
		hub,
		logger.Named("engine"),
	)

	if cfg.Server.Enabled {
		shutdown := startObservabilityServer(cfg.Server.Port, eng, logger.Named("api"))
		defer shutdown()
	}

	if err := eng.Run(ctx); err != nil {
		return fmt.Errorf("run crawl: %w", err)
	}
	return nil
}

// startObservabilityServer serves /healthz, /status, and /metrics while the
// crawl runs and returns a function that shuts the listener down.
func startObservabilityServer(port int, eng *engine.Engine, logger *zap.Logger) func() {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           api.NewServer(eng, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("observability server failed", zap.Error(err))
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("observability server shutdown failed", zap.Error(err))
		}
	}
}
