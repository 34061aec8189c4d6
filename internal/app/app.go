package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"BlogChallengeScanner/internal/config"
	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/infrastructure/feed"
	"BlogChallengeScanner/internal/infrastructure/render"
	"BlogChallengeScanner/internal/infrastructure/scheduler"
	"BlogChallengeScanner/internal/infrastructure/storage"
	"BlogChallengeScanner/internal/logging"
	"BlogChallengeScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	orchestrator *usecase.Orchestrator
	scheduler    *scheduler.CronScheduler
}

// New validates configuration, initializes the store, and wires the full
// pass workflow. Configuration and store failures here are fatal: the run
// never begins on a broken setup.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	db, err := storage.Init(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	blogs := storage.NewBlogRepository(db)
	posts := storage.NewPostRepository(db)

	fetcher := feed.NewFetcher(nil, cfg.Scanner.UserAgent, baseLogger.With("component", "feed"))
	renderer := render.NewHTTPRenderer(&http.Client{}, render.Options{
		NavigationTimeout: cfg.Scanner.NavigationTimeout.Std(),
		FrameWaitTimeout:  cfg.Scanner.FrameWaitTimeout.Std(),
		FrameSelector:     cfg.Scanner.FrameSelector,
		UserAgent:         cfg.Scanner.UserAgent,
	})

	criteria := domain.RecognitionCriteria{
		MinCharCountNoSpaces: cfg.Recognition.MinCharCountNoSpaces,
		MinImageCount:        cfg.Recognition.MinImageCount,
	}
	window := domain.Window{
		StartInclusive: cfg.Challenge.Start,
		EndInclusive:   cfg.Challenge.End,
	}

	reconciler := usecase.NewReconciler(posts, renderer, criteria, window,
		cfg.Scanner.Freshness.Std(), baseLogger.With("component", "reconciler"))
	aggregator := usecase.NewAggregator(blogs, baseLogger.With("component", "aggregator"))
	orchestrator := usecase.NewOrchestrator(blogs, fetcher, reconciler, aggregator,
		baseLogger.With("component", "orchestrator"))

	return &Application{
		cfg:          cfg,
		logger:       baseLogger,
		orchestrator: orchestrator,
		scheduler:    scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location()),
	}, nil
}

// RunOnce executes a single pass and returns its report.
func (a *Application) RunOnce(ctx context.Context) (usecase.RunReport, error) {
	now := time.Now().In(a.cfg.Scheduler.Location())
	return a.orchestrator.Run(ctx, now)
}

// RunScheduled starts the cron loop and blocks until the context is done.
func (a *Application) RunScheduled(ctx context.Context) error {
	job := func(trigger time.Time) {
		report, err := a.orchestrator.Run(ctx, trigger)
		if err != nil {
			a.logger.Error("scheduled pass failed", "error", err)
			return
		}
		a.logger.Info("scheduled pass finished",
			"processed", report.BlogsProcessed,
			"skipped", report.BlogsSkipped,
			"failed", report.BlogsFailed)
	}

	if err := a.scheduler.Start(ctx, job); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

// Close releases the store connection.
func (a *Application) Close() error {
	return storage.Close()
}
