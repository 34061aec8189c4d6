package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"BlogChallengeScanner/internal/app"
	"BlogChallengeScanner/internal/config"
	"BlogChallengeScanner/internal/logging"
)

func main() {
	scheduled := flag.Bool("schedule", false, "run on the configured cron schedule instead of once")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *scheduled {
		if err := application.RunScheduled(ctx); err != nil {
			logger.Error("scheduler stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	report, err := application.RunOnce(ctx)
	if err != nil {
		logger.Error("pass failed", "error", err,
			"blogs_processed", report.BlogsProcessed,
			"blogs_skipped", report.BlogsSkipped)
		os.Exit(1)
	}

	logger.Info("pass finished",
		"blogs_processed", report.BlogsProcessed,
		"blogs_skipped", report.BlogsSkipped,
		"blogs_failed", report.BlogsFailed,
		"posts_processed", report.PostsProcessed,
		"posts_skipped", report.PostsSkipped)
}
