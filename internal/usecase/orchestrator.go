package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/ports"
)

// RunReport is the single summary outcome a pass hands back to its caller.
type RunReport struct {
	BlogsProcessed int
	BlogsSkipped   int
	BlogsFailed    int
	PostsProcessed int
	PostsSkipped   int
}

// errBlogSkipped marks a per-blog condition (missing or unreachable feed)
// that must not block the rest of the run.
var errBlogSkipped = errors.New("blog skipped")

// storeError wraps persistence failures; these abort the whole run instead
// of being swallowed at the per-blog boundary.
type storeError struct {
	err error
}

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

func storeFailure(err error) error { return &storeError{err: err} }

func isStoreFailure(err error) bool {
	var se *storeError
	return errors.As(err, &se)
}

// Orchestrator drives one full pass over all active blogs. Feed failures and
// panics are isolated per blog; store errors abort the run.
type Orchestrator struct {
	blogs      ports.BlogRepository
	feed       ports.FeedFetcher
	reconciler *Reconciler
	aggregator *Aggregator
	logger     *slog.Logger
}

// NewOrchestrator wires the run-level workflow.
func NewOrchestrator(blogs ports.BlogRepository, feed ports.FeedFetcher, reconciler *Reconciler, aggregator *Aggregator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		blogs:      blogs,
		feed:       feed,
		reconciler: reconciler,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Run executes one pass. Blogs are processed sequentially, in store order,
// to bound concurrent use of the rendering capability. The context deadline
// aborts the remaining queue between items; every write is self-contained,
// so aborting mid-pass leaves no partial record.
func (o *Orchestrator) Run(ctx context.Context, now time.Time) (RunReport, error) {
	var report RunReport

	blogs, err := o.blogs.ActiveBlogs(ctx)
	if err != nil {
		return report, fmt.Errorf("load active blogs: %w", err)
	}
	if len(blogs) == 0 {
		o.logger.Info("no active blogs to process")
		return report, nil
	}

	for _, blog := range blogs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := o.processBlog(ctx, blog, now, &report)
		switch {
		case err == nil:
			report.BlogsProcessed++
		case errors.Is(err, errBlogSkipped):
			report.BlogsSkipped++
		case ctx.Err() != nil:
			return report, ctx.Err()
		case isStoreFailure(err):
			return report, err
		default:
			o.logger.Error("blog failed", "blog", blog.ID, "name", blog.Name, "error", err)
			report.BlogsFailed++
		}
	}

	o.logger.Info("run complete",
		"processed", report.BlogsProcessed,
		"skipped", report.BlogsSkipped,
		"failed", report.BlogsFailed,
		"posts", report.PostsProcessed)

	return report, nil
}

func (o *Orchestrator) processBlog(ctx context.Context, blog domain.Blog, now time.Time, report *RunReport) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic processing blog %s: %v", blog.ID, recovered)
		}
	}()

	o.logger.Info("processing blog", "blog", blog.ID, "name", blog.Name)

	if blog.RSSFeedURL == "" {
		o.logger.Warn("blog has no feed url, skipping", "blog", blog.ID)
		return errBlogSkipped
	}

	items, err := o.feed.Fetch(ctx, blog.RSSFeedURL)
	if err != nil {
		o.logger.Warn("feed fetch failed, skipping blog", "blog", blog.ID, "error", err)
		return errBlogSkipped
	}

	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		outcome, err := o.reconciler.Reconcile(ctx, blog, item, now)
		if err != nil {
			return storeFailure(err)
		}
		if outcome.InWindow {
			if outcome.Skipped {
				report.PostsSkipped++
			} else {
				report.PostsProcessed++
			}
		}
		outcomes = append(outcomes, outcome)
	}

	if _, err := o.aggregator.Aggregate(ctx, blog, outcomes); err != nil {
		return storeFailure(err)
	}
	return nil
}
