package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/ports"
)

// Aggregator folds the per-item outcomes of one pass into the blog's summary
// counters and persists them.
type Aggregator struct {
	blogs  ports.BlogRepository
	logger *slog.Logger
}

// NewAggregator wires the blog repository.
func NewAggregator(blogs ports.BlogRepository, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{blogs: blogs, logger: logger}
}

// Aggregate recomputes the in-window totals from scratch (the feed is the
// source of truth for membership), advances the high-water mark, and writes
// the summary as a partial update of exactly those fields.
func (a *Aggregator) Aggregate(ctx context.Context, blog domain.Blog, outcomes []Outcome) (domain.BlogSummary, error) {
	summary := domain.BlogSummary{
		LatestPostDateInWindow: blog.LatestPostDateInWindow,
	}

	for _, outcome := range outcomes {
		if !outcome.InWindow {
			continue
		}
		summary.TotalPostsInWindow++
		if outcome.Recognized {
			summary.RecognizedPostsInWindow++
		}
		if outcome.PublishDate.After(summary.LatestPostDateInWindow) {
			summary.LatestPostDateInWindow = outcome.PublishDate
		}
	}

	if err := a.blogs.UpdateSummary(ctx, blog.ID, summary); err != nil {
		return summary, fmt.Errorf("update summary for blog %s: %w", blog.ID, err)
	}

	a.logger.Info("blog summary updated",
		"blog", blog.ID,
		"total", summary.TotalPostsInWindow,
		"recognized", summary.RecognizedPostsInWindow)

	return summary, nil
}
