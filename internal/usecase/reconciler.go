package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/extract"
	"BlogChallengeScanner/internal/ports"
)

const defaultFreshness = 6 * time.Hour

// Outcome summarizes how one feed item was handled during a pass.
type Outcome struct {
	// InWindow is false when the item's publish date falls outside the
	// challenge window; such items are neither persisted nor counted.
	InWindow bool
	// Recognized contributes to the blog's recognized count. It may come
	// from fresh extraction, from the fresh-skip cache, or be carried
	// forward from the prior record when extraction fails.
	Recognized bool
	// Skipped means the stored record was fresh enough to reuse as-is.
	Skipped bool
	// Failed means rendering or extraction failed for this item.
	Failed      bool
	PublishDate time.Time
}

// Reconciler decides, per feed item, whether to skip, reprocess, or merge.
type Reconciler struct {
	posts     ports.PostRepository
	renderer  ports.PostRenderer
	criteria  domain.RecognitionCriteria
	window    domain.Window
	freshness time.Duration
	logger    *slog.Logger
}

// NewReconciler wires the per-post decision logic. A non-positive freshness
// falls back to the 6 hour default.
func NewReconciler(posts ports.PostRepository, renderer ports.PostRenderer, criteria domain.RecognitionCriteria, window domain.Window, freshness time.Duration, logger *slog.Logger) *Reconciler {
	if freshness <= 0 {
		freshness = defaultFreshness
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		posts:     posts,
		renderer:  renderer,
		criteria:  criteria,
		window:    window,
		freshness: freshness,
		logger:    logger,
	}
}

// Reconcile runs the per-item state machine. Rendering and extraction
// failures are absorbed into the outcome; only store errors are returned,
// and those abort the run.
func (r *Reconciler) Reconcile(ctx context.Context, blog domain.Blog, item domain.FeedItem, now time.Time) (Outcome, error) {
	if !r.window.Contains(item.PublishDate) {
		return Outcome{}, nil
	}

	outcome := Outcome{InWindow: true, PublishDate: item.PublishDate}

	id := domain.PostID(blog.ID, item.Link)
	prior, err := r.posts.Get(ctx, id)
	if err != nil {
		return outcome, fmt.Errorf("load post %s: %w", id, err)
	}

	if prior != nil && now.Sub(prior.LastProcessedAt) < r.freshness {
		r.logger.Debug("post recently processed, skipping", "blog", blog.ID, "link", item.Link)
		outcome.Skipped = true
		outcome.Recognized = prior.IsRecognized
		return outcome, nil
	}

	doc, renderErr := r.renderer.Render(ctx, item.Link)
	if renderErr != nil {
		r.logger.Warn("render failed", "blog", blog.ID, "link", item.Link, "error", renderErr)
		return r.carryForward(outcome, prior), nil
	}

	result := extract.Extract(doc)
	if !result.Success {
		r.logger.Warn("extraction failed", "blog", blog.ID, "link", item.Link, "error", result.Error)
		return r.carryForward(outcome, prior), nil
	}

	post := buildPost(id, blog, item, result, r.criteria, prior, now)
	if err := r.posts.Merge(ctx, post); err != nil {
		return outcome, fmt.Errorf("merge post %s: %w", id, err)
	}

	r.logger.Info("post reconciled",
		"blog", blog.ID,
		"link", item.Link,
		"chars_no_spaces", post.CharCountNoSpaces,
		"images", post.ImageCount,
		"recognized", post.IsRecognized)

	outcome.Recognized = post.IsRecognized
	return outcome, nil
}

// carryForward keeps the previously stored verdict counting when extraction
// fails, so a transient scrape failure does not undercount the blog.
func (r *Reconciler) carryForward(outcome Outcome, prior *domain.Post) Outcome {
	outcome.Failed = true
	outcome.Recognized = prior != nil && prior.IsRecognized
	return outcome
}

func buildPost(id string, blog domain.Blog, item domain.FeedItem, result domain.ExtractionResult, criteria domain.RecognitionCriteria, prior *domain.Post, now time.Time) domain.Post {
	title := item.Title
	if title == "" {
		title = "(no title)"
	}

	post := domain.Post{
		ID:                  id,
		BlogID:              blog.ID,
		Title:               title,
		Link:                item.Link,
		PublishDate:         item.PublishDate,
		ContentFullText:     result.Text,
		CharCountWithSpaces: result.CharCountWithSpaces,
		CharCountNoSpaces:   result.CharCountNoSpaces,
		ImageCount:          result.ImageCount,
		IsRecognized:        domain.Recognize(result.Metrics(), criteria),
		LastProcessedAt:     now,
	}
	if prior != nil {
		post.AdminFeedback = prior.AdminFeedback
	}
	return post
}
