package ports

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BlogChallengeScanner/internal/domain"
)

// FeedFetcher pulls the current list of items from a blog's feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.FeedItem, error)
}

// PostRenderer navigates to a post URL and returns the queryable document
// tree of its content frame. Implementations own navigation timeouts and
// frame resolution; failing to reach the content frame is a recoverable
// per-post error.
type PostRenderer interface {
	Render(ctx context.Context, postURL string) (*goquery.Document, error)
}

// BlogRepository reads tracked blogs and writes their per-pass summaries.
type BlogRepository interface {
	ActiveBlogs(ctx context.Context) ([]domain.Blog, error)
	// UpdateSummary writes only the summary counters; it fails if the blog
	// record is absent.
	UpdateSummary(ctx context.Context, blogID string, summary domain.BlogSummary) error
}

// PostRepository persists reconciled posts.
type PostRepository interface {
	// Get returns the stored post or nil if none exists.
	Get(ctx context.Context, id string) (*domain.Post, error)
	// Merge upserts the extraction-owned fields of the post. Fields the
	// engine does not own (admin feedback) are left untouched on update.
	Merge(ctx context.Context, post domain.Post) error
}

// Scheduler controls when scan passes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
