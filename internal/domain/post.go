package domain

import "time"

// Blog is a tracked author feed participating in the challenge.
type Blog struct {
	ID                      string
	Name                    string
	RSSFeedURL              string
	IsActive                bool
	TotalPostsInWindow      int
	RecognizedPostsInWindow int
	LatestPostDateInWindow  time.Time
}

// FeedItem is a single entry pulled from a blog's feed. Ephemeral: items are
// never persisted directly, only the posts derived from them.
type FeedItem struct {
	Title       string
	Link        string
	PublishDate time.Time
}

// Post is the persisted record for one canonical link of one blog.
type Post struct {
	ID                  string
	BlogID              string
	Title               string
	Link                string
	PublishDate         time.Time
	ContentFullText     string
	CharCountWithSpaces int
	CharCountNoSpaces   int
	ImageCount          int
	IsRecognized        bool
	// AdminFeedback is owned by a human reviewer. Reconciliation only ever
	// carries the existing value forward, never computes it.
	AdminFeedback   *string
	LastProcessedAt time.Time
}

// BlogSummary holds the three counters the aggregator writes back after a pass.
type BlogSummary struct {
	TotalPostsInWindow      int
	RecognizedPostsInWindow int
	LatestPostDateInWindow  time.Time
}

// ExtractionResult carries the metrics computed from one rendered post page.
type ExtractionResult struct {
	Success              bool
	Error                string
	Text                 string
	CharCountWithSpaces  int
	CharCountNoSpaces    int
	ImageCount           int
	AllImageSources      []string
	FilteredImageSources []string
}

// Metrics projects the counts the recognition policy looks at.
func (r ExtractionResult) Metrics() ContentMetrics {
	return ContentMetrics{
		CharCountNoSpaces: r.CharCountNoSpaces,
		ImageCount:        r.ImageCount,
	}
}

// Window is the inclusive date range defining which posts are in scope.
type Window struct {
	StartInclusive time.Time
	EndInclusive   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.StartInclusive) && !t.After(w.EndInclusive)
}
