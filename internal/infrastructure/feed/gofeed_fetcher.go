// Package feed adapts gofeed as the feed-retrieval capability.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/ports"
)

// Fetcher pulls and parses RSS/Atom feeds.
type Fetcher struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ ports.FeedFetcher = (*Fetcher)(nil)

// NewFetcher wires a gofeed parser; a nil client gets a sane timeout.
func NewFetcher(client *http.Client, userAgent string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	parser := gofeed.NewParser()
	parser.Client = client
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Fetcher{parser: parser, logger: logger}
}

// Fetch returns the feed's items with parsed publish timestamps. Items
// without a link or a parseable date are dropped: they cannot be reconciled
// or windowed.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.FeedItem, error) {
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if item.Link == "" || published == nil {
			f.logger.Debug("dropping feed item without link or date", "feed", feedURL, "title", item.Title)
			continue
		}
		items = append(items, domain.FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishDate: *published,
		})
	}

	return items, nil
}
