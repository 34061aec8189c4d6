// Package render fetches a post page and resolves its content frame into a
// queryable document tree.
package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BlogChallengeScanner/internal/ports"
)

// ErrFrameNotFound marks a page whose expected content frame is missing.
// Recoverable: the reconciler treats it as a failed extraction, not a fatal
// error.
var ErrFrameNotFound = errors.New("content frame not found")

// Options bound navigation and frame resolution.
type Options struct {
	// NavigationTimeout caps the fetch of the outer page.
	NavigationTimeout time.Duration
	// FrameWaitTimeout caps the fetch of the frame document.
	FrameWaitTimeout time.Duration
	// FrameSelector locates the iframe whose document holds the post body.
	// Empty means the outer page itself is the content document.
	FrameSelector string
	UserAgent     string
}

// HTTPRenderer implements the rendering capability over plain HTTP: the blog
// platform serves the post body inside an iframe whose document is reachable
// with a second request, so no browser engine is needed.
type HTTPRenderer struct {
	client  *http.Client
	options Options
}

var _ ports.PostRenderer = (*HTTPRenderer)(nil)

// NewHTTPRenderer wires an HTTP client; nil gets a default one.
func NewHTTPRenderer(client *http.Client, options Options) *HTTPRenderer {
	if client == nil {
		client = &http.Client{}
	}
	if options.NavigationTimeout <= 0 {
		options.NavigationTimeout = 60 * time.Second
	}
	if options.FrameWaitTimeout <= 0 {
		options.FrameWaitTimeout = 15 * time.Second
	}
	return &HTTPRenderer{client: client, options: options}
}

// Render fetches postURL and, when a frame selector is configured, follows
// the frame's src to return the inner document.
func (r *HTTPRenderer) Render(ctx context.Context, postURL string) (*goquery.Document, error) {
	page, err := r.fetchDocument(ctx, postURL, r.options.NavigationTimeout)
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", postURL, err)
	}

	if r.options.FrameSelector == "" {
		return page, nil
	}

	frameSrc, ok := page.Find(r.options.FrameSelector).First().Attr("src")
	if !ok || frameSrc == "" {
		return nil, fmt.Errorf("%w: %s in %s", ErrFrameNotFound, r.options.FrameSelector, postURL)
	}

	frameURL, err := resolveFrameURL(postURL, frameSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad frame src %q", ErrFrameNotFound, frameSrc)
	}

	frame, err := r.fetchDocument(ctx, frameURL, r.options.FrameWaitTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch frame %s: %w", frameURL, err)
	}
	return frame, nil
}

func (r *HTTPRenderer) fetchDocument(ctx context.Context, pageURL string, timeout time.Duration) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if r.options.UserAgent != "" {
		req.Header.Set("User-Agent", r.options.UserAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func resolveFrameURL(pageURL, frameSrc string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(frameSrc)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
