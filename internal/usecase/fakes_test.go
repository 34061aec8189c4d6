package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BlogChallengeScanner/internal/domain"
)

var errFakeStore = errors.New("store unavailable")

type fakePostRepo struct {
	posts    map[string]domain.Post
	getErr   error
	mergeErr error
	merges   int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]domain.Post{}}
}

func (f *fakePostRepo) Get(_ context.Context, id string) (*domain.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := post
	return &copied, nil
}

func (f *fakePostRepo) Merge(_ context.Context, post domain.Post) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merges++
	f.posts[post.ID] = post
	return nil
}

type fakeBlogRepo struct {
	blogs      []domain.Blog
	listErr    error
	updateErr  error
	summaries  map[string]domain.BlogSummary
	updateCnt  int
	updatedIDs []string
}

func newFakeBlogRepo(blogs ...domain.Blog) *fakeBlogRepo {
	return &fakeBlogRepo{blogs: blogs, summaries: map[string]domain.BlogSummary{}}
}

func (f *fakeBlogRepo) ActiveBlogs(_ context.Context) ([]domain.Blog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.blogs, nil
}

func (f *fakeBlogRepo) UpdateSummary(_ context.Context, blogID string, summary domain.BlogSummary) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCnt++
	f.updatedIDs = append(f.updatedIDs, blogID)
	f.summaries[blogID] = summary
	return nil
}

type fakeRenderer struct {
	docs    map[string]*goquery.Document
	err     error
	renders int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{docs: map[string]*goquery.Document{}}
}

func (f *fakeRenderer) Render(_ context.Context, postURL string) (*goquery.Document, error) {
	f.renders++
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[postURL]
	if !ok {
		return nil, errors.New("no document for " + postURL)
	}
	return doc, nil
}

type fakeFeed struct {
	items map[string][]domain.FeedItem
	errs  map[string]error
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{items: map[string][]domain.FeedItem{}, errs: map[string]error{}}
}

func (f *fakeFeed) Fetch(_ context.Context, feedURL string) ([]domain.FeedItem, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	return f.items[feedURL], nil
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

// postPage builds a content page with the given paragraph repeated and the
// given number of content images.
func postPage(t *testing.T, paragraph string, repeats, images int) *goquery.Document {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<html><body><div class="se-main-container">`)
	for i := 0; i < repeats; i++ {
		b.WriteString("<p>")
		b.WriteString(paragraph)
		b.WriteString("</p>")
	}
	for i := 0; i < images; i++ {
		b.WriteString(`<img src="https://postfiles.example.com/photo`)
		b.WriteString(string(rune('a' + i)))
		b.WriteString(`.jpg">`)
	}
	b.WriteString(`</div></body></html>`)
	return mustDoc(t, b.String())
}

var testWindow = domain.Window{
	StartInclusive: time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC),
	EndInclusive:   time.Date(2025, time.June, 25, 23, 59, 59, 0, time.UTC),
}

var testCriteria = domain.RecognitionCriteria{MinCharCountNoSpaces: 20, MinImageCount: 1}

func inWindow(day int) time.Time {
	return time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
}
