package domain

import (
	"testing"
	"time"
)

func TestCanonicalLink(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"https://blog.example.com/user/123", "https://blog.example.com/user/123"},
		{"https://blog.example.com/user/123?from=search", "https://blog.example.com/user/123"},
		{"https://blog.example.com/user/123#comments", "https://blog.example.com/user/123"},
		{"https://blog.example.com/user/123?from=search#comments", "https://blog.example.com/user/123"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CanonicalLink(tc.raw); got != tc.want {
			t.Errorf("CanonicalLink(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestPostIDDeterministic(t *testing.T) {
	t.Parallel()

	withQuery := PostID("blog-1", "https://blog.example.com/user/123?from=search")
	plain := PostID("blog-1", "https://blog.example.com/user/123")

	if withQuery != plain {
		t.Fatalf("links differing only by query string produced different IDs: %s vs %s", withQuery, plain)
	}

	otherBlog := PostID("blog-2", "https://blog.example.com/user/123")
	if otherBlog == plain {
		t.Fatal("same link under different blogs must produce different IDs")
	}

	otherLink := PostID("blog-1", "https://blog.example.com/user/124")
	if otherLink == plain {
		t.Fatal("different links under the same blog must produce different IDs")
	}
}

func TestWindowContains(t *testing.T) {
	t.Parallel()

	window := Window{
		StartInclusive: time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC),
		EndInclusive:   time.Date(2025, time.June, 25, 23, 59, 59, 0, time.UTC),
	}

	if !window.Contains(window.StartInclusive) {
		t.Fatal("window start must be inclusive")
	}
	if !window.Contains(window.EndInclusive) {
		t.Fatal("window end must be inclusive")
	}
	if window.Contains(window.EndInclusive.Add(time.Second)) {
		t.Fatal("one second past the end must be out of window")
	}
	if window.Contains(window.StartInclusive.Add(-time.Second)) {
		t.Fatal("one second before the start must be out of window")
	}
}
