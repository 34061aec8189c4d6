package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderResolvesFrame(t *testing.T) {
	t.Parallel()

	var sawUserAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/post/1", func(w http.ResponseWriter, r *http.Request) {
		sawUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body>
		  <iframe id="mainFrame" src="/PostView.naver?blogId=u&logNo=1"></iframe>
		</body></html>`))
	})
	mux.HandleFunc("/PostView.naver", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="se-main-container">inner body</div></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	renderer := NewHTTPRenderer(server.Client(), Options{
		FrameSelector: "iframe#mainFrame",
		UserAgent:     "scanner-test",
	})

	doc, err := renderer.Render(context.Background(), server.URL+"/post/1")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	text := strings.TrimSpace(doc.Find("div.se-main-container").Text())
	if text != "inner body" {
		t.Fatalf("expected inner frame document, got %q", text)
	}
	if sawUserAgent != "scanner-test" {
		t.Fatalf("user agent not applied, got %q", sawUserAgent)
	}
}

func TestRenderFrameMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>no frame here</p></body></html>`))
	}))
	defer server.Close()

	renderer := NewHTTPRenderer(server.Client(), Options{FrameSelector: "iframe#mainFrame"})

	_, err := renderer.Render(context.Background(), server.URL)
	if !errors.Is(err, ErrFrameNotFound) {
		t.Fatalf("expected ErrFrameNotFound, got %v", err)
	}
}

func TestRenderWithoutFrameSelector(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="postViewArea">direct body</div></body></html>`))
	}))
	defer server.Close()

	renderer := NewHTTPRenderer(server.Client(), Options{})

	doc, err := renderer.Render(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := strings.TrimSpace(doc.Find("#postViewArea").Text()); got != "direct body" {
		t.Fatalf("expected outer page document, got %q", got)
	}
}

func TestRenderServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	renderer := NewHTTPRenderer(server.Client(), Options{})

	if _, err := renderer.Render(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error on HTTP 500")
	}
}
