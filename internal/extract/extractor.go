// Package extract turns a rendered blog-post document into content metrics.
package extract

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"BlogChallengeScanner/internal/domain"
)

// contentSelectors are tried in order; the first match becomes the content
// root. The two variants cover the current and the legacy post editor markup.
var contentSelectors = []string{
	"div.se-main-container",
	"div#postViewArea",
}

// chromeSelectors identify embedded map widgets and location modules. They are
// UI chrome, not authored content, and are dropped before measuring.
var chromeSelectors = []string{
	"div.se-module.se-module-map-text",
	"div.se-module.se-module-map-image",
	".map_polyvore",
}

// decorativeSrcFragments mark map tiles, marker icons, and static-map renders
// served from CDN paths. Images matching any fragment never count as content.
var decorativeSrcFragments = []string{
	"map.pstatic.net/nrb/",
	"common-icon-places-marker",
	"ssl.pstatic.net/static/maps/mantle/",
	"simg.pstatic.net/static.map/v2/map/staticmap.bin",
}

const (
	// Inline data URIs below this length are icons or tracking pixels.
	minDataURILength = 200
	// Declared dimensions below this are too small to be content images.
	minImageDimension = 30
)

const contentNotFoundMessage = "content root not found"

// Extract locates the content root in doc, strips non-content chrome, and
// computes text and image metrics. The supplied document is not modified.
func Extract(doc *goquery.Document) domain.ExtractionResult {
	if doc == nil {
		return failed(contentNotFoundMessage)
	}

	// Chrome removal mutates the tree, so work on a clone.
	work := goquery.CloneDocument(doc)

	root := findContentRoot(work)
	if root == nil {
		return failed(contentNotFoundMessage)
	}

	for _, selector := range chromeSelectors {
		root.Find(selector).Remove()
	}

	text := strings.TrimSpace(root.Text())
	all, filtered := collectImageSources(root)

	return domain.ExtractionResult{
		Success:              true,
		Text:                 text,
		CharCountWithSpaces:  utf8.RuneCountInString(text),
		CharCountNoSpaces:    countNoSpaces(text),
		ImageCount:           len(filtered),
		AllImageSources:      all,
		FilteredImageSources: filtered,
	}
}

func findContentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// countNoSpaces counts the runes left after removing Unicode whitespace and
// the zero-width space, zero-width (non-)joiner, and BOM code points. Stricter
// than a plain whitespace strip: invisible padding is a known way apparent
// length gets inflated without visible content.
func countNoSpaces(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsSpace(r) || isZeroWidth(r) {
			continue
		}
		count++
	}
	return count
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	}
	return false
}

func collectImageSources(root *goquery.Selection) (all, filtered []string) {
	root.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if src == "" {
			return
		}
		all = append(all, src)
		if !isDecorativeImage(img, src) {
			filtered = append(filtered, src)
		}
	})
	return all, filtered
}

func isDecorativeImage(img *goquery.Selection, src string) bool {
	for _, fragment := range decorativeSrcFragments {
		if strings.Contains(src, fragment) {
			return true
		}
	}
	if strings.HasPrefix(src, "data:image/") && len(src) < minDataURILength {
		return true
	}
	if undersized(img, "width") || undersized(img, "height") {
		return true
	}
	return false
}

// undersized reports whether the named dimension attribute is declared and
// below the content threshold. Missing or unparseable attributes do not
// exclude an image.
func undersized(img *goquery.Selection, attr string) bool {
	raw, ok := img.Attr(attr)
	if !ok {
		return false
	}
	value, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if err != nil {
		return false
	}
	return value > 0 && value < minImageDimension
}

func failed(message string) domain.ExtractionResult {
	return domain.ExtractionResult{Success: false, Error: message}
}
