package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CanonicalLink strips the query string and fragment from a post URL so that
// variants of the same link (tracking parameters, anchors) deduplicate.
func CanonicalLink(raw string) string {
	link := raw
	if i := strings.IndexByte(link, '?'); i >= 0 {
		link = link[:i]
	}
	if i := strings.IndexByte(link, '#'); i >= 0 {
		link = link[:i]
	}
	return link
}

// PostID derives the deterministic identifier for a post: the same blog and
// canonical link always map to the same ID, so repeated runs update in place
// instead of duplicating.
func PostID(blogID, link string) string {
	sum := sha256.Sum256([]byte(CanonicalLink(link)))
	return blogID + "_" + hex.EncodeToString(sum[:])
}
