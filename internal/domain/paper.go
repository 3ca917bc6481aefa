package domain

import (
	"strings"
	"time"
)

// PaperDateLayout is the layout used when a publication date is rendered.
const PaperDateLayout = "2006-01-02"

// Paper is a bibliographic record returned by the literature source.
// Papers are built once by the source client (or the synthetic fallback)
// and treated as read-only afterwards.
type Paper struct {
	// ID is the source-specific identifier (e.g. "2301.12345" for arXiv).
	ID string

	// Title is the paper title with whitespace normalized.
	Title string

	// Authors lists author names in byline order.
	Authors []string

	// Published is the first publication timestamp.
	Published time.Time

	// Abstract is the full abstract text.
	Abstract string

	// URL is the landing page of the paper.
	URL string

	// Categories holds the subject categories, deduplicated, in the order
	// the source reported them.
	Categories []string

	// PrimaryCategory is the main subject category.
	PrimaryCategory string
}

// PublishedDate returns the publication date as YYYY-MM-DD, or an empty
// string when the date is unknown.
func (p Paper) PublishedDate() string {
	if p.Published.IsZero() {
		return ""
	}
	return p.Published.Format(PaperDateLayout)
}

// AuthorLine joins the author names the way they appear in a prompt.
func (p Paper) AuthorLine() string {
	return strings.Join(p.Authors, ", ")
}

// DedupCategories returns categories with duplicates and blanks removed,
// keeping the first occurrence of each.
func DedupCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
