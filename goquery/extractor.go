// Package goquery provides CSS-selector based extraction of post fields
// and listing-page links from rendered Wix markup.
package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mkrzemien/wixport"
)

// Ensure Extractor implements wixport.Extractor at compile time.
var _ wixport.Extractor = (*Extractor)(nil)

// The ranked selector lists below are configuration data tuned to the Wix
// export format, ordered most to least specific. They are the part of the
// extractor most likely to need per-site adjustment, so they live on the
// Extractor as overridable fields rather than inside the control flow.

// DefaultTitleSelectors are heading candidates for the post title.
func DefaultTitleSelectors() []string {
	return []string{
		`[data-testid="post-title"]`,
		".post-title",
		"h1",
		"h2",
	}
}

// DefaultDateSelectors are candidates for the publish date. The value is
// taken from a datetime attribute, a content attribute, or the element
// text, in that order.
func DefaultDateSelectors() []string {
	return []string{
		"time[datetime]",
		"time",
		`meta[property="article:published_time"]`,
		`[data-testid="post-date"]`,
		".post-date",
		".blog-post-date",
		".date",
	}
}

// DefaultCategorySelectors are candidates for category/tag markers.
func DefaultCategorySelectors() []string {
	return []string{
		`[data-testid="post-category"]`,
		".post-category",
		".category",
		".tag",
	}
}

// DefaultBodySelectors are candidates for the main content container.
func DefaultBodySelectors() []string {
	return []string{
		`[data-testid="post-content"]`,
		".post-content",
		".blog-post-content",
		".rich-text",
		"article",
		".content",
		"main",
	}
}

// dateFormats are the accepted textual date layouts, tried before the
// permissive parser. Wix emits the first three; the rest show up in
// hand-edited templates.
var dateFormats = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// DefaultMinBodyText is the minimum text length for a container to count
// as the post body. Shorter matches are navigation shells, not content.
const DefaultMinBodyText = 100

// Extractor extracts a structured post from a rendered detail page.
// Each field is resolved by an ordered list of strategies; the first
// non-empty, plausible value wins and misses degrade to defaults. Only a
// missing body is fatal.
type Extractor struct {
	TitleSelectors    []string
	DateSelectors     []string
	CategorySelectors []string
	BodySelectors     []string

	// MinBodyText is the text-length threshold for body candidates.
	MinBodyText int

	// Fallback, if set, is the last-resort body strategy tried after all
	// BodySelectors miss.
	Fallback wixport.BodyExtractor
}

// NewExtractor creates an Extractor with the default Wix selector lists.
func NewExtractor() *Extractor {
	return &Extractor{
		TitleSelectors:    DefaultTitleSelectors(),
		DateSelectors:     DefaultDateSelectors(),
		CategorySelectors: DefaultCategorySelectors(),
		BodySelectors:     DefaultBodySelectors(),
		MinBodyText:       DefaultMinBodyText,
	}
}

// Extract applies the per-field strategies to the rendered HTML.
func (e *Extractor) Extract(pageURL string, rawHTML string) (*wixport.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, wixport.Errorf(wixport.EINVALID, "failed to parse HTML: %v", err)
	}

	body, err := e.extractBody(doc, rawHTML)
	if err != nil {
		return nil, err
	}

	return &wixport.Post{
		URL:         pageURL,
		Title:       e.extractTitle(doc, pageURL),
		PublishedAt: e.extractDate(doc),
		Categories:  e.extractCategories(doc),
		RawHTML:     body,
	}, nil
}

// extractTitle runs the title strategies in order: primary heading, meta
// title, then a humanized form of the URL slug. Never returns empty for a
// URL with a path.
func (e *Extractor) extractTitle(doc *goquery.Document, pageURL string) string {
	strategies := []func() string{
		func() string { return e.titleFromHeading(doc) },
		func() string { return titleFromMeta(doc) },
		func() string { return TitleFromSlug(pageURL) },
	}
	for _, strategy := range strategies {
		if title := strategy(); title != "" {
			return title
		}
	}
	return ""
}

func (e *Extractor) titleFromHeading(doc *goquery.Document) string {
	for _, selector := range e.TitleSelectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if plausibleTitle(title) {
			return title
		}
	}
	return ""
}

func titleFromMeta(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); plausibleTitle(title) {
		return title
	}
	return ""
}

// plausibleTitle filters out site chrome that shows up in heading slots.
func plausibleTitle(title string) bool {
	if len(title) <= 3 {
		return false
	}
	lower := strings.ToLower(title)
	for _, boilerplate := range []string{"home", "blog", "menu"} {
		if strings.HasPrefix(lower, boilerplate) {
			return false
		}
	}
	return true
}

// TitleFromSlug derives a human-readable title from the last path segment
// of a post URL: "my-first-post" becomes "My First Post".
func TitleFromSlug(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	path := strings.TrimSuffix(u.Path, "/")
	slug := path[strings.LastIndex(path, "/")+1:]
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}

	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}

// extractDate scans the date selectors and returns the first parseable
// value. Absence of any parseable date yields nil, never an error.
func (e *Extractor) extractDate(doc *goquery.Document) *time.Time {
	for _, selector := range e.DateSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}

		candidates := []string{}
		if v, ok := sel.Attr("datetime"); ok {
			candidates = append(candidates, v)
		}
		if v, ok := sel.Attr("content"); ok {
			candidates = append(candidates, v)
		}
		candidates = append(candidates, sel.Text())

		for _, candidate := range candidates {
			if t, ok := parseDate(candidate); ok {
				return &t
			}
		}
	}
	return nil
}

// parseDate tries the explicit layouts first, then falls back to the
// permissive parser for anything else a template might emit.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	if t, err := dateparse.ParseAny(value); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// extractCategories collects the text of every category marker, deduped
// in discovery order. An empty result is a valid, uncategorized post.
func (e *Extractor) extractCategories(doc *goquery.Document) []string {
	var categories []string
	seen := make(map[string]bool)

	for _, selector := range e.CategorySelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			category := strings.TrimSpace(sel.Text())
			if category == "" || seen[category] {
				return
			}
			seen[category] = true
			categories = append(categories, category)
		})
	}
	return categories
}

// extractBody locates the main content container. The first selector whose
// match has non-trivial text wins; the optional generic fallback runs
// last. No container at all is the extractor's only hard failure.
func (e *Extractor) extractBody(doc *goquery.Document, rawHTML string) (string, error) {
	minText := e.MinBodyText
	if minText <= 0 {
		minText = DefaultMinBodyText
	}

	for _, selector := range e.BodySelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(sel.Text())) < minText {
			continue
		}

		body, err := goquery.OuterHtml(sel)
		if err != nil {
			return "", err
		}
		return body, nil
	}

	if e.Fallback != nil {
		if body, err := e.Fallback.ExtractBody(rawHTML); err == nil {
			return body, nil
		}
	}

	return "", wixport.Errorf(wixport.ENOTFOUND, "no content container found")
}
