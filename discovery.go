package wixport

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// URLSource discovers blog post URLs from a site.
// Implementations hide the complexity of listing-page pagination vs
// sitemap discovery. The returned slice is deduplicated and preserves
// first-seen order.
type URLSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern
	// are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check exclude patterns
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// NormalizeURL collapses the URL variants Wix produces for the same post:
// fragments and query strings are dropped and a trailing slash is trimmed,
// so /post/hello, /post/hello/ and /post/hello?utm=x key the same entry.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.RawQuery = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// DefaultPostFilter returns the filter describing what a Wix post detail
// link looks like. The ranked patterns are configuration data tuned to the
// Wix export format, not an algorithmic contract; override per site when
// a blog uses a custom URL structure.
func DefaultPostFilter() *URLFilter {
	return &URLFilter{
		Include: []*regexp.Regexp{
			regexp.MustCompile(`/post/`),
			regexp.MustCompile(`/blog-1/.`),
			regexp.MustCompile(`/blog/.`),
			regexp.MustCompile(`/posts/.`),
		},
		Exclude: []*regexp.Regexp{
			regexp.MustCompile(`/categor(?:y|ies)/`),
			regexp.MustCompile(`/tags?/`),
			regexp.MustCompile(`/search/`),
			regexp.MustCompile(`/author/`),
			regexp.MustCompile(`/page/\d+$`),
		},
	}
}
