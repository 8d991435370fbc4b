package migrate

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/goquery"
)

// Ensure Discoverer implements wixport.URLSource.
var _ wixport.URLSource = (*Discoverer)(nil)

// DefaultMaxPages caps pagination per listing page. Wix archives rarely
// run past a handful of pages; the cap guards against sites that serve
// the same listing for every page number.
const DefaultMaxPages = 20

// DefaultCandidatePaths are the listing paths Wix sites use for their
// blog index, tried in order.
func DefaultCandidatePaths() []string {
	return []string{"/blog-1", "/blog", "/posts", "/articles"}
}

// Discoverer finds post URLs by walking a site's blog listing pages.
// It probes candidate listing paths, takes the first one that yields post
// links, then follows pagination until no new links appear.
type Discoverer struct {
	Fetcher wixport.Fetcher

	// Filter selects post detail links. Defaults to wixport.DefaultPostFilter.
	Filter *wixport.URLFilter

	// CandidatePaths are the listing paths to probe, tried in order.
	// Defaults to DefaultCandidatePaths.
	CandidatePaths []string

	// MaxPages caps pagination. Defaults to DefaultMaxPages.
	MaxPages int

	// RateLimiter, if set, paces requests to the source site.
	RateLimiter wixport.DomainLimiter
}

// Discover returns the post URLs found on the site's listing pages,
// deduplicated by normalized URL in first-seen order. A site with no
// responsive listing path yields an empty result, not an error.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wixport.Errorf(wixport.EINVALID, "invalid base URL: %v", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "base URL must be absolute: %q", baseURL)
	}

	set := newURLSet()

	for _, path := range d.candidatePaths(base) {
		listingURL := base.Scheme + "://" + base.Host + path

		links, err := d.pageLinks(ctx, listingURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue // unresponsive candidate, try the next
		}
		if len(links) == 0 {
			continue
		}

		for _, link := range links {
			set.Add(link)
		}
		if err := d.paginate(ctx, listingURL, set); err != nil {
			return nil, err
		}
		break // first listing path with post links wins
	}

	urls := set.URLs()
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// candidatePaths returns the listing paths to probe. A base URL with a
// non-root path is treated as a listing page the caller already knows
// about, so it goes first.
func (d *Discoverer) candidatePaths(base *url.URL) []string {
	paths := d.CandidatePaths
	if paths == nil {
		paths = DefaultCandidatePaths()
	}
	if base.Path != "" && base.Path != "/" {
		return append([]string{base.Path}, paths...)
	}
	return paths
}

// pageSize is the number of entries per listing page Wix assumes in its
// ?offset= pagination form.
const pageSize = 12

// paginate walks page 2..MaxPages of the listing, trying the ?page=N
// query form, the /page/N path form and the ?offset=N form in order, and
// stops at the first page that adds no new unique links.
func (d *Discoverer) paginate(ctx context.Context, listingURL string, set *urlSet) error {
	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	for page := 2; page <= maxPages; page++ {
		added := false

		for _, pageURL := range []string{
			fmt.Sprintf("%s?page=%d", listingURL, page),
			fmt.Sprintf("%s/page/%d", listingURL, page),
			fmt.Sprintf("%s?offset=%d", listingURL, pageSize*(page-1)),
		} {
			links, err := d.pageLinks(ctx, pageURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				continue
			}
			for _, link := range links {
				if set.Add(link) {
					added = true
				}
			}
			if added {
				break
			}
		}

		if !added {
			break
		}
	}
	return nil
}

// pageLinks fetches one listing page and extracts its post links.
func (d *Discoverer) pageLinks(ctx context.Context, pageURL string) ([]string, error) {
	if d.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, err
		}
		if err := d.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := d.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return goquery.PostLinks(html, pageURL, d.Filter)
}
