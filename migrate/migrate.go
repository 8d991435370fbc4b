// Package migrate orchestrates the blog migration pipeline.
// It coordinates listing-page discovery, fetching, extraction,
// normalization and storage of blog posts.
package migrate

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mkrzemien/wixport"
)

// Migrator runs the migration pipeline for one site. Posts are processed
// strictly in discovery order, one at a time, with the context checked
// between posts.
type Migrator struct {
	Discovery   wixport.URLSource
	Fetcher     wixport.Fetcher
	Extractor   wixport.Extractor
	Normalizer  wixport.Normalizer
	Posts       wixport.PostService
	RateLimiter wixport.DomainLimiter
}

// Result holds the outcome of a migration run.
type Result struct {
	// Discovered is the number of unique post URLs found.
	Discovered int

	// Saved is the number of posts stored during this run.
	Saved int

	// Skipped is the number of URLs already present in the store.
	Skipped int

	// Failed is the number of URLs that could not be migrated.
	Failed int

	// FailedURLs lists the URLs counted in Failed, in discovery order.
	FailedURLs []string
}

// ProgressEvent reports progress during a migration run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting migration progress.
type ProgressFunc func(event ProgressEvent)

// Run discovers the site's posts and migrates each one. Per-URL failures
// are local: the URL is recorded and the run continues. Only discovery
// errors and context cancellation abort the run.
func (m *Migrator) Run(ctx context.Context, baseURL string, progress ProgressFunc) (*Result, error) {
	urls, err := m.Discovery.Discover(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	result := &Result{Discovered: len(urls)}
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	for i, postURL := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		completed := i + 1

		// Already stored from a previous run: no re-fetch.
		if _, err := m.Posts.FindPostByURL(ctx, postURL); err == nil {
			result.Skipped++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressSkipped,
					Completed: completed,
					Total:     total,
					URL:       postURL,
				})
			}
			continue
		}

		post, err := m.processURL(ctx, postURL)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			result.FailedURLs = append(result.FailedURLs, postURL)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					URL:       postURL,
					Error:     err,
				})
			}
			continue
		}

		post.Position = i
		post.FetchedAt = time.Now().UTC()

		if err := m.Posts.CreatePost(ctx, post); err != nil {
			if wixport.ErrorCode(err) == wixport.ECONFLICT {
				// Duplicate URL in the store is a dedup skip, not a failure.
				result.Skipped++
				if progress != nil {
					progress(ProgressEvent{
						Type:      ProgressSkipped,
						Completed: completed,
						Total:     total,
						URL:       postURL,
					})
				}
				continue
			}
			result.Failed++
			result.FailedURLs = append(result.FailedURLs, postURL)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					URL:       postURL,
					Error:     err,
				})
			}
			continue
		}

		result.Saved++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				URL:       postURL,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// processURL fetches, extracts and normalizes a single post.
func (m *Migrator) processURL(ctx context.Context, postURL string) (*wixport.Post, error) {
	if m.RateLimiter != nil {
		u, err := url.Parse(postURL)
		if err != nil {
			return nil, err
		}
		if err := m.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := m.Fetcher.Fetch(ctx, postURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	post, err := m.Extractor.Extract(postURL, html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	body, err := m.Normalizer.Normalize(post.RawHTML)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	post.BodyHTML = body

	// A post that survived with holes is kept but flagged for review.
	post.Incomplete = post.Title == "" || strings.TrimSpace(post.BodyHTML) == ""

	post.ContentHash = ComputeHash(post.BodyHTML)

	return post, nil
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
