package wixport

import (
	"context"
	"time"
)

// Post represents a single blog post pulled out of a Wix site.
//
// A Post is created once discovery yields its URL and extraction succeeds.
// The normalizer derives BodyHTML from RawHTML exactly once; after that the
// record is immutable and is consumed by the archive writer.
type Post struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	Title string `json:"title"`

	// PublishedAt is nil when no parseable date was found on the page.
	// A missing date never fails the record.
	PublishedAt *time.Time `json:"publishedAt"`

	// Categories preserves discovery order for output readability.
	Categories []string `json:"categories"`

	// RawHTML is the body as extracted, kept for diagnostics.
	RawHTML string `json:"rawHtml"`

	// BodyHTML is the normalized, portable fragment.
	BodyHTML string `json:"bodyHtml"`

	// Incomplete marks records with an empty title or body. Such records
	// are retained, never silently dropped, so partial failures can be
	// audited after a run.
	Incomplete bool `json:"incomplete"`

	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "post URL required")
	}
	return nil
}

// PostService represents a service for managing extracted posts.
// The post URL is the unique key: creating a post whose URL already exists
// returns ECONFLICT, so re-discovery deduplicates instead of overwriting.
type PostService interface {
	// CreatePost stores a new post. Returns ECONFLICT if a post with the
	// same URL already exists.
	CreatePost(ctx context.Context, post *Post) error

	// FindPostByURL retrieves a post by its source URL.
	// Returns ENOTFOUND if no such post exists.
	FindPostByURL(ctx context.Context, url string) (*Post, error)

	// FindPosts retrieves posts matching the filter.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// DeleteAllPosts removes every stored post. Used to start a fresh run.
	DeleteAllPosts(ctx context.Context) error
}

// SortOrder represents the sort order for post queries.
type SortOrder string

// SortOrder constants for PostFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByPosition  SortOrder = "position"
)

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	ID         *string `json:"id"`
	URL        *string `json:"url"`
	Incomplete *bool   `json:"incomplete"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
