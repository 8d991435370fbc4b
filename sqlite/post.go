package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkrzemien/wixport"
)

// Compile-time interface verification.
var _ wixport.PostService = (*PostService)(nil)

// PostService implements wixport.PostService using SQLite.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// CreatePost stores a new post. The source URL is the unique key: a post
// whose URL is already stored returns ECONFLICT so re-runs deduplicate
// instead of overwriting.
func (s *PostService) CreatePost(ctx context.Context, post *wixport.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	if _, err := s.FindPostByURL(ctx, post.URL); err == nil {
		return wixport.Errorf(wixport.ECONFLICT, "post already exists: %s", post.URL)
	} else if wixport.ErrorCode(err) != wixport.ENOTFOUND {
		return err
	}

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.FetchedAt.IsZero() {
		post.FetchedAt = time.Now().UTC()
	}

	var publishedAt any
	if post.PublishedAt != nil {
		publishedAt = post.PublishedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, url, title, published_at, categories, raw_html, body_html, incomplete, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.URL, post.Title, publishedAt, joinCategories(post.Categories),
		post.RawHTML, post.BodyHTML, boolToInt(post.Incomplete), post.ContentHash,
		post.Position, post.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPostByURL retrieves a post by its source URL.
func (s *PostService) FindPostByURL(ctx context.Context, url string) (*wixport.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, published_at, categories, raw_html, body_html, incomplete, content_hash, position, fetched_at
		FROM posts
		WHERE url = ?
	`, url)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "post not found: %s", url)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindPosts retrieves posts matching the filter.
func (s *PostService) FindPosts(ctx context.Context, filter wixport.PostFilter) ([]*wixport.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, published_at, categories, raw_html, body_html, incomplete, content_hash, position, fetched_at FROM posts WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Incomplete != nil {
		query.WriteString(" AND incomplete = ?")
		args = append(args, boolToInt(*filter.Incomplete))
	}

	switch filter.SortBy {
	case wixport.SortByFetchedAt:
		query.WriteString(" ORDER BY fetched_at DESC")
	default:
		query.WriteString(" ORDER BY position ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*wixport.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// DeleteAllPosts removes every stored post.
func (s *PostService) DeleteAllPosts(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM posts")
	return err
}

// scanner abstracts sql.Row and sql.Rows for scanPost.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*wixport.Post, error) {
	var post wixport.Post
	var publishedAt sql.NullString
	var categories string
	var incomplete int
	var fetchedAt string

	if err := row.Scan(&post.ID, &post.URL, &post.Title, &publishedAt, &categories,
		&post.RawHTML, &post.BodyHTML, &incomplete, &post.ContentHash,
		&post.Position, &fetchedAt); err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		t, err := parseRFC3339(publishedAt.String, "published_at")
		if err != nil {
			return nil, err
		}
		post.PublishedAt = &t
	}
	post.Categories = splitCategories(categories)
	post.Incomplete = incomplete != 0

	var err error
	post.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// Categories are stored newline-joined; category text never contains
// newlines after extraction trims it.
func joinCategories(categories []string) string {
	return strings.Join(categories, "\n")
}

func splitCategories(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
