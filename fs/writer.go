// Package fs provides file-based exports of migrated posts: per-post
// markdown files for review and a JSON record file for inspection and
// re-runs.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrzemien/wixport"
)

// PostPath converts a post URL to a markdown file name derived from its
// slug. Example: https://example.com/post/my-first-post → my-first-post.md
func PostPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.TrimSuffix(u.Path, "/")
	if path == "" {
		return "index.md", nil
	}

	slug := path[strings.LastIndex(path, "/")+1:]
	if slug == "" {
		return "index.md", nil
	}
	return slug + ".md", nil
}

// FormatPost formats a post's markdown body with YAML frontmatter.
// Absent fields are omitted rather than written empty.
func FormatPost(post *wixport.Post, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", post.Title)
	fmt.Fprintf(&b, "source: %s\n", post.URL)
	if post.PublishedAt != nil {
		fmt.Fprintf(&b, "date: %s\n", post.PublishedAt.Format("2006-01-02"))
	}
	if len(post.Categories) > 0 {
		fmt.Fprintf(&b, "categories: %s\n", strings.Join(post.Categories, ", "))
	}
	b.WriteString("---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// Writer writes posts as markdown review files to a directory.
type Writer struct {
	baseDir   string
	converter wixport.Converter
}

// NewWriter creates a Writer that converts post bodies with the given
// converter and writes the results under baseDir.
func NewWriter(baseDir string, converter wixport.Converter) *Writer {
	return &Writer{baseDir: baseDir, converter: converter}
}

// WritePost converts one post's normalized body to markdown and writes it
// to a slug-named file.
func (w *Writer) WritePost(post *wixport.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	relPath, err := PostPath(post.URL)
	if err != nil {
		return err
	}

	markdown := ""
	if strings.TrimSpace(post.BodyHTML) != "" {
		markdown, err = w.converter.Convert(post.BodyHTML)
		if err != nil {
			return fmt.Errorf("convert %s: %w", post.URL, err)
		}
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPost(post, markdown)), 0644)
}

// WritePosts writes every post, stopping at the first error.
func (w *Writer) WritePosts(posts []*wixport.Post) error {
	for _, post := range posts {
		if err := w.WritePost(post); err != nil {
			return err
		}
	}
	return nil
}
