package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mkrzemien/wixport"
	main "github.com/mkrzemien/wixport/cmd/wixport"
	"github.com/mkrzemien/wixport/migrate"
	"github.com/mkrzemien/wixport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMigrator wires a Migrator from mocks that discovers the given URLs
// and records created posts in the returned slice.
func newTestMigrator(urls []string, created *[]*wixport.Post) *migrate.Migrator {
	return &migrate.Migrator{
		Discovery: &mock.URLSource{
			DiscoverFn: func(_ context.Context, _ string) ([]string, error) {
				return urls, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html><body><p>content</p></body></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(url, html string) (*wixport.Post, error) {
				return &wixport.Post{URL: url, Title: "A Post", RawHTML: html}, nil
			},
		},
		Normalizer: &mock.Normalizer{
			NormalizeFn: func(rawHTML string) (string, error) {
				return "<p>content</p>", nil
			},
		},
		Posts: &mock.PostService{
			FindPostByURLFn: func(_ context.Context, url string) (*wixport.Post, error) {
				return nil, wixport.Errorf(wixport.ENOTFOUND, "post not found")
			},
			CreatePostFn: func(_ context.Context, post *wixport.Post) error {
				*created = append(*created, post)
				return nil
			},
		},
	}
}

func TestMigrateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("migrates and prints a summary", func(t *testing.T) {
		t.Parallel()

		var created []*wixport.Post
		migrator := newTestMigrator([]string{
			"https://example.com/post/one",
			"https://example.com/post/two",
		}, &created)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdin:    strings.NewReader(""),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Migrator: migrator,
		}

		cmd := &main.MigrateCmd{URL: "https://example.com"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Len(t, created, 2)
		output := stdout.String()
		assert.Contains(t, output, "Found 2 posts")
		assert.Contains(t, output, "Discovered 2, saved 2, skipped 0, failed 0")
	})

	t.Run("prompts for the URL when omitted", func(t *testing.T) {
		t.Parallel()

		var created []*wixport.Post
		var discovered string
		migrator := newTestMigrator(nil, &created)
		migrator.Discovery = &mock.URLSource{
			DiscoverFn: func(_ context.Context, baseURL string) ([]string, error) {
				discovered = baseURL
				return []string{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdin:    strings.NewReader("example.com\n"),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Migrator: migrator,
		}

		cmd := &main.MigrateCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Blog URL:")
		assert.Equal(t, "https://example.com", discovered)
	})

	t.Run("returns EINVALID when the prompt gets no URL", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("\n"),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.MigrateCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
	})

	t.Run("lists failed URLs in the summary", func(t *testing.T) {
		t.Parallel()

		var created []*wixport.Post
		migrator := newTestMigrator([]string{
			"https://example.com/post/good",
			"https://example.com/post/bad",
		}, &created)
		migrator.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/bad") {
					return "", wixport.Errorf(wixport.EUNAVAILABLE, "server returned 503")
				}
				return "<html/>", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdin:    strings.NewReader(""),
			Stdout:   stdout,
			Stderr:   stderr,
			Migrator: migrator,
		}

		cmd := &main.MigrateCmd{URL: "https://example.com"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Len(t, created, 1)
		assert.Contains(t, stdout.String(), "saved 1, skipped 0, failed 1")
		assert.Contains(t, stdout.String(), "Failed URLs:")
		assert.Contains(t, stdout.String(), "https://example.com/post/bad")
		assert.Contains(t, stderr.String(), "server returned 503")
	})
}
