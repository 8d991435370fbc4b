package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/mkrzemien/wixport"
	main "github.com/mkrzemien/wixport/cmd/wixport"
	"github.com/mkrzemien/wixport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists posts with date, URL and title", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC)
		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, filter wixport.PostFilter) ([]*wixport.Post, error) {
				assert.Equal(t, wixport.SortByPosition, filter.SortBy)
				assert.Nil(t, filter.Incomplete)
				return []*wixport.Post{
					{
						URL:         "https://example.com/post/spring",
						Title:       "Spring in the Valley",
						PublishedAt: &published,
					},
					{
						URL:        "https://example.com/post/untitled",
						Incomplete: true,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Posts:  posts,
		}

		cmd := &main.PostsCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "2023-04-12")
		assert.Contains(t, output, "https://example.com/post/spring")
		assert.Contains(t, output, "Spring in the Valley")
		assert.Contains(t, output, "no date")
		assert.Contains(t, output, "[incomplete]")
		assert.Contains(t, output, "2 posts")
	})

	t.Run("filters incomplete posts when flag is set", func(t *testing.T) {
		t.Parallel()

		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, filter wixport.PostFilter) ([]*wixport.Post, error) {
				require.NotNil(t, filter.Incomplete)
				assert.True(t, *filter.Incomplete)
				return []*wixport.Post{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Posts:  posts,
		}

		cmd := &main.PostsCmd{Incomplete: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No posts stored")
	})
}
