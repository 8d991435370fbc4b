package goquery_test

import (
	"testing"
	"time"

	"github.com/mkrzemien/wixport"
	wixgoquery "github.com/mkrzemien/wixport/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postURL = "https://example.com/post/spring-in-the-valley"

// page builds a minimal detail page around the given head and body markup.
func page(head, body string) string {
	return `<!DOCTYPE html><html><head>` + head + `</head><body>` + body + `</body></html>`
}

const longBody = `<div class="post-content"><p>The valley turns green almost overnight once the snowmelt starts, and the first wildflowers follow within a week or two.</p></div>`

func TestExtractor_TitleFallbacks(t *testing.T) {
	t.Parallel()

	e := wixgoquery.NewExtractor()

	t.Run("primary heading wins", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(
			`<meta property="og:title" content="Meta Title"/>`,
			`<h1>Spring in the Valley</h1>`+longBody,
		))
		require.NoError(t, err)
		assert.Equal(t, "Spring in the Valley", post.Title)
	})

	t.Run("meta title when heading missing", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(
			`<meta property="og:title" content="Spring, From the Meta"/>`,
			longBody,
		))
		require.NoError(t, err)
		assert.Equal(t, "Spring, From the Meta", post.Title)
	})

	t.Run("implausible headings are skipped", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(
			`<meta property="og:title" content="The Real Title"/>`,
			`<h1>Blog</h1>`+longBody,
		))
		require.NoError(t, err)
		assert.Equal(t, "The Real Title", post.Title)
	})

	t.Run("slug fallback when nothing else matches", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``, longBody))
		require.NoError(t, err)
		assert.Equal(t, "Spring In The Valley", post.Title)
	})
}

func TestTitleFromSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/post/my-first-post", "My First Post"},
		{"https://example.com/post/my-first-post/", "My First Post"},
		{"https://example.com/post/under_scored_slug", "Under Scored Slug"},
		{"https://example.com/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wixgoquery.TitleFromSlug(tt.url), tt.url)
	}
}

func TestExtractor_DateFallbacks(t *testing.T) {
	t.Parallel()

	e := wixgoquery.NewExtractor()

	t.Run("datetime attribute", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``,
			`<time datetime="2023-04-12T09:30:00Z">April 12</time>`+longBody,
		))
		require.NoError(t, err)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC), post.PublishedAt.UTC())
	})

	t.Run("meta article published_time", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(
			`<meta property="article:published_time" content="2022-11-03"/>`,
			longBody,
		))
		require.NoError(t, err)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, 2022, post.PublishedAt.Year())
		assert.Equal(t, time.November, post.PublishedAt.Month())
	})

	t.Run("textual date in a class-marked element", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``,
			`<span class="post-date">January 5, 2021</span>`+longBody,
		))
		require.NoError(t, err)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), post.PublishedAt.UTC())
	})

	t.Run("unparseable date degrades to nil", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``,
			`<span class="post-date">sometime last winter</span>`+longBody,
		))
		require.NoError(t, err)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("no date element at all", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``, longBody))
		require.NoError(t, err)
		assert.Nil(t, post.PublishedAt)
	})
}

func TestExtractor_Categories(t *testing.T) {
	t.Parallel()

	e := wixgoquery.NewExtractor()

	t.Run("collects and dedupes markers", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``,
			`<span class="post-category">Travel</span>
			 <a class="tag">Hiking</a>
			 <a class="tag">Travel</a>`+longBody,
		))
		require.NoError(t, err)
		assert.Equal(t, []string{"Travel", "Hiking"}, post.Categories)
	})

	t.Run("zero markers is a valid empty set", func(t *testing.T) {
		t.Parallel()

		post, err := e.Extract(postURL, page(``, longBody))
		require.NoError(t, err)
		assert.Empty(t, post.Categories)
	})
}

func TestExtractor_Body(t *testing.T) {
	t.Parallel()

	t.Run("most specific selector wins", func(t *testing.T) {
		t.Parallel()

		e := wixgoquery.NewExtractor()
		post, err := e.Extract(postURL, page(``,
			`<main><p>Generic shell that also clears the length threshold easily enough.</p></main>`+longBody,
		))
		require.NoError(t, err)
		assert.Contains(t, post.RawHTML, "wildflowers")
		assert.Contains(t, post.RawHTML, `class="post-content"`)
	})

	t.Run("short containers are skipped", func(t *testing.T) {
		t.Parallel()

		e := wixgoquery.NewExtractor()
		post, err := e.Extract(postURL, page(``,
			`<div class="post-content">nav</div><article><p>A much longer body that clearly crosses the minimum text threshold for real content, with enough prose to rule out a navigation shell.</p></article>`,
		))
		require.NoError(t, err)
		assert.Contains(t, post.RawHTML, "longer body")
	})

	t.Run("no container is the only hard failure", func(t *testing.T) {
		t.Parallel()

		e := wixgoquery.NewExtractor()
		_, err := e.Extract(postURL, page(``, `<div class="something-else">tiny</div>`))
		assert.Equal(t, wixport.ENOTFOUND, wixport.ErrorCode(err))
	})

	t.Run("generic fallback runs after selectors miss", func(t *testing.T) {
		t.Parallel()

		e := wixgoquery.NewExtractor()
		e.Fallback = bodyExtractorFunc(func(html string) (string, error) {
			return "<p>from the fallback</p>", nil
		})

		post, err := e.Extract(postURL, page(``, `<div class="something-else">tiny</div>`))
		require.NoError(t, err)
		assert.Equal(t, "<p>from the fallback</p>", post.RawHTML)
	})
}

// bodyExtractorFunc adapts a function to wixport.BodyExtractor.
type bodyExtractorFunc func(html string) (string, error)

func (f bodyExtractorFunc) ExtractBody(html string) (string, error) {
	return f(html)
}
