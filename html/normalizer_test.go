package html_test

import (
	"testing"

	wixhtml "github.com/mkrzemien/wixport/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_CollapsesNestedWrappers(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	t.Run("three nested single-child divs around a paragraph", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<div><div><div><p>Hello from the mountains, and welcome.</p></div></div></div>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Hello from the mountains, and welcome.</p>`, got)
	})

	t.Run("wrappers with whitespace between them", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize("<div>\n  <div><p>Text.</p></div>\n</div>")
		require.NoError(t, err)
		assert.Equal(t, `<p>Text.</p>`, got)
	})

	t.Run("multi-child container is not collapsed", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<div><p>First.</p><p>Second.</p></div>`)
		require.NoError(t, err)
		assert.Equal(t, `<div><p>First.</p><p>Second.</p></div>`, got)
	})

	t.Run("wrapper with its own text is not collapsed", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<div>intro <p>body</p></div>`)
		require.NoError(t, err)
		assert.Equal(t, `<div>intro <p>body</p></div>`, got)
	})
}

func TestNormalizer_StripsPlatformAttributes(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	t.Run("auto-generated classes and data hooks", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p class="font_8 sNXZgOo" data-hook="rcv-block" id="viewer-xyz">Some text here.</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Some text here.</p>`, got)
	})

	t.Run("image attributes survive verbatim", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p><img src="https://static.wixstatic.com/a.jpg" alt="A hill" width="640" height="480" class="gallery" data-pin-url="x"/></p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p><img src="https://static.wixstatic.com/a.jpg" alt="A hill" width="640" height="480"/></p>`, got)
	})

	t.Run("link href survives, styling hooks do not", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p><a href="https://example.com/about" class="linkBtn" target="_blank">About</a></p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p><a href="https://example.com/about">About</a></p>`, got)
	})
}

func TestNormalizer_RemovesClutter(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	t.Run("scripts and styles", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p>Keep me.</p><script>track()</script><style>.x{}</style>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Keep me.</p>`, got)
	})

	t.Run("empty formatting spans", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p>Text<span></span> continues.</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Text continues.</p>`, got)
	})

	t.Run("styled spans are unwrapped once attributes are gone", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p><span style="color:red">Warm</span> regards</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Warm regards</p>`, got)
	})

	t.Run("non-breaking-space paragraphs", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize("<p> </p><p>Real content.</p>")
		require.NoError(t, err)
		assert.Equal(t, `<p>Real content.</p>`, got)
	})

	t.Run("figure without image is unwrapped", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<figure><blockquote><p>Quoted words.</p></blockquote></figure>`)
		require.NoError(t, err)
		assert.Equal(t, `<blockquote><p>Quoted words.</p></blockquote>`, got)
	})

	t.Run("figure with image is kept", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<figure><img src="a.jpg" alt="a"/></figure>`)
		require.NoError(t, err)
		assert.Equal(t, `<figure><img src="a.jpg" alt="a"/></figure>`, got)
	})
}

func TestNormalizer_CollapsesBreaks(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	t.Run("two consecutive breaks become one", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p>Line one<br/><br/>line two.</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Line one<br/>line two.</p>`, got)
	})

	t.Run("longer runs also collapse", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p>Line one<br/><br/><br/><br/>line two.</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>Line one<br/>line two.</p>`, got)
	})

	t.Run("breaks separated by text are preserved", func(t *testing.T) {
		t.Parallel()

		got, err := n.Normalize(`<p>one<br/>two<br/>three</p>`)
		require.NoError(t, err)
		assert.Equal(t, `<p>one<br/>two<br/>three</p>`, got)
	})
}

func TestNormalizer_PreservesSemanticStructure(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	got, err := n.Normalize(`<h2>Packing List</h2><p>Bring <strong>warm</strong> and <em>light</em> layers.</p><ul><li>Boots</li><li>Map</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, `<h2>Packing List</h2><p>Bring <strong>warm</strong> and <em>light</em> layers.</p><ul><li>Boots</li><li>Map</li></ul>`, got)
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	fragments := []string{
		`<div><div><div><p>Deeply wrapped.</p></div></div></div>`,
		`<p>Line one<br/><br/>line two.</p>`,
		`<p class="x"><span>styled</span> text</p>`,
		`<figure><img src="a.jpg" alt="a"/></figure><p>Caption text follows.</p>`,
		`<h1>Title</h1><p>Body with a <a href="/post/next">link</a>.</p>`,
		`<ul><li>one</li><li>two</li></ul>`,
	}

	for _, fragment := range fragments {
		once, err := n.Normalize(fragment)
		require.NoError(t, err)

		twice, err := n.Normalize(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice, "normalize should be idempotent for %q", fragment)
	}
}

func TestNormalizer_EmptyInput(t *testing.T) {
	t.Parallel()

	n := wixhtml.NewNormalizer()

	got, err := n.Normalize("   \n ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
