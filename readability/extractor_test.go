package readability_test

import (
	"testing"

	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractBody(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor()

	t.Run("extracts article content from a full page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><head><title>Sourdough Notes</title></head><body>
			<nav><a href="/">Home</a></nav>
			<article>
				<h1>Sourdough Notes</h1>
				<p>Feeding the starter twice a day sounds excessive until the first loaf comes out of the oven.</p>
				<p>A cast iron pot traps enough steam that you can skip the tray of water entirely, which simplifies the bake quite a bit.</p>
			</article>
		</body></html>`

		body, err := e.ExtractBody(html)
		require.NoError(t, err)
		assert.Contains(t, body, "Feeding the starter")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := e.ExtractBody("")
		assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
	})
}
