package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mkrzemien/wixport"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wixport.BodyExtractor at compile time.
var _ wixport.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as a generic last-resort body locator.
// The ranked Wix content selectors are tried first; this kicks in for
// heavily customized templates where none of them match.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBody locates the main content of a page and returns it as HTML.
func (e *Extractor) ExtractBody(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", wixport.Errorf(wixport.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	if result.ContentNode == nil {
		return "", wixport.Errorf(wixport.ENOTFOUND, "no content node found")
	}

	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
