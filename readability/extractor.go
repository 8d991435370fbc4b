package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/mkrzemien/wixport"
)

// Ensure Extractor implements wixport.BodyExtractor at compile time.
var _ wixport.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-readability as an alternative generic body locator.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(article.Content) == "" {
		return "", wixport.Errorf(wixport.ENOTFOUND, "no content node found")
	}

	return article.Content, nil
}
