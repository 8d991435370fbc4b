package mock

import "github.com/mkrzemien/wixport"

var _ wixport.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wixport.Extractor.
type Extractor struct {
	ExtractFn func(url string, html string) (*wixport.Post, error)
}

func (e *Extractor) Extract(url string, html string) (*wixport.Post, error) {
	return e.ExtractFn(url, html)
}

var _ wixport.BodyExtractor = (*BodyExtractor)(nil)

// BodyExtractor is a mock implementation of wixport.BodyExtractor.
type BodyExtractor struct {
	ExtractBodyFn func(html string) (string, error)
}

func (e *BodyExtractor) ExtractBody(html string) (string, error) {
	return e.ExtractBodyFn(html)
}
