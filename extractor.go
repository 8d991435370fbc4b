package wixport

// Extractor extracts a structured post record from a rendered detail page.
type Extractor interface {
	// Extract applies per-field fallback strategies to the rendered HTML.
	// Missing title, date, or categories degrade to defaults; a page with
	// no recognizable content container returns ENOTFOUND, the only hard
	// per-post failure.
	Extract(url string, html string) (*Post, error)
}

// BodyExtractor locates the main content of a page as raw HTML.
// Used as the last-resort body strategy when none of the ranked content
// selectors match.
type BodyExtractor interface {
	ExtractBody(html string) (string, error)
}

// BodyExtractors tries each extractor in order and returns the first
// non-empty result. The last error is returned when all of them fail.
type BodyExtractors []BodyExtractor

func (e BodyExtractors) ExtractBody(html string) (string, error) {
	var lastErr error
	for _, extractor := range e {
		body, err := extractor.ExtractBody(html)
		if err != nil {
			lastErr = err
			continue
		}
		if body != "" {
			return body, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", Errorf(ENOTFOUND, "no content node found")
}
