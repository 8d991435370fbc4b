package wixport

// Converter transforms HTML content into Markdown.
// Used by the review export, not by the migration pipeline itself.
type Converter interface {
	Convert(html string) (string, error)
}
