package mock

import "github.com/mkrzemien/wixport"

var _ wixport.Converter = (*Converter)(nil)

// Converter is a mock implementation of wixport.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
