package mock

import "github.com/mkrzemien/wixport"

var _ wixport.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of wixport.Normalizer.
type Normalizer struct {
	NormalizeFn func(rawHTML string) (string, error)
}

func (n *Normalizer) Normalize(rawHTML string) (string, error) {
	return n.NormalizeFn(rawHTML)
}
