package wixport

// Normalizer rewrites raw Wix body markup into clean, portable HTML.
//
// Normalization only deletes and flattens: it strips platform attributes,
// collapses redundant wrapper containers, and removes empty inline
// elements, but never invents or rearranges content. Implementations must
// be pure and idempotent: Normalize(Normalize(x)) == Normalize(x), and the
// output is always a well-formed fragment.
type Normalizer interface {
	Normalize(rawHTML string) (string, error)
}
