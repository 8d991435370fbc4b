package migrate

import (
	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/bloom"
)

// Sizing for the discovery URL set. A blog archive is small; the Bloom
// filter mostly serves as a cheap pre-check when listing pages repeat the
// same links across pagination and scroll passes.
const (
	urlSetExpectedURLs      = 10000
	urlSetFalsePositiveRate = 0.01
)

// urlSet is an ordered set of normalized URLs. Membership is pre-checked
// against a Bloom filter and confirmed against an exact map, so false
// positives never drop a URL. First-seen order is preserved.
type urlSet struct {
	filter *bloom.Filter
	exact  map[string]bool
	urls   []string
}

func newURLSet() *urlSet {
	return &urlSet{
		filter: bloom.NewFilter(urlSetExpectedURLs, urlSetFalsePositiveRate),
		exact:  make(map[string]bool),
	}
}

// Add inserts the URL after normalization. It reports whether the URL was
// new to the set.
func (s *urlSet) Add(rawURL string) bool {
	u := wixport.NormalizeURL(rawURL)
	if s.filter.Test(u) && s.exact[u] {
		return false
	}
	s.filter.Add(u)
	s.exact[u] = true
	s.urls = append(s.urls, u)
	return true
}

// URLs returns the set contents in first-seen order.
func (s *urlSet) URLs() []string {
	return s.urls
}

// Len returns the number of URLs in the set.
func (s *urlSet) Len() int {
	return len(s.urls)
}
