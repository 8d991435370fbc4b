// Package rod fetches rendered page HTML through a headless Chrome
// browser, including content Wix only attaches after scripts run.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mkrzemien/wixport"
)

// Ensure Fetcher implements wixport.Fetcher at compile time.
var _ wixport.Fetcher = (*Fetcher)(nil)

// Default lazy-load scroll behavior. Wix listing pages append older posts
// as the viewport approaches the bottom, so a handful of scroll passes
// with a settle delay is enough to surface the full archive.
const (
	DefaultScrollIterations = 5
	DefaultScrollDelay      = 500 * time.Millisecond
)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// After the load event it scrolls to the bottom of the page a few times,
// clicking any visible "load more" style button between passes, so
// lazy-loaded listing entries are present in the returned markup.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser          *rod.Browser
	launcher         *launcher.Launcher
	scrollIterations int
	scrollDelay      time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithScrollIterations sets how many scroll-to-bottom passes run after
// page load. Zero disables scrolling.
func WithScrollIterations(n int) Option {
	return func(f *Fetcher) {
		f.scrollIterations = n
	}
}

// WithScrollDelay sets the settle time between scroll passes.
func WithScrollDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.scrollDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns EUNAVAILABLE if Chrome/Chromium cannot be found or launched, so
// callers can degrade to a static HTTP fetch.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, wixport.Errorf(wixport.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, wixport.Errorf(wixport.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	f := &Fetcher{
		browser:          browser,
		launcher:         l,
		scrollIterations: DefaultScrollIterations,
		scrollDelay:      DefaultScrollDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL, waits for the load event, runs the scroll
// passes and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if err := f.scrollToBottom(ctx, page); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// scrollToBottom triggers lazy loading by scrolling to the page bottom and
// waiting for new entries to attach, repeating scrollIterations times.
// Wix feeds that paginate with a button instead of infinite scroll get a
// click on the first visible load/more/show button each pass.
func (f *Fetcher) scrollToBottom(ctx context.Context, page *rod.Page) error {
	for i := 0; i < f.scrollIterations; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}
		if _, err := page.Eval(clickLoadMoreJS); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.scrollDelay):
		}
	}
	return nil
}

// clickLoadMoreJS clicks the first visible button whose text suggests it
// loads more entries. Returns whether a button was clicked.
const clickLoadMoreJS = `() => {
	const words = ['more', 'load', 'show'];
	for (const button of document.querySelectorAll('button')) {
		const text = (button.textContent || '').trim().toLowerCase();
		if (!text || !words.some(w => text.includes(w))) continue;
		const rect = button.getBoundingClientRect();
		if (rect.width === 0 || rect.height === 0) continue;
		button.click();
		return true;
	}
	return false;
}`

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
