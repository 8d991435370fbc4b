package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/etree"
	"github.com/mkrzemien/wixport/goquery"
	"github.com/mkrzemien/wixport/html"
	"github.com/mkrzemien/wixport/htmltomarkdown"
	wixhttp "github.com/mkrzemien/wixport/http"
	"github.com/mkrzemien/wixport/migrate"
	"github.com/mkrzemien/wixport/readability"
	"github.com/mkrzemien/wixport/rod"
	wixslog "github.com/mkrzemien/wixport/slog"
	"github.com/mkrzemien/wixport/sqlite"
	"github.com/mkrzemien/wixport/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// PostService for end-to-end testing.
	PostService wixport.PostService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wixport"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wixport --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WIXPORT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PostService = sqlite.NewPostService(m.DB)
	deps.Posts = m.PostService
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Archiver = etree.NewArchiveWriter()

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Fetch-dependent wiring only for commands that hit the network.
	if cmd == "migrate" || cmd == "preview" {
		staticOnly := cli.Migrate.StaticOnly || cli.Preview.StaticOnly
		maxPages := cli.Migrate.MaxPages
		if cmd == "preview" {
			maxPages = cli.Preview.MaxPages
		}

		fetcher := newFetcher(staticOnly, stderr)
		defer fetcher.Close()
		if cli.Verbose {
			fetcher = wixslog.NewLoggingFetcher(fetcher, logger)
		}

		limiter := migrate.NewDomainLimiter(cli.Migrate.Rate)

		var discovery wixport.URLSource = &fallbackSource{
			primary: &migrate.Discoverer{
				Fetcher:     fetcher,
				MaxPages:    maxPages,
				RateLimiter: limiter,
			},
			secondary: wixhttp.NewSitemapSource(nil),
		}
		if cli.Verbose {
			discovery = wixslog.NewLoggingURLSource(discovery, logger)
		}
		deps.Discovery = discovery

		if cmd == "migrate" {
			extractor := goquery.NewExtractor()
			extractor.Fallback = wixport.BodyExtractors{
				trafilatura.NewExtractor(),
				readability.NewExtractor(),
			}

			deps.Migrator = &migrate.Migrator{
				Discovery:   discovery,
				Fetcher:     fetcher,
				Extractor:   extractor,
				Normalizer:  html.NewNormalizer(),
				Posts:       deps.Posts,
				RateLimiter: limiter,
			}
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher starts a headless browser fetcher, degrading to plain HTTP
// when no browser is available. The degradation is reported once: without
// script execution, lazy-loaded listing entries may be missed.
func newFetcher(staticOnly bool, stderr io.Writer) wixport.Fetcher {
	if staticOnly {
		return wixhttp.NewFetcher()
	}

	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintf(stderr, "browser unavailable (%s), fetching without script rendering; lazy-loaded posts may be missed\n",
			wixport.ErrorMessage(err))
		return wixhttp.NewFetcher()
	}
	return fetcher
}

// fallbackSource tries listing-page discovery first and falls back to the
// site's sitemap when the listing pages yield nothing.
type fallbackSource struct {
	primary   wixport.URLSource
	secondary wixport.URLSource
}

func (s *fallbackSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	urls, err := s.primary.Discover(ctx, baseURL)
	if err != nil || len(urls) > 0 {
		return urls, err
	}
	return s.secondary.Discover(ctx, baseURL)
}

func defaultDBPath() string {
	if path := os.Getenv("WIXPORT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wixport.db"
	}
	dir := filepath.Join(home, ".wixport")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wixport.db")
}
