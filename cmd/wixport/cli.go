package main

import (
	"context"
	"io"

	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/migrate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Posts     wixport.PostService
	Discovery wixport.URLSource
	Migrator  *migrate.Migrator
	Converter wixport.Converter
	Archiver  wixport.ArchiveWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Migrate MigrateCmd `cmd:"" help:"Discover and migrate a Wix blog into the local store"`
	Preview PreviewCmd `cmd:"" help:"Show discovered post URLs without migrating"`
	Posts   PostsCmd   `cmd:"" help:"List stored posts"`
	Export  ExportCmd  `cmd:"" help:"Export stored posts without re-fetching"`

	DB      string `help:"Database path" env:"WIXPORT_DB"`
	Verbose bool   `short:"v" help:"Log fetch and discovery details"`
}

// MigrateCmd is the "migrate" subcommand.
type MigrateCmd struct {
	URL        string  `arg:"" optional:"" help:"Blog base URL (prompted for when omitted)"`
	StaticOnly bool    `help:"Fetch with plain HTTP instead of a headless browser"`
	MaxPages   int     `default:"20" help:"Pagination cap per listing page"`
	Rate       float64 `default:"1" help:"Max requests per second to the source site"`
	Out        string  `short:"o" help:"Also write a WordPress WXR file after the run"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL        string `arg:"" help:"Blog base URL"`
	StaticOnly bool   `help:"Fetch with plain HTTP instead of a headless browser"`
	MaxPages   int    `default:"20" help:"Pagination cap per listing page"`
}

// PostsCmd is the "posts" subcommand.
type PostsCmd struct {
	Incomplete bool `help:"Show only posts flagged incomplete"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Format string `default:"wxr" enum:"wxr,markdown,json" help:"Output format"`
	Out    string `short:"o" help:"Output path (file for wxr/json, directory for markdown)"`
	Title  string `default:"Wix Blog Archive" help:"Channel title for the WXR output"`
}
