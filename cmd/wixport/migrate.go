package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/migrate"
)

// Run executes the migrate command.
func (c *MigrateCmd) Run(deps *Dependencies) error {
	baseURL := strings.TrimSpace(c.URL)
	if baseURL == "" {
		var err error
		baseURL, err = promptURL(deps)
		if err != nil {
			return err
		}
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	progress := func(event migrate.ProgressEvent) {
		switch event.Type {
		case migrate.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d posts\n", event.Total)
		case migrate.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, migrate.TruncateURL(event.URL, 70))
		case migrate.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (already stored)\n", event.Completed, event.Total, migrate.TruncateURL(event.URL, 70))
		case migrate.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %v\n", event.Completed, event.Total, migrate.TruncateURL(event.URL, 70), event.Error)
		}
	}

	result, err := deps.Migrator.Run(deps.Ctx, baseURL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nDiscovered %d, saved %d, skipped %d, failed %d\n",
		result.Discovered, result.Saved, result.Skipped, result.Failed)
	if len(result.FailedURLs) > 0 {
		fmt.Fprintln(deps.Stdout, "Failed URLs:")
		for _, u := range result.FailedURLs {
			fmt.Fprintf(deps.Stdout, "  %s\n", u)
		}
	}

	if c.Out != "" {
		if err := writeWXRFile(deps, c.Out, "Wix Blog Archive", baseURL); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Out)
	}

	return nil
}

// promptURL asks for the blog URL interactively when no argument was given.
func promptURL(deps *Dependencies) (string, error) {
	fmt.Fprint(deps.Stdout, "Blog URL: ")
	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", wixport.Errorf(wixport.EINVALID, "no URL provided")
	}
	baseURL := strings.TrimSpace(scanner.Text())
	if baseURL == "" {
		return "", wixport.Errorf(wixport.EINVALID, "no URL provided")
	}
	return baseURL, nil
}

// writeWXRFile exports all stored posts as a WXR document at path.
func writeWXRFile(deps *Dependencies, path, title, link string) error {
	posts, err := deps.Posts.FindPosts(deps.Ctx, wixport.PostFilter{SortBy: wixport.SortByPosition})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	archive := &wixport.Archive{
		Title:       title,
		Link:        link,
		Description: "Blog archive migrated from Wix",
		Posts:       posts,
	}
	return deps.Archiver.WriteArchive(f, archive)
}
