package main

import (
	"fmt"

	"github.com/mkrzemien/wixport"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	urls, err := deps.Discovery.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No post URLs found")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d post URLs:\n", len(urls))
	for _, u := range urls {
		fmt.Fprintf(deps.Stdout, "  %s\n", u)
	}
	return nil
}
