package main

import (
	"fmt"
	"net/url"

	"github.com/mkrzemien/wixport"
	"github.com/mkrzemien/wixport/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	posts, err := deps.Posts.FindPosts(deps.Ctx, wixport.PostFilter{SortBy: wixport.SortByPosition})
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return wixport.Errorf(wixport.ENOTFOUND, "no posts stored; run 'wixport migrate' first")
	}

	switch c.Format {
	case "wxr":
		out := c.Out
		if out == "" {
			out = "wix-export.xml"
		}
		if err := writeWXRFile(deps, out, c.Title, archiveLink(posts)); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d posts to %s\n", len(posts), out)

	case "markdown":
		out := c.Out
		if out == "" {
			out = "posts"
		}
		writer := fs.NewWriter(out, deps.Converter)
		if err := writer.WritePosts(posts); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d posts to %s/\n", len(posts), out)

	case "json":
		out := c.Out
		if out == "" {
			out = "posts.json"
		}
		if err := fs.WriteRecords(out, posts); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d posts to %s\n", len(posts), out)
	}

	return nil
}

// archiveLink derives the channel link from the first post's site.
func archiveLink(posts []*wixport.Post) string {
	for _, post := range posts {
		u, err := url.Parse(post.URL)
		if err != nil || u.Host == "" {
			continue
		}
		return u.Scheme + "://" + u.Host
	}
	return ""
}
