package main

import (
	"fmt"

	"github.com/mkrzemien/wixport"
)

// Run executes the posts command.
func (c *PostsCmd) Run(deps *Dependencies) error {
	filter := wixport.PostFilter{SortBy: wixport.SortByPosition}
	if c.Incomplete {
		incomplete := true
		filter.Incomplete = &incomplete
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts stored")
		return nil
	}

	for _, post := range posts {
		date := "no date"
		if post.PublishedAt != nil {
			date = post.PublishedAt.Format("2006-01-02")
		}
		marker := ""
		if post.Incomplete {
			marker = " [incomplete]"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s%s\n", date, post.URL, post.Title, marker)
	}
	fmt.Fprintf(deps.Stdout, "\n%d posts\n", len(posts))
	return nil
}
