package wixport

import "io"

// Archive is the final ordered collection of posts for one migration run.
type Archive struct {
	// Title and Link describe the source site in the output channel.
	Title string
	Link  string

	// Description is free-form channel text.
	Description string

	// Posts in discovery order. Every post with a non-empty URL is
	// written; posts with an empty body get an explicit empty-content
	// marker rather than being omitted.
	Posts []*Post
}

// ArchiveWriter serializes an archive into a target import format.
type ArchiveWriter interface {
	WriteArchive(w io.Writer, archive *Archive) error
}
