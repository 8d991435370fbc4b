package mock

import (
	"io"

	"github.com/mkrzemien/wixport"
)

var _ wixport.ArchiveWriter = (*ArchiveWriter)(nil)

// ArchiveWriter is a mock implementation of wixport.ArchiveWriter.
type ArchiveWriter struct {
	WriteArchiveFn func(w io.Writer, archive *wixport.Archive) error
}

func (a *ArchiveWriter) WriteArchive(w io.Writer, archive *wixport.Archive) error {
	return a.WriteArchiveFn(w, archive)
}
