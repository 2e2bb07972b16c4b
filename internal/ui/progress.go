package ui

import (
	"fmt"
	"io"

	"github.com/joe/vault-map/internal/mapper"
)

// Progress prints one line per mapper event. It implements mapper.EventEmitter.
type Progress struct {
	w        io.Writer
	listings int
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Emit prints the event.
func (p *Progress) Emit(event mapper.Event) {
	switch e := event.(type) {
	case mapper.ScanComplete:
		p.printf("%s %d directories, %d files\n", RenderLabel("Scanned"), e.Directories, e.Files)
	case mapper.FileDegraded:
		p.printf("%s %s (%s)\n", RenderWarning("Degraded"), e.Path, e.Kind)
	case mapper.ListingWritten:
		p.listings++
	case mapper.IndexWritten:
		p.printf("%s %d directory listings\n", RenderSuccess("Wrote"), p.listings)
		p.printf("%s %s\n", RenderSuccess("Wrote"), e.Path)
	case mapper.SnapshotWritten:
		p.printf("%s %s\n", RenderSuccess("Wrote"), e.Path)
	}
}

// Listings returns the number of README.md files written so far.
func (p *Progress) Listings() int {
	return p.listings
}

func (p *Progress) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}
