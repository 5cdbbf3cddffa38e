package domain

import "time"

// Parecer is the closing opinion linked 1:1 to the process it closes.
// It is only ever created by archiving a process.
type Parecer struct {
	ID        string
	ProcessID string
	Text      string
	EmittedAt time.Time
	AuthorID  string

	// The fields below are empty when no PDF was supplied.
	Filename string
	Size     int64
	Checksum string
	BlobKey  string
}

// HasPDF reports whether a PDF copy was stored.
func (p *Parecer) HasPDF() bool {
	return p.BlobKey != ""
}

// ArchiveRequest carries the closing opinion for an archive call.
type ArchiveRequest struct {
	ParecerText string

	// PDF is optional.
	PDF *Upload
}
