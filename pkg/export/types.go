// Package export renders a submission as a printable HTML page and turns it
// into a PDF with headless Chrome.
package export

import "errors"

type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrPDFDependencyMissing means no Chrome or Chromium binary was found.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)
