// Package extract provides text extraction from uploaded PDF documents.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrMalformed marks documents that could not be parsed.
var ErrMalformed = errors.New("failed to parse PDF")

// Result holds the extracted text and page count of a document.
type Result struct {
	Text  string
	Pages int
}

// FromPDF extracts plain text and the page count from PDF content.
// Malformed or empty input returns an error wrapping ErrMalformed with the
// underlying cause attached.
func FromPDF(content []byte) (*Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 0; i < numPages; i++ {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrMalformed, i+1, err)
		}
		buf.WriteString(text)
		if i < numPages-1 {
			buf.WriteByte('\n')
		}
	}
	if strings.TrimSpace(buf.String()) == "" {
		return nil, fmt.Errorf("%w: no extractable text", ErrMalformed)
	}
	return &Result{Text: buf.String(), Pages: numPages}, nil
}

// LooksLikePDF reports whether content starts with the PDF magic header.
// Used to reject non-PDF uploads before any extraction work happens.
func LooksLikePDF(content []byte) bool {
	return bytes.HasPrefix(content, []byte("%PDF-"))
}
