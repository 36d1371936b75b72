package extract

import (
	"errors"
	"testing"
)

func TestFromPDF_malformed(t *testing.T) {
	_, err := FromPDF([]byte("this is not a pdf"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestFromPDF_empty(t *testing.T) {
	_, err := FromPDF(nil)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for empty input, got %v", err)
	}
}

func TestFromPDF_truncatedHeader(t *testing.T) {
	// Valid magic but nothing behind it.
	_, err := FromPDF([]byte("%PDF-1.4\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestLooksLikePDF(t *testing.T) {
	if !LooksLikePDF([]byte("%PDF-1.7 rest")) {
		t.Error("PDF header should be recognized")
	}
	if LooksLikePDF([]byte("PK\x03\x04")) {
		t.Error("zip header should not be recognized as PDF")
	}
	if LooksLikePDF(nil) {
		t.Error("empty content should not be recognized as PDF")
	}
}
