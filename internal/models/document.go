// Package models defines core data structures for documents, settings, and chat.
package models

import "time"

// DocumentRecord is the metadata kept for one ingested document.
// Records are created on successful ingestion and removed on delete,
// never mutated otherwise.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
	Chunks     int       `json:"chunks"`
	Pages      int       `json:"pages"`
	Size       int64     `json:"size"`
}

// Chunk is a transient text segment produced by the splitter, consumed
// immediately by embedding and indexing.
type Chunk struct {
	Text       string
	DocumentID string
	Index      int
}
