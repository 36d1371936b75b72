// Package vector provides an in-memory vector index over embedded document chunks.
package vector

// Entry is one indexed chunk: its id, the owning document, and the chunk text
// returned on retrieval.
type Entry struct {
	ID         string
	DocumentID string
	Text       string
}

// Result is a single similarity search hit.
type Result struct {
	Entry Entry
	Score float64 // Inner product; equals cosine similarity for normalized vectors.
}
