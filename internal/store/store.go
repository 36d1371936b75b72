// Package store owns the service's in-memory state: the ordered document
// records, the process-wide settings, and the vector index handle. All three
// are guarded by one lock so a reader never observes a document record
// without its vectors or vice versa.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
)

// ErrNotFound is returned for operations on unknown document ids.
var ErrNotFound = errors.New("document not found")

// Store holds all mutable service state. Nothing is persisted; a restart
// loses every document, which is the documented behavior.
type Store struct {
	mu       sync.RWMutex
	docs     []models.DocumentRecord
	settings models.Settings
	index    *vector.MemoryIndex // nil until the first successful ingest
}

// New creates an empty store with default settings.
func New() *Store {
	return &Store{settings: models.DefaultSettings()}
}

// Documents returns the document records in insertion order.
func (s *Store) Documents() []models.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DocumentRecord, len(s.docs))
	copy(out, s.docs)
	return out
}

// Stats returns the document count, total chunk count, and the upload time
// of the most recently added document (nil when the store is empty).
func (s *Store) Stats() (totalDocuments, totalChunks int, lastUpdated *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs {
		totalChunks += d.Chunks
	}
	if n := len(s.docs); n > 0 {
		t := s.docs[n-1].UploadedAt
		lastUpdated = &t
	}
	return len(s.docs), totalChunks, lastUpdated
}

// Settings returns the current settings record.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// MergeSettings validates the patch and merges it into the current settings,
// overwriting only the fields present. Returns the merged record.
func (s *Store) MergeSettings(patch *models.SettingsPatch) (models.Settings, error) {
	if err := patch.Validate(); err != nil {
		return models.Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.Apply(&s.settings)
	return s.settings, nil
}

// Index returns the vector index handle, or nil when nothing is ingested.
func (s *Store) Index() *vector.MemoryIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// CommitIngest makes a trained document visible: it creates the index on
// first ingest, appends the staged vectors, and appends the document record,
// all under one lock. Embedding happens before this call, so a failure there
// never leaves orphaned vectors or a record without vectors.
func (s *Store) CommitIngest(ctx context.Context, record models.DocumentRecord, entries []vector.Entry, vectors [][]float32) error {
	if len(entries) == 0 || len(entries) != len(vectors) {
		return fmt.Errorf("staged entries and vectors mismatch: %d entries, %d vectors", len(entries), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.index
	if idx == nil {
		var err error
		idx, err = vector.NewMemoryIndex(len(vectors[0]))
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	if err := idx.Add(ctx, entries, vectors); err != nil {
		return fmt.Errorf("index vectors: %w", err)
	}
	s.index = idx
	s.docs = append(s.docs, record)
	return nil
}

// Delete removes the record with the given id together with its vectors.
// When the last document goes, the index handle is discarded entirely.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := -1
	for i, d := range s.docs {
		if d.ID == id {
			at = i
			break
		}
	}
	if at == -1 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.docs = append(s.docs[:at], s.docs[at+1:]...)
	if len(s.docs) == 0 {
		s.index = nil
		return nil
	}
	if s.index != nil {
		if err := s.index.RemoveDocument(ctx, id); err != nil {
			return fmt.Errorf("remove vectors: %w", err)
		}
	}
	return nil
}
