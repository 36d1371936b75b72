// Package trainer orchestrates document ingestion: extract, split, embed, commit.
package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/splitter"
	"github.com/hyperjump/kotae/internal/store"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// ExtractFunc turns uploaded bytes into text and a page count.
type ExtractFunc func(content []byte) (*extract.Result, error)

// Trainer ingests uploaded documents into the store and vector index.
type Trainer struct {
	store    *store.Store
	embedder embedding.Embedder
	splitter *splitter.Splitter
	extract  ExtractFunc
	logger   *zap.Logger // optional; when set, logs ingest progress
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) TrainerOption {
	return func(t *Trainer) { t.logger = l }
}

// NewTrainer creates a trainer with the given dependencies.
// extractFn may be nil; extract.FromPDF is used then.
func NewTrainer(st *store.Store, embedder embedding.Embedder, split *splitter.Splitter, extractFn ExtractFunc, opts ...TrainerOption) *Trainer {
	if extractFn == nil {
		extractFn = extract.FromPDF
	}
	t := &Trainer{store: st, embedder: embedder, splitter: split, extract: extractFn}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result reports what a successful ingestion produced.
type Result struct {
	DocumentID string
	Chunks     int
	Pages      int
}

// Train ingests one PDF: merges the optional settings patch, extracts text,
// splits it, embeds every chunk, and commits record plus vectors in one step.
// Embedding is fully staged before anything touches shared state, so a
// failure anywhere leaves the store and index exactly as they were.
func (t *Trainer) Train(ctx context.Context, filename string, content []byte, patch *models.SettingsPatch) (*Result, error) {
	if patch != nil {
		if _, err := t.store.MergeSettings(patch); err != nil {
			return nil, err
		}
	}

	extracted, err := t.extract(content)
	if err != nil {
		return nil, err
	}
	if t.logger != nil {
		t.logger.Debug("extracted document",
			zap.String("name", filename),
			zap.Int("pages", extracted.Pages),
			zap.Int("characters", len(extracted.Text)),
		)
	}

	chunks := t.splitter.Split(extracted.Text)
	if len(chunks) == 0 {
		chunks = []string{extracted.Text}
	}

	vectors, err := t.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	docID := uuid.New().String()
	entries := make([]vector.Entry, len(chunks))
	for i, text := range chunks {
		entries[i] = vector.Entry{
			ID:         fmt.Sprintf("%s_%d", docID, i),
			DocumentID: docID,
			Text:       text,
		}
	}
	record := models.DocumentRecord{
		ID:         docID,
		Name:       filename,
		UploadedAt: time.Now().UTC(),
		Chunks:     len(chunks),
		Pages:      extracted.Pages,
		Size:       int64(len(content)),
	}
	if err := t.store.CommitIngest(ctx, record, entries, vectors); err != nil {
		return nil, err
	}
	if t.logger != nil {
		t.logger.Info("document trained",
			zap.String("id", docID),
			zap.String("name", filename),
			zap.Int("chunks", len(chunks)),
			zap.Int("pages", extracted.Pages),
		)
	}
	return &Result{DocumentID: docID, Chunks: len(chunks), Pages: extracted.Pages}, nil
}
