// Package chat orchestrates question answering over ingested documents.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/store"
	"go.uber.org/zap"
)

// ErrEmptyQuestion is returned when the question is missing or blank.
var ErrEmptyQuestion = errors.New("question is required")

// ErrNoDocuments is returned when asking before any document was ingested.
var ErrNoDocuments = errors.New("no documents trained yet")

// Answer is a generated response with the settings that produced it.
type Answer struct {
	Text  string
	Model string
	Style string
}

// Engine answers questions by retrieving the most similar chunks and
// forwarding them with a styled prompt to the hosted model.
type Engine struct {
	store     *store.Store
	embedder  embedding.Embedder
	generator llm.Generator
	topK      int
	logger    *zap.Logger // optional
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine retrieving topK chunks per question.
func NewEngine(st *store.Store, embedder embedding.Embedder, generator llm.Generator, topK int, opts ...EngineOption) *Engine {
	if topK <= 0 {
		topK = 3
	}
	e := &Engine{store: st, embedder: embedder, generator: generator, topK: topK}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ask answers a free-text question from the ingested documents.
// Collaborator failures (embedding, retrieval, generation) are propagated
// with their cause preserved; no retry is attempted.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	idx := e.store.Index()
	if idx == nil {
		return nil, ErrNoDocuments
	}
	settings := e.store.Settings()

	queryVec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	results, err := idx.Search(ctx, queryVec, e.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Entry.Text
	}
	if e.logger != nil {
		e.logger.Debug("retrieved context", zap.Int("chunks", len(contexts)), zap.String("question", question))
	}

	prompt := settings.ResponseStyle.Instruction() + "\n\nQuestion: " + question
	text, err := e.generator.Generate(ctx, prompt, contexts, llm.Options{
		Model:       settings.Model.Resolve(),
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Answer{
		Text:  text,
		Model: string(settings.Model),
		Style: string(settings.ResponseStyle),
	}, nil
}
