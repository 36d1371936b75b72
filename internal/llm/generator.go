// Package llm provides text generation via the hosted inference API.
package llm

import "context"

// Options parameterize a single generation call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Generator produces an answer for a prompt given retrieved context passages.
type Generator interface {
	Generate(ctx context.Context, prompt string, contexts []string, opts Options) (string, error)
}
