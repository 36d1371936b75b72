package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hyperjump/kotae/internal/hfapi"
)

// HFClient embeds text via the HuggingFace feature-extraction pipeline.
// Vectors come back L2-normalized so inner product equals cosine similarity.
type HFClient struct {
	api   *hfapi.Client
	model string

	mu         sync.Mutex
	dimensions int // learned from the first successful embed
}

// NewHFClient creates an embedder using the given API client and model identifier.
func NewHFClient(api *hfapi.Client, model string) *HFClient {
	return &HFClient{api: api, model: model}
}

type embedRequest struct {
	Inputs  []string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// Embed returns a normalized embedding for a single text.
func (c *HFClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in one API call.
func (c *HFClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	req := embedRequest{Inputs: texts}
	req.Options.WaitForModel = true
	body, err := c.api.Post(ctx, "/pipeline/feature-extraction/"+c.model, req)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	var vecs [][]float32
	if err := json.Unmarshal(body, &vecs); err != nil {
		return nil, fmt.Errorf("embed: decode response: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(vecs), len(texts))
	}
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, errors.New("embed: empty vector in response")
		}
		normalize(v)
		vecs[i] = v
	}
	c.mu.Lock()
	if c.dimensions == 0 {
		c.dimensions = len(vecs[0])
	}
	c.mu.Unlock()
	return vecs, nil
}

// Dimensions returns the embedding dimension, or 0 before the first embed.
func (c *HFClient) Dimensions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dimensions
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x * x)
	}
	if sum <= 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= norm
	}
}
