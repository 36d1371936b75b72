package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/hfapi"
)

const contextPreamble = "Use the following pieces of context to answer the question at the end. " +
	"If you don't know the answer, just say that you don't know, don't try to make up an answer."

// HFClient generates text with a hosted chat model.
type HFClient struct {
	api *hfapi.Client
}

// NewHFClient creates a generator using the given API client.
func NewHFClient(api *hfapi.Client) *HFClient {
	return &HFClient{api: api}
}

type generateRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		Temperature    float64 `json:"temperature"`
		MaxNewTokens   int     `json:"max_new_tokens"`
		ReturnFullText bool    `json:"return_full_text"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// Generate folds the retrieved context passages into the model input and
// returns the generated answer text.
func (c *HFClient) Generate(ctx context.Context, prompt string, contexts []string, opts Options) (string, error) {
	var b strings.Builder
	if len(contexts) > 0 {
		b.WriteString(contextPreamble)
		b.WriteString("\n\n")
		b.WriteString(strings.Join(contexts, "\n\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(prompt)

	req := generateRequest{Inputs: b.String()}
	req.Parameters.Temperature = opts.Temperature
	req.Parameters.MaxNewTokens = opts.MaxTokens
	req.Options.WaitForModel = true

	body, err := c.api.Post(ctx, "/models/"+opts.Model, req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("generate: decode response: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("generate: empty response")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
