package llm

import "context"

// MockGenerator is a canned-answer generator for tests. It records the last
// call so tests can assert on the prompt and options that reached it.
type MockGenerator struct {
	Answer string
	Err    error

	LastPrompt   string
	LastContexts []string
	LastOptions  Options
	Calls        int
}

// Generate returns the canned answer or error.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, contexts []string, opts Options) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastContexts = contexts
	m.LastOptions = opts
	if m.Err != nil {
		return "", m.Err
	}
	if m.Answer == "" {
		return "mock answer", nil
	}
	return m.Answer, nil
}
