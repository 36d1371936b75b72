package models

import "fmt"

// ModelKey identifies one of the supported chat models.
type ModelKey string

// Supported model keys.
const (
	ModelMistral7B   ModelKey = "mistral-7b"
	ModelLlama38B    ModelKey = "llama-3-8b"
	ModelLlama370B   ModelKey = "llama-3-70b"
	ModelMixtral8x7B ModelKey = "mixtral-8x7b"
	ModelGemma7B     ModelKey = "gemma-7b"
)

// DefaultModel is used when settings hold an unknown model key.
const DefaultModel = ModelLlama38B

var modelIDs = map[ModelKey]string{
	ModelMistral7B:   "mistralai/Mistral-7B-Instruct-v0.2",
	ModelLlama38B:    "meta-llama/Llama-3-8b-chat-hf",
	ModelLlama370B:   "meta-llama/Llama-3-70b-chat-hf",
	ModelMixtral8x7B: "mistralai/Mixtral-8x7B-Instruct-v0.1",
	ModelGemma7B:     "google/gemma-7b-it",
}

// Valid reports whether k is a supported model key.
func (k ModelKey) Valid() bool {
	_, ok := modelIDs[k]
	return ok
}

// Resolve returns the hosted model identifier for k, falling back to the
// default model for unknown keys.
func (k ModelKey) Resolve() string {
	if id, ok := modelIDs[k]; ok {
		return id
	}
	return modelIDs[DefaultModel]
}

// StyleKey identifies one of the supported response styles.
type StyleKey string

// Supported response styles.
const (
	StyleConcise  StyleKey = "concise"
	StyleBalanced StyleKey = "balanced"
	StyleDetailed StyleKey = "detailed"
	StyleExpert   StyleKey = "expert"
)

// DefaultStyle is used when settings hold an unknown style key.
const DefaultStyle = StyleBalanced

var stylePrompts = map[StyleKey]string{
	StyleConcise:  "Provide a brief, direct answer.",
	StyleBalanced: "Provide a clear and informative answer with relevant details.",
	StyleDetailed: "Provide a comprehensive, detailed answer with examples and explanations.",
	StyleExpert:   "Provide an expert-level, in-depth analysis with technical details and context.",
}

// Valid reports whether k is a supported style key.
func (k StyleKey) Valid() bool {
	_, ok := stylePrompts[k]
	return ok
}

// Instruction returns the prompt instruction for k, falling back to the
// default style for unknown keys.
func (k StyleKey) Instruction() string {
	if p, ok := stylePrompts[k]; ok {
		return p
	}
	return stylePrompts[DefaultStyle]
}

// Settings is the single process-wide configuration record controlling
// which model and style parameters downstream inference calls use.
type Settings struct {
	Model         ModelKey `json:"model"`
	ResponseStyle StyleKey `json:"responseStyle"`
	Temperature   float64  `json:"temperature"`
	MaxTokens     int      `json:"maxTokens"`
}

// DefaultSettings returns the initial settings record.
func DefaultSettings() Settings {
	return Settings{
		Model:         DefaultModel,
		ResponseStyle: DefaultStyle,
		Temperature:   0.7,
		MaxTokens:     800,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged
// by the merge; unknown JSON fields are ignored.
type SettingsPatch struct {
	Model         *ModelKey `json:"model,omitempty"`
	ResponseStyle *StyleKey `json:"responseStyle,omitempty"`
	Temperature   *float64  `json:"temperature,omitempty"`
	MaxTokens     *int      `json:"maxTokens,omitempty"`
}

// Validate checks the patch fields that are present.
func (p *SettingsPatch) Validate() error {
	if p.Model != nil && !p.Model.Valid() {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidSettings, *p.Model)
	}
	if p.ResponseStyle != nil && !p.ResponseStyle.Valid() {
		return fmt.Errorf("%w: unknown response style %q", ErrInvalidSettings, *p.ResponseStyle)
	}
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 2) {
		return fmt.Errorf("%w: temperature %v out of range [0, 2]", ErrInvalidSettings, *p.Temperature)
	}
	if p.MaxTokens != nil && *p.MaxTokens <= 0 {
		return fmt.Errorf("%w: maxTokens must be positive", ErrInvalidSettings)
	}
	return nil
}

// Apply merges the patch into s, overwriting only the fields present.
func (p *SettingsPatch) Apply(s *Settings) {
	if p.Model != nil {
		s.Model = *p.Model
	}
	if p.ResponseStyle != nil {
		s.ResponseStyle = *p.ResponseStyle
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
}
