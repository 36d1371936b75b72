package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestModelKey_Resolve(t *testing.T) {
	if got := ModelMistral7B.Resolve(); got != "mistralai/Mistral-7B-Instruct-v0.2" {
		t.Errorf("mistral-7b resolved to %q", got)
	}
	if got := ModelKey("no-such-model").Resolve(); got != "meta-llama/Llama-3-8b-chat-hf" {
		t.Errorf("unknown key should resolve to default, got %q", got)
	}
}

func TestStyleKey_Instruction(t *testing.T) {
	if got := StyleConcise.Instruction(); got != "Provide a brief, direct answer." {
		t.Errorf("concise instruction: %q", got)
	}
	if StyleKey("weird").Instruction() != StyleBalanced.Instruction() {
		t.Error("unknown style should fall back to balanced")
	}
}

func TestSettingsPatch_Apply_partial(t *testing.T) {
	s := DefaultSettings()
	temp := 0.2
	p := SettingsPatch{Temperature: &temp}
	p.Apply(&s)
	if s.Temperature != 0.2 {
		t.Errorf("temperature: got %v", s.Temperature)
	}
	if s.Model != DefaultModel || s.ResponseStyle != DefaultStyle || s.MaxTokens != 800 {
		t.Errorf("untouched fields changed: %+v", s)
	}
}

func TestSettingsPatch_Validate(t *testing.T) {
	bad := ModelKey("gpt-99")
	if err := (&SettingsPatch{Model: &bad}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("unknown model: got %v", err)
	}
	temp := -0.1
	if err := (&SettingsPatch{Temperature: &temp}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("negative temperature: got %v", err)
	}
	tokens := 0
	if err := (&SettingsPatch{MaxTokens: &tokens}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("zero maxTokens: got %v", err)
	}
	ok := ModelGemma7B
	topTemp := 2.0
	if err := (&SettingsPatch{Model: &ok, Temperature: &topTemp}).Validate(); err != nil {
		t.Errorf("valid patch rejected: %v", err)
	}
}

func TestSettingsPatch_UnknownJSONFieldsIgnored(t *testing.T) {
	var p SettingsPatch
	if err := json.Unmarshal([]byte(`{"temperature":0.5,"bogus":true}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Temperature == nil || *p.Temperature != 0.5 {
		t.Errorf("temperature not decoded: %+v", p)
	}
	if p.Model != nil {
		t.Error("model should remain nil")
	}
}
