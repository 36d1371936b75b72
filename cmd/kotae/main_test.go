package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildQuestion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"refunds"}, "refunds"},
		{"multiple words", []string{"what", "is", "the", "refund", "policy"}, "what is the refund policy"},
		{"quoted phrase", []string{"what is the refund policy"}, "what is the refund policy"},
		{"empty args", []string{}, ""},
		{"whitespace only", []string{"  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuestion(tt.args); got != tt.expected {
				t.Errorf("buildQuestion(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path loads file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 4500\n"), 0600); err != nil {
			t.Fatal(err)
		}
		cfg, resolved, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig error: %v", err)
		}
		if resolved != path {
			t.Errorf("resolved path = %q, want %q", resolved, path)
		}
		if cfg.Server.Port != 4500 {
			t.Errorf("port = %d, want 4500", cfg.Server.Port)
		}
	})

	t.Run("explicit missing path errors", func(t *testing.T) {
		if _, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("default path falls back to built-in defaults", func(t *testing.T) {
		// Run from an empty directory so no config.yaml is found.
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(t.TempDir()); err != nil {
			t.Fatal(err)
		}
		defer os.Chdir(cwd)

		cfg, resolved, err := loadConfig(defaultConfigPath)
		if err != nil {
			t.Fatalf("loadConfig error: %v", err)
		}
		if resolved != "" {
			t.Errorf("resolved path = %q, want empty for defaults", resolved)
		}
		if cfg.Server.Port != 3000 {
			t.Errorf("default port = %d, want 3000", cfg.Server.Port)
		}
	})

	t.Run("default path prefers config.yaml in cwd", func(t *testing.T) {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9100\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatal(err)
		}
		defer os.Chdir(cwd)

		cfg, resolved, err := loadConfig(defaultConfigPath)
		if err != nil {
			t.Fatalf("loadConfig error: %v", err)
		}
		if filepath.Base(resolved) != "config.yaml" {
			t.Errorf("resolved path = %q, want cwd config.yaml", resolved)
		}
		if cfg.Server.Port != 9100 {
			t.Errorf("port = %d, want 9100", cfg.Server.Port)
		}
	})
}
