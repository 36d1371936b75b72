// Package config provides configuration loading and structs for the Kotae server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Inference InferenceConfig `yaml:"inference"`
	Upload    UploadConfig    `yaml:"upload"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Chat      ChatConfig      `yaml:"chat"`
	Watch     WatchConfig     `yaml:"watch"`
	Static    StaticConfig    `yaml:"static"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// InferenceConfig holds settings for the hosted inference API used for both
// embeddings and text generation.
type InferenceConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	EmbeddingModel string `yaml:"embedding_model"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

// ChunkingConfig holds text splitting settings.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// ChatConfig holds retrieval settings for question answering.
type ChatConfig struct {
	TopK int `yaml:"top_k"`
}

// WatchConfig holds the optional drop-directory auto-ingest settings.
// An empty directory disables watching.
type WatchConfig struct {
	Directory string `yaml:"directory"`
}

// StaticConfig holds the optional static file directory served at /.
type StaticConfig struct {
	Directory string `yaml:"directory"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with all defaults applied, for running without a file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyEnv overrides config values from the environment: PORT for the listen
// port and HUGGINGFACE_API_KEY for the inference credential.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		cfg.Inference.APIKey = v
	}
}
