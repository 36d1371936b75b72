package config

// DefaultAPIKey is a placeholder credential; inference calls made with it
// fail at call time with an auth error.
const DefaultAPIKey = "hf_your_api_key_here"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Inference.APIKey == "" {
		cfg.Inference.APIKey = DefaultAPIKey
	}
	if cfg.Inference.EmbeddingModel == "" {
		cfg.Inference.EmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if cfg.Inference.TimeoutSecs == 0 {
		cfg.Inference.TimeoutSecs = 120
	}
	if cfg.Upload.MaxSizeBytes == 0 {
		cfg.Upload.MaxSizeBytes = 10 * 1024 * 1024
	}
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 1000
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 200
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = 3
	}
}
