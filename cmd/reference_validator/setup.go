package main

import (
	"context"
	"fmt"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/embedding"
	"github.com/hrkey/reference-validator/internal/pipeline"
)

// loadConfig merges the optional config file, environment variables and
// built-in defaults, in that order of precedence.
func loadConfig(path string) (config.Config, error) {
	cfg := config.FromEnv()

	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:              8080,
		EmbeddingProvider: "offline",
		Thresholds:        config.DefaultThresholds(),
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildValidator wires the embedding provider and pipeline from config.
func buildValidator(ctx context.Context, cfg config.Config) (*pipeline.Validator, error) {
	var provider embedding.Provider
	switch cfg.EmbeddingProvider {
	case "gemini":
		p, err := embedding.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		provider = p
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel)
	case "offline", "":
		provider = nil // generator falls back to offline-deterministic
	}

	return pipeline.New(cfg.Thresholds, embedding.NewGenerator(provider), nil), nil
}
