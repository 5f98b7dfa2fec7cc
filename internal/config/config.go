// Package config provides configuration loading and validation for the validator.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Thresholds holds every tunable constant of the validation pipeline. They
// are injected at construction time so tests can vary them without touching
// package globals.
type Thresholds struct {
	// Standardizer gate
	MinNarrativeLength int `json:"min_narrative_length,omitempty"` // 20

	// Consistency checker
	MaxToleratedStdDev   float64 `json:"max_tolerated_std_dev,omitempty"`   // 1.5
	DeviationCap         float64 `json:"deviation_cap,omitempty"`           // 2.0
	KPIWeight            float64 `json:"kpi_weight,omitempty"`              // 0.6
	SemanticWeight       float64 `json:"semantic_weight,omitempty"`         // 0.4
	LowConsistencyFlagAt float64 `json:"low_consistency_flag_at,omitempty"` // 0.6

	// Status classification
	HighRiskRejectAbove     float64 `json:"high_risk_reject_above,omitempty"`    // 70
	ElevatedRiskWarnAbove   float64 `json:"elevated_risk_warn_above,omitempty"`  // 40
	InconsistentRejectBelow float64 `json:"inconsistent_reject_below,omitempty"` // 0.4
	InconsistentWarnBelow   float64 `json:"inconsistent_warn_below,omitempty"`   // 0.6
	MaxWarningFlags         int     `json:"max_warning_flags,omitempty"`         // 2
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinNarrativeLength:      20,
		MaxToleratedStdDev:      1.5,
		DeviationCap:            2.0,
		KPIWeight:               0.6,
		SemanticWeight:          0.4,
		LowConsistencyFlagAt:    0.6,
		HighRiskRejectAbove:     70,
		ElevatedRiskWarnAbove:   40,
		InconsistentRejectBelow: 0.4,
		InconsistentWarnBelow:   0.6,
		MaxWarningFlags:         2,
	}
}

// Config represents the validator configuration that can be loaded from a
// JSON file, with environment variables filling the gaps.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the history store

	// Embedding provider: "gemini", "ollama" or "offline"
	EmbeddingProvider string `json:"embedding_provider,omitempty"`
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`
	GeminiModel       string `json:"gemini_model,omitempty"`
	OllamaURL         string `json:"ollama_url,omitempty"`
	OllamaModel       string `json:"ollama_model,omitempty"`

	// Behavior
	Verbose    bool       `json:"verbose,omitempty"`
	Thresholds Thresholds `json:"thresholds,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// the zero value in place so MergeWithDefaults can fill them later.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		EmbeddingProvider: os.Getenv("EMBEDDING_PROVIDER"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_EMBEDDING_MODEL"),
		OllamaURL:         os.Getenv("OLLAMA_URL"),
		OllamaModel:       os.Getenv("OLLAMA_EMBEDDING_MODEL"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}

	switch c.EmbeddingProvider {
	case "", "gemini", "ollama", "offline":
	default:
		return fmt.Errorf("config error: unknown embedding_provider %q", c.EmbeddingProvider)
	}

	if c.EmbeddingProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required when embedding_provider is gemini")
	}

	t := c.Thresholds
	if t.MaxToleratedStdDev < 0 {
		return fmt.Errorf("config error: 'max_tolerated_std_dev' must be non-negative")
	}
	if t.KPIWeight < 0 || t.SemanticWeight < 0 {
		return fmt.Errorf("config error: consistency weights must be non-negative")
	}
	if t.KPIWeight != 0 || t.SemanticWeight != 0 {
		if sum := t.KPIWeight + t.SemanticWeight; sum < 0.999 || sum > 1.001 {
			return fmt.Errorf("config error: 'kpi_weight' and 'semantic_weight' must sum to 1.0, got %.3f", sum)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.OllamaURL == "" {
		result.OllamaURL = defaults.OllamaURL
	}
	if result.OllamaModel == "" {
		result.OllamaModel = defaults.OllamaModel
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	result.Thresholds = result.Thresholds.MergeWithDefaults(defaults.Thresholds)
	return result
}

// MergeWithDefaults fills zero-valued thresholds from defaults.
func (t Thresholds) MergeWithDefaults(defaults Thresholds) Thresholds {
	result := t
	if result.MinNarrativeLength == 0 {
		result.MinNarrativeLength = defaults.MinNarrativeLength
	}
	if result.MaxToleratedStdDev == 0 {
		result.MaxToleratedStdDev = defaults.MaxToleratedStdDev
	}
	if result.DeviationCap == 0 {
		result.DeviationCap = defaults.DeviationCap
	}
	if result.KPIWeight == 0 {
		result.KPIWeight = defaults.KPIWeight
	}
	if result.SemanticWeight == 0 {
		result.SemanticWeight = defaults.SemanticWeight
	}
	if result.LowConsistencyFlagAt == 0 {
		result.LowConsistencyFlagAt = defaults.LowConsistencyFlagAt
	}
	if result.HighRiskRejectAbove == 0 {
		result.HighRiskRejectAbove = defaults.HighRiskRejectAbove
	}
	if result.ElevatedRiskWarnAbove == 0 {
		result.ElevatedRiskWarnAbove = defaults.ElevatedRiskWarnAbove
	}
	if result.InconsistentRejectBelow == 0 {
		result.InconsistentRejectBelow = defaults.InconsistentRejectBelow
	}
	if result.InconsistentWarnBelow == 0 {
		result.InconsistentWarnBelow = defaults.InconsistentWarnBelow
	}
	if result.MaxWarningFlags == 0 {
		result.MaxWarningFlags = defaults.MaxWarningFlags
	}
	return result
}
