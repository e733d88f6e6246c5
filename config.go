package soilscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the soilscan pipeline. It is an
// explicit value passed to New; the pipeline reads no ambient process
// state, which keeps it testable with injected fake providers.
type Config struct {
	// APIKey authenticates against the generative-model service.
	APIKey string `yaml:"api_key" json:"api_key"`

	// LLMBaseURL overrides the generative service endpoint. Empty uses
	// the provider default.
	LLMBaseURL string `yaml:"llm_base_url" json:"llm_base_url"`

	// ParserModel runs the semantic field-extraction call.
	// ParserFallbackModel is retried once on transient/availability
	// errors (quota, not-found, not-enabled, permission).
	ParserModel         string `yaml:"parser_model" json:"parser_model"`
	ParserFallbackModel string `yaml:"parser_fallback_model" json:"parser_fallback_model"`

	// VisionModel transcribes photographed reports when the structured
	// engine is unavailable or inconclusive. VisionFallbackModel is the
	// one model-substitution retry.
	VisionModel         string `yaml:"vision_model" json:"vision_model"`
	VisionFallbackModel string `yaml:"vision_fallback_model" json:"vision_fallback_model"`

	// RecommendModel generates the streamed crop recommendation.
	RecommendModel string `yaml:"recommend_model" json:"recommend_model"`

	// Docling configures the optional structured-document conversion
	// engine. An empty BaseURL means the engine is absent, which is a
	// normal, handled condition.
	Docling DoclingConfig `yaml:"docling" json:"docling"`

	// MaxUploadBytes caps accepted document size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`
}

// DoclingConfig configures the structured-document conversion sidecar.
type DoclingConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// DefaultConfig returns a Config with the default model ladder.
func DefaultConfig() Config {
	return Config{
		ParserModel:         "gemini-1.5-flash",
		ParserFallbackModel: "gemma-3-27b-it",
		VisionModel:         "gemini-1.5-flash",
		VisionFallbackModel: "gemma-3-27b-it",
		RecommendModel:      "gemma-3-27b-it",
		MaxUploadBytes:      10 << 20, // 10MB
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ParserModel == "" {
		return fmt.Errorf("%w: parser_model is required", ErrInvalidConfig)
	}
	if c.VisionModel == "" {
		return fmt.Errorf("%w: vision_model is required", ErrInvalidConfig)
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	return nil
}
