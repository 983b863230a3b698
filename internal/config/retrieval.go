package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	StrategyLexical   = "lexical"
	StrategyEmbedding = "embedding"
)

type RetrievalConfig struct {
	Strategy      string           `yaml:"strategy"`
	ChunkSize     int              `yaml:"chunk_size"`
	MinChunkChars int              `yaml:"min_chunk_chars"`
	TopN          int              `yaml:"top_n"`
	MaxConcurrent int              `yaml:"max_concurrent"`
	Generation    GenerationConfig `yaml:"generation"`
}

type GenerationConfig struct {
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
}

// LoadRetrievalConfig reads the retrieval settings file. A missing file
// is not an error: the defaults describe a working lexical pipeline.
func LoadRetrievalConfig() (*RetrievalConfig, error) {
	path := os.Getenv("RETRIEVAL_CONFIG_PATH")
	if path == "" {
		path = "configs/retrieval.yaml"
	}

	var cfg RetrievalConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *RetrievalConfig) {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLexical
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.MinChunkChars == 0 {
		cfg.MinChunkChars = 50
	}
	if cfg.TopN == 0 {
		cfg.TopN = 3
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.Generation.TimeoutSeconds == 0 {
		cfg.Generation.TimeoutSeconds = 30
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 1024
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.2
	}
}

func (c *RetrievalConfig) Validate() error {
	if c.Strategy != StrategyLexical && c.Strategy != StrategyEmbedding {
		return fmt.Errorf("unknown scoring strategy %q (expected %q or %q)", c.Strategy, StrategyLexical, StrategyEmbedding)
	}
	if c.ChunkSize < c.MinChunkChars {
		return fmt.Errorf("chunk_size %d must not be smaller than min_chunk_chars %d", c.ChunkSize, c.MinChunkChars)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1, got %d", c.MaxConcurrent)
	}
	return nil
}
