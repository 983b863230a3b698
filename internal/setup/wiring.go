package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/chunker"
	"github.com/docqa-labs/retrieval-agent/internal/config"
	"github.com/docqa-labs/retrieval-agent/internal/embedding"
	"github.com/docqa-labs/retrieval-agent/internal/extractor"
	"github.com/docqa-labs/retrieval-agent/internal/llm"
	"github.com/docqa-labs/retrieval-agent/internal/llm/bedrock"
	"github.com/docqa-labs/retrieval-agent/internal/llm/gemini"
	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/docqa-labs/retrieval-agent/internal/ranker"
	"github.com/docqa-labs/retrieval-agent/internal/synthesizer"
	"github.com/rs/zerolog"
)

// Config holds the env-driven process settings. Secrets (API key, auth
// token) are only ever injected here, never hard-coded downstream.
type Config struct {
	AWSRegion             string
	ClaudeModelID         string
	EmbedModelID          string
	GeminiAPIKey          string
	GeminiModelID         string
	DefaultProvider       string
	AuthToken             string
	ExtractTimeoutSeconds int
}

type Dependencies struct {
	Orchestrator *orchestrator.Orchestrator
	Retrieval    *config.RetrievalConfig
	Logger       *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:             getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:         getEnv("CLAUDE_MODEL_ID", ""),
		EmbedModelID:          getEnv("EMBED_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:         getEnv("GEMINI_MODEL_ID", "gemini-pro"),
		DefaultProvider:       getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		AuthToken:             getEnv("API_AUTH_TOKEN", ""),
		ExtractTimeoutSeconds: getEnvInt("EXTRACT_TIMEOUT_SECONDS", 30),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	retrievalCfg, err := config.LoadRetrievalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load retrieval config: %w", err)
	}

	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	scorers, err := createScorerFactory(ctx, retrievalCfg.Strategy, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer factory: %w", err)
	}

	ext := extractor.NewHTTPExtractor(
		extractor.PlainTextDecoder{},
		time.Duration(cfg.ExtractTimeoutSeconds)*time.Second,
	)

	synth := synthesizer.New(
		llmClient,
		time.Duration(retrievalCfg.Generation.TimeoutSeconds)*time.Second,
		retrievalCfg.Generation.MaxTokens,
		retrievalCfg.Generation.Temperature,
		logger,
	)

	orch := orchestrator.New(
		ext,
		chunker.New(retrievalCfg.ChunkSize, retrievalCfg.MinChunkChars),
		scorers,
		synth,
		retrievalCfg.TopN,
		retrievalCfg.MaxConcurrent,
		logger,
	)

	logger.Info().
		Str("strategy", retrievalCfg.Strategy).
		Str("provider", cfg.DefaultProvider).
		Int("top_n", retrievalCfg.TopN).
		Msg("retrieval pipeline wired")

	return &Dependencies{
		Orchestrator: orch,
		Retrieval:    retrievalCfg,
		Logger:       logger,
	}, nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "gemini":
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModelID)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}

func createScorerFactory(ctx context.Context, strategy string, cfg *Config) (ranker.ScorerFactory, error) {
	switch strategy {
	case config.StrategyEmbedding:
		client, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.EmbedModelID)
		if err != nil {
			return nil, err
		}
		return ranker.EmbeddingFactory{
			Encoder: embedding.NewBedrockEmbedder(client.Client, cfg.EmbedModelID),
		}, nil
	default:
		return ranker.LexicalFactory{}, nil
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
