package synthesizer

import (
	"context"
	"strings"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/llm"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/prompt"
	"github.com/rs/zerolog"
)

const (
	// NoAnswerText is the terminal outcome when the model returns a
	// structurally valid but empty generation. Not an error.
	NoAnswerText = "No specific answer found in the document."
	// FallbackText replaces the answer when generation fails. The
	// caller cannot tell a pipeline fault from a model decline by
	// looking at the answer alone; only the logs know.
	FallbackText = "Unable to process this question. Please check the document and try again."
)

// Synthesizer turns ranked evidence into an Answer via the generation
// capability. Synthesize never returns an error: generation failures are
// absorbed into a degraded answer so one question can never abort its
// siblings.
type Synthesizer struct {
	llmClient   llm.LLMClient
	timeout     time.Duration
	maxTokens   int
	temperature float64
	logger      *zerolog.Logger
}

func New(llmClient llm.LLMClient, timeout time.Duration, maxTokens int, temperature float64, logger *zerolog.Logger) *Synthesizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Synthesizer{
		llmClient:   llmClient,
		timeout:     timeout,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question string, evidence []models.ScoredChunk) models.Answer {
	now := time.Now()

	generationPrompt := prompt.Build(question, evidence)

	// The generation round trip is the only unbounded wait in the
	// pipeline; a timeout here is mandatory.
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.llmClient.InvokeModelWithRetry(genCtx, llm.LLMRequest{
		Prompt:      generationPrompt,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("question", question).Msg("generation failed, returning degraded answer")
		return models.Answer{
			Question:   question,
			Text:       FallbackText,
			Confidence: 0.0,
			Evidence:   []models.ScoredChunk{},
			Duration:   time.Since(now),
		}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		text = NoAnswerText
	}

	return models.Answer{
		Question:   question,
		Text:       text,
		Confidence: Confidence(evidence),
		Evidence:   evidence,
		Duration:   time.Since(now),
	}
}

// Degraded builds the answer used when ranking itself fails or a
// question's pipeline panics.
func Degraded(question string, duration time.Duration) models.Answer {
	return models.Answer{
		Question:   question,
		Text:       FallbackText,
		Confidence: 0.0,
		Evidence:   []models.ScoredChunk{},
		Duration:   duration,
	}
}

// Confidence is min(mean(score) * 1.2, 1.0), clamped to [0, 1], or 0.0
// with no evidence. A heuristic rewarding strong agreement between the
// question and the retrieved chunks, not a calibrated probability.
func Confidence(evidence []models.ScoredChunk) float64 {
	if len(evidence) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, chunk := range evidence {
		sum += chunk.Score
	}

	confidence := sum / float64(len(evidence)) * 1.2
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}
	return confidence
}
