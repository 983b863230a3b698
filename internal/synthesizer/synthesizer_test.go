package synthesizer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/llm"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/rs/zerolog"
)

type fakeLLMClient struct {
	response   *llm.LLMResponse
	err        error
	lastPrompt string
}

func (f *fakeLLMClient) InvokeModel(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	f.lastPrompt = req.Prompt
	return f.response, f.err
}

func (f *fakeLLMClient) InvokeModelWithRetry(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	return f.InvokeModel(ctx, req)
}

func newTestSynthesizer(client llm.LLMClient) *Synthesizer {
	logger := zerolog.Nop()
	return New(client, 5*time.Second, 512, 0.2, &logger)
}

func TestSynthesize_Success(t *testing.T) {
	client := &fakeLLMClient{response: &llm.LLMResponse{Content: "  Thirty days.  "}}
	s := newTestSynthesizer(client)

	evidence := []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "Grace period is thirty days."}, Score: 0.5},
	}
	answer := s.Synthesize(context.Background(), "What is the grace period?", evidence)

	if answer.Text != "Thirty days." {
		t.Errorf("expected trimmed model output, got %q", answer.Text)
	}
	if answer.Question != "What is the grace period?" {
		t.Errorf("unexpected question %q", answer.Question)
	}
	if len(answer.Evidence) != 1 {
		t.Errorf("expected evidence to be carried through, got %d chunks", len(answer.Evidence))
	}
	if answer.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %f", answer.Confidence)
	}
	if client.lastPrompt == "" {
		t.Error("prompt was never sent to the model")
	}
}

func TestSynthesize_EmptyGeneration(t *testing.T) {
	client := &fakeLLMClient{response: &llm.LLMResponse{Content: "   "}}
	s := newTestSynthesizer(client)

	answer := s.Synthesize(context.Background(), "Why?", []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "chunk"}, Score: 0.4},
	})

	if answer.Text != NoAnswerText {
		t.Errorf("blank generation must map to %q, got %q", NoAnswerText, answer.Text)
	}
	if answer.Confidence == 0 {
		t.Error("empty generation is a valid outcome and keeps its confidence")
	}
}

func TestSynthesize_GenerationFailure(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("throttled")}
	s := newTestSynthesizer(client)

	answer := s.Synthesize(context.Background(), "How?", []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "chunk"}, Score: 0.9},
	})

	if answer.Text != FallbackText {
		t.Errorf("expected fallback text, got %q", answer.Text)
	}
	if answer.Confidence != 0.0 {
		t.Errorf("degraded answer must have zero confidence, got %f", answer.Confidence)
	}
	if answer.Evidence == nil || len(answer.Evidence) != 0 {
		t.Errorf("degraded answer must carry an empty, non-nil evidence slice, got %#v", answer.Evidence)
	}
}

// slowLLMClient blocks until its delay elapses or the call context is
// cancelled, like a real network round trip would.
type slowLLMClient struct {
	delay time.Duration
}

func (f *slowLLMClient) InvokeModel(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	select {
	case <-time.After(f.delay):
		return &llm.LLMResponse{Content: "too late"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *slowLLMClient) InvokeModelWithRetry(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	return f.InvokeModel(ctx, req)
}

func TestSynthesize_GenerationTimeout(t *testing.T) {
	logger := zerolog.Nop()
	s := New(&slowLLMClient{delay: 5 * time.Second}, 50*time.Millisecond, 512, 0.2, &logger)

	start := time.Now()
	answer := s.Synthesize(context.Background(), "What is the grace period?", []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "chunk"}, Score: 0.5},
	})
	elapsed := time.Since(start)

	if elapsed >= time.Second {
		t.Fatalf("Synthesize must return once the timeout fires, took %v", elapsed)
	}
	if answer.Text != FallbackText {
		t.Errorf("timed-out generation must yield the fallback answer, got %q", answer.Text)
	}
	if answer.Confidence != 0.0 {
		t.Errorf("timed-out generation must have zero confidence, got %f", answer.Confidence)
	}
	if answer.Evidence == nil || len(answer.Evidence) != 0 {
		t.Errorf("timed-out generation must carry an empty, non-nil evidence slice, got %#v", answer.Evidence)
	}
}

func TestDegraded(t *testing.T) {
	answer := Degraded("When?", 42*time.Millisecond)

	if answer.Text != FallbackText {
		t.Errorf("expected fallback text, got %q", answer.Text)
	}
	if answer.Confidence != 0.0 {
		t.Errorf("expected zero confidence, got %f", answer.Confidence)
	}
	if answer.Duration != 42*time.Millisecond {
		t.Errorf("expected duration to be preserved, got %v", answer.Duration)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected float64
	}{
		{"no evidence", nil, 0.0},
		{"single moderate score", []float64{0.5}, 0.6},
		{"mean then boost", []float64{0.2, 0.4}, 0.36},
		{"cap at one", []float64{0.9, 1.0}, 1.0},
		{"negative mean clamps to zero", []float64{-0.5, -0.5}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evidence := make([]models.ScoredChunk, len(tt.scores))
			for i, score := range tt.scores {
				evidence[i] = models.ScoredChunk{Score: score}
			}
			got := Confidence(evidence)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}
