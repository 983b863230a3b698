package ranker

import (
	"context"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// Scorer scores a single chunk against a question. Higher is more
// relevant. Implementations must be deterministic.
type Scorer interface {
	Score(ctx context.Context, question string, chunk models.Chunk) (float64, error)
}

// Searcher is an optional fast path for scorers backed by an index.
// When a Scorer also implements Searcher the ranker queries the index
// instead of scanning every chunk.
type Searcher interface {
	Search(ctx context.Context, question string, k int) ([]models.ScoredChunk, error)
}

// ScorerFactory builds a request-scoped scorer over one document's
// chunks. The strategy is fixed at construction time, the orchestrator
// never branches on strategy names.
type ScorerFactory interface {
	NewScorer(ctx context.Context, chunks []models.Chunk) (Scorer, error)
}

// LexicalFactory hands out the shared stateless lexical scorer.
type LexicalFactory struct{}

func (LexicalFactory) NewScorer(ctx context.Context, chunks []models.Chunk) (Scorer, error) {
	return NewLexicalScorer(), nil
}
