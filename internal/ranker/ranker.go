package ranker

import (
	"context"
	"sort"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

const (
	// DefaultTopN is how many chunks feed the prompt.
	DefaultTopN = 3
	// DefaultSearchK is how many candidates an index query fetches
	// before the result is cut down to topN.
	DefaultSearchK = 5
)

// Ranker orders a document's chunks by relevance to one question using
// the injected scoring strategy.
type Ranker struct {
	scorer Scorer
}

func New(scorer Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank returns at most topN chunks, descending by score with stable
// ties. When no chunk scores above zero it falls back to the first topN
// chunks in document order so the prompt is never empty.
func (r *Ranker) Rank(ctx context.Context, question string, chunks []models.Chunk, topN int) ([]models.ScoredChunk, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	scored, err := r.score(ctx, question, chunks, topN)
	if err != nil {
		return nil, err
	}

	if topN > len(scored) {
		topN = len(scored)
	}
	top := scored[:topN]

	if len(top) > 0 && top[0].Score > 0 {
		return top, nil
	}

	// Nothing matched; keep the first chunks in document order.
	fallback := make([]models.ScoredChunk, 0, topN)
	for _, chunk := range chunks[:min(topN, len(chunks))] {
		fallback = append(fallback, models.ScoredChunk{Chunk: chunk})
	}
	return fallback, nil
}

func (r *Ranker) score(ctx context.Context, question string, chunks []models.Chunk, topN int) ([]models.ScoredChunk, error) {
	if searcher, ok := r.scorer.(Searcher); ok {
		k := DefaultSearchK
		if k > len(chunks) {
			k = len(chunks)
		}
		if k < topN {
			k = min(topN, len(chunks))
		}
		return searcher.Search(ctx, question, k)
	}

	scored := make([]models.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		score, err := r.scorer.Score(ctx, question, chunk)
		if err != nil {
			return nil, err
		}
		scored = append(scored, models.ScoredChunk{Chunk: chunk, Score: score})
	}

	// Stable sort keeps original chunk order on ties.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	return scored, nil
}
