package ranker

import (
	"context"
	"fmt"

	"github.com/docqa-labs/retrieval-agent/internal/embedding"
	"github.com/docqa-labs/retrieval-agent/internal/index"
	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// EmbeddingScorer scores chunks by cosine similarity between question and
// chunk embeddings. It is request-scoped: the chunk vectors and the index
// are built once per document and discarded with the request.
type EmbeddingScorer struct {
	encoder embedding.Encoder
	index   *index.Index
	chunks  []models.Chunk
}

// NewEmbeddingScorer encodes all chunks and builds the in-memory index.
func NewEmbeddingScorer(ctx context.Context, encoder embedding.Encoder, chunks []models.Chunk) (*EmbeddingScorer, error) {
	if len(chunks) == 0 {
		return nil, models.ErrIndexEmpty
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := encoder.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("unable to encode chunks: %w", err)
	}

	ix, err := index.Build(vectors)
	if err != nil {
		return nil, err
	}

	return &EmbeddingScorer{
		encoder: encoder,
		index:   ix,
		chunks:  chunks,
	}, nil
}

func (s *EmbeddingScorer) Score(ctx context.Context, question string, chunk models.Chunk) (float64, error) {
	hits, err := s.Search(ctx, question, s.index.Len())
	if err != nil {
		return 0, err
	}
	for _, hit := range hits {
		if hit.Index == chunk.Index {
			return hit.Score, nil
		}
	}
	return 0, fmt.Errorf("chunk %d not present in index", chunk.Index)
}

// Search encodes the question once and runs an exact nearest-neighbor
// query over the chunk index.
func (s *EmbeddingScorer) Search(ctx context.Context, question string, k int) ([]models.ScoredChunk, error) {
	vectors, err := s.encoder.Encode(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("unable to encode question: %w", err)
	}

	hits := s.index.Query(vectors[0], k)

	scored := make([]models.ScoredChunk, 0, len(hits))
	for _, hit := range hits {
		scored = append(scored, models.ScoredChunk{
			Chunk: s.chunks[hit.ChunkIndex],
			Score: hit.Score,
		})
	}
	return scored, nil
}

// EmbeddingFactory builds a fresh request-scoped embedding scorer. The
// encoder itself is shared and must stay stateless.
type EmbeddingFactory struct {
	Encoder embedding.Encoder
}

func (f EmbeddingFactory) NewScorer(ctx context.Context, chunks []models.Chunk) (Scorer, error) {
	return NewEmbeddingScorer(ctx, f.Encoder, chunks)
}
