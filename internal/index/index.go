package index

import (
	"sort"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// Index is an exact nearest-neighbor index over per-chunk embeddings.
// Vectors are expected to be L2-normalized by the encoder, so the inner
// product below is cosine similarity. At the expected scale (tens to low
// hundreds of chunks per document) a brute-force scan beats any
// approximate structure on simplicity and is fast enough.
type Index struct {
	vectors [][]float32
}

// Hit is one query result, pointing back at the chunk by position.
type Hit struct {
	ChunkIndex int
	Score      float64
}

// Build creates an index over the given vectors. It fails with
// models.ErrIndexEmpty when called with zero vectors.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, models.ErrIndexEmpty
	}
	return &Index{vectors: vectors}, nil
}

func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Query returns the k nearest vectors by inner product, descending.
// Ties keep insertion order.
func (ix *Index) Query(vector []float32, k int) []Hit {
	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{ChunkIndex: i, Score: dot(v, vector)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	if k < 0 {
		k = 0
	}
	return hits[:k]
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
