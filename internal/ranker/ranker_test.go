package ranker

import (
	"context"
	"testing"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// scoreByIndex returns a fixed score per chunk index.
type scoreByIndex map[int]float64

func (s scoreByIndex) Score(ctx context.Context, question string, chunk models.Chunk) (float64, error) {
	return s[chunk.Index], nil
}

func testChunks(n int) []models.Chunk {
	chunks := make([]models.Chunk, n)
	for i := range chunks {
		chunks[i] = models.Chunk{Index: i, Text: "chunk"}
	}
	return chunks
}

func TestRank_DescendingOrder(t *testing.T) {
	rk := New(scoreByIndex{0: 0.2, 1: 0.9, 2: 0.5})

	scored, err := rk.Rank(context.Background(), "q", testChunks(3), 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	want := []int{1, 2, 0}
	for i, sc := range scored {
		if sc.Index != want[i] {
			t.Errorf("position %d: expected chunk %d, got %d", i, want[i], sc.Index)
		}
	}
}

func TestRank_TopNBounds(t *testing.T) {
	rk := New(scoreByIndex{0: 0.3, 1: 0.2, 2: 0.1})

	scored, err := rk.Rank(context.Background(), "q", testChunks(3), 10)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(scored) != 3 {
		t.Errorf("topN larger than chunk count must cap at len(chunks), got %d", len(scored))
	}

	scored, err = rk.Rank(context.Background(), "q", testChunks(3), 2)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(scored) != 2 {
		t.Errorf("expected 2 results, got %d", len(scored))
	}
}

func TestRank_StableTies(t *testing.T) {
	rk := New(scoreByIndex{0: 0.5, 1: 0.5, 2: 0.5})

	scored, err := rk.Rank(context.Background(), "q", testChunks(3), 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	for i, sc := range scored {
		if sc.Index != i {
			t.Errorf("ties must keep original chunk order, position %d got chunk %d", i, sc.Index)
		}
	}
}

func TestRank_FallbackWhenNothingMatches(t *testing.T) {
	rk := New(scoreByIndex{}) // every chunk scores 0

	scored, err := rk.Rank(context.Background(), "q", testChunks(5), 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(scored) != 3 {
		t.Fatalf("fallback must still return topN chunks, got %d", len(scored))
	}
	for i, sc := range scored {
		if sc.Index != i {
			t.Errorf("fallback must keep original order, position %d got chunk %d", i, sc.Index)
		}
	}
}

func TestRank_EmptyChunks(t *testing.T) {
	rk := New(NewLexicalScorer())

	scored, err := rk.Rank(context.Background(), "q", nil, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(scored) != 0 {
		t.Errorf("expected no results for no chunks, got %d", len(scored))
	}
}
