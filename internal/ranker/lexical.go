package ranker

import (
	"context"
	"strings"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// Chunks that merely mention question-like vocabulary tend to contain
// question-answering content, so they get a flat bonus.
var interrogativeWords = []string{"what", "how", "when", "where", "why", "which"}

// LexicalScorer scores chunks by keyword overlap with the question:
// 0.7 weighted set overlap, plus 0.1 for every question word appearing
// anywhere in the chunk as a substring, plus a flat 0.1 interrogative
// bonus. Scores are not bounded above.
type LexicalScorer struct{}

func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

func (s *LexicalScorer) Score(ctx context.Context, question string, chunk models.Chunk) (float64, error) {
	questionWords := uniqueTokens(question)
	if len(questionWords) == 0 {
		return 0, nil
	}

	chunkLower := strings.ToLower(chunk.Text)
	chunkWords := uniqueTokens(chunk.Text)

	overlap := 0
	for word := range questionWords {
		if _, ok := chunkWords[word]; ok {
			overlap++
		}
	}

	score := 0.7 * float64(overlap) / float64(len(questionWords))

	// Substring matches count in addition to the set overlap term.
	for word := range questionWords {
		if strings.Contains(chunkLower, word) {
			score += 0.1
		}
	}

	for _, word := range interrogativeWords {
		if strings.Contains(chunkLower, word) {
			score += 0.1
			break
		}
	}

	return score, nil
}

func uniqueTokens(s string) map[string]struct{} {
	s = strings.ToLower(removePunctuation(s))

	tokens := make(map[string]struct{})
	for word := range strings.FieldsSeq(s) {
		tokens[word] = struct{}{}
	}
	return tokens
}

func removePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:()[]{}\"'", r) {
			return -1
		}
		return r
	}, s)
}
