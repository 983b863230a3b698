package prompt

import (
	"strings"
	"testing"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

func TestBuild_ContainsQuestionAndEvidence(t *testing.T) {
	evidence := []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "Grace period is thirty days."}},
		{Chunk: models.Chunk{Text: "Premiums are due annually."}},
	}

	got := Build("What is the grace period?", evidence)

	if !strings.Contains(got, "Question: What is the grace period?") {
		t.Error("prompt must carry the question verbatim")
	}
	if !strings.Contains(got, "Grace period is thirty days.\n\nPremiums are due annually.") {
		t.Error("evidence texts must appear in order, blank-line separated")
	}
	if !strings.HasPrefix(got, "Based on the following document excerpts") {
		t.Error("prompt must open with the instruction preamble")
	}
	if !strings.HasSuffix(got, "Answer (be specific and reference the document):") {
		t.Error("prompt must end on the answer cue")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	evidence := []models.ScoredChunk{
		{Chunk: models.Chunk{Text: "Alpha."}, Score: 0.4},
		{Chunk: models.Chunk{Text: "Beta."}, Score: 0.2},
	}

	first := Build("How?", evidence)
	for i := 0; i < 5; i++ {
		if got := Build("How?", evidence); got != first {
			t.Fatal("identical inputs must yield identical prompts")
		}
	}
}

func TestBuild_EmptyEvidence(t *testing.T) {
	got := Build("Why?", nil)

	if !strings.Contains(got, "Question: Why?") {
		t.Error("prompt must still carry the question with no evidence")
	}
	if !strings.Contains(got, "Document Context:\n\n") {
		t.Error("context section must be present but empty")
	}
}
