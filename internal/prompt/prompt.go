package prompt

import (
	"fmt"
	"strings"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

const template = `Based on the following document excerpts, provide a concise and accurate answer to the question.

Document Context:
%s

Question: %s

Answer (be specific and reference the document):`

// Build assembles the generation prompt from the ranked evidence and the
// question. It is pure: identical inputs always yield identical prompts.
func Build(question string, evidence []models.ScoredChunk) string {
	texts := make([]string, 0, len(evidence))
	for _, chunk := range evidence {
		texts = append(texts, chunk.Text)
	}

	return fmt.Sprintf(template, strings.Join(texts, "\n\n"), question)
}
