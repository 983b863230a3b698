package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

const (
	DefaultTargetSize = 1000
	DefaultMinChars   = 50
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

// Chunker splits raw document text into bounded-size segments. Blank-line
// delimited paragraphs are the preferred boundary; paragraphs longer than
// TargetSize, or text with no paragraph structure at all, fall back to
// fixed-size windows. Offsets are exact positions into the source text,
// including in paragraph mode.
type Chunker struct {
	TargetSize int
	MinChars   int
}

func New(targetSize, minChars int) *Chunker {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Chunker{
		TargetSize: targetSize,
		MinChars:   minChars,
	}
}

// Segment returns the ordered chunk sequence for text. It fails with
// models.ErrEmptyDocument when nothing survives the minimum-length filter.
func (c *Chunker) Segment(text string) ([]models.Chunk, error) {
	var chunks []models.Chunk

	for _, span := range c.paragraphs(text) {
		for _, window := range c.windows(text, span) {
			trimmed, offset := trimWithOffset(text, window.start, window.end)
			if len(trimmed) < c.MinChars {
				continue
			}
			chunks = append(chunks, models.Chunk{
				Index:       len(chunks),
				Text:        trimmed,
				StartOffset: offset,
				EndOffset:   offset + len(trimmed),
			})
		}
	}

	if len(chunks) == 0 {
		return nil, models.ErrEmptyDocument
	}

	return chunks, nil
}

type span struct {
	start int
	end   int
}

// paragraphs returns blank-line delimited spans of text. A document with
// no blank lines yields one span covering the whole text.
func (c *Chunker) paragraphs(text string) []span {
	breaks := paragraphBreak.FindAllStringIndex(text, -1)

	var spans []span
	pos := 0
	for _, b := range breaks {
		if b[0] > pos {
			spans = append(spans, span{start: pos, end: b[0]})
		}
		pos = b[1]
	}
	if pos < len(text) {
		spans = append(spans, span{start: pos, end: len(text)})
	}
	return spans
}

// windows splits an oversized span into TargetSize-byte windows. Spans
// already within the target pass through unchanged. A window boundary
// that would land inside a multi-byte rune backs off to the rune start
// so every window stays valid UTF-8.
func (c *Chunker) windows(text string, s span) []span {
	if s.end-s.start <= c.TargetSize {
		return []span{s}
	}

	var out []span
	for start := s.start; start < s.end; {
		end := start + c.TargetSize
		if end >= s.end {
			end = s.end
		} else {
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
			// TargetSize smaller than one rune: keep the byte split
			// rather than loop forever.
			if end == start {
				end = start + c.TargetSize
			}
		}
		out = append(out, span{start: start, end: end})
		start = end
	}
	return out
}

// trimWithOffset trims surrounding whitespace from text[start:end] and
// returns the trimmed segment together with its exact start offset.
func trimWithOffset(text string, start, end int) (string, int) {
	segment := text[start:end]
	trimmed := strings.TrimLeftFunc(segment, unicode.IsSpace)
	offset := start + (len(segment) - len(trimmed))
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	return trimmed, offset
}
