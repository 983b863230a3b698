package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// OutputRecord pairs a batch record with its outcome.
type OutputRecord struct {
	LineNumber int                     `json:"line"`
	Result     *models.RetrievalResult `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type Writer struct {
	w      io.Writer
	format string
	logger *zerolog.Logger

	written   int
	failed    int
	questions int
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Writer{
		w:      w,
		format: format,
		logger: logger,
	}, nil
}

func (w *Writer) Write(record OutputRecord) error {
	if record.Error != "" {
		w.failed++
	} else {
		w.written++
		if record.Result != nil {
			w.questions += len(record.Result.Answers)
		}
	}

	if w.format != FormatJSONL {
		return nil
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize output record: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, "%s\n", line); err != nil {
		return fmt.Errorf("failed to write output record: %w", err)
	}
	return nil
}

// Close flushes the summary line for summary mode.
func (w *Writer) Close() error {
	if w.format == FormatSummary {
		summary := map[string]int{
			"documents_processed": w.written,
			"documents_failed":    w.failed,
			"questions_answered":  w.questions,
		}
		line, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w.w, "%s\n", line); err != nil {
			return err
		}
	}

	w.logger.Info().
		Int("processed", w.written).
		Int("failed", w.failed).
		Msg("batch output written")
	return nil
}
