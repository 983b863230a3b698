package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/rs/zerolog"
)

// InputRecord is one parsed line of a jsonl batch file. A malformed line
// still produces a record, with Error set, so the caller can count and
// report failures without aborting the run.
type InputRecord struct {
	Request    models.RetrievalRequest
	LineNumber int
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		r:      r,
		logger: logger,
	}
}

// ReadAll streams records from the input. Blank lines are skipped; the
// channel closes when the input is exhausted or ctx is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNumber := 0

		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				r.logger.Warn().Err(err).Int("line", lineNumber).Msg("skipping malformed record")
				record.Error = err
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read batch input")
		}
	}()

	return out
}
