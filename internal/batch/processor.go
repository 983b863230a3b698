package batch

import (
	"context"
	"sort"
	"sync"

	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/rs/zerolog"
)

// Processor fans batch records out over a fixed-size worker pool. Each
// record is one full retrieval request; failures are captured in the
// output record and never stop the run.
type Processor struct {
	orchestrator *orchestrator.Orchestrator
	workers      int
	logger       *zerolog.Logger
}

func NewProcessor(orch *orchestrator.Orchestrator, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = 5
	}
	return &Processor{
		orchestrator: orch,
		workers:      workers,
		logger:       logger,
	}
}

// Process runs every valid record and returns the outcomes ordered by
// input line number.
func (p *Processor) Process(ctx context.Context, records []InputRecord) []OutputRecord {
	jobs := make(chan InputRecord)
	results := make(chan OutputRecord, len(records))
	var wg sync.WaitGroup

	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				results <- p.processOne(ctx, record)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	var out []OutputRecord
	for result := range results {
		out = append(out, result)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].LineNumber < out[b].LineNumber
	})
	return out
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	if record.Error != nil {
		return OutputRecord{LineNumber: record.LineNumber, Error: record.Error.Error()}
	}

	result, err := p.orchestrator.Run(ctx, record.Request.Documents, record.Request.Questions)
	if err != nil {
		p.logger.Error().Err(err).Int("line", record.LineNumber).Msg("batch record failed")
		return OutputRecord{LineNumber: record.LineNumber, Error: err.Error()}
	}

	return OutputRecord{LineNumber: record.LineNumber, Result: result}
}
