package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/chunker"
	"github.com/docqa-labs/retrieval-agent/internal/extractor"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/ranker"
	"github.com/docqa-labs/retrieval-agent/internal/synthesizer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultMaxConcurrent = 4

// Orchestrator sequences one retrieval request: extract, segment, then
// rank and synthesize every question independently, and aggregate the
// answers in input order. All state it builds (document, chunks, scorer)
// is request-scoped and discarded when Run returns.
type Orchestrator struct {
	extractor     extractor.Extractor
	chunker       *chunker.Chunker
	scorers       ranker.ScorerFactory
	synthesizer   *synthesizer.Synthesizer
	topN          int
	maxConcurrent int
	logger        *zerolog.Logger
}

func New(
	ext extractor.Extractor,
	chk *chunker.Chunker,
	scorers ranker.ScorerFactory,
	synth *synthesizer.Synthesizer,
	topN int,
	maxConcurrent int,
	logger *zerolog.Logger,
) *Orchestrator {
	if topN <= 0 {
		topN = ranker.DefaultTopN
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Orchestrator{
		extractor:     ext,
		chunker:       chk,
		scorers:       scorers,
		synthesizer:   synth,
		topN:          topN,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Run answers every question against the referenced document. Document
// level failures (fetch, parse, empty text) abort the request; failures
// inside one question's pipeline only degrade that question's answer.
func (o *Orchestrator) Run(ctx context.Context, documentRef string, questions []string) (*models.RetrievalResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	logger := o.logger.With().Str("request_id", requestID).Logger()
	logger.Info().Str("document", documentRef).Int("questions", len(questions)).Msg("starting retrieval")

	doc, err := o.extractor.Extract(ctx, documentRef)
	if err != nil {
		logger.Error().Err(err).Msg("document extraction failed")
		return nil, err
	}

	chunks, err := o.chunker.Segment(doc.Text)
	if err != nil {
		logger.Error().Err(err).Msg("document segmentation failed")
		return nil, err
	}
	logger.Info().Int("chunks", len(chunks)).Msg("document segmented")

	scorer, err := o.scorers.NewScorer(ctx, chunks)
	if err != nil {
		logger.Error().Err(err).Msg("scorer construction failed")
		return nil, err
	}
	rk := ranker.New(scorer)

	// Questions have no data dependency on each other. Fan out with a
	// bounded semaphore and write each answer into its input slot so
	// completion order never changes result order.
	answers := make([]models.Answer, len(questions))
	sem := make(chan struct{}, o.maxConcurrent)
	var wg sync.WaitGroup

	for i, question := range questions {
		wg.Add(1)
		go func(slot int, question string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			answers[slot] = o.answer(ctx, &logger, rk, question, chunks)
		}(i, question)
	}
	wg.Wait()

	result := &models.RetrievalResult{
		RequestID: requestID,
		Answers:   answers,
		Document: models.DocumentMetadata{
			Source: doc.Source,
			Title:  doc.Title,
			Length: doc.Length,
			Units:  doc.Units,
			Chunks: len(chunks),
		},
		Duration: time.Since(start),
	}

	logger.Info().Dur("duration", result.Duration).Int("answers", len(answers)).Msg("retrieval complete")
	return result, nil
}

// answer runs the per-question pipeline. Any fault is converted into a
// degraded answer; a single question must never take down its siblings.
func (o *Orchestrator) answer(ctx context.Context, logger *zerolog.Logger, rk *ranker.Ranker, question string, chunks []models.Chunk) (answer models.Answer) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Any("panic", r).Str("question", question).Msg("question pipeline panicked")
			answer = synthesizer.Degraded(question, time.Since(start))
		}
	}()

	evidence, err := rk.Rank(ctx, question, chunks, o.topN)
	if err != nil {
		logger.Error().Err(err).Str("question", question).Msg("ranking failed")
		return synthesizer.Degraded(question, time.Since(start))
	}

	return o.synthesizer.Synthesize(ctx, question, evidence)
}
