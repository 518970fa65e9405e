// Package worker runs classification batches on a go-pkgz/pool worker group.
package worker

import (
	"context"
	"time"

	"github.com/go-pkgz/pool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leadfilter/core/domain"
	portin "leadfilter/core/port/in"
	"leadfilter/core/service/classification"
	"leadfilter/pkg/apperr"
)

var _ portin.BatchClassifyService = (*BatchRunner)(nil)

// =============================================================================
// Batch Runner
// =============================================================================

// BatchRunner classifies an ordered record list in parallel. Classification
// is a pure function of (record, config), so records fan out to workers
// without locking; results land in an index-tagged slice, which preserves
// input order no matter the completion order.
type BatchRunner struct {
	pipeline *classification.Pipeline
	workers  int
	chanSize int
	log      zerolog.Logger
}

// NewBatchRunner creates a runner with the given worker count.
func NewBatchRunner(pipeline *classification.Pipeline, workers int, log zerolog.Logger) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{
		pipeline: pipeline,
		workers:  workers,
		chanSize: 100,
		log:      log.With().Str("component", "batch_runner").Logger(),
	}
}

// task is one record tagged with its input position.
type task struct {
	index  int
	record *domain.EmailRecord
}

// classifyWorker implements pool.Worker for classification tasks.
// Each slot of results/skips is written by exactly one task, so the slices
// need no locking.
type classifyWorker struct {
	pipeline *classification.Pipeline
	cfg      *domain.FilterConfiguration
	results  []*domain.ClassificationResult
	skips    []*domain.SkippedRecord
	log      zerolog.Logger
}

// Do implements pool.Worker. Invalid records are recorded as skips and never
// fail the batch; only context cancellation propagates.
func (w *classifyWorker) Do(ctx context.Context, t task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := w.pipeline.Classify(t.record, w.cfg)
	if err != nil {
		if apperr.IsInvalidRecord(err) {
			w.log.Warn().
				Int("index", t.index).
				Str("address", t.record.Address).
				Err(err).
				Msg("record skipped")
			w.skips[t.index] = &domain.SkippedRecord{
				Index:   t.index,
				Address: t.record.Address,
				Reason:  err.Error(),
			}
			return nil
		}
		return err
	}

	w.results[t.index] = res
	return nil
}

// Run classifies all records against one immutable configuration and
// returns the ordered batch result.
func (r *BatchRunner) Run(ctx context.Context, records []*domain.EmailRecord, cfg *domain.FilterConfiguration) (*domain.BatchResult, error) {
	if cfg == nil {
		return nil, apperr.InvalidInput("config", "no market configuration")
	}
	if !cfg.Compiled() {
		return nil, apperr.InvalidInput("config", "market configuration was not compiled")
	}

	runID := uuid.NewString()
	start := time.Now()
	log := r.log.With().Str("run_id", runID).Logger()

	log.Info().
		Int("records", len(records)).
		Int("workers", r.workers).
		Str("market", cfg.Market).
		Msg("batch classification started")

	w := &classifyWorker{
		pipeline: r.pipeline,
		cfg:      cfg,
		results:  make([]*domain.ClassificationResult, len(records)),
		skips:    make([]*domain.SkippedRecord, len(records)),
		log:      log,
	}

	p := pool.New[task](r.workers, w).
		WithWorkerChanSize(r.chanSize).
		WithContinueOnError()

	if err := p.Go(ctx); err != nil {
		return nil, apperr.InternalWithError(err)
	}
	for i, rec := range records {
		p.Submit(task{index: i, record: rec})
	}
	if err := p.Close(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Msg("worker pool reported errors")
	}

	result := assembleResult(runID, cfg.Market, start, w.results, w.skips)

	log.Info().
		Int("total", result.Summary.Total).
		Int("high", result.Summary.High).
		Int("medium", result.Summary.Medium).
		Int("low", result.Summary.Low).
		Int("excluded", result.Summary.Excluded).
		Int("skipped", result.Summary.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("batch classification finished")

	return result, nil
}

// assembleResult compacts the index-tagged slices into the final ordered
// batch result with per-tier counts.
func assembleResult(runID, market string, start time.Time, results []*domain.ClassificationResult, skips []*domain.SkippedRecord) *domain.BatchResult {
	summary := domain.BatchSummary{
		RunID:   runID,
		Market:  market,
		StartAt: start,
		EndAt:   time.Now(),
		Total:   len(results),
	}

	ordered := make([]*domain.ClassificationResult, 0, len(results))
	skipped := make([]domain.SkippedRecord, 0)

	for i, res := range results {
		if res == nil {
			if s := skips[i]; s != nil {
				skipped = append(skipped, *s)
			}
			continue
		}
		ordered = append(ordered, res)
		switch res.Tier {
		case domain.TierHigh:
			summary.High++
		case domain.TierMedium:
			summary.Medium++
		case domain.TierLow:
			summary.Low++
		case domain.TierExcluded:
			summary.Excluded++
		}
	}
	summary.Skipped = len(skipped)

	return &domain.BatchResult{
		Summary: summary,
		Results: ordered,
		Skipped: skipped,
	}
}
