// Package classification implements the lead-quality classification pipeline.
//
// Two-stage flow per record:
//
//	Stage 0: Hard Exclusion  → personal domain, HR/service prefix, excluded
//	                           geography, suspicious pattern, excluded industry.
//	                           Terminal: a match skips scoring entirely.
//	Stage 1: Lead Scoring    → email quality, industry relevance, geography
//	                           and engagement sub-scores fused by weights,
//	                           bonus multipliers, threshold classification.
//
// Classification of one record is a pure function of (record, config); the
// configuration is immutable for the duration of a batch, so records can be
// processed on any number of workers without locking.
package classification

import (
	"github.com/rs/zerolog"

	"leadfilter/core/domain"
)

// Pipeline orchestrates hard exclusion and scoring for single records.
type Pipeline struct {
	filter *ExclusionFilter
	scorer *LeadScorer
	log    zerolog.Logger
}

// NewPipeline creates a new classification pipeline.
func NewPipeline(log zerolog.Logger) *Pipeline {
	return &Pipeline{
		filter: NewExclusionFilter(),
		scorer: NewLeadScorer(),
		log:    log.With().Str("component", "classification").Logger(),
	}
}

// Classify runs one record through the pipeline. A hard-excluded record is
// returned with its exclusion reason and no score breakdown; the scorer is
// never invoked for it. The only error shape is an invalid-record error for
// records missing required fields.
func (p *Pipeline) Classify(record *domain.EmailRecord, cfg *domain.FilterConfiguration) (*domain.ClassificationResult, error) {
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	if m := p.filter.Evaluate(record, cfg); m != nil {
		reason := m.Reason
		p.log.Debug().
			Str("address", record.Address).
			Str("reason", string(reason)).
			Str("rule", m.Rule).
			Msg("record hard-excluded")

		return &domain.ClassificationResult{
			Record:          *record,
			Tier:            domain.TierExcluded,
			ExclusionReason: &reason,
			MatchedRule:     m.Rule,
		}, nil
	}

	return p.scorer.Classify(record, cfg)
}
