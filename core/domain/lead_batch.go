package domain

import "time"

// Target tier shares used to sanity-check configuration quality.
// A healthy market configuration lands inside these ranges.
var TierTargetRanges = map[PriorityTier][2]float64{
	TierHigh:     {0, 10},
	TierMedium:   {5, 20},
	TierLow:      {60, 80},
	TierExcluded: {10, 25},
}

// SkippedRecord is a record rejected with an invalid-record error.
// The batch continues; skips are surfaced in the summary so silent
// data loss stays visible.
type SkippedRecord struct {
	Index   int    `json:"index"`
	Address string `json:"address,omitempty"`
	Reason  string `json:"reason"`
}

// BatchSummary reports per-tier counts and percentages for one run.
type BatchSummary struct {
	RunID   string    `json:"run_id"`
	Market  string    `json:"market"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Total    int `json:"total"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Excluded int `json:"excluded"`
	Skipped  int `json:"skipped"`
}

// Count returns the number of records in the given tier.
func (s *BatchSummary) Count(tier PriorityTier) int {
	switch tier {
	case TierHigh:
		return s.High
	case TierMedium:
		return s.Medium
	case TierLow:
		return s.Low
	case TierExcluded:
		return s.Excluded
	default:
		return 0
	}
}

// Percentage returns the share of classified (non-skipped) records in the tier.
func (s *BatchSummary) Percentage(tier PriorityTier) float64 {
	classified := s.Total - s.Skipped
	if classified <= 0 {
		return 0
	}
	return float64(s.Count(tier)) * 100 / float64(classified)
}

// OutOfTargetRange reports whether the tier share falls outside the
// documented quality guidance range.
func (s *BatchSummary) OutOfTargetRange(tier PriorityTier) bool {
	r, ok := TierTargetRanges[tier]
	if !ok {
		return false
	}
	pct := s.Percentage(tier)
	return pct < r[0] || pct > r[1]
}

// BatchResult is the full output of one classification run.
// Results preserve input order; skipped indexes have no result entry.
type BatchResult struct {
	Summary BatchSummary            `json:"summary"`
	Results []*ClassificationResult `json:"results"`
	Skipped []SkippedRecord         `json:"skipped,omitempty"`
}

// Partition returns the results of one tier, in input order.
func (b *BatchResult) Partition(tier PriorityTier) []*ClassificationResult {
	out := make([]*ClassificationResult, 0)
	for _, r := range b.Results {
		if r != nil && r.Tier == tier {
			out = append(out, r)
		}
	}
	return out
}

// HardExclusions returns only the results terminated by the exclusion
// filter, in input order. Feed for the exclusion report.
func (b *BatchResult) HardExclusions() []*ClassificationResult {
	out := make([]*ClassificationResult, 0)
	for _, r := range b.Results {
		if r != nil && r.HardExcluded() {
			out = append(out, r)
		}
	}
	return out
}
