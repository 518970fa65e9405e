// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"strings"

	"leadfilter/core/domain"
	"leadfilter/pkg/apperr"
)

// =============================================================================
// Lead Scorer
// =============================================================================

// Bonus names recorded in the score breakdown.
const (
	BonusOEMManufacturer = "oem_manufacturer"
	BonusGeographyHigh   = "geography_high"
	BonusGeographyMedium = "geography_medium"
	BonusDomainMatch     = "domain_match"
)

// LeadScorer fuses the four sub-scores into the final classification.
//
// Sub-scores are clamped to [0, 100] before weighting. The weighted sum is
// then multiplied by every triggered bonus; the result is NOT re-clamped —
// it can legitimately exceed 100, which is why highPriority thresholds are
// commonly configured above 100.
type LeadScorer struct {
	matcher *IndustryMatcher
	geo     *GeoPrioritizer
}

// NewLeadScorer creates a new lead scorer.
func NewLeadScorer() *LeadScorer {
	return &LeadScorer{
		matcher: NewIndustryMatcher(),
		geo:     NewGeoPrioritizer(),
	}
}

// bonusRule is one independently-evaluated (predicate, factor) pair.
// New bonus types are added here and in the configuration, nowhere else.
type bonusRule struct {
	name    string
	factor  float64
	applies bool
}

// Classify scores one record and maps it to a priority tier.
// Records that already tripped the hard exclusion filter must not get here;
// the pipeline guarantees that ordering.
func (s *LeadScorer) Classify(record *domain.EmailRecord, cfg *domain.FilterConfiguration) (*domain.ClassificationResult, error) {
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	quality := emailQualityScore(record, cfg)
	relevance := s.matcher.Score(record, cfg)
	geoTier, geoScore := s.geo.Classify(record, cfg)
	engagement := engagementScore(record.SourceText)

	w := cfg.Weights
	weighted := quality*w.EmailQuality +
		relevance.Score*w.CompanyRelevance +
		geoScore*w.GeographicPriority +
		engagement*w.Engagement

	rules := []bonusRule{
		{BonusOEMManufacturer, cfg.BonusMultipliers.OEMManufacturer, relevance.OEMMatched},
		{BonusGeographyHigh, cfg.BonusMultipliers.GeographyHigh, geoTier == domain.GeoHigh},
		{BonusGeographyMedium, cfg.BonusMultipliers.GeographyMedium, geoTier == domain.GeoMedium},
		{BonusDomainMatch, cfg.BonusMultipliers.DomainMatch, relevance.DomainPatternMatched},
	}

	overall := weighted
	var applied []domain.AppliedBonus
	for _, b := range rules {
		if !b.applies {
			continue
		}
		factor := domain.EffectiveBonus(b.factor)
		overall *= factor
		applied = append(applied, domain.AppliedBonus{Name: b.name, Factor: factor})
	}

	return &domain.ClassificationResult{
		Record:       *record,
		Tier:         classifyTier(overall, cfg.Thresholds),
		OverallScore: overall,
		GeoTier:      geoTier,
		Breakdown: &domain.ScoreBreakdown{
			EmailQuality:       quality,
			CompanyRelevance:   relevance.Score,
			GeographicPriority: geoScore,
			Engagement:         engagement,
			WeightedBase:       weighted,
			Bonuses:            applied,
		},
	}, nil
}

// classifyTier maps the final score to a tier. A score below lowPriority is
// a score-based exclusion: EXCLUDED without an exclusion reason, which keeps
// it distinguishable from a hard exclusion in the result.
func classifyTier(score float64, t domain.Thresholds) domain.PriorityTier {
	switch {
	case score >= t.HighPriority:
		return domain.TierHigh
	case score >= t.MediumPriority:
		return domain.TierMedium
	case score >= t.LowPriority:
		return domain.TierLow
	default:
		return domain.TierExcluded
	}
}

// validateRecord rejects records missing required fields with a recoverable
// per-record error. The batch continues without them.
func validateRecord(record *domain.EmailRecord) error {
	if strings.TrimSpace(record.Address) == "" {
		return apperr.New(apperr.CodeInvalidRecord, "record has no address")
	}
	if strings.TrimSpace(record.Domain) == "" {
		return apperr.New(apperr.CodeInvalidRecord, "record has no domain").
			WithDetail("address", record.Address)
	}
	return nil
}
