package domain

import "strings"

// PriorityTier represents the final bucket assigned to a record
type PriorityTier string

const (
	TierHigh     PriorityTier = "HIGH"     // Top leads, contact first
	TierMedium   PriorityTier = "MEDIUM"   // Worth contacting
	TierLow      PriorityTier = "LOW"      // Bulk remainder
	TierExcluded PriorityTier = "EXCLUDED" // Hard-excluded or scored below the floor
)

// ValidTiers for validation (matches report partitions)
var ValidTiers = map[PriorityTier]bool{
	TierHigh:     true,
	TierMedium:   true,
	TierLow:      true,
	TierExcluded: true,
}

// ExclusionReason indicates which hard-exclusion check terminated a record.
// Only set by the exclusion filter; a score-based exclusion carries no reason.
type ExclusionReason string

const (
	ExclusionPersonalDomain    ExclusionReason = "PERSONAL_DOMAIN"
	ExclusionHRPrefix          ExclusionReason = "HR_OR_SERVICE_PREFIX"
	ExclusionGeography         ExclusionReason = "EXCLUDED_GEOGRAPHY"
	ExclusionSuspiciousPattern ExclusionReason = "SUSPICIOUS_PATTERN"
	ExclusionIndustry          ExclusionReason = "EXCLUDED_INDUSTRY"
)

// GeoTier represents the geographic priority level of a record.
// Geography never excludes on its own; LOW is a valid, scored outcome.
type GeoTier string

const (
	GeoHigh   GeoTier = "high"
	GeoMedium GeoTier = "medium"
	GeoLow    GeoTier = "low"
)

// EmailRecord is the immutable input unit. Records arrive already
// deduplicated and syntax-validated from the ingestion stage.
type EmailRecord struct {
	Address     string `json:"address"`
	Domain      string `json:"domain"`
	CompanyName string `json:"company_name,omitempty"`
	SourceText  string `json:"source_text,omitempty"`
	WebDomain   string `json:"web_domain,omitempty"` // company website, may differ from email domain
}

// LocalPart returns the part of the address before '@', lower-cased and trimmed.
func (r *EmailRecord) LocalPart() string {
	addr := strings.TrimSpace(strings.ToLower(r.Address))
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		return addr[:at]
	}
	return addr
}

// ScoreBreakdown holds the four sub-scores and the bonus factors that were
// applied, kept on every scored result for auditability.
type ScoreBreakdown struct {
	EmailQuality       float64 `json:"email_quality"`
	CompanyRelevance   float64 `json:"company_relevance"`
	GeographicPriority float64 `json:"geographic_priority"`
	Engagement         float64 `json:"engagement"`

	WeightedBase float64        `json:"weighted_base"` // weighted sum before bonuses
	Bonuses      []AppliedBonus `json:"bonuses,omitempty"`
}

// AppliedBonus is one multiplicative factor whose trigger condition held.
type AppliedBonus struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// ClassificationResult is the per-record output of the pipeline.
//
// Exactly one of the two shapes occurs:
//   - hard exclusion: Tier == EXCLUDED, ExclusionReason set, Breakdown nil
//   - scored:         Breakdown set, ExclusionReason nil (EXCLUDED is still
//     possible here when the score falls below the low threshold)
type ClassificationResult struct {
	Record EmailRecord  `json:"record"`
	Tier   PriorityTier `json:"tier"`

	OverallScore float64         `json:"overall_score"` // pre-threshold, >= 0, may exceed 100
	Breakdown    *ScoreBreakdown `json:"breakdown,omitempty"`
	GeoTier      GeoTier         `json:"geo_tier,omitempty"`

	ExclusionReason *ExclusionReason `json:"exclusion_reason,omitempty"`
	MatchedRule     string           `json:"matched_rule,omitempty"` // term or pattern that triggered the exclusion
}

// HardExcluded reports whether the record was terminated by the exclusion filter.
func (r *ClassificationResult) HardExcluded() bool {
	return r.ExclusionReason != nil
}
