// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"leadfilter/core/domain"
)

// =============================================================================
// Industry Relevance Matcher
// =============================================================================

// Keyword point scaling. Each category has a base value plus a length-scaled
// extra, so longer, more specific terms weigh more within the category range:
// "hydraulic cylinder" outweighs "pump". The scale is deterministic and
// monotonic in term length.
const (
	primaryPointsBase     = 20.0
	primaryPointsMaxExtra = 5.0

	secondaryPointsBase     = 8.0
	secondaryPointsMaxExtra = 2.0

	oemPointsBase     = 12.0
	oemPointsMaxExtra = 3.0

	negativeKeywordPenalty = 50.0

	relevantPatternPoints = 15.0
	highValueDomainPoints = 25.0
)

func primaryPoints(term string) float64 {
	return primaryPointsBase + lengthExtra(term, 4, primaryPointsMaxExtra)
}

func secondaryPoints(term string) float64 {
	return secondaryPointsBase + lengthExtra(term, 6, secondaryPointsMaxExtra)
}

func oemPoints(term string) float64 {
	return oemPointsBase + lengthExtra(term, 5, oemPointsMaxExtra)
}

// lengthExtra adds one point per `step` runes of term length, capped at max.
func lengthExtra(term string, step int, max float64) float64 {
	extra := float64(len([]rune(term)) / step)
	if extra > max {
		return max
	}
	return extra
}

// RelevanceResult carries the clamped relevance sub-score plus the match
// signals the scorer needs for its bonus multipliers.
type RelevanceResult struct {
	Score float64 // clamped to [0, 100]

	PrimaryHits   int
	SecondaryHits int
	OEMHits       int
	NegativeHits  int

	OEMMatched           bool
	DomainPatternMatched bool
}

// IndustryMatcher scores free-text industry relevance against the
// language-tagged keyword sets of the market configuration.
type IndustryMatcher struct{}

// NewIndustryMatcher creates a new industry relevance matcher.
func NewIndustryMatcher() *IndustryMatcher {
	return &IndustryMatcher{}
}

// Score accumulates keyword points over the combined lower-cased text of
// company name, source text and domain tokens. Every occurrence of a term
// counts — there is no per-term deduplication. Negative keywords subtract;
// the accumulator is clamped to [0, 100] only at the end, after the
// domain-pattern bonuses, so negatives can cancel bonuses but the result
// floors at 0.
func (m *IndustryMatcher) Score(record *domain.EmailRecord, cfg *domain.FilterConfiguration) RelevanceResult {
	text := searchText(record)
	kw := cfg.IndustryKeywords

	var res RelevanceResult
	raw := 0.0

	for _, lang := range sortedLanguages(kw.Primary) {
		for _, term := range kw.Primary[lang] {
			t := normalize(term)
			if n := countOccurrences(text, t); n > 0 {
				res.PrimaryHits += n
				raw += float64(n) * primaryPoints(t)
			}
		}
	}

	for _, lang := range sortedLanguages(kw.Secondary) {
		for _, term := range kw.Secondary[lang] {
			t := normalize(term)
			if n := countOccurrences(text, t); n > 0 {
				res.SecondaryHits += n
				raw += float64(n) * secondaryPoints(t)
			}
		}
	}

	for _, lang := range sortedLanguages(kw.OEMIndicators) {
		for _, term := range kw.OEMIndicators[lang] {
			t := normalize(term)
			if n := countOccurrences(text, t); n > 0 {
				res.OEMHits += n
				res.OEMMatched = true
				raw += float64(n) * oemPoints(t)
			}
		}
	}

	for _, lang := range sortedLanguages(kw.NegativeKeywords) {
		for _, term := range kw.NegativeKeywords[lang] {
			t := normalize(term)
			if n := countOccurrences(text, t); n > 0 {
				res.NegativeHits += n
				raw -= float64(n) * negativeKeywordPenalty
			}
		}
	}

	raw += m.domainBonus(record, cfg, &res)

	res.Score = clampScore(raw)
	return res
}

// domainBonus adds pattern points for relevant substrings found directly in
// the email or web domain and for membership in the high-value domain list.
// Applied before the final clamp.
func (m *IndustryMatcher) domainBonus(record *domain.EmailRecord, cfg *domain.FilterConfiguration, res *RelevanceResult) float64 {
	emailDomain := normalize(record.Domain)
	webDomain := normalize(record.WebDomain)

	bonus := 0.0
	for _, p := range cfg.DomainPatterns.RelevantPatterns {
		pl := normalize(p)
		if pl == "" {
			continue
		}
		if countOccurrences(emailDomain, pl) > 0 || (webDomain != "" && countOccurrences(webDomain, pl) > 0) {
			res.DomainPatternMatched = true
			bonus += relevantPatternPoints
		}
	}
	for _, d := range cfg.DomainPatterns.HighValueDomains {
		dl := normalize(d)
		if dl == "" {
			continue
		}
		if emailDomain == dl || webDomain == dl {
			res.DomainPatternMatched = true
			bonus += highValueDomainPoints
		}
	}
	return bonus
}
