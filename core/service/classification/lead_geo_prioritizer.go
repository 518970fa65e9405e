// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"strings"
	"unicode"

	"leadfilter/core/domain"
)

// =============================================================================
// Geographic Prioritizer
// =============================================================================

// Geography sub-scores per tier. Geography only modulates priority; it never
// excludes a record, that is the hard exclusion filter's job. LOW is always
// a valid, scored outcome.
const (
	GeoScoreHigh   = 100.0
	GeoScoreMedium = 60.0
	GeoScoreLow    = 30.0
)

// GeoPrioritizer maps domain TLD and text tokens to a tri-level geography
// tier with its sub-score.
type GeoPrioritizer struct{}

// NewGeoPrioritizer creates a new geographic prioritizer.
func NewGeoPrioritizer() *GeoPrioritizer {
	return &GeoPrioritizer{}
}

// Classify evaluates priorityHigh first, then priorityMedium, and defaults
// to LOW. Matching is case-insensitive over the same combined text the
// relevance matcher uses plus the raw domain string.
func (g *GeoPrioritizer) Classify(record *domain.EmailRecord, cfg *domain.FilterConfiguration) (domain.GeoTier, float64) {
	text := searchText(record)
	emailDomain := normalize(record.Domain)

	if matchGeoEntries(text, emailDomain, cfg.Geographic.PriorityHigh) {
		return domain.GeoHigh, GeoScoreHigh
	}
	if matchGeoEntries(text, emailDomain, cfg.Geographic.PriorityMedium) {
		return domain.GeoMedium, GeoScoreMedium
	}
	return domain.GeoLow, GeoScoreLow
}

// matchGeoEntries matches one geography list. An entry written as a TLD
// (leading dot, or a short all-letter code like "pl") matches the domain
// suffix; any entry also matches as a whole word in the combined text, so
// country and city names work without special tagging.
func matchGeoEntries(text, emailDomain string, entries []string) bool {
	for _, entry := range entries {
		e := normalize(entry)
		if e == "" {
			continue
		}
		if looksLikeTLD(e) && domainSuffixMatch(emailDomain, e) {
			return true
		}
		if containsWholeWord(text, strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}

// looksLikeTLD reports whether a geography entry should be tried as a
// domain suffix: it has a leading dot, or is a short bare code ("pl", "com").
func looksLikeTLD(entry string) bool {
	if strings.HasPrefix(entry, ".") {
		return true
	}
	if len(entry) > 3 {
		return false
	}
	for _, r := range entry {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
