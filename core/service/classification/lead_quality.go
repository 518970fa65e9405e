// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"strings"

	"leadfilter/core/domain"
)

// =============================================================================
// Email Quality Scoring
// =============================================================================

// Email quality components. The base covers any syntactically valid address
// (syntax validation happens upstream); the rest reward corporate domains,
// person-shaped local parts and industry-relevant domains.
const (
	QualityBase            = 25.0
	QualityCorporateDomain = 35.0 // domain is not a known free/personal provider
	QualityPersonalDomain  = 15.0
	QualityNameSeparator   = 15.0 // firstname.lastname shape
	QualityLocalLength     = 10.0 // local part length in (3, 25)
	QualityIndustryDomain  = 25.0 // domain matches an industry pattern
)

// emailQualityScore computes the 0..100 email quality sub-score.
func emailQualityScore(record *domain.EmailRecord, cfg *domain.FilterConfiguration) float64 {
	score := QualityBase

	if cfg.IsPersonalDomain(record.Domain) {
		score += QualityPersonalDomain
	} else {
		score += QualityCorporateDomain
	}

	local := record.LocalPart()
	if hasNameSeparator(local) {
		score += QualityNameSeparator
	}
	if n := len(local); n > 3 && n < 25 {
		score += QualityLocalLength
	}
	if domainPatternHit(record, cfg) {
		score += QualityIndustryDomain
	}

	return clampScore(score)
}

// hasNameSeparator reports whether the local part looks like
// firstname.lastname: a '.', '_' or '-' with letters on both sides.
func hasNameSeparator(local string) bool {
	for i := 1; i < len(local)-1; i++ {
		c := local[i]
		if c != '.' && c != '_' && c != '-' {
			continue
		}
		if isASCIILetter(local[i-1]) && isASCIILetter(local[i+1]) {
			return true
		}
	}
	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// =============================================================================
// Engagement Scoring
// =============================================================================

// Engagement scores by the role of the page the address was found on.
const (
	EngagementProductPage = 85.0
	EngagementContactPage = 75.0
	EngagementAboutPage   = 65.0
	EngagementUnknown     = 40.0
)

// Page role markers, checked as whole words in the source text. Lists stay
// small on purpose; unknown sources score the neutral default.
var (
	productPageMarkers = []string{
		"product", "products", "produkt", "produkty", "produkte",
		"catalog", "catalogue", "katalog", "shop",
		"service", "services", "servis",
	}
	contactPageMarkers = []string{
		"contact", "contacts", "kontakt", "kontakty", "impressum",
	}
	aboutPageMarkers = []string{
		"about", "o nas", "o firmie", "chi siamo",
	}
)

// engagementScore inspects the source text for page role markers.
// Product/service pages rank highest: an address published next to the
// product line belongs to someone close to the business.
func engagementScore(sourceText string) float64 {
	text := normalize(sourceText)
	if text == "" {
		return EngagementUnknown
	}

	if matchAnyMarker(text, productPageMarkers) {
		return EngagementProductPage
	}
	if matchAnyMarker(text, contactPageMarkers) {
		return EngagementContactPage
	}
	if matchAnyMarker(text, aboutPageMarkers) {
		return EngagementAboutPage
	}
	return EngagementUnknown
}

func matchAnyMarker(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(m, " ") {
			if strings.Contains(text, m) {
				return true
			}
			continue
		}
		if containsWholeWord(text, m) {
			return true
		}
	}
	return false
}
