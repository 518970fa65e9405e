// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"sort"
	"strings"

	"leadfilter/core/domain"
)

// =============================================================================
// Hard Exclusion Filter
// =============================================================================

// reservedServicePrefixes are always-on service mailbox prefixes, checked
// regardless of the configured per-language HR prefixes.
var reservedServicePrefixes = []string{
	"noreply",
	"no-reply",
	"donotreply",
	"do-not-reply",
	"postmaster",
	"mailer-daemon",
	"admin",
	"administrator",
	"webmaster",
	"hostmaster",
	"abuse",
	"root",
}

// ExclusionMatch is the outcome of a hard exclusion: the reason plus the
// concrete term, suffix or pattern that matched, for the exclusion report.
type ExclusionMatch struct {
	Reason domain.ExclusionReason
	Rule   string
}

// ExclusionFilter runs the ordered chain of terminal pre-scoring checks.
// The first matching check wins and short-circuits the rest. The filter is
// a pure function of (record, config); it never errors and it never scores —
// absence of a match means "not excluded here", ambiguity included.
type ExclusionFilter struct{}

// NewExclusionFilter creates a new hard exclusion filter.
func NewExclusionFilter() *ExclusionFilter {
	return &ExclusionFilter{}
}

// Evaluate applies the checks in fixed order:
//
//	1. personal domain
//	2. HR/service local-part prefix
//	3. excluded geography (country domain suffix or city name)
//	4. suspicious local-part pattern
//	5. excluded industry term
//
// Returns nil when no check matches.
func (f *ExclusionFilter) Evaluate(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	if m := f.checkPersonalDomain(record, cfg); m != nil {
		return m
	}
	if m := f.checkServicePrefix(record, cfg); m != nil {
		return m
	}
	if m := f.checkExcludedGeography(record, cfg); m != nil {
		return m
	}
	if m := f.checkSuspiciousPattern(record, cfg); m != nil {
		return m
	}
	return f.checkExcludedIndustry(record, cfg)
}

// checkPersonalDomain matches the email domain against the configured
// free/personal provider set.
func (f *ExclusionFilter) checkPersonalDomain(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	if cfg.IsPersonalDomain(record.Domain) {
		return &ExclusionMatch{
			Reason: domain.ExclusionPersonalDomain,
			Rule:   normalize(record.Domain),
		}
	}
	return nil
}

// checkServicePrefix matches the local part against the per-language HR
// prefixes (union across all configured languages) and the always-on
// reserved service prefixes.
func (f *ExclusionFilter) checkServicePrefix(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	local := record.LocalPart()
	if local == "" {
		return nil
	}

	for _, lang := range sortedLanguages(cfg.HardExclusions.HRPrefixes) {
		for _, prefix := range cfg.HardExclusions.HRPrefixes[lang] {
			p := normalize(prefix)
			if p != "" && strings.HasPrefix(local, p) {
				return &ExclusionMatch{Reason: domain.ExclusionHRPrefix, Rule: p}
			}
		}
	}

	for _, prefix := range reservedServicePrefixes {
		if strings.HasPrefix(local, prefix) {
			return &ExclusionMatch{Reason: domain.ExclusionHRPrefix, Rule: prefix}
		}
	}

	return nil
}

// checkExcludedGeography matches the domain against excluded country
// suffixes, and the company name / source text against excluded city names
// as whole words.
func (f *ExclusionFilter) checkExcludedGeography(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	emailDomain := normalize(record.Domain)
	for _, suffix := range cfg.HardExclusions.ExcludedCountryDomains {
		if domainSuffixMatch(emailDomain, suffix) {
			return &ExclusionMatch{Reason: domain.ExclusionGeography, Rule: normalize(suffix)}
		}
	}

	text := normalize(record.CompanyName) + " " + normalize(record.SourceText)
	for _, city := range cfg.HardExclusions.ExcludedCities {
		c := normalize(city)
		if c != "" && containsWholeWord(text, c) {
			return &ExclusionMatch{Reason: domain.ExclusionGeography, Rule: c}
		}
	}

	return nil
}

// checkSuspiciousPattern matches the local part against the pre-compiled
// suspicious address patterns (hex runs, non-Latin scripts, etc.).
func (f *ExclusionFilter) checkSuspiciousPattern(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	local := record.LocalPart()
	for _, re := range cfg.SuspiciousRegexps() {
		if re.MatchString(local) {
			return &ExclusionMatch{Reason: domain.ExclusionSuspiciousPattern, Rule: re.String()}
		}
	}
	return nil
}

// checkExcludedIndustry matches every language's term list of every excluded
// industry against the combined company name and source text.
func (f *ExclusionFilter) checkExcludedIndustry(record *domain.EmailRecord, cfg *domain.FilterConfiguration) *ExclusionMatch {
	if len(cfg.HardExclusions.ExcludedIndustries) == 0 {
		return nil
	}

	text := normalize(record.CompanyName) + " " + normalize(record.SourceText)

	industries := make([]string, 0, len(cfg.HardExclusions.ExcludedIndustries))
	for name := range cfg.HardExclusions.ExcludedIndustries {
		industries = append(industries, name)
	}
	sort.Strings(industries)

	for _, industry := range industries {
		byLang := cfg.HardExclusions.ExcludedIndustries[industry]
		for _, lang := range sortedLanguages(byLang) {
			for _, term := range byLang[lang] {
				t := normalize(term)
				if t != "" && strings.Contains(text, t) {
					return &ExclusionMatch{Reason: domain.ExclusionIndustry, Rule: industry + ":" + t}
				}
			}
		}
	}

	return nil
}
