// Package classification implements the lead-quality classification pipeline.
package classification

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"leadfilter/core/domain"
)

// normalize lower-cases and trims a term or field for matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// searchText builds the combined lower-cased haystack used by the relevance
// matcher and the geographic prioritizer: company name, source text, and the
// tokens of both domains. Domain tokens are split on '.' and '-' so that
// "polishpowdermetals.pl" also contributes "pl" as a standalone token.
func searchText(r *domain.EmailRecord) string {
	var b strings.Builder
	b.WriteString(normalize(r.CompanyName))
	b.WriteByte(' ')
	b.WriteString(normalize(r.SourceText))
	b.WriteByte(' ')
	b.WriteString(domainTokens(r.Domain))
	if r.WebDomain != "" && !strings.EqualFold(r.WebDomain, r.Domain) {
		b.WriteByte(' ')
		b.WriteString(domainTokens(r.WebDomain))
	}
	return b.String()
}

// domainTokens returns the lower-cased domain plus its dot/dash separated parts.
func domainTokens(d string) string {
	d = normalize(d)
	if d == "" {
		return ""
	}
	parts := strings.FieldsFunc(d, func(r rune) bool {
		return r == '.' || r == '-'
	})
	return d + " " + strings.Join(parts, " ")
}

// containsWholeWord reports whether term occurs in text with word boundaries
// on both sides. Both arguments must already be lower-cased. A multi-word
// term ("czech republic") matches as a phrase.
func containsWholeWord(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(text, i) && boundaryAfter(text, i+len(term)) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// countOccurrences counts non-overlapping occurrences of term in text.
// Every hit counts; repeated emphasis in source text is a stronger signal.
func countOccurrences(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(text, term)
}

// sortedLanguages returns the language tags of a tagged keyword set in a
// fixed order so matching (and the reported matched term) is deterministic.
func sortedLanguages(set map[string][]string) []string {
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// domainSuffixMatch reports whether domain equals suffix or ends with ".suffix".
// Accepts suffixes with or without a leading dot.
func domainSuffixMatch(domain, suffix string) bool {
	suffix = strings.TrimPrefix(normalize(suffix), ".")
	if suffix == "" {
		return false
	}
	return domain == suffix || strings.HasSuffix(domain, "."+suffix)
}

// domainPatternHit reports whether the record's email or web domain contains
// a relevant pattern or is a configured high-value domain.
func domainPatternHit(r *domain.EmailRecord, cfg *domain.FilterConfiguration) bool {
	emailDomain := normalize(r.Domain)
	webDomain := normalize(r.WebDomain)

	for _, p := range cfg.DomainPatterns.RelevantPatterns {
		pl := normalize(p)
		if pl == "" {
			continue
		}
		if strings.Contains(emailDomain, pl) || (webDomain != "" && strings.Contains(webDomain, pl)) {
			return true
		}
	}
	for _, d := range cfg.DomainPatterns.HighValueDomains {
		dl := normalize(d)
		if dl == "" {
			continue
		}
		if emailDomain == dl || webDomain == dl {
			return true
		}
	}
	return false
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
