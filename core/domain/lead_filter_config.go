package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Weights are the fixed fusion weights of the four sub-scores.
// They are expected to sum to 1.0; the loader warns when they do not.
type Weights struct {
	EmailQuality       float64 `yaml:"emailQuality" json:"email_quality"`
	CompanyRelevance   float64 `yaml:"companyRelevance" json:"company_relevance"`
	GeographicPriority float64 `yaml:"geographicPriority" json:"geographic_priority"`
	Engagement         float64 `yaml:"engagement" json:"engagement"`
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.EmailQuality + w.CompanyRelevance + w.GeographicPriority + w.Engagement
}

// Thresholds classify the final score into tiers. Ascending:
// exclude < lowPriority < mediumPriority < highPriority.
// Exclude defaults to 0 when omitted.
type Thresholds struct {
	HighPriority   float64 `yaml:"highPriority" json:"high_priority"`
	MediumPriority float64 `yaml:"mediumPriority" json:"medium_priority"`
	LowPriority    float64 `yaml:"lowPriority" json:"low_priority"`
	Exclude        float64 `yaml:"exclude" json:"exclude"`
}

// BonusMultipliers are independently-triggered multiplicative factors.
// Bonuses compound; a zero value means "not configured" and is treated as 1.0.
type BonusMultipliers struct {
	OEMManufacturer float64 `yaml:"oemManufacturer" json:"oem_manufacturer"`
	GeographyHigh   float64 `yaml:"geographyHigh" json:"geography_high"`
	GeographyMedium float64 `yaml:"geographyMedium" json:"geography_medium"`
	DomainMatch     float64 `yaml:"domainMatch" json:"domain_match"`
}

// HardExclusions configures the terminal pre-scoring checks.
// All keyword sets are tagged data: language tag -> term list, so a market
// like Switzerland can carry de/fr/it/en lists without special casing.
type HardExclusions struct {
	PersonalDomains        []string            `yaml:"personalDomains" json:"personal_domains"`
	HRPrefixes             map[string][]string `yaml:"hrPrefixes" json:"hr_prefixes"` // language -> local-part prefixes
	ExcludedCountryDomains []string            `yaml:"excludedCountryDomains" json:"excluded_country_domains"`
	ExcludedCities         []string            `yaml:"excludedCities" json:"excluded_cities"`
	SuspiciousPatterns     []string            `yaml:"suspiciousPatterns" json:"suspicious_patterns"`
	// industry name -> language -> terms
	ExcludedIndustries map[string]map[string][]string `yaml:"excludedIndustries" json:"excluded_industries"`
}

// IndustryKeywords are the relevance keyword sets, language-tagged.
type IndustryKeywords struct {
	Primary          map[string][]string `yaml:"primary" json:"primary"`
	Secondary        map[string][]string `yaml:"secondary" json:"secondary"`
	OEMIndicators    map[string][]string `yaml:"oemIndicators" json:"oem_indicators"`
	NegativeKeywords map[string][]string `yaml:"negativeKeywords" json:"negative_keywords"`
}

// Geographic lists country names, TLDs and city names per priority level.
// Entries starting with '.' (or bare 2-letter codes) match domain suffixes,
// everything else matches as a whole word in the record text.
type Geographic struct {
	PriorityHigh   []string `yaml:"priorityHigh" json:"priority_high"`
	PriorityMedium []string `yaml:"priorityMedium" json:"priority_medium"`
}

// DomainPatterns configures direct domain relevance signals.
type DomainPatterns struct {
	RelevantPatterns []string `yaml:"relevantPatterns" json:"relevant_patterns"`
	HighValueDomains []string `yaml:"highValueDomains" json:"high_value_domains"`
}

// FilterConfiguration is the full, immutable market configuration.
// One instance is loaded per run and shared read-only across workers.
// A reload produces a new instance; in-flight batches keep the old one.
type FilterConfiguration struct {
	Market string `yaml:"market" json:"market"` // e.g. "pl-powder-metallurgy"

	Weights          Weights          `yaml:"weights" json:"weights"`
	Thresholds       Thresholds       `yaml:"thresholds" json:"thresholds"`
	BonusMultipliers BonusMultipliers `yaml:"bonusMultipliers" json:"bonus_multipliers"`
	HardExclusions   HardExclusions   `yaml:"hardExclusions" json:"hard_exclusions"`
	IndustryKeywords IndustryKeywords `yaml:"industryKeywords" json:"industry_keywords"`
	Geographic       Geographic       `yaml:"geographic" json:"geographic"`
	DomainPatterns   DomainPatterns   `yaml:"domainPatterns" json:"domain_patterns"`

	// Compiled at load time, never per record
	suspiciousRegexps []*regexp.Regexp
	personalDomains   map[string]struct{}
	compiled          bool
}

const weightSumTolerance = 1e-6

// Validate checks structural constraints. It does not compile patterns;
// call Compile afterwards. Field paths in errors use the YAML key names.
func (c *FilterConfiguration) Validate() error {
	if c.Weights.EmailQuality < 0 || c.Weights.CompanyRelevance < 0 ||
		c.Weights.GeographicPriority < 0 || c.Weights.Engagement < 0 {
		return fmt.Errorf("weights: all weights must be non-negative")
	}
	if c.Weights.Sum() <= 0 {
		return fmt.Errorf("weights: weight sum must be positive")
	}

	t := c.Thresholds
	if t.HighPriority <= t.MediumPriority {
		return fmt.Errorf("thresholds.highPriority: must be greater than mediumPriority (%v <= %v)", t.HighPriority, t.MediumPriority)
	}
	if t.MediumPriority <= t.LowPriority {
		return fmt.Errorf("thresholds.mediumPriority: must be greater than lowPriority (%v <= %v)", t.MediumPriority, t.LowPriority)
	}
	if t.Exclude < 0 || t.Exclude >= t.LowPriority {
		return fmt.Errorf("thresholds.exclude: must be in [0, lowPriority) (got %v)", t.Exclude)
	}

	for name, factor := range map[string]float64{
		"bonusMultipliers.oemManufacturer": c.BonusMultipliers.OEMManufacturer,
		"bonusMultipliers.geographyHigh":   c.BonusMultipliers.GeographyHigh,
		"bonusMultipliers.geographyMedium": c.BonusMultipliers.GeographyMedium,
		"bonusMultipliers.domainMatch":     c.BonusMultipliers.DomainMatch,
	} {
		if factor < 0 {
			return fmt.Errorf("%s: multiplier must not be negative (got %v)", name, factor)
		}
	}

	for _, w := range []float64{c.Weights.EmailQuality, c.Weights.CompanyRelevance, c.Weights.GeographicPriority, c.Weights.Engagement} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weights: weight must be a finite number")
		}
	}

	return nil
}

// WeightSumOK reports whether the weights sum to 1.0 within tolerance.
// A deviation is a warning at load time, not an error.
func (c *FilterConfiguration) WeightSumOK() bool {
	return math.Abs(c.Weights.Sum()-1.0) <= weightSumTolerance
}

// Compile pre-compiles suspicious patterns and lower-cases lookup sets.
// Fails fast on an invalid regex so no per-record compile can ever fail.
func (c *FilterConfiguration) Compile() error {
	c.suspiciousRegexps = make([]*regexp.Regexp, 0, len(c.HardExclusions.SuspiciousPatterns))
	for i, pattern := range c.HardExclusions.SuspiciousPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("hardExclusions.suspiciousPatterns[%d]: invalid pattern %q: %w", i, pattern, err)
		}
		c.suspiciousRegexps = append(c.suspiciousRegexps, re)
	}

	c.personalDomains = make(map[string]struct{}, len(c.HardExclusions.PersonalDomains))
	for _, d := range c.HardExclusions.PersonalDomains {
		c.personalDomains[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}

	c.compiled = true
	return nil
}

// Compiled reports whether Compile has run.
func (c *FilterConfiguration) Compiled() bool {
	return c.compiled
}

// SuspiciousRegexps returns the pre-compiled suspicious address patterns.
func (c *FilterConfiguration) SuspiciousRegexps() []*regexp.Regexp {
	return c.suspiciousRegexps
}

// IsPersonalDomain reports whether domain is a configured personal/free provider.
func (c *FilterConfiguration) IsPersonalDomain(domain string) bool {
	_, ok := c.personalDomains[strings.ToLower(strings.TrimSpace(domain))]
	return ok
}

// EffectiveBonus returns factor, substituting 1.0 for unconfigured (zero) values.
func EffectiveBonus(factor float64) float64 {
	if factor == 0 {
		return 1.0
	}
	return factor
}
