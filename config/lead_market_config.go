package config

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"leadfilter/core/domain"
	"leadfilter/pkg/apperr"
)

// requiredMarketKeys are the top-level keys every market document must carry.
// A missing key is a fatal configuration error, reported before any record
// is processed.
var requiredMarketKeys = []string{
	"weights",
	"thresholds",
	"bonusMultipliers",
	"hardExclusions",
	"industryKeywords",
	"geographic",
	"domainPatterns",
}

// LoadMarketConfig reads, parses, validates and compiles one market
// configuration document. Every call returns a fresh instance: a reload for
// a new batch never mutates a configuration an in-flight batch still uses.
func LoadMarketConfig(path string, log zerolog.Logger) (*domain.FilterConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigValidation, "cannot read market configuration").
			WithDetail("path", path)
	}
	return ParseMarketConfig(data, log)
}

// ParseMarketConfig parses and validates a market document from raw YAML.
// All suspicious patterns are compiled here, failing fast on an invalid
// regex instead of per record.
func ParseMarketConfig(data []byte, log zerolog.Logger) (*domain.FilterConfiguration, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigValidation, "malformed market configuration")
	}
	for _, key := range requiredMarketKeys {
		if _, ok := raw[key]; !ok {
			return nil, apperr.MissingField(key)
		}
	}

	cfg := &domain.FilterConfiguration{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigValidation, "malformed market configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigValidation, "invalid market configuration")
	}
	if err := cfg.Compile(); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigValidation, "invalid market configuration")
	}

	if !cfg.WeightSumOK() {
		log.Warn().
			Str("market", cfg.Market).
			Float64("weight_sum", cfg.Weights.Sum()).
			Msg("weights do not sum to 1.0; scores will be scaled accordingly")
	}

	return cfg, nil
}
