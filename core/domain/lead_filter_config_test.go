package domain

import (
	"math"
	"strings"
	"testing"
)

func validConfig() *FilterConfiguration {
	return &FilterConfiguration{
		Market:     "pl-powder-metallurgy",
		Weights:    Weights{EmailQuality: 0.10, CompanyRelevance: 0.45, GeographicPriority: 0.30, Engagement: 0.15},
		Thresholds: Thresholds{HighPriority: 100, MediumPriority: 50, LowPriority: 10},
		BonusMultipliers: BonusMultipliers{
			OEMManufacturer: 1.3, GeographyHigh: 2.0, GeographyMedium: 1.1, DomainMatch: 1.5,
		},
		HardExclusions: HardExclusions{
			PersonalDomains:    []string{"Gmail.com", " yahoo.com "},
			SuspiciousPatterns: []string{`^[0-9a-f]{12,}$`},
		},
	}
}

func TestFilterConfigurationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FilterConfiguration)
		wantErr string
	}{
		{"valid", func(*FilterConfiguration) {}, ""},
		{
			name:    "negative weight",
			mutate:  func(c *FilterConfiguration) { c.Weights.EmailQuality = -0.1 },
			wantErr: "non-negative",
		},
		{
			name: "zero weight sum",
			mutate: func(c *FilterConfiguration) {
				c.Weights = Weights{}
			},
			wantErr: "sum must be positive",
		},
		{
			name:    "nan weight",
			mutate:  func(c *FilterConfiguration) { c.Weights.Engagement = math.NaN() },
			wantErr: "finite",
		},
		{
			name:    "high below medium",
			mutate:  func(c *FilterConfiguration) { c.Thresholds.HighPriority = 40 },
			wantErr: "highPriority",
		},
		{
			name:    "medium equals low",
			mutate:  func(c *FilterConfiguration) { c.Thresholds.MediumPriority = 10 },
			wantErr: "mediumPriority",
		},
		{
			name:    "exclude above low",
			mutate:  func(c *FilterConfiguration) { c.Thresholds.Exclude = 15 },
			wantErr: "exclude",
		},
		{
			name:    "negative bonus",
			mutate:  func(c *FilterConfiguration) { c.BonusMultipliers.DomainMatch = -1 },
			wantErr: "multiplier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestFilterConfigurationCompile(t *testing.T) {
	cfg := validConfig()
	if cfg.Compiled() {
		t.Fatal("Compiled() = true before Compile")
	}
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile() = %v", err)
	}
	if !cfg.Compiled() {
		t.Error("Compiled() = false after Compile")
	}
	if got := len(cfg.SuspiciousRegexps()); got != 1 {
		t.Errorf("compiled patterns = %d, want 1", got)
	}

	// Personal domain lookup is normalized on both sides.
	for _, d := range []string{"gmail.com", "GMAIL.COM", " yahoo.com"} {
		if !cfg.IsPersonalDomain(d) {
			t.Errorf("IsPersonalDomain(%q) = false, want true", d)
		}
	}
	if cfg.IsPersonalDomain("example.com") {
		t.Error("IsPersonalDomain(example.com) = true, want false")
	}
}

// TestFilterConfigurationCompileInvalidRegex verifies an invalid suspicious
// pattern fails at load time, not per record.
func TestFilterConfigurationCompileInvalidRegex(t *testing.T) {
	cfg := validConfig()
	cfg.HardExclusions.SuspiciousPatterns = append(cfg.HardExclusions.SuspiciousPatterns, `([unclosed`)

	err := cfg.Compile()
	if err == nil {
		t.Fatal("Compile() = nil, want error for invalid pattern")
	}
	if !strings.Contains(err.Error(), "suspiciousPatterns[1]") {
		t.Errorf("error = %q, want the offending index in the field path", err)
	}
}

func TestWeightSumOK(t *testing.T) {
	cfg := validConfig()
	if !cfg.WeightSumOK() {
		t.Errorf("WeightSumOK() = false for sum %v", cfg.Weights.Sum())
	}
	cfg.Weights.Engagement = 0.25
	if cfg.WeightSumOK() {
		t.Errorf("WeightSumOK() = true for sum %v", cfg.Weights.Sum())
	}
}

func TestEffectiveBonus(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 1.0},
		{1.0, 1.0},
		{1.3, 1.3},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		if got := EffectiveBonus(tt.in); got != tt.want {
			t.Errorf("EffectiveBonus(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
