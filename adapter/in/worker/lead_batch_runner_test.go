package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"leadfilter/core/domain"
	"leadfilter/core/service/classification"
	"leadfilter/pkg/apperr"
)

func runnerConfig(t *testing.T) *domain.FilterConfiguration {
	t.Helper()
	cfg := &domain.FilterConfiguration{
		Market:     "pl-powder-metallurgy",
		Weights:    domain.Weights{EmailQuality: 0.10, CompanyRelevance: 0.45, GeographicPriority: 0.30, Engagement: 0.15},
		Thresholds: domain.Thresholds{HighPriority: 100, MediumPriority: 50, LowPriority: 10},
		BonusMultipliers: domain.BonusMultipliers{
			OEMManufacturer: 1.3, GeographyHigh: 2.0, GeographyMedium: 1.1, DomainMatch: 1.5,
		},
		HardExclusions: domain.HardExclusions{
			PersonalDomains: []string{"gmail.com"},
		},
		IndustryKeywords: domain.IndustryKeywords{
			Primary:       map[string][]string{"en": {"powder", "metal", "sintered"}},
			OEMIndicators: map[string][]string{"pl": {"producent"}},
		},
		Geographic: domain.Geographic{
			PriorityHigh:   []string{"pl"},
			PriorityMedium: []string{"cz"},
		},
		DomainPatterns: domain.DomainPatterns{
			RelevantPatterns: []string{"metal"},
		},
	}
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	return cfg
}

func newRunner(workers int) *BatchRunner {
	return NewBatchRunner(classification.NewPipeline(zerolog.Nop()), workers, zerolog.Nop())
}

func TestBatchRunnerRun(t *testing.T) {
	cfg := runnerConfig(t)
	r := newRunner(4)

	records := []*domain.EmailRecord{
		{Address: "info@polishpowdermetals.pl", Domain: "polishpowdermetals.pl", CompanyName: "Polish Powder Metals", SourceText: "producent produkty"},
		{Address: "info@gmail.com", Domain: "gmail.com"},
		{Address: "sales@czechmetal.cz", Domain: "czechmetal.cz", CompanyName: "Czech Metal"},
		{Address: "contact@unrelated.fr", Domain: "unrelated.fr", CompanyName: "Boulangerie"},
	}

	result, err := r.Run(context.Background(), records, cfg)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if result.Summary.Total != len(records) {
		t.Errorf("total = %d, want %d", result.Summary.Total, len(records))
	}
	if result.Summary.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", result.Summary.Skipped)
	}
	if len(result.Results) != len(records) {
		t.Fatalf("results = %d, want %d", len(result.Results), len(records))
	}

	// Input order survives parallel execution.
	for i, res := range result.Results {
		if res.Record.Address != records[i].Address {
			t.Errorf("result[%d] = %s, want %s", i, res.Record.Address, records[i].Address)
		}
	}

	if result.Results[0].Tier != domain.TierHigh {
		t.Errorf("polishpowdermetals tier = %v, want HIGH", result.Results[0].Tier)
	}
	if !result.Results[1].HardExcluded() {
		t.Errorf("gmail record not hard-excluded: %+v", result.Results[1])
	}

	counted := result.Summary.High + result.Summary.Medium + result.Summary.Low + result.Summary.Excluded
	if counted != result.Summary.Total {
		t.Errorf("tier counts sum to %d, want total %d", counted, result.Summary.Total)
	}
}

// TestBatchRunnerOrderPreservation runs a larger batch on many workers and
// verifies output order is exactly input order.
func TestBatchRunnerOrderPreservation(t *testing.T) {
	cfg := runnerConfig(t)
	r := newRunner(8)

	records := make([]*domain.EmailRecord, 200)
	for i := range records {
		records[i] = &domain.EmailRecord{
			Address: fmt.Sprintf("info@company%03d.pl", i),
			Domain:  fmt.Sprintf("company%03d.pl", i),
		}
	}

	result, err := r.Run(context.Background(), records, cfg)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(result.Results) != len(records) {
		t.Fatalf("results = %d, want %d", len(result.Results), len(records))
	}
	for i, res := range result.Results {
		if res.Record.Address != records[i].Address {
			t.Fatalf("order broken at %d: got %s, want %s", i, res.Record.Address, records[i].Address)
		}
	}
}

// TestBatchRunnerSkipsInvalidRecords verifies invalid records surface as
// skips without failing the batch or shifting the order of the rest.
func TestBatchRunnerSkipsInvalidRecords(t *testing.T) {
	cfg := runnerConfig(t)
	r := newRunner(4)

	records := []*domain.EmailRecord{
		{Address: "info@firma.pl", Domain: "firma.pl"},
		{Address: "", Domain: "broken.pl"},
		{Address: "no-domain@", Domain: ""},
		{Address: "sales@firma.cz", Domain: "firma.cz"},
	}

	result, err := r.Run(context.Background(), records, cfg)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if result.Summary.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2: %+v", result.Summary.Skipped, result.Skipped)
	}
	if len(result.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(result.Results))
	}
	if result.Results[0].Record.Address != "info@firma.pl" || result.Results[1].Record.Address != "sales@firma.cz" {
		t.Errorf("surviving records out of order: %s, %s",
			result.Results[0].Record.Address, result.Results[1].Record.Address)
	}

	indexes := map[int]bool{}
	for _, s := range result.Skipped {
		indexes[s.Index] = true
		if s.Reason == "" {
			t.Errorf("skip %d has no reason", s.Index)
		}
	}
	if !indexes[1] || !indexes[2] {
		t.Errorf("skipped indexes = %v, want 1 and 2", result.Skipped)
	}
}

func TestBatchRunnerEmptyBatch(t *testing.T) {
	cfg := runnerConfig(t)
	r := newRunner(2)

	result, err := r.Run(context.Background(), nil, cfg)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if result.Summary.Total != 0 || len(result.Results) != 0 {
		t.Errorf("empty batch produced %+v", result.Summary)
	}
}

func TestBatchRunnerRejectsBadConfig(t *testing.T) {
	r := newRunner(2)

	if _, err := r.Run(context.Background(), nil, nil); !apperr.HasCode(err, apperr.CodeInvalidInput) {
		t.Errorf("nil config error = %v, want INVALID_INPUT", err)
	}

	uncompiled := &domain.FilterConfiguration{}
	if _, err := r.Run(context.Background(), nil, uncompiled); !apperr.HasCode(err, apperr.CodeInvalidInput) {
		t.Errorf("uncompiled config error = %v, want INVALID_INPUT", err)
	}
}
