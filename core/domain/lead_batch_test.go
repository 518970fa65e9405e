package domain

import "testing"

func TestTierTargetRangesCoverValidTiers(t *testing.T) {
	for tier := range ValidTiers {
		if _, ok := TierTargetRanges[tier]; !ok {
			t.Errorf("no target range for tier %v", tier)
		}
	}
	for tier := range TierTargetRanges {
		if !ValidTiers[tier] {
			t.Errorf("target range for unknown tier %v", tier)
		}
	}
}

func TestBatchSummaryPercentage(t *testing.T) {
	s := BatchSummary{Total: 110, High: 5, Medium: 15, Low: 70, Excluded: 10, Skipped: 10}

	tests := []struct {
		tier PriorityTier
		want float64
	}{
		{TierHigh, 5},
		{TierMedium, 15},
		{TierLow, 70},
		{TierExcluded, 10},
	}
	for _, tt := range tests {
		if got := s.Percentage(tt.tier); got != tt.want {
			t.Errorf("Percentage(%v) = %v, want %v", tt.tier, got, tt.want)
		}
	}

	empty := BatchSummary{}
	if got := empty.Percentage(TierHigh); got != 0 {
		t.Errorf("Percentage on empty summary = %v, want 0", got)
	}
}

func TestBatchSummaryOutOfTargetRange(t *testing.T) {
	// All shares inside the documented guidance ranges.
	healthy := BatchSummary{Total: 100, High: 5, Medium: 15, Low: 65, Excluded: 15}
	for _, tier := range []PriorityTier{TierHigh, TierMedium, TierLow, TierExcluded} {
		if healthy.OutOfTargetRange(tier) {
			t.Errorf("healthy summary: OutOfTargetRange(%v) = true, pct=%v", tier, healthy.Percentage(tier))
		}
	}

	// Everything HIGH means HIGH and LOW shares are both off.
	skewed := BatchSummary{Total: 100, High: 100}
	if !skewed.OutOfTargetRange(TierHigh) {
		t.Error("skewed summary: HIGH share should be out of range")
	}
	if !skewed.OutOfTargetRange(TierLow) {
		t.Error("skewed summary: LOW share should be out of range")
	}
}

func TestBatchResultPartition(t *testing.T) {
	reason := ExclusionPersonalDomain
	b := BatchResult{
		Results: []*ClassificationResult{
			{Record: EmailRecord{Address: "a@x.pl"}, Tier: TierHigh},
			{Record: EmailRecord{Address: "b@x.pl"}, Tier: TierLow},
			{Record: EmailRecord{Address: "c@gmail.com"}, Tier: TierExcluded, ExclusionReason: &reason},
			{Record: EmailRecord{Address: "d@x.pl"}, Tier: TierHigh},
			{Record: EmailRecord{Address: "e@x.pl"}, Tier: TierExcluded}, // score-based
		},
	}

	high := b.Partition(TierHigh)
	if len(high) != 2 || high[0].Record.Address != "a@x.pl" || high[1].Record.Address != "d@x.pl" {
		t.Errorf("Partition(HIGH) = %d results, want a@x.pl then d@x.pl", len(high))
	}

	// Hard exclusions carry a reason; score-based EXCLUDED entries do not.
	hard := b.HardExclusions()
	if len(hard) != 1 || hard[0].Record.Address != "c@gmail.com" {
		t.Fatalf("HardExclusions() = %+v, want only c@gmail.com", hard)
	}
	if len(b.Partition(TierExcluded)) != 2 {
		t.Errorf("Partition(EXCLUDED) should include score-based exclusions too")
	}
}
