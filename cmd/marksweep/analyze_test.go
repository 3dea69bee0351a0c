package main

import (
	"testing"

	"marksweep/internal/confidence"
)

func TestFilterByTier(t *testing.T) {
	results := []confidence.ConfidenceResult{
		{Tier: confidence.TierVeryHigh},
		{Tier: confidence.TierHigh},
		{Tier: confidence.TierMedium},
		{Tier: confidence.TierActive},
	}

	if got := filterByTier(results, confidence.TierHigh); len(got) != 2 {
		t.Errorf("high filter kept %d results, want 2", len(got))
	}
	if got := filterByTier(results, confidence.TierMedium); len(got) != 3 {
		t.Errorf("medium filter kept %d results, want 3", len(got))
	}
	if got := filterByTier(results, confidence.TierActive); len(got) != 4 {
		t.Errorf("active filter kept %d results, want 4", len(got))
	}
}

func TestMinTierFlagRejectsUnknownTier(t *testing.T) {
	if _, err := confidence.ParseTier("bogus"); err == nil {
		t.Error("Expected an error for an unknown tier name")
	}
	if tier, err := confidence.ParseTier("Very-High"); err != nil || tier != confidence.TierVeryHigh {
		t.Errorf("Expected case-insensitive parse, got %v %v", tier, err)
	}
}
