package confidence

import (
	"fmt"
	"strings"

	"marksweep/internal/config"
)

// Tier is a named confidence band.
type Tier string

const (
	TierVeryHigh Tier = "very-high"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierActive   Tier = "active"
)

// Recommendation is the action a tier drives.
type Recommendation string

const (
	RecSafeToClose  Recommendation = "safe-to-close"
	RecNeedsReview  Recommendation = "needs-review"
	RecVerifyStatus Recommendation = "verify-status"
	RecKeepFlagged  Recommendation = "keep-flagged"
	RecKeepActive   Recommendation = "keep-active"
)

// ParseTier parses a tier name.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(s) {
	case "very-high":
		return TierVeryHigh, nil
	case "high":
		return TierHigh, nil
	case "medium":
		return TierMedium, nil
	case "low":
		return TierLow, nil
	case "active":
		return TierActive, nil
	}
	return "", fmt.Errorf("unknown tier %q (very-high, high, medium, low, active)", s)
}

// Rank orders tiers for comparison; higher means more likely complete.
func (t Tier) Rank() int {
	switch t {
	case TierVeryHigh:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// Recommendation returns the action associated with a tier.
func (t Tier) Recommendation() Recommendation {
	switch t {
	case TierVeryHigh:
		return RecSafeToClose
	case TierHigh:
		return RecNeedsReview
	case TierMedium:
		return RecVerifyStatus
	case TierLow:
		return RecKeepFlagged
	default:
		return RecKeepActive
	}
}

// Classify maps a score to its tier. Band lower bounds are inclusive, so a
// score sitting exactly on a boundary belongs to the higher tier. Classify
// is a pure function of the score; it never re-inspects evidence.
func Classify(score float64, thresholds config.ThresholdsConfig) Tier {
	switch {
	case score >= thresholds.VeryHigh:
		return TierVeryHigh
	case score >= thresholds.High:
		return TierHigh
	case score >= thresholds.Medium:
		return TierMedium
	case score >= thresholds.Low:
		return TierLow
	default:
		return TierActive
	}
}
