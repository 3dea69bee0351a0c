package confidence

import "math"

// Aggregation constants. Same-kind repeats confirm a signal without letting
// one noisy extractor dominate: the strongest piece counts fully, the rest
// contribute a fraction, and a kind can never exceed 1.3x its strongest
// piece.
const (
	repeatFactor = 0.3
	repeatCap    = 1.3
)

// AggregateScore combines all evidence for one marker into a 0-100 score.
//
// Per kind: contribution = max + repeatFactor*(sum of the rest), capped at
// repeatCap*max. The capped per-kind totals are summed and squashed through
// 100*(1-exp(-total)), then rounded to one decimal. The result is monotone:
// adding any evidence with positive weight never lowers the score. Empty
// evidence is exactly 0.
func AggregateScore(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}

	groups := make(map[EvidenceKind][]float64)
	var order []EvidenceKind
	for _, ev := range evidence {
		if _, seen := groups[ev.Kind]; !seen {
			order = append(order, ev.Kind)
		}
		groups[ev.Kind] = append(groups[ev.Kind], ev.Weight)
	}

	// Summation follows first-seen kind order so identical evidence always
	// produces bit-identical scores.
	var total float64
	for _, kind := range order {
		total += kindContribution(groups[kind])
	}

	score := 100 * (1 - math.Exp(-total))
	return math.Round(score*10) / 10
}

func kindContribution(weights []float64) float64 {
	var max, sum float64
	for _, w := range weights {
		sum += w
		if w > max {
			max = w
		}
	}

	contribution := max + (sum-max)*repeatFactor
	if limit := max * repeatCap; contribution > limit {
		contribution = limit
	}
	return contribution
}

// Reasons returns the evidence descriptions in their stable collection
// order, for auditability of a result.
func Reasons(evidence []Evidence) []string {
	if len(evidence) == 0 {
		return nil
	}
	out := make([]string, len(evidence))
	for i, ev := range evidence {
		out[i] = ev.Description
	}
	return out
}
