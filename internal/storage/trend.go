package storage

import "math"

// Trend describes how reduction potential moves across runs.
type Trend struct {
	// Direction is increasing, decreasing, or stable.
	Direction string `json:"direction"`

	// Velocity is percentage points of reduction potential per day, from a
	// linear regression over the runs.
	Velocity float64 `json:"velocity"`

	// DataPoints is the number of runs the trend was computed from.
	DataPoints int `json:"dataPoints"`
}

// CalculateTrend computes a trend from runs ordered newest first, as
// ListRuns returns them. Fewer than two runs is stable by definition.
func CalculateTrend(runs []Run) Trend {
	if len(runs) < 2 {
		return Trend{Direction: "stable", DataPoints: len(runs)}
	}

	// Regress reduction potential against days since the oldest run.
	oldest := runs[len(runs)-1]
	var sumX, sumY, sumXY, sumX2 float64
	n := float64(len(runs))
	for _, r := range runs {
		x := r.CreatedAt.Sub(oldest.CreatedAt).Hours() / 24
		y := r.ReductionPotential
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	var velocity float64
	denominator := n*sumX2 - sumX*sumX
	if denominator != 0 {
		velocity = (n*sumXY - sumX*sumY) / denominator
	}

	direction := "stable"
	if velocity > 0.01 {
		direction = "increasing"
	} else if velocity < -0.01 {
		direction = "decreasing"
	}

	return Trend{
		Direction:  direction,
		Velocity:   math.Round(velocity*100) / 100,
		DataPoints: len(runs),
	}
}
