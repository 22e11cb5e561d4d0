package simulation

import (
	"VitalSim/internal/domain/models"
	"VitalSim/internal/services/features"
)

// CorrelationEngine rebuilds the pairwise Pearson matrix over the tracked
// signal subset every tick. No partial state survives between ticks.
type CorrelationEngine struct {
	tracked    []string
	minSamples int
}

func NewCorrelationEngine(tracked []string, minSamples int) *CorrelationEngine {
	if minSamples <= 0 {
		minSamples = 5
	}
	return &CorrelationEngine{tracked: tracked, minSamples: minSamples}
}

// Recompute builds a fresh matrix from the signals' rolling histories. Both
// series are truncated to the shorter length, most-recent-aligned. Pairs with
// fewer than minSamples overlapping samples, or with zero variance in either
// series, get coefficient 0 (insufficient-data policy, not an error).
func (e *CorrelationEngine) Recompute(signals map[string]*models.Signal) models.CorrelationMatrix {
	matrix := make(models.CorrelationMatrix, len(e.tracked))
	for _, a := range e.tracked {
		row := make(map[string]float64, len(e.tracked))
		for _, b := range e.tracked {
			if a == b {
				row[b] = 1
				continue
			}
			row[b] = e.pair(signals[a], signals[b])
		}
		matrix[a] = row
	}
	return matrix
}

func (e *CorrelationEngine) pair(a, b *models.Signal) float64 {
	if a == nil || b == nil {
		return 0
	}
	n := len(a.History)
	if len(b.History) < n {
		n = len(b.History)
	}
	if n < e.minSamples {
		return 0
	}
	return features.Pearson(features.Tail(a.History, n), features.Tail(b.History, n))
}
