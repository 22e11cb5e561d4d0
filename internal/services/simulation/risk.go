package simulation

import (
	"math"

	"VitalSim/internal/domain/models"
)

const riskSmoothing = 0.1 // value closes 10% of the gap to target per tick

// riskTerm is one weighted input to a category score: either the absolute
// relative deviation of a signal from its baseline, or the absolute value of
// one correlation coefficient. Weights are on the 0-100 score scale.
type riskTerm struct {
	signal string
	pairA  string
	pairB  string
	weight float64
}

type riskDef struct {
	name    string
	floor   float64
	ceiling float64
	terms   []riskTerm
	factors func(dev func(string) float64, corr func(a, b string) float64) []string
}

// Category definitions. Each combines deviations and correlations for one
// physiological subsystem; each derives two qualitative factor labels.
var riskDefs = []riskDef{
	{
		name: "cardio", floor: 3, ceiling: 95,
		terms: []riskTerm{
			{signal: "heart_rate", weight: 30},
			{signal: "systolic_bp", weight: 25},
			{signal: "hrv", weight: 25},
			{pairA: "heart_rate", pairB: "systolic_bp", weight: 20},
		},
		factors: func(dev func(string) float64, corr func(a, b string) float64) []string {
			f := make([]string, 0, 2)
			if math.Abs(corr("heart_rate", "systolic_bp")) > 0.5 {
				f = append(f, "strong HR/BP coupling")
			} else {
				f = append(f, "stable HR/BP coupling")
			}
			if dev("heart_rate") > 0.08 {
				f = append(f, "heart rate drifting from baseline")
			} else {
				f = append(f, "heart rate near baseline")
			}
			return f
		},
	},
	{
		name: "respiratory", floor: 2, ceiling: 95,
		terms: []riskTerm{
			{signal: "spo2", weight: 35},
			{signal: "resp_rate", weight: 30},
			{signal: "heart_rate", weight: 15},
			{pairA: "spo2", pairB: "resp_rate", weight: 20},
		},
		factors: func(dev func(string) float64, corr func(a, b string) float64) []string {
			f := make([]string, 0, 2)
			if dev("spo2") > 0.02 {
				f = append(f, "SpO2 departing baseline")
			} else {
				f = append(f, "SpO2 stable")
			}
			if math.Abs(corr("spo2", "resp_rate")) > 0.5 {
				f = append(f, "SpO2/RR linked")
			} else {
				f = append(f, "SpO2/RR independent")
			}
			return f
		},
	},
	{
		name: "metabolic", floor: 3, ceiling: 95,
		terms: []riskTerm{
			{signal: "temperature", weight: 30},
			{signal: "heart_rate", weight: 25},
			{signal: "systolic_bp", weight: 20},
			{pairA: "temperature", pairB: "heart_rate", weight: 25},
		},
		factors: func(dev func(string) float64, corr func(a, b string) float64) []string {
			f := make([]string, 0, 2)
			if dev("temperature") > 0.01 {
				f = append(f, "temperature drift")
			} else {
				f = append(f, "temperature stable")
			}
			if math.Abs(corr("temperature", "heart_rate")) > 0.5 {
				f = append(f, "temp/HR coupling")
			} else {
				f = append(f, "temp/HR decoupled")
			}
			return f
		},
	},
	{
		name: "apnea", floor: 1, ceiling: 95,
		terms: []riskTerm{
			{signal: "spo2", weight: 35},
			{signal: "resp_rate", weight: 25},
			{signal: "hrv", weight: 20},
			{pairA: "spo2", pairB: "hrv", weight: 20},
		},
		factors: func(dev func(string) float64, corr func(a, b string) float64) []string {
			f := make([]string, 0, 2)
			if dev("spo2") > 0.02 {
				f = append(f, "desaturation pattern")
			} else {
				f = append(f, "saturation steady")
			}
			if math.Abs(corr("spo2", "hrv")) > 0.5 {
				f = append(f, "SpO2/HRV coupled")
			} else {
				f = append(f, "SpO2/HRV independent")
			}
			return f
		},
	},
}

// RiskEngine turns signal deviations and correlations into four composite
// 0-100 scores. Targets are recomputed fully each tick; displayed values chase
// them with first-order exponential smoothing carried between ticks.
type RiskEngine struct {
	values map[string]float64 // smoothed value per category
}

func NewRiskEngine() *RiskEngine {
	return &RiskEngine{values: make(map[string]float64, len(riskDefs))}
}

// Recompute derives targets from the current signal and matrix state and
// advances the smoothed values. Smoothing operates on the unrounded target;
// Target in the returned categories is rounded for display.
func (e *RiskEngine) Recompute(signals map[string]*models.Signal, matrix models.CorrelationMatrix) []models.RiskCategory {
	dev := func(name string) float64 {
		s, ok := signals[name]
		if !ok || s.Baseline == 0 {
			return 0
		}
		return math.Abs(s.Value-s.Baseline) / s.Baseline
	}
	corr := func(a, b string) float64 { return matrix.At(a, b) }

	out := make([]models.RiskCategory, 0, len(riskDefs))
	for _, def := range riskDefs {
		target := 0.0
		for _, t := range def.terms {
			if t.signal != "" {
				target += dev(t.signal) * t.weight
			} else {
				target += math.Abs(corr(t.pairA, t.pairB)) * t.weight
			}
		}
		target = clamp(target, def.floor, def.ceiling)

		value, ok := e.values[def.name]
		if !ok {
			value = target // no history yet: start the smoother at the target
		} else {
			value += (target - value) * riskSmoothing
		}
		e.values[def.name] = value

		out = append(out, models.RiskCategory{
			Name:    def.name,
			Value:   value,
			Target:  math.Round(target),
			Factors: def.factors(dev, corr),
		})
	}
	return out
}
