package simulation

import (
	"math"

	"VitalSim/internal/domain/models"
)

// DriftProfile describes how an anomaly episode pushes one signal: a signed
// per-tick magnitude at full severity, plus the scale of its own gaussian
// perturbation (smaller than the signal's base noise).
type DriftProfile struct {
	Magnitude  float64
	NoiseScale float64
}

// DefaultDrift covers the built-in vitals: heart rate, respiration, systolic
// pressure and temperature rise during an episode; oxygen saturation and
// heart-rate variability fall.
var DefaultDrift = map[string]DriftProfile{
	"heart_rate":  {Magnitude: 1.2, NoiseScale: 0.6},
	"spo2":        {Magnitude: -0.45, NoiseScale: 0.15},
	"hrv":         {Magnitude: -1.0, NoiseScale: 0.5},
	"resp_rate":   {Magnitude: 0.5, NoiseScale: 0.2},
	"systolic_bp": {Magnitude: 0.9, NoiseScale: 0.5},
	"temperature": {Magnitude: 0.06, NoiseScale: 0.02},
}

// Generator advances signals one tick at a time with a stochastic model:
// circadian wave, gaussian noise, mean reversion, and anomaly drift while an
// episode is active.
type Generator struct {
	src         Source
	drift       map[string]DriftProfile
	chartWindow int
	trendWindow int
	rampTicks   int
}

func NewGenerator(src Source, drift map[string]DriftProfile, chartWindow, trendWindow, rampTicks int) *Generator {
	if drift == nil {
		drift = DefaultDrift
	}
	return &Generator{
		src:         src,
		drift:       drift,
		chartWindow: chartWindow,
		trendWindow: trendWindow,
		rampTicks:   rampTicks,
	}
}

// Advance computes the signal's next value and appends it to the rolling
// windows. The returned value always satisfies min <= v <= max and is rounded
// to one decimal place.
func (g *Generator) Advance(s *models.Signal, tick int, anomaly models.AnomalyState) float64 {
	circadian := math.Sin(float64(tick)*0.02) * s.Variance * 0.5
	noise := Gaussian(g.src) * s.Variance
	reversion := (s.Baseline - s.Value) * 0.08

	next := s.Value + reversion + circadian*0.1 + noise

	if anomaly.Active {
		if d, ok := g.drift[s.Name]; ok {
			sev := g.Severity(tick - anomaly.StartTick)
			next += sev*d.Magnitude + Gaussian(g.src)*d.NoiseScale
		}
	}

	next = clamp(next, s.Min, s.Max)
	next = round1(next)

	s.Value = next
	s.History = appendBounded(s.History, next, g.chartWindow)
	if s.TrendTracked {
		s.Trend = appendBounded(s.Trend, next, g.trendWindow)
	}
	return next
}

// Seed fills a fresh signal's windows with n samples drawn around its baseline
// so correlation and risk have usable history from the first real tick.
// Anomaly drift never applies during seeding.
func (g *Generator) Seed(s *models.Signal, n int) {
	s.Value = s.Baseline
	for i := 0; i < n; i++ {
		g.Advance(s, i-n, models.AnomalyState{})
	}
}

// Severity is the linear 0..1 ramp over the first rampTicks of an episode.
func (g *Generator) Severity(elapsed int) float64 {
	if g.rampTicks <= 0 || elapsed >= g.rampTicks {
		return 1
	}
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed) / float64(g.rampTicks)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func appendBounded(xs []float64, v float64, capacity int) []float64 {
	xs = append(xs, v)
	if capacity > 0 && len(xs) > capacity {
		xs = xs[len(xs)-capacity:]
	}
	return xs
}
