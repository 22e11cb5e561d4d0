package simulation

import (
	"math"
	"math/rand"
	"testing"

	"VitalSim/internal/domain/models"
)

// seqSource cycles through a fixed list of uniform draws; Intn always returns
// fixed modulo n.
type seqSource struct {
	vals  []float64
	i     int
	fixed int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqSource) Intn(n int) int { return s.fixed % n }

// zeroGaussSource yields Box-Muller draws of (numerically) zero: v=0.25 makes
// cos(2*pi*v) vanish.
func zeroGaussSource() *seqSource {
	return &seqSource{vals: []float64{0.5, 0.25}}
}

func testSignal() *models.Signal {
	return &models.Signal{
		Name:     "heart_rate",
		Unit:     "bpm",
		Baseline: 72,
		Min:      40,
		Max:      180,
		Variance: 2.2,
		Value:    72,
	}
}

func TestAdvanceStaysInBounds(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)), nil, 40, 60, 15)
	s := testSignal()
	s.Max = 74 // tight ceiling to force clamping
	s.Min = 70

	for tick := 1; tick <= 500; tick++ {
		v := g.Advance(s, tick, models.AnomalyState{})
		if v < s.Min || v > s.Max {
			t.Fatalf("tick %d: value %v outside [%v, %v]", tick, v, s.Min, s.Max)
		}
	}
}

func TestAdvanceRoundsToOneDecimal(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)), nil, 40, 60, 15)
	s := testSignal()
	for tick := 1; tick <= 50; tick++ {
		v := g.Advance(s, tick, models.AnomalyState{})
		if scaled := v * 10; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("tick %d: value %v not rounded to one decimal", tick, v)
		}
	}
}

func TestMeanReversionWithoutNoise(t *testing.T) {
	g := NewGenerator(zeroGaussSource(), nil, 40, 60, 15)
	s := testSignal()
	s.Variance = 0
	s.Value = s.Min // start far below baseline

	prevGap := math.Abs(s.Value - s.Baseline)
	for tick := 1; tick <= 120; tick++ {
		g.Advance(s, tick, models.AnomalyState{})
		gap := math.Abs(s.Value - s.Baseline)
		if gap > prevGap {
			t.Fatalf("tick %d: gap grew from %v to %v", tick, prevGap, gap)
		}
		prevGap = gap
	}
	// One-decimal rounding stalls the reversion once the per-tick step drops
	// below 0.05, i.e. within ~0.6 of baseline.
	if prevGap > 0.7 {
		t.Fatalf("value did not converge to baseline, final gap %v", prevGap)
	}
}

func TestHistoryCapacities(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)), nil, 40, 60, 15)
	s := testSignal()
	s.TrendTracked = true

	for tick := 1; tick <= 150; tick++ {
		g.Advance(s, tick, models.AnomalyState{})
		if len(s.History) > 40 {
			t.Fatalf("history exceeded capacity: %d", len(s.History))
		}
		if len(s.Trend) > 60 {
			t.Fatalf("trend exceeded capacity: %d", len(s.Trend))
		}
	}
	if len(s.History) != 40 || len(s.Trend) != 60 {
		t.Fatalf("windows not full: history=%d trend=%d", len(s.History), len(s.Trend))
	}
	if s.History[len(s.History)-1] != s.Value {
		t.Fatalf("newest history entry %v != current value %v", s.History[len(s.History)-1], s.Value)
	}
}

func TestSeedFillsHistory(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(19)), nil, 40, 60, 15)
	s := testSignal()
	g.Seed(s, 20)
	if len(s.History) != 20 {
		t.Fatalf("expected 20 seeded samples, got %d", len(s.History))
	}
	for i, v := range s.History {
		if v < s.Min || v > s.Max {
			t.Fatalf("seeded sample %d out of bounds: %v", i, v)
		}
	}
}

func TestSeverityRamp(t *testing.T) {
	g := NewGenerator(zeroGaussSource(), nil, 40, 60, 15)
	cases := []struct {
		elapsed int
		want    float64
	}{
		{-1, 0},
		{0, 0},
		{3, 0.2},
		{15, 1},
		{40, 1},
	}
	for _, tc := range cases {
		if got := g.Severity(tc.elapsed); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("severity(%d) = %v, want %v", tc.elapsed, got, tc.want)
		}
	}
}

func TestAnomalyDriftPushesSignal(t *testing.T) {
	g := NewGenerator(zeroGaussSource(), nil, 40, 60, 15)

	up := testSignal()
	up.Variance = 0
	down := &models.Signal{Name: "spo2", Baseline: 97.5, Min: 80, Max: 100, Variance: 0, Value: 97.5}

	state := models.AnomalyState{Active: true, StartTick: 0}
	for tick := 1; tick <= 20; tick++ {
		g.Advance(up, tick, state)
		g.Advance(down, tick, state)
	}

	if up.Value <= up.Baseline {
		t.Fatalf("heart rate did not rise under anomaly drift: %v", up.Value)
	}
	if down.Value >= down.Baseline {
		t.Fatalf("spo2 did not fall under anomaly drift: %v", down.Value)
	}
}

func TestDriftIgnoredForUnknownSignal(t *testing.T) {
	g := NewGenerator(zeroGaussSource(), nil, 40, 60, 15)
	s := &models.Signal{Name: "glucose", Baseline: 100, Min: 50, Max: 200, Variance: 0, Value: 100}
	state := models.AnomalyState{Active: true, StartTick: 0}
	for tick := 1; tick <= 30; tick++ {
		g.Advance(s, tick, state)
	}
	if s.Value != 100 {
		t.Fatalf("signal without drift profile moved: %v", s.Value)
	}
}
