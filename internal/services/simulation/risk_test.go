package simulation

import (
	"math"
	"testing"

	"VitalSim/internal/domain/models"
)

func baselineSignals() map[string]*models.Signal {
	mk := func(name string, baseline float64) *models.Signal {
		return &models.Signal{Name: name, Baseline: baseline, Value: baseline}
	}
	return map[string]*models.Signal{
		"heart_rate":  mk("heart_rate", 72),
		"spo2":        mk("spo2", 97.5),
		"hrv":         mk("hrv", 42),
		"resp_rate":   mk("resp_rate", 14),
		"systolic_bp": mk("systolic_bp", 118),
		"temperature": mk("temperature", 36.8),
	}
}

func flatMatrix(v float64) models.CorrelationMatrix {
	names := []string{"heart_rate", "spo2", "hrv", "resp_rate", "systolic_bp", "temperature"}
	m := make(models.CorrelationMatrix, len(names))
	for _, a := range names {
		m[a] = make(map[string]float64, len(names))
		for _, b := range names {
			if a == b {
				m[a][b] = 1
			} else {
				m[a][b] = v
			}
		}
	}
	return m
}

func catByName(t *testing.T, cats []models.RiskCategory, name string) models.RiskCategory {
	t.Helper()
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q missing from %v", name, cats)
	return models.RiskCategory{}
}

func TestRiskFloorsAtBaseline(t *testing.T) {
	eng := NewRiskEngine()
	cats := eng.Recompute(baselineSignals(), flatMatrix(0))

	floors := map[string]float64{"cardio": 3, "respiratory": 2, "metabolic": 3, "apnea": 1}
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}
	for name, floor := range floors {
		c := catByName(t, cats, name)
		if c.Value != floor || c.Target != floor {
			t.Fatalf("%s at baseline: value=%v target=%v, want floor %v", name, c.Value, c.Target, floor)
		}
	}
}

func TestRiskCeilingClamp(t *testing.T) {
	signals := baselineSignals()
	// Push deviations far past anything the weighted sum can absorb.
	signals["heart_rate"].Value = 720
	signals["systolic_bp"].Value = 1180
	signals["hrv"].Value = 420

	eng := NewRiskEngine()
	c := catByName(t, eng.Recompute(signals, flatMatrix(1)), "cardio")
	if c.Value != 95 || c.Target != 95 {
		t.Fatalf("cardio at extreme deviation: value=%v target=%v, want 95", c.Value, c.Target)
	}
}

func TestRiskSmoothingConverges(t *testing.T) {
	eng := NewRiskEngine()
	eng.Recompute(baselineSignals(), flatMatrix(0)) // smoother starts at the floor

	// Step to a raised target and verify the 10% exponential chase.
	signals := baselineSignals()
	signals["heart_rate"].Value = 90

	var value float64
	for i := 0; i < 5; i++ {
		value = catByName(t, eng.Recompute(signals, flatMatrix(0)), "cardio").Value
	}

	// value_n = target - (target - value_0) * 0.9^n after n steps toward a
	// fixed target, starting from the floor of 3.
	dev := math.Abs(90.0-72.0) / 72.0
	fixed := dev * 30 // only heart_rate deviates
	want := fixed - (fixed-3)*math.Pow(0.9, 5)
	if math.Abs(value-want) > 1e-9 {
		t.Fatalf("smoothed value after 5 steps = %v, want %v", value, want)
	}
}

func TestRiskValueHoldsWhenAtTarget(t *testing.T) {
	eng := NewRiskEngine()
	first := catByName(t, eng.Recompute(baselineSignals(), flatMatrix(0)), "cardio")
	second := catByName(t, eng.Recompute(baselineSignals(), flatMatrix(0)), "cardio")
	if first.Value != second.Value {
		t.Fatalf("value moved with target unchanged: %v then %v", first.Value, second.Value)
	}
}

func TestRiskCorrelationTermRaisesTarget(t *testing.T) {
	eng := NewRiskEngine()
	c := catByName(t, eng.Recompute(baselineSignals(), flatMatrix(-0.9)), "cardio")
	// All deviations are zero, so the target is |corr| * 20, sign ignored.
	if want := 0.9 * 20; math.Abs(c.Value-want) > 1e-9 {
		t.Fatalf("cardio with corr -0.9: value=%v, want %v", c.Value, want)
	}
}

func TestRiskFactorLabels(t *testing.T) {
	eng := NewRiskEngine()
	cats := eng.Recompute(baselineSignals(), flatMatrix(0))

	wantCalm := map[string][]string{
		"cardio":      {"stable HR/BP coupling", "heart rate near baseline"},
		"respiratory": {"SpO2 stable", "SpO2/RR independent"},
		"metabolic":   {"temperature stable", "temp/HR decoupled"},
		"apnea":       {"saturation steady", "SpO2/HRV independent"},
	}
	for name, want := range wantCalm {
		c := catByName(t, cats, name)
		if len(c.Factors) != 2 || c.Factors[0] != want[0] || c.Factors[1] != want[1] {
			t.Fatalf("%s calm factors = %v, want %v", name, c.Factors, want)
		}
	}

	signals := baselineSignals()
	signals["heart_rate"].Value = 85    // dev 0.18 > 0.08
	signals["spo2"].Value = 92          // dev 0.056 > 0.02
	signals["temperature"].Value = 37.5 // dev 0.019 > 0.01
	cats = eng.Recompute(signals, flatMatrix(0.8))

	wantHot := map[string][]string{
		"cardio":      {"strong HR/BP coupling", "heart rate drifting from baseline"},
		"respiratory": {"SpO2 departing baseline", "SpO2/RR linked"},
		"metabolic":   {"temperature drift", "temp/HR coupling"},
		"apnea":       {"desaturation pattern", "SpO2/HRV coupled"},
	}
	for name, want := range wantHot {
		c := catByName(t, cats, name)
		if len(c.Factors) != 2 || c.Factors[0] != want[0] || c.Factors[1] != want[1] {
			t.Fatalf("%s elevated factors = %v, want %v", name, c.Factors, want)
		}
	}
}

func TestRiskTargetRoundedForDisplay(t *testing.T) {
	eng := NewRiskEngine()
	signals := baselineSignals()
	signals["heart_rate"].Value = 80 // dev 8/72 -> cardio target 30*8/72 = 3.333

	c := catByName(t, eng.Recompute(signals, flatMatrix(0)), "cardio")
	if c.Target != math.Round(30*8.0/72.0) {
		t.Fatalf("target = %v, want rounded %v", c.Target, math.Round(30*8.0/72.0))
	}
	if c.Value == c.Target {
		t.Fatalf("value should carry the unrounded target on first recompute")
	}
}
