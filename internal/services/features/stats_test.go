package features

import (
	"math"
	"testing"
)

func TestPearsonPerfectPositive(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	if r != 1 {
		t.Fatalf("expected 1, got %v", r)
	}
}

func TestPearsonPerfectNegative(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1})
	if r != -1 {
		t.Fatalf("expected -1, got %v", r)
	}
}

func TestPearsonZeroVariance(t *testing.T) {
	if r := Pearson([]float64{3, 3, 3, 3, 3}, []float64{1, 2, 3, 4, 5}); r != 0 {
		t.Fatalf("expected 0 for constant series, got %v", r)
	}
	if r := Pearson([]float64{1, 2, 3}, []float64{7, 7, 7}); r != 0 {
		t.Fatalf("expected 0 for constant series, got %v", r)
	}
}

func TestPearsonEmptyAndMismatched(t *testing.T) {
	if r := Pearson(nil, nil); r != 0 {
		t.Fatalf("expected 0 for empty input, got %v", r)
	}
	if r := Pearson([]float64{1, 2}, []float64{1, 2, 3}); r != 0 {
		t.Fatalf("expected 0 for mismatched lengths, got %v", r)
	}
}

func TestPearsonWithinBounds(t *testing.T) {
	a := []float64{1.2, 5.1, 2.2, 9.9, 4.4, 7.3, 0.1}
	b := []float64{3.3, 1.1, 8.8, 2.2, 6.6, 5.5, 9.1}
	r := Pearson(a, b)
	if r < -1 || r > 1 {
		t.Fatalf("coefficient out of bounds: %v", r)
	}
}

func TestMeanAndStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if m := Mean(xs); m != 5 {
		t.Fatalf("mean: expected 5, got %v", m)
	}
	if sd := StdDev(xs); math.Abs(sd-2) > 1e-12 {
		t.Fatalf("stddev: expected 2, got %v", sd)
	}
	if sd := StdDev(nil); sd != 0 {
		t.Fatalf("stddev of empty: expected 0, got %v", sd)
	}
}

func TestTail(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	got := Tail(xs, 2)
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail(xs, 10); len(got) != 5 {
		t.Fatalf("expected full slice, got %v", got)
	}
}
