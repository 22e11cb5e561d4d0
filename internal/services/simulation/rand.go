package simulation

import (
	"math"
	"math/rand"
	"time"
)

// Source supplies the uniform draws the simulation consumes. *math/rand.Rand
// satisfies it directly; tests substitute fixed-sequence sources.
type Source interface {
	Float64() float64 // uniform in [0, 1)
	Intn(n int) int   // uniform in [0, n)
}

// NewSource returns a seeded pseudo-random source. A zero seed produces a
// time-seeded source (non-reproducible runs).
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Gaussian draws a standard-normal value via the Box-Muller transform from two
// independent uniform draws, excluding exactly 0 for the log argument.
func Gaussian(src Source) float64 {
	u := src.Float64()
	for u == 0 {
		u = src.Float64()
	}
	v := src.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
