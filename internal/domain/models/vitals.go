package models

import "time"

// Severity grades an anomaly event.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// EventStatus is the lifecycle state of an anomaly event.
type EventStatus string

const (
	StatusInfo         EventStatus = "info"
	StatusActive       EventStatus = "active"
	StatusAutoResolved EventStatus = "auto-resolved"
)

// Signal is one simulated vital-sign channel. It is mutated only by the
// generator, once per tick.
type Signal struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Baseline float64 `json:"baseline"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
	Value    float64 `json:"value"`

	// History is the chart window; Trend is the longer window kept only for
	// signals with TrendTracked set.
	History      []float64 `json:"history"`
	Trend        []float64 `json:"trend,omitempty"`
	TrendTracked bool      `json:"-"`
}

// CorrelationMatrix maps ordered signal-name pairs to Pearson coefficients.
// Diagonal entries are always 1. Rebuilt in full every tick.
type CorrelationMatrix map[string]map[string]float64

// At returns the coefficient for (a, b), or 0 when either name is unknown.
func (m CorrelationMatrix) At(a, b string) float64 {
	row, ok := m[a]
	if !ok {
		return 0
	}
	return row[b]
}

// RiskCategory is one composite, smoothed 0-100 score for a physiological
// subsystem. Value chases Target geometrically each tick.
type RiskCategory struct {
	Name    string   `json:"name"`
	Value   float64  `json:"value"`
	Target  float64  `json:"target"`
	Factors []string `json:"factors"`
}

// AnomalyState tracks whether a synthetic multi-signal episode is running.
// Exactly one of NextTriggerTick (idle) or StartTick (active) is meaningful.
type AnomalyState struct {
	Active          bool `json:"active"`
	StartTick       int  `json:"start_tick,omitempty"`
	NextTriggerTick int  `json:"next_trigger_tick,omitempty"`
}

// AnomalyEvent is an immutable record of an anomaly occurrence.
type AnomalyEvent struct {
	ID          int64       `json:"id"`
	Tick        int         `json:"tick"`
	Time        time.Time   `json:"time"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Severity    Severity    `json:"severity"`
	Status      EventStatus `json:"status"`
}

// EventStats are aggregates recomputed from the event log on every append.
type EventStats struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Resolved int `json:"resolved"`
}
