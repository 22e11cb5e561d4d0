package simulation

import (
	"VitalSim/internal/domain/models"
)

// Episode tags attached to the lifecycle events the machine appends.
var (
	triggerTags = []string{"correlation", "hr-spo2", "hrv-drop"}
	resolveTags = []string{"auto-resolved", "recovery"}
)

// AnomalyConfig bounds the synthetic episode schedule. All values are in
// ticks.
type AnomalyConfig struct {
	FirstTriggerTick int // first episode starts once the tick counter reaches this
	RetriggerMin     int // minimum gap between resolution and the next episode
	RetriggerJitter  int // uniform jitter added on top of RetriggerMin
	EpisodeTicks     int // an episode spans this many ticks, then auto-resolves
	RampTicks        int // severity ramps linearly to 1 over this many ticks
}

// DefaultAnomalyConfig: first episode at tick 30, 21-tick episodes, re-trigger
// 25-44 ticks after resolution, 15-tick severity ramp.
func DefaultAnomalyConfig() AnomalyConfig {
	return AnomalyConfig{
		FirstTriggerTick: 30,
		RetriggerMin:     25,
		RetriggerJitter:  20,
		EpisodeTicks:     21,
		RampTicks:        15,
	}
}

// AnomalyMachine is the two-state scheduler driving correlated multi-signal
// episodes: Idle counts down to the next trigger, Active runs a time-boxed
// episode. Lifecycle transitions append events to the log.
type AnomalyMachine struct {
	cfg   AnomalyConfig
	src   Source
	log   *EventLog
	state models.AnomalyState
}

func NewAnomalyMachine(cfg AnomalyConfig, src Source, log *EventLog) *AnomalyMachine {
	return &AnomalyMachine{
		cfg: cfg,
		src: src,
		log: log,
		state: models.AnomalyState{
			Active:          false,
			NextTriggerTick: cfg.FirstTriggerTick,
		},
	}
}

// State returns the current anomaly state.
func (m *AnomalyMachine) State() models.AnomalyState { return m.state }

// Step advances the machine for the given tick. Episodes end strictly on
// elapsed time, never on signal values.
func (m *AnomalyMachine) Step(tick int) models.AnomalyState {
	if m.state.Active {
		if tick-m.state.StartTick >= m.cfg.EpisodeTicks {
			m.resolve(tick)
		}
		return m.state
	}
	if tick >= m.state.NextTriggerTick {
		m.trigger(tick)
	}
	return m.state
}

func (m *AnomalyMachine) trigger(tick int) {
	m.state = models.AnomalyState{Active: true, StartTick: tick}
	m.log.Append(models.AnomalyEvent{
		Tick:        tick,
		Title:       "Correlation divergence detected",
		Description: "HR and SpO2 coupling is diverging from its resting pattern while HRV trends down; correlated drift injected across tracked vitals.",
		Tags:        append([]string(nil), triggerTags...),
		Severity:    models.SeverityMedium,
		Status:      models.StatusActive,
	})
}

func (m *AnomalyMachine) resolve(tick int) {
	next := tick + m.cfg.RetriggerMin
	if m.cfg.RetriggerJitter > 0 {
		next += m.src.Intn(m.cfg.RetriggerJitter)
	}
	m.state = models.AnomalyState{Active: false, NextTriggerTick: next}
	m.log.Append(models.AnomalyEvent{
		Tick:        tick,
		Title:       "Anomaly episode resolved",
		Description: "Injected drift removed; signals reverting to baseline.",
		Tags:        append([]string(nil), resolveTags...),
		Severity:    models.SeverityLow,
		Status:      models.StatusAutoResolved,
	})
}
