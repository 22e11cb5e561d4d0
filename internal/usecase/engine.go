package usecase

import (
	"VitalSim/internal/domain/models"
	"VitalSim/internal/services/simulation"
	"VitalSim/pkg/config"
)

// Engine owns the tick counter and every piece of mutable simulation state.
// One Tick call runs the full pipeline synchronously: anomaly bookkeeping,
// per-signal generation, correlation, risk, snapshot. The engine performs no
// I/O and has no notion of wall-clock time; callers drive it on whatever
// cadence they like. It is not safe for concurrent use: multiple engines are
// fully independent, one engine serves one caller.
type Engine struct {
	tick     int
	order    []string
	signals  map[string]*models.Signal
	gen      *simulation.Generator
	anomaly  *simulation.AnomalyMachine
	corr     *simulation.CorrelationEngine
	risk     *simulation.RiskEngine
	eventLog *simulation.EventLog

	matrix models.CorrelationMatrix
	cats   []models.RiskCategory
}

// NewEngine builds an engine from config and a random source, seeds every
// signal's rolling history around its baseline, and computes the initial
// correlation and risk state so the first snapshot is already populated.
func NewEngine(cfg config.SimulationConfig, src simulation.Source) *Engine {
	e := &Engine{
		order:    make([]string, 0, len(cfg.Signals)),
		signals:  make(map[string]*models.Signal, len(cfg.Signals)),
		eventLog: simulation.NewEventLog(cfg.EventLogCapacity),
		risk:     simulation.NewRiskEngine(),
	}

	e.gen = simulation.NewGenerator(src, nil, cfg.ChartWindow, cfg.TrendWindow, cfg.Anomaly.RampTicks)
	e.anomaly = simulation.NewAnomalyMachine(simulation.AnomalyConfig{
		FirstTriggerTick: cfg.Anomaly.FirstTriggerTick,
		RetriggerMin:     cfg.Anomaly.RetriggerMin,
		RetriggerJitter:  cfg.Anomaly.RetriggerJitter,
		EpisodeTicks:     cfg.Anomaly.EpisodeTicks,
		RampTicks:        cfg.Anomaly.RampTicks,
	}, src, e.eventLog)

	for _, sc := range cfg.Signals {
		s := &models.Signal{
			Name:         sc.Name,
			Label:        sc.Label,
			Unit:         sc.Unit,
			Baseline:     sc.Baseline,
			Min:          sc.Min,
			Max:          sc.Max,
			Variance:     sc.Variance,
			TrendTracked: sc.Trend,
		}
		e.gen.Seed(s, cfg.SeedSamples)
		e.order = append(e.order, sc.Name)
		e.signals[sc.Name] = s
	}

	e.corr = simulation.NewCorrelationEngine(e.order, cfg.CorrelationMinSamples)
	e.matrix = e.corr.Recompute(e.signals)
	e.cats = e.risk.Recompute(e.signals, e.matrix)
	return e
}

// Tick advances simulated time by one step and returns the completed
// snapshot. The pipeline order is fixed; no partial-tick state is observable.
func (e *Engine) Tick() *models.EngineSnapshot {
	e.tick++

	state := e.anomaly.Step(e.tick)
	for _, name := range e.order {
		e.gen.Advance(e.signals[name], e.tick, state)
	}
	e.matrix = e.corr.Recompute(e.signals)
	e.cats = e.risk.Recompute(e.signals, e.matrix)

	return e.Snapshot()
}

// CurrentTick returns the number of completed ticks.
func (e *Engine) CurrentTick() int { return e.tick }

// Snapshot assembles a deep-copied, read-only view of the engine state.
func (e *Engine) Snapshot() *models.EngineSnapshot {
	snap := &models.EngineSnapshot{
		Tick:         e.tick,
		Signals:      make([]models.Signal, 0, len(e.order)),
		Correlations: make(models.CorrelationMatrix, len(e.matrix)),
		Risk:         make([]models.RiskCategory, 0, len(e.cats)),
		Anomaly:      e.anomaly.State(),
		Events:       e.eventLog.Events(),
		Stats:        e.eventLog.Stats(),
	}

	for _, name := range e.order {
		s := e.signals[name]
		view := *s
		view.History = append([]float64(nil), s.History...)
		view.Trend = append([]float64(nil), s.Trend...)
		snap.Signals = append(snap.Signals, view)
	}
	for a, row := range e.matrix {
		cp := make(map[string]float64, len(row))
		for b, r := range row {
			cp[b] = r
		}
		snap.Correlations[a] = cp
	}
	for _, cat := range e.cats {
		cp := cat
		cp.Factors = append([]string(nil), cat.Factors...)
		snap.Risk = append(snap.Risk, cp)
	}
	return snap
}
