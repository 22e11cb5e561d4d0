package usecase

import (
	"context"
	"sync"
	"time"

	"VitalSim/internal/domain/models"
	drepo "VitalSim/internal/domain/repository"
	xlogger "VitalSim/pkg/logger"
)

// SimRunner is the periodic-timer wiring around the engine: it calls Tick on a
// fixed wall-clock cadence, keeps the latest snapshot available for HTTP and
// WebSocket readers, records metrics, and forwards output to the feed. The
// engine itself stays timer-free and single-threaded; the runner is the only
// goroutine touching it.
type SimRunner struct {
	engine   *Engine
	interval time.Duration
	metrics  drepo.Metrics
	feed     drepo.SnapshotFeed
	logger   *xlogger.Logger

	mu      sync.RWMutex
	latest  *models.EngineSnapshot
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	startMu sync.Mutex
}

func NewSimRunner(engine *Engine, interval time.Duration, metrics drepo.Metrics, feed drepo.SnapshotFeed, logger *xlogger.Logger) *SimRunner {
	r := &SimRunner{
		engine:   engine,
		interval: interval,
		metrics:  metrics,
		feed:     feed,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	// Expose the seeded initial state before the first tick fires.
	r.latest = engine.Snapshot()
	return r
}

// Start launches the tick loop. Safe to call once.
func (r *SimRunner) Start(ctx context.Context) error {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return nil
	}
	r.started = true
	r.startMu.Unlock()

	go r.loop(ctx)
	return nil
}

func (r *SimRunner) loop(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.step(ctx)
		}
	}
}

func (r *SimRunner) step(ctx context.Context) {
	start := time.Now()
	snap := r.engine.Tick()

	r.mu.Lock()
	prevEvents := 0
	if r.latest != nil {
		prevEvents = r.latest.Stats.Total
	}
	r.latest = snap
	r.mu.Unlock()

	r.observe(snap, prevEvents)
	r.publish(ctx, snap, prevEvents)
	r.metrics.RecordTick(time.Since(start).Seconds())
}

func (r *SimRunner) observe(snap *models.EngineSnapshot, prevEvents int) {
	for _, s := range snap.Signals {
		r.metrics.RecordSignalValue(s.Name, s.Value)
	}
	for _, cat := range snap.Risk {
		r.metrics.RecordRiskScore(cat.Name, cat.Value)
	}
	for _, e := range newEvents(snap, prevEvents) {
		r.metrics.RecordAnomalyEvent(string(e.Severity))
		r.logger.Info("anomaly event",
			xlogger.String("title", e.Title),
			xlogger.String("severity", string(e.Severity)),
			xlogger.String("status", string(e.Status)),
			xlogger.Int("tick", e.Tick),
		)
	}
}

// publish is fire-and-forget: a feed failure is logged and counted, never fed
// back into the tick.
func (r *SimRunner) publish(ctx context.Context, snap *models.EngineSnapshot, prevEvents int) {
	if r.feed == nil {
		return
	}
	if err := r.feed.PublishSnapshot(ctx, snap); err != nil {
		r.metrics.RecordError("feed_snapshot")
		r.logger.Warn("snapshot publish failed", xlogger.Error(err))
	}
	for _, e := range newEvents(snap, prevEvents) {
		if err := r.feed.PublishEvent(ctx, e); err != nil {
			r.metrics.RecordError("feed_event")
			r.logger.Warn("event publish failed", xlogger.Error(err))
		}
	}
}

// newEvents returns the events appended by the tick that produced snap. The
// log is most-recent-first and IDs are monotonic, so the freshly appended
// entries sit at the front.
func newEvents(snap *models.EngineSnapshot, prevTotal int) []models.AnomalyEvent {
	n := snap.Stats.Total - prevTotal
	if n <= 0 {
		// Eviction at capacity keeps Total flat even when events were added.
		n = 0
		for _, e := range snap.Events {
			if e.Tick == snap.Tick {
				n++
			} else {
				break
			}
		}
	}
	if n > len(snap.Events) {
		n = len(snap.Events)
	}
	return snap.Events[:n]
}

// Latest returns the most recently completed snapshot.
func (r *SimRunner) Latest() *models.EngineSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Shutdown stops the loop and closes the feed.
func (r *SimRunner) Shutdown(ctx context.Context) error {
	r.startMu.Lock()
	if !r.started {
		r.startMu.Unlock()
		return nil
	}
	r.started = false
	r.startMu.Unlock()

	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-ctx.Done():
	}
	if r.feed != nil {
		return r.feed.Close()
	}
	return nil
}
