package simulation

import (
	"time"

	"VitalSim/internal/domain/models"
)

// EventLog is a bounded, append-only, most-recent-first record of anomaly
// events. Events are immutable once appended; the only removal is eviction of
// the oldest entry when capacity is exceeded.
type EventLog struct {
	capacity int
	events   []models.AnomalyEvent
	stats    models.EventStats
	nextID   int64
	now      func() time.Time // injectable for deterministic tests
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 15
	}
	return &EventLog{
		capacity: capacity,
		events:   make([]models.AnomalyEvent, 0, capacity),
		nextID:   1,
		now:      time.Now,
	}
}

// Append stamps the event with a monotonic ID and creation time, inserts it at
// the front, evicts the oldest entry beyond capacity, and recomputes aggregate
// statistics. The stored event is returned.
func (l *EventLog) Append(e models.AnomalyEvent) models.AnomalyEvent {
	e.ID = l.nextID
	l.nextID++
	e.Time = l.now()

	l.events = append([]models.AnomalyEvent{e}, l.events...)
	if len(l.events) > l.capacity {
		l.events = l.events[:l.capacity]
	}
	l.recomputeStats()
	return e
}

// Events returns a copy of the log, most recent first.
func (l *EventLog) Events() []models.AnomalyEvent {
	out := make([]models.AnomalyEvent, len(l.events))
	copy(out, l.events)
	for i := range out {
		out[i].Tags = append([]string(nil), out[i].Tags...)
	}
	return out
}

func (l *EventLog) Stats() models.EventStats { return l.stats }

func (l *EventLog) Len() int { return len(l.events) }

func (l *EventLog) recomputeStats() {
	st := models.EventStats{Total: len(l.events)}
	for _, e := range l.events {
		if e.Severity == models.SeverityHigh || e.Status == models.StatusActive {
			st.Critical++
		}
		if e.Status == models.StatusAutoResolved {
			st.Resolved++
		}
	}
	l.stats = st
}
