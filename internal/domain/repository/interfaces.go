package repository

import (
	"context"

	"VitalSim/internal/domain/models"
)

// SnapshotFeed publishes engine output to an external consumer (a remote
// renderer or dashboard). Consumers are strictly read-only: nothing flows back
// into the engine.
type SnapshotFeed interface {
	PublishSnapshot(ctx context.Context, snap *models.EngineSnapshot) error
	PublishEvent(ctx context.Context, event models.AnomalyEvent) error
	Close() error
}

// SnapshotSource exposes the most recently completed snapshot.
type SnapshotSource interface {
	Latest() *models.EngineSnapshot
}

type Metrics interface {
	RecordTick(seconds float64)
	RecordSignalValue(name string, value float64)
	RecordRiskScore(category string, value float64)
	RecordAnomalyEvent(severity string)
	RecordError(kind string)
}
