package repository

import (
	"context"

	"VitalSim/internal/domain/models"
	"VitalSim/internal/domain/repository"
)

// NoopFeed discards all output. Used when no external feed is configured.
type NoopFeed struct{}

func NewNoopFeed() repository.SnapshotFeed { return NoopFeed{} }

func (NoopFeed) PublishSnapshot(context.Context, *models.EngineSnapshot) error { return nil }
func (NoopFeed) PublishEvent(context.Context, models.AnomalyEvent) error       { return nil }
func (NoopFeed) Close() error                                                  { return nil }
