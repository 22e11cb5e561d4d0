package repository

import (
	"context"
	"fmt"
	"strconv"

	"VitalSim/internal/domain/models"
	"VitalSim/internal/domain/repository"
	pkgkafka "VitalSim/pkg/kafka"
)

// KafkaFeed publishes engine output to Kafka topics for remote renderers.
// Snapshots are keyed by stream so one stream stays ordered on one partition;
// events are keyed by event ID.
type KafkaFeed struct {
	producer      *pkgkafka.Producer
	streamKey     []byte
	snapshotTopic string
	eventTopic    string
}

// NewKafkaFeed creates a Kafka snapshot feed.
func NewKafkaFeed(producer *pkgkafka.Producer, stream, snapshotTopic, eventTopic string) repository.SnapshotFeed {
	return &KafkaFeed{
		producer:      producer,
		streamKey:     []byte(stream),
		snapshotTopic: snapshotTopic,
		eventTopic:    eventTopic,
	}
}

func (f *KafkaFeed) PublishSnapshot(ctx context.Context, snap *models.EngineSnapshot) error {
	if err := f.producer.Publish(ctx, f.snapshotTopic, f.streamKey, snap); err != nil {
		return fmt.Errorf("publish snapshot tick=%d: %w", snap.Tick, err)
	}
	return nil
}

func (f *KafkaFeed) PublishEvent(ctx context.Context, event models.AnomalyEvent) error {
	key := []byte(strconv.FormatInt(event.ID, 10))
	if err := f.producer.Publish(ctx, f.eventTopic, key, event); err != nil {
		return fmt.Errorf("publish event id=%d: %w", event.ID, err)
	}
	return nil
}

func (f *KafkaFeed) Close() error {
	return f.producer.Close()
}
