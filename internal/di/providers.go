package di

import (
	"fmt"

	"VitalSim/internal/domain/repository"
	"VitalSim/internal/handler/api"
	"VitalSim/internal/handler/ws"
	internalrepo "VitalSim/internal/repository"
	"VitalSim/internal/services/simulation"
	"VitalSim/internal/usecase"
	"VitalSim/pkg/config"
	xhttp "VitalSim/pkg/http"
	pkgkafka "VitalSim/pkg/kafka"
	applogger "VitalSim/pkg/logger"
	"VitalSim/pkg/metrics"
	"VitalSim/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRandSource creates the simulation's random source from the seed.
func ProvideRandSource(cfg *config.Config) simulation.Source {
	return simulation.NewSource(cfg.Simulation.Seed)
}

// ProvideEngine builds the seeded simulation engine.
func ProvideEngine(cfg *config.Config, src simulation.Source) *usecase.Engine {
	return usecase.NewEngine(cfg.Simulation, src)
}

// ProvideSnapshotFeed creates the configured snapshot feed (noop by default).
func ProvideSnapshotFeed(cfg *config.Config) (repository.SnapshotFeed, error) {
	if cfg.Feed.Type != "kafka" {
		return internalrepo.NewNoopFeed(), nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Feed.Brokers),
		pkgkafka.WithCompression(cfg.Feed.Compression),
		pkgkafka.WithRequiredAcks(cfg.Feed.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Feed.WriteTimeout, cfg.Feed.WriteTimeout),
		pkgkafka.WithAsync(cfg.Feed.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaFeed(producer, cfg.Environment, cfg.Feed.SnapshotTopic, cfg.Feed.EventTopic), nil
}

// ProvideRunner creates the tick-driving simulation runner.
func ProvideRunner(
	engine *usecase.Engine,
	cfg *config.Config,
	m repository.Metrics,
	feed repository.SnapshotFeed,
	logger *applogger.Logger,
) *usecase.SimRunner {
	return usecase.NewSimRunner(engine, cfg.Simulation.TickInterval, m, feed, logger)
}

// ProvideHub creates the WebSocket broadcast hub reading from the runner.
func ProvideHub(runner *usecase.SimRunner, cfg *config.Config) *ws.Hub {
	return ws.New(runner, cfg.Simulation.TickInterval)
}

// ProvideHTTPHandler creates the vitals API handler with the live stream mounted.
func ProvideHTTPHandler(logger *applogger.Logger, runner *usecase.SimRunner, hub *ws.Hub) xhttp.Handler {
	h := api.NewVitalsEchoHandler(logger, runner)
	h.SetLiveHandler(echo.WrapHandler(hub))
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	runner *usecase.SimRunner,
	hub *ws.Hub,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, logger, runner, hub, handler)
}
