package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VitalSim/internal/handler/ws"
	"VitalSim/internal/usecase"
	"VitalSim/pkg/config"
	xhttp "VitalSim/pkg/http"
	applogger "VitalSim/pkg/logger"
)

// App encapsulates the entire application lifecycle: the simulation runner,
// the WebSocket hub, and the HTTP API server.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	runner     *usecase.SimRunner
	hub        *ws.Hub
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	runner *usecase.SimRunner,
	hub *ws.Hub,
	httpHandler xhttp.Handler,
) *App {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	httpServer := xhttp.NewServer(httpHandler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(logger),
	)
	return &App{
		cfg:        cfg,
		logger:     logger,
		runner:     runner,
		hub:        hub,
		httpServer: httpServer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.runner.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("simulation runner started",
		applogger.Duration("tick_interval_ms", a.cfg.Simulation.TickInterval),
		applogger.Int("signals", len(a.cfg.Simulation.Signals)),
	)

	go a.hub.Run(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(cancel)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(cancel context.CancelFunc) error {
	shutdownCtx, done := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer done()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	// Stops the hub's broadcast loop and closes client connections.
	cancel()

	if err := a.runner.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("runner stop error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
