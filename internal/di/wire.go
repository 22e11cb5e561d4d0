//go:build wireinject
// +build wireinject

package di

import (
	"VitalSim/pkg/config"
	"VitalSim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Simulation core
		ProvideRandSource,
		ProvideEngine,

		// Output surfaces
		ProvideSnapshotFeed,
		ProvideRunner,
		ProvideHub,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
