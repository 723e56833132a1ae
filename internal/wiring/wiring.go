// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cellar/internal/adapters/config"
	_ "go.trai.ch/cellar/internal/adapters/logger"
	_ "go.trai.ch/cellar/internal/adapters/metrics"
	_ "go.trai.ch/cellar/internal/adapters/probe"
	_ "go.trai.ch/cellar/internal/adapters/remote"
	_ "go.trai.ch/cellar/internal/adapters/storage"
	_ "go.trai.ch/cellar/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/cellar/internal/app"
	_ "go.trai.ch/cellar/internal/engine/cache"
	_ "go.trai.ch/cellar/internal/engine/facade"
	_ "go.trai.ch/cellar/internal/engine/network"
	_ "go.trai.ch/cellar/internal/engine/queue"
	_ "go.trai.ch/cellar/internal/engine/reconcile"
)
