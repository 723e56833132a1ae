package ports

import "go.trai.ch/cellar/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
type ConfigLoader interface {
	// Load discovers the configuration starting at cwd and returns it with defaults applied.
	Load(cwd string) (*domain.Config, error)
}
