package storage

import (
	"strings"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/zerr"
)

// Open returns the backend selected by cfg.
func Open(cfg domain.StorageConfig) (ports.Storage, error) {
	switch cfg.Backend {
	case domain.BackendBadger, "":
		return NewBadger(cfg.Path, cfg.InMemory)
	case domain.BackendFile:
		return NewFile(cfg.Path)
	case domain.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownStorageBackend, "backend", string(cfg.Backend))
	}
}

// hasPrefix matches keys for Keys on the backends without prefix iteration.
func hasPrefix(key, prefix string) bool {
	return prefix == "" || strings.HasPrefix(key, prefix)
}
