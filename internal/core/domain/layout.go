package domain

import "path/filepath"

const (
	// CellarDirName is the name of the local data directory.
	CellarDirName = ".cellar"

	// DataDirName is the name of the durable store directory.
	DataDirName = "data"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "cellar.yaml"

	// TOMLConfigFileName is the name of the TOML configuration file.
	TOMLConfigFileName = "cellar.toml"

	// ConfigEnvVar overrides config discovery with an explicit path.
	ConfigEnvVar = "CELLAR_CONFIG"

	// CacheKeyPrefix namespaces cache entries in the durable store.
	CacheKeyPrefix = "cellar:cache:"

	// QueueKey is the durable key holding the pending operation list.
	QueueKey = "cellar:queue:pending"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultDataPath returns the default path for the durable store.
// It joins .cellar and data.
func DefaultDataPath() string {
	return filepath.Join(CellarDirName, DataDirName)
}
