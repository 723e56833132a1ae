package config

// File is the on-disk configuration. Durations are Go duration strings such
// as "3s" or "30m". Zero values keep the defaults.
type File struct {
	Storage   StorageDTO   `yaml:"storage" toml:"storage"`
	Cache     CacheDTO     `yaml:"cache" toml:"cache"`
	Queue     QueueDTO     `yaml:"queue" toml:"queue"`
	Retry     RetryDTO     `yaml:"retry" toml:"retry"`
	Network   NetworkDTO   `yaml:"network" toml:"network"`
	Remote    RemoteDTO    `yaml:"remote" toml:"remote"`
	Server    ServerDTO    `yaml:"server" toml:"server"`
	Logging   LoggingDTO   `yaml:"logging" toml:"logging"`
	Telemetry TelemetryDTO `yaml:"telemetry" toml:"telemetry"`
}

// StorageDTO selects the durable store.
type StorageDTO struct {
	Backend  string `yaml:"backend" toml:"backend" validate:"omitempty,oneof=badger file memory"`
	Path     string `yaml:"path" toml:"path"`
	InMemory bool   `yaml:"inMemory" toml:"inMemory"`
}

// CacheDTO tunes the expiring cache.
type CacheDTO struct {
	DefaultTTL       string  `yaml:"defaultTTL" toml:"defaultTTL"`
	MaxStorageBytes  int64   `yaml:"maxStorageBytes" toml:"maxStorageBytes" validate:"gte=0"`
	MaxEntryFraction float64 `yaml:"maxEntryFraction" toml:"maxEntryFraction" validate:"gte=0,lte=1"`
	SweepInterval    string  `yaml:"sweepInterval" toml:"sweepInterval"`
}

// QueueDTO tunes the pending operation queue.
type QueueDTO struct {
	MaxRetries int `yaml:"maxRetries" toml:"maxRetries" validate:"gte=0,lte=100"`
}

// RetryDTO tunes reconciliation.
type RetryDTO struct {
	StaggerDelay string `yaml:"staggerDelay" toml:"staggerDelay"`
	SettleDelay  string `yaml:"settleDelay" toml:"settleDelay"`
	Concurrency  int    `yaml:"concurrency" toml:"concurrency" validate:"gte=0"`
}

// NetworkDTO configures the connectivity probe.
type NetworkDTO struct {
	ProbeAddress  string `yaml:"probeAddress" toml:"probeAddress" validate:"omitempty,hostname_port"`
	ProbeTimeout  string `yaml:"probeTimeout" toml:"probeTimeout"`
	ProbeInterval string `yaml:"probeInterval" toml:"probeInterval"`
}

// RemoteDTO locates the catalog service.
type RemoteDTO struct {
	BaseURL string `yaml:"baseURL" toml:"baseURL" validate:"omitempty,url"`
	Timeout string `yaml:"timeout" toml:"timeout"`
}

// ServerDTO configures the status surface.
type ServerDTO struct {
	Address string `yaml:"address" toml:"address" validate:"omitempty,hostname_port"`
}

// LoggingDTO configures log output.
type LoggingDTO struct {
	JSON  bool   `yaml:"json" toml:"json"`
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// TelemetryDTO configures tracing.
type TelemetryDTO struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled"`
	ServiceName string `yaml:"serviceName" toml:"serviceName"`
}
