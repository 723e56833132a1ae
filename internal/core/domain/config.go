package domain

import "time"

// StorageBackend names a durable store implementation.
type StorageBackend string

const (
	// BackendBadger stores keys in an embedded badger database.
	BackendBadger StorageBackend = "badger"
	// BackendFile stores one JSON file per key.
	BackendFile StorageBackend = "file"
	// BackendMemory keeps keys in process memory only.
	BackendMemory StorageBackend = "memory"
)

// Config is the resolved runtime configuration.
type Config struct {
	Storage   StorageConfig
	Cache     CacheConfig
	Queue     QueueConfig
	Retry     RetryConfig
	Network   NetworkConfig
	Remote    RemoteConfig
	Server    ServerConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// StorageConfig selects and locates the durable store.
type StorageConfig struct {
	Backend  StorageBackend
	Path     string
	InMemory bool
}

// CacheConfig tunes the expiring cache.
type CacheConfig struct {
	DefaultTTL       time.Duration
	MaxStorageBytes  int64
	MaxEntryFraction float64
	SweepInterval    time.Duration
}

// MaxEntryBytes returns the largest serialized entry the cache accepts.
func (c CacheConfig) MaxEntryBytes() int64 {
	return int64(float64(c.MaxStorageBytes) * c.MaxEntryFraction)
}

// QueueConfig tunes the pending operation queue.
type QueueConfig struct {
	MaxRetries int
}

// RetryConfig tunes the reconciliation engine.
type RetryConfig struct {
	StaggerDelay time.Duration
	SettleDelay  time.Duration
	Concurrency  int
}

// NetworkConfig tunes the connectivity probe.
type NetworkConfig struct {
	ProbeAddress  string
	ProbeTimeout  time.Duration
	ProbeInterval time.Duration
}

// RemoteConfig locates the catalog service.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig configures the status HTTP surface.
type ServerConfig struct {
	Address string
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	JSON  bool
	Level string
}

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

// Defaults.
const (
	DefaultCacheTTL         = 30 * time.Minute
	DefaultMaxStorageBytes  = 5 * 1024 * 1024
	DefaultMaxEntryFraction = 0.1
	DefaultSweepInterval    = 10 * time.Minute
	DefaultMaxRetries       = 3
	DefaultStaggerDelay     = 200 * time.Millisecond
	DefaultSettleDelay      = 3 * time.Second
	DefaultConcurrency      = 4
	DefaultProbeTimeout     = 3 * time.Second
	DefaultProbeInterval    = 15 * time.Second
	DefaultRemoteTimeout    = 10 * time.Second
	DefaultServerAddress    = "127.0.0.1:8787"
	DefaultRemoteBaseURL    = "http://127.0.0.1:8080"
	DefaultServiceName      = "cellar"
)

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendBadger,
			Path:    DefaultDataPath(),
		},
		Cache: CacheConfig{
			DefaultTTL:       DefaultCacheTTL,
			MaxStorageBytes:  DefaultMaxStorageBytes,
			MaxEntryFraction: DefaultMaxEntryFraction,
			SweepInterval:    DefaultSweepInterval,
		},
		Queue: QueueConfig{MaxRetries: DefaultMaxRetries},
		Retry: RetryConfig{
			StaggerDelay: DefaultStaggerDelay,
			SettleDelay:  DefaultSettleDelay,
			Concurrency:  DefaultConcurrency,
		},
		Network: NetworkConfig{
			ProbeTimeout:  DefaultProbeTimeout,
			ProbeInterval: DefaultProbeInterval,
		},
		Remote: RemoteConfig{
			BaseURL: DefaultRemoteBaseURL,
			Timeout: DefaultRemoteTimeout,
		},
		Server:    ServerConfig{Address: DefaultServerAddress},
		Logging:   LoggingConfig{Level: "info"},
		Telemetry: TelemetryConfig{ServiceName: DefaultServiceName},
	}
}
