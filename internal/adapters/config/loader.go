// Package config provides the configuration loader for cellar.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for cellar.yaml and cellar.toml.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, validate: validator.New()}
}

// Load resolves the config file for cwd and returns it merged over the
// defaults. CELLAR_CONFIG names the file explicitly; otherwise the loader
// walks up from cwd. Without a file the defaults are returned with paths
// relative to cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := l.find(cwd)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig()
	baseDir := cwd
	if path != "" {
		l.Logger.Debug("using config " + path)
		var file File
		if err := l.read(path, &file); err != nil {
			return nil, err
		}
		if err := l.validate.Struct(file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", path)
		}
		if err := apply(cfg, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}
		baseDir = filepath.Dir(path)
	}

	if cfg.Storage.Path != "" && !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(baseDir, cfg.Storage.Path)
	}
	return cfg, nil
}

func (l *Loader) find(cwd string) (string, error) {
	if explicit := os.Getenv(domain.ConfigEnvVar); explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(cwd, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return explicit, nil
	}

	current := cwd
	for {
		for _, name := range []string{domain.ConfigFileName, domain.TOMLConfigFileName} {
			candidate := filepath.Join(current, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func (l *Loader) read(path string, file *File) error {
	// #nosec G304 -- path comes from discovery or the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, file)
	case ".toml":
		err = toml.Unmarshal(data, file)
	default:
		return zerr.With(domain.ErrUnsupportedConfigFormat, "path", path)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

func apply(cfg *domain.Config, file *File) error {
	if file.Storage.Backend != "" {
		cfg.Storage.Backend = domain.StorageBackend(file.Storage.Backend)
	}
	setString(&cfg.Storage.Path, file.Storage.Path)
	cfg.Storage.InMemory = file.Storage.InMemory

	if file.Cache.MaxStorageBytes > 0 {
		cfg.Cache.MaxStorageBytes = file.Cache.MaxStorageBytes
	}
	if file.Cache.MaxEntryFraction > 0 {
		cfg.Cache.MaxEntryFraction = file.Cache.MaxEntryFraction
	}
	if file.Queue.MaxRetries > 0 {
		cfg.Queue.MaxRetries = file.Queue.MaxRetries
	}
	if file.Retry.Concurrency > 0 {
		cfg.Retry.Concurrency = file.Retry.Concurrency
	}

	setString(&cfg.Network.ProbeAddress, file.Network.ProbeAddress)
	setString(&cfg.Remote.BaseURL, file.Remote.BaseURL)
	setString(&cfg.Server.Address, file.Server.Address)
	setString(&cfg.Logging.Level, file.Logging.Level)
	cfg.Logging.JSON = file.Logging.JSON
	cfg.Telemetry.Enabled = file.Telemetry.Enabled
	setString(&cfg.Telemetry.ServiceName, file.Telemetry.ServiceName)

	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"cache.defaultTTL", file.Cache.DefaultTTL, &cfg.Cache.DefaultTTL},
		{"cache.sweepInterval", file.Cache.SweepInterval, &cfg.Cache.SweepInterval},
		{"retry.staggerDelay", file.Retry.StaggerDelay, &cfg.Retry.StaggerDelay},
		{"retry.settleDelay", file.Retry.SettleDelay, &cfg.Retry.SettleDelay},
		{"network.probeTimeout", file.Network.ProbeTimeout, &cfg.Network.ProbeTimeout},
		{"network.probeInterval", file.Network.ProbeInterval, &cfg.Network.ProbeInterval},
		{"remote.timeout", file.Remote.Timeout, &cfg.Remote.Timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil || parsed < 0 {
			if err == nil {
				err = fmt.Errorf("negative duration %q", d.raw)
			}
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidDuration.Error()), "field", d.field)
		}
		*d.dst = parsed
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
