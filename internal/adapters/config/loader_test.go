package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/adapters/config"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	t.Setenv(domain.ConfigEnvVar, "")

	dir := t.TempDir()
	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	want := domain.DefaultConfig()
	want.Storage.Path = filepath.Join(dir, domain.DefaultDataPath())
	assert.Equal(t, want, cfg)
}

func TestLoader_YAML(t *testing.T) {
	t.Setenv(domain.ConfigEnvVar, "")

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
storage:
  backend: file
  path: state
cache:
  defaultTTL: 45m
  maxStorageBytes: 1048576
  maxEntryFraction: 0.25
queue:
  maxRetries: 5
retry:
  staggerDelay: 500ms
  settleDelay: 5s
  concurrency: 2
network:
  probeAddress: catalog.internal:443
  probeInterval: 30s
remote:
  baseURL: https://catalog.internal
  timeout: 4s
logging:
  json: true
  level: debug
telemetry:
  enabled: true
`)
	nested := filepath.Join(root, "bar", "cellar")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, domain.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(root, "state"), cfg.Storage.Path, "paths resolve against the config file")
	assert.Equal(t, 45*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, int64(1048576), cfg.Cache.MaxStorageBytes)
	assert.Equal(t, int64(262144), cfg.Cache.MaxEntryBytes())
	assert.Equal(t, domain.DefaultSweepInterval, cfg.Cache.SweepInterval)
	assert.Equal(t, 5, cfg.Queue.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.StaggerDelay)
	assert.Equal(t, 5*time.Second, cfg.Retry.SettleDelay)
	assert.Equal(t, 2, cfg.Retry.Concurrency)
	assert.Equal(t, "catalog.internal:443", cfg.Network.ProbeAddress)
	assert.Equal(t, 30*time.Second, cfg.Network.ProbeInterval)
	assert.Equal(t, domain.DefaultProbeTimeout, cfg.Network.ProbeTimeout)
	assert.Equal(t, "https://catalog.internal", cfg.Remote.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.Remote.Timeout)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, domain.DefaultServiceName, cfg.Telemetry.ServiceName)
}

func TestLoader_TOML(t *testing.T) {
	t.Setenv(domain.ConfigEnvVar, "")

	root := t.TempDir()
	createFile(t, root, domain.TOMLConfigFileName, `
[storage]
backend = "memory"

[retry]
settleDelay = "1s"

[server]
address = "0.0.0.0:9000"
`)

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, time.Second, cfg.Retry.SettleDelay)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
}

func TestLoader_YAMLPreferredOverTOML(t *testing.T) {
	t.Setenv(domain.ConfigEnvVar, "")

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "queue:\n  maxRetries: 7\n")
	createFile(t, root, domain.TOMLConfigFileName, "[queue]\nmaxRetries = 9\n")

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Queue.MaxRetries)
}

func TestLoader_EnvOverride(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "queue:\n  maxRetries: 7\n")
	custom := createFile(t, t.TempDir(), "custom.toml", "[queue]\nmaxRetries = 2\n")
	t.Setenv(domain.ConfigEnvVar, custom)

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Queue.MaxRetries)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		expectedErr error
	}{
		{
			name:        "malformed yaml",
			file:        domain.ConfigFileName,
			content:     "cache: [",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "malformed toml",
			file:        domain.TOMLConfigFileName,
			content:     "[cache",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "unknown backend",
			file:        domain.ConfigFileName,
			content:     "storage:\n  backend: sqlite\n",
			expectedErr: domain.ErrConfigInvalid,
		},
		{
			name:        "fraction above one",
			file:        domain.ConfigFileName,
			content:     "cache:\n  maxEntryFraction: 1.5\n",
			expectedErr: domain.ErrConfigInvalid,
		},
		{
			name:        "bad url",
			file:        domain.ConfigFileName,
			content:     "remote:\n  baseURL: not a url\n",
			expectedErr: domain.ErrConfigInvalid,
		},
		{
			name:        "bad duration",
			file:        domain.ConfigFileName,
			content:     "retry:\n  settleDelay: soon\n",
			expectedErr: domain.ErrInvalidDuration,
		},
		{
			name:        "negative duration",
			file:        domain.ConfigFileName,
			content:     "cache:\n  defaultTTL: -1m\n",
			expectedErr: domain.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(domain.ConfigEnvVar, "")
			root := t.TempDir()
			createFile(t, root, tt.file, tt.content)

			_, err := newLoader(t).Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.expectedErr.Error())
		})
	}
}

func TestLoader_EnvOverrideErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(domain.ConfigEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := newLoader(t).Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := createFile(t, t.TempDir(), "cellar.json", "{}")
		t.Setenv(domain.ConfigEnvVar, path)
		_, err := newLoader(t).Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnsupportedConfigFormat.Error())
	})
}
