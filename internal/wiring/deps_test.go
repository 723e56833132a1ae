package wiring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/app"
	"go.trai.ch/cellar/internal/core/domain"
	_ "go.trai.ch/cellar/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the type used in Dep[T]. Several nodes here provide interfaces from the
	// shared ports package, which it cannot tell apart.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestGraftResolvesComponents builds the full graph against a throwaway
// memory-backed config.
func TestGraftResolvesComponents(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  backend: memory\n"), 0o600))
	t.Setenv(domain.ConfigEnvVar, cfgPath)

	c, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, c.App)
	require.NotNil(t, c.Logger)
	require.NoError(t, c.App.Dispose(t.Context()))
}
