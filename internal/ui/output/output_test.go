package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cellar/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNew_PlainWhenNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString(out.String("online").Foreground(out.Color("#22A06B")).Bold().String())

	assert.Equal(t, "online", buf.String())
}

func TestNew_PlainWhenRedirectedToFile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, output.IsTerminal(f))

	out := output.New(f)
	_, _ = out.WriteString(out.String("queued").Foreground(out.Color("#E2B203")).String())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "queued", string(data))
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	assert.True(t, output.IsTerminal(&bytes.Buffer{}))
}
