package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/cellar/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("network online") },
			goldenName: "info_basic",
		},
		{
			name:       "info multiline",
			log:        func(l *logger.Logger) { l.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("network offline") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug hidden at info level",
			log:        func(l *logger.Logger) { l.Debug("replayed op1") },
			goldenName: "debug_hidden",
		},
		{
			name: "debug shown at debug level",
			log: func(l *logger.Logger) {
				l.SetLevel("debug")
				l.Debug("replayed op1")
			},
			goldenName: "debug_shown",
		},
		{
			name: "unknown level keeps info",
			log: func(l *logger.Logger) {
				l.SetLevel("chatty")
				l.Debug("replayed op1")
				l.Info("kept")
			},
			goldenName: "level_unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("connection refused"), "remote request failed"),
				"retry budget exhausted",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name:       "stdlib chain",
			err:        fmt.Errorf("sync failed: %w", errors.New("connection refused")),
			goldenName: "error_chain_stdlib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_WithMetadata(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(zerr.With(zerr.New("cache entry failed integrity check"), "key", "catalog:wines"))

	assert.Contains(t, buf.String(), "✗ Error: cache entry failed integrity check")
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.Wrap(errors.New("connection refused"), "remote request failed"))
	lg.Info("network online")

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":`)
	assert.Contains(t, out, `"msg":"network online"`)
	assert.NotContains(t, out, "✗")
	assert.NotContains(t, out, "Caused by")

	buf.Reset()
	lg.SetJSON(false)
	lg.Warn("back to pretty")
	assert.Equal(t, "! back to pretty\n", buf.String())
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg, _ := newTestLogger(t)
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}
