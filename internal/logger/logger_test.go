package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" ERROR ", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(9).String())
}

func newBuffered(t *testing.T, level Level) (*Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvFile, "")
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(level)
	return l, &buf
}

func TestLogger_DropsBelowLevel(t *testing.T) {
	l, buf := newBuffered(t, LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestLogger_WithSharesSink(t *testing.T) {
	l, buf := newBuffered(t, LevelInfo)
	draft := l.With("draft")
	nested := l.With("wizard").With("editor")

	draft.Info("saved %d keys", 3)
	nested.Warn("no $EDITOR")
	l.SetLevel(LevelError)
	draft.Warn("dropped")

	out := buf.String()
	assert.Contains(t, out, "[INFO] draft: saved 3 keys")
	assert.Contains(t, out, "[WARN] wizard: editor: no $EDITOR")
	assert.NotContains(t, out, "dropped", "level changes reach derived loggers")
}

func TestLogger_ConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandhan.log")
	l, _ := newBuffered(t, LevelInfo)
	require.NoError(t, l.Configure("debug", path))

	l.With("nats").Debug("hello %s", "file")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] nats: hello file")
}

func TestLogger_ConfigureInvalidLevelKeepsLevel(t *testing.T) {
	l, buf := newBuffered(t, LevelWarn)
	require.Error(t, l.Configure("loud", ""))

	l.Info("still hidden")
	assert.Empty(t, buf.String())
}

func TestNew_ReadsEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	t.Setenv(EnvFile, "")

	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.Warn("hidden")
	l.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
