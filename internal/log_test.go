package internal_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YoungY620/utgen/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer internal.SetLogLevel("info")

	testCases := []struct {
		level    string
		expected string
	}{
		{"error", "error"},
		{"ERROR", "error"},
		{"notice", "warning"},
		{"warn", "warning"},
		{"info", "info"},
		{"debug", "debug"},
		{"invalid", "info"}, // default fallback
		{"", "info"},        // empty defaults to info
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			internal.SetLogLevel(tc.level)
			assert.Equal(t, tc.expected, internal.GetLogLevel())
		})
	}
}

func TestLogFunctions_RespectLevel(t *testing.T) {
	var buf bytes.Buffer
	internal.SetLogOutput(&buf)
	defer internal.SetLogOutput(os.Stderr)
	defer internal.SetLogLevel("info")

	internal.SetLogLevel("debug")
	internal.LogError("test error %s", "arg")
	internal.LogWarn("test warn %s", "arg")
	internal.LogInfo("test info %s", "arg")
	internal.LogDebug("test debug %s", "arg")

	out := buf.String()
	assert.Contains(t, out, "test error arg")
	assert.Contains(t, out, "test warn arg")
	assert.Contains(t, out, "test info arg")
	assert.Contains(t, out, "test debug arg")

	buf.Reset()
	internal.SetLogLevel("error")
	internal.LogDebug("this should be suppressed")
	internal.LogInfo("this too")
	assert.Empty(t, buf.String())
}

func TestInitHistoryLogger(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), ".utgen")

	internal.InitHistoryLogger(stateDir, "test")
	require.NotNil(t, internal.History())

	internal.LogInfo("mirrored %d", 1)
	internal.CloseHistoryLogger()
	assert.Nil(t, internal.History())

	// Double close should not panic
	assert.NotPanics(t, func() {
		internal.CloseHistoryLogger()
	})

	data, err := os.ReadFile(filepath.Join(stateDir, internal.HistoryFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "mirrored 1"))
}

func TestInitHistoryLogger_Unwritable(t *testing.T) {
	// A regular file where the state directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	assert.NotPanics(t, func() {
		internal.InitHistoryLogger(filepath.Join(blocker, ".utgen"), "test")
	})
	assert.Nil(t, internal.History())
}
