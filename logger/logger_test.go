package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func capture(t *testing.T, verbosity int, jsonOutput bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(func() {
		restore()
		require.NoError(t, Initialize(0, false))
	})
	require.NoError(t, Initialize(verbosity, jsonOutput))
	return &buf
}

func TestInitializeFiltersByVerbosity(t *testing.T) {
	buf := capture(t, VerbosityUser, false)

	Debugw("state transition", FieldState, "parsing")
	Infow("published", FieldCount, 4)
	Warnw("forcing version", FieldInterface, "Alexa.Speaker:4.0")

	out := buf.String()
	assert.NotContains(t, out, "state transition")
	assert.NotContains(t, out, "published")
	assert.Contains(t, out, "forcing version")
	assert.Contains(t, out, "Alexa.Speaker:4.0")
	assert.False(t, JSONOutput)
	assert.Equal(t, VerbosityUser, Verbosity)
}

func TestInitializeDebug(t *testing.T) {
	buf := capture(t, VerbosityDebug, false)

	Debugw("state transition", FieldState, "parsing")
	assert.Contains(t, buf.String(), "state transition")
}

func TestInitializeJSON(t *testing.T) {
	buf := capture(t, VerbosityInfo, true)

	ChildLogger(ComponentLogger("driver"), FieldRunID, "r-1").Infow("run finished", FieldCount, 2)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "run finished", entry["msg"])
	assert.Equal(t, "driver", entry["logger"])
	assert.Equal(t, "r-1", entry[FieldRunID])
	assert.EqualValues(t, 2, entry[FieldCount])
	assert.True(t, JSONOutput)
}

func TestNoopBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Debugw("x")
		Infow("x")
		Warnw("x")
		Errorw("x")
		Cleanup()
	})
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{10, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{VerbosityUser, OutputErrors, true},
		{VerbosityUser, OutputGeneratedFiles, false},
		{VerbosityInfo, OutputGeneratedFiles, true},
		{VerbosityInfo, OutputParseDetail, false},
		{VerbosityDebug, OutputStackTraces, true},
		{VerbosityDebug, OutputModelDump, false},
		{VerbosityTrace, OutputModelDump, true},
		{VerbosityDebug, OutputCategory(999), false},
	}

	for _, tt := range tests {
		got := ShouldOutput(tt.verbosity, tt.category)
		assert.Equal(t, tt.want, got, "ShouldOutput(%d, %s)", tt.verbosity, CategoryName(tt.category))
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "quiet", LevelName(0))
	assert.Equal(t, "info", LevelName(VerbosityInfo))
	assert.Equal(t, "trace", LevelName(7))
}
