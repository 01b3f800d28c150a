package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDefaultLoggerLevelsAndFields(t *testing.T) {
	var info, errs bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&info, &errs)

	logger.Debug("hidden")
	logger.WithFields(Fields{"piece": "bach_2", "component": "hcdf"}).Info("segmented")
	logger.Warn("no segments", Fields{"piece": "vivaldi_1"})
	logger.Error(errors.New("boom"), "failed")

	assert.NotContains(t, info.String(), "hidden")
	assert.Contains(t, info.String(), "[INFO] segmented component=hcdf piece=bach_2")
	assert.Contains(t, errs.String(), "[WARN] no segments piece=vivaldi_1")
	assert.Contains(t, errs.String(), "[ERROR] failed: boom")

	logger.SetLevel(DebugLevel)
	logger.Debug("shown")
	assert.Contains(t, info.String(), "[DEBUG] shown")
}

func TestDefaultLoggerWithContext(t *testing.T) {
	var info bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&info, &info)

	ctx := ContextWithFields(context.Background(), Fields{"run": 1})
	ctx = ContextWithFields(ctx, Fields{"resolution": "500ms"})
	logger.WithContext(ctx).Info("pipeline")

	assert.Contains(t, info.String(), "resolution=500ms run=1")
}

func TestZerologLoggerJSON(t *testing.T) {
	var out bytes.Buffer
	logger := NewZerologLogger(&out, false)

	logger.Debug("hidden")
	logger.WithFields(Fields{"component": "pipeline"}).Info("task done", Fields{"rows": 3})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "task done", entry["message"])
	assert.Equal(t, "pipeline", entry["component"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestGlobalLoggerNilInstallsNoOp(t *testing.T) {
	previous := GetGlobalLogger()
	defer SetGlobalLogger(previous)

	SetGlobalLogger(nil)
	_, ok := GetGlobalLogger().(*NoOpLogger)
	assert.True(t, ok)
}
