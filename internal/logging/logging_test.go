// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	ctx := WithRunID(context.Background(), "abc-123")
	log.InfoContext(ctx, "estimation finished", slog.Int("lag", 2))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "estimation finished", rec["msg"])
	assert.Equal(t, "abc-123", rec["run_id"])
	assert.Equal(t, float64(2), rec["lag"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestLoggerWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.InfoContext(context.Background(), "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	_, has := rec["run_id"]
	assert.False(t, has)
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerWithAttrsKeepsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo).With(slog.String("stage", "fetch"))

	ctx := WithRunID(context.Background(), "run-9")
	log.InfoContext(ctx, "downloading")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fetch", rec["stage"])
	assert.Equal(t, "run-9", rec["run_id"])
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RunID(ctx))
	assert.Equal(t, "xyz", RunID(WithRunID(ctx, "xyz")))
}
