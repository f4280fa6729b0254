// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosBello16/VECM-Final/internal/vecm"
)

func writeTempYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vecm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "CSUSHPISA", cfg.PriceSeries)
	assert.Equal(t, "UMCSENT", cfg.SentimentSeries)
	assert.Equal(t, 12, cfg.MaxLag)
	assert.Equal(t, 1, cfg.Rank)
	assert.Equal(t, 25, cfg.Horizon)
	assert.Equal(t, 500, cfg.BootstrapReplications)
	assert.Equal(t, int64(42), cfg.Seed)

	assert.Equal(t, time.Date(1988, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.EndDate)
}

func TestLoadLayersYAMLOverDefaults(t *testing.T) {
	path := writeTempYAML(t, "max_lag: 6\nhorizon: 10\nout_dir: results\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.MaxLag)
	assert.Equal(t, 10, cfg.Horizon)
	assert.Equal(t, "results", cfg.OutDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "CSUSHPISA", cfg.PriceSeries)
	assert.Equal(t, 500, cfg.BootstrapReplications)
}

func TestLoadEnvironmentWinsOverYAML(t *testing.T) {
	path := writeTempYAML(t, "max_lag: 6\n")
	t.Setenv("VECM_MAX_LAG", "8")
	t.Setenv("VECM_API_KEY", "sekrit")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxLag)
	assert.Equal(t, "sekrit", cfg.APIKey)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "UMCSENT", cfg.SentimentSeries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeTempYAML(t, "max_lag: [not an int\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty price series", func(c *Config) { c.PriceSeries = "" }},
		{"empty sentiment series", func(c *Config) { c.SentimentSeries = "" }},
		{"identical series", func(c *Config) { c.SentimentSeries = c.PriceSeries }},
		{"bad start", func(c *Config) { c.Start = "01/1988" }},
		{"bad end", func(c *Config) { c.End = "never" }},
		{"end before start", func(c *Config) { c.Start = "2022-01-01"; c.End = "1988-01-01" }},
		{"zero max lag", func(c *Config) { c.MaxLag = 0 }},
		{"zero rank", func(c *Config) { c.Rank = 0 }},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"zero replications", func(c *Config) { c.BootstrapReplications = 0 }},
		{"bad deterministic", func(c *Config) { c.Deterministic = "quadratic" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty out dir", func(c *Config) { c.OutDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDeterministicTerm(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, vecm.DetConst, cfg.DeterministicTerm())

	cfg.Deterministic = "none"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, vecm.DetNone, cfg.DeterministicTerm())
}
