// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package config loads run settings from defaults, an optional YAML file,
// and VECM_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/CarlosBello16/VECM-Final/internal/fred"
	"github.com/CarlosBello16/VECM-Final/internal/logging"
	"github.com/CarlosBello16/VECM-Final/internal/vecm"
)

const dateLayout = "2006-01-02"

// Config holds every knob of an analysis run.
type Config struct {
	PriceSeries     string `yaml:"price_series" envconfig:"PRICE_SERIES"`
	SentimentSeries string `yaml:"sentiment_series" envconfig:"SENTIMENT_SERIES"`
	Start           string `yaml:"start" envconfig:"START"`
	End             string `yaml:"end" envconfig:"END"`

	MaxLag                int    `yaml:"max_lag" envconfig:"MAX_LAG"`
	Rank                  int    `yaml:"rank" envconfig:"RANK"`
	Deterministic         string `yaml:"deterministic" envconfig:"DETERMINISTIC"`
	Horizon               int    `yaml:"horizon" envconfig:"HORIZON"`
	BootstrapReplications int    `yaml:"bootstrap_replications" envconfig:"BOOTSTRAP_REPLICATIONS"`
	Seed                  int64  `yaml:"seed" envconfig:"SEED"`

	APIKey         string `yaml:"api_key" envconfig:"API_KEY"`
	FredBaseURL    string `yaml:"fred_base_url" envconfig:"FRED_BASE_URL"`
	FredAPIBaseURL string `yaml:"fred_api_base_url" envconfig:"FRED_API_BASE_URL"`

	OutDir   string `yaml:"out_dir" envconfig:"OUT_DIR"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Parsed forms of Start and End, populated by Validate.
	StartDate time.Time `yaml:"-" envconfig:"-"`
	EndDate   time.Time `yaml:"-" envconfig:"-"`
}

// Default returns the settings of the published analysis: Case-Shiller
// national prices against Michigan sentiment, 1988 through the start
// of 2022.
func Default() Config {
	return Config{
		PriceSeries:           "CSUSHPISA",
		SentimentSeries:       "UMCSENT",
		Start:                 "1988-01-01",
		End:                   "2022-01-01",
		MaxLag:                12,
		Rank:                  1,
		Deterministic:         "const",
		Horizon:               25,
		BootstrapReplications: 500,
		Seed:                  42,
		FredBaseURL:           fred.DefaultBaseURL,
		FredAPIBaseURL:        fred.DefaultAPIBaseURL,
		OutDir:                "out",
		LogLevel:              "info",
	}
}

// Load layers the YAML file at path, when given, and the environment on
// top of the defaults, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process("vecm", &cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and parses the date bounds.
func (c *Config) Validate() error {
	if c.PriceSeries == "" {
		return fmt.Errorf("config: price series id required")
	}
	if c.SentimentSeries == "" {
		return fmt.Errorf("config: sentiment series id required")
	}
	if c.PriceSeries == c.SentimentSeries {
		return fmt.Errorf("config: price and sentiment series must differ")
	}

	start, err := time.Parse(dateLayout, c.Start)
	if err != nil {
		return fmt.Errorf("config: start date: %w", err)
	}
	end, err := time.Parse(dateLayout, c.End)
	if err != nil {
		return fmt.Errorf("config: end date: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("config: end %s must be after start %s", c.End, c.Start)
	}
	c.StartDate = start
	c.EndDate = end

	if c.MaxLag < 1 {
		return fmt.Errorf("config: max_lag must be >= 1, got %d", c.MaxLag)
	}
	if c.Rank < 1 {
		return fmt.Errorf("config: rank must be >= 1, got %d", c.Rank)
	}
	if c.Horizon < 1 {
		return fmt.Errorf("config: horizon must be >= 1, got %d", c.Horizon)
	}
	if c.BootstrapReplications < 1 {
		return fmt.Errorf("config: bootstrap_replications must be >= 1, got %d", c.BootstrapReplications)
	}

	if _, err := vecm.ParseDeterministic(c.Deterministic); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.OutDir == "" {
		return fmt.Errorf("config: out_dir required")
	}
	return nil
}

// DeterministicTerm returns the deterministic term the config selects.
// Validate must have accepted the config first.
func (c *Config) DeterministicTerm() vecm.Deterministic {
	d, err := vecm.ParseDeterministic(c.Deterministic)
	if err != nil {
		return vecm.DetConst
	}
	return d
}
