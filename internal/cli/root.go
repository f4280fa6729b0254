// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package cli wires the analysis pipeline into the vecm command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/CarlosBello16/VECM-Final/internal/logging"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Quiet      bool
}

// NewRootCommand builds the vecm command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vecm",
		Short: "Cointegration analysis of US housing prices and consumer sentiment",
		Long: `vecm fetches the Case-Shiller national home price index and the Michigan
consumer sentiment index from FRED, tests both for unit roots and
cointegration, fits a rank-1 vector error correction model, and renders
impulse responses, variance decompositions, forecasts and causality
tests into a single HTML report with CSV and XLSX table exports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML settings file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides the settings file")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "log errors only; output paths are still printed")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// newLogger builds the run logger on w. The flag level wins over the
// configured one, and quiet mode forces errors only.
func (o *RootOptions) newLogger(w io.Writer, configured string) (*slog.Logger, error) {
	name := configured
	if o.LogLevel != "" {
		name = o.LogLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	if o.Quiet {
		level = slog.LevelError
	}
	return logging.New(w, level), nil
}
