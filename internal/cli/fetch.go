// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/CarlosBello16/VECM-Final/internal/config"
	"github.com/CarlosBello16/VECM-Final/internal/fred"
	"github.com/CarlosBello16/VECM-Final/internal/logging"
)

// FetchOptions holds the fetch command flags.
type FetchOptions struct {
	*RootOptions
	Start  string
	End    string
	Out    string
	APIKey string
}

// NewFetchCommand creates the fetch command, a debugging aid that
// downloads one series and writes its observations as CSV.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FetchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fetch <series-id>",
		Short: "Download one FRED series as CSV",
		Long: `Download the observations of a single FRED series over the configured
sample and write them as date,value CSV rows to stdout or a file.

Example:
  vecm fetch CSUSHPISA
  vecm fetch UMCSENT --start 2000-01-01 --end 2010-01-01 --out umcsent.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchSeries(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "sample start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "sample end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file; stdout when empty")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "FRED API key; the keyless CSV endpoint is used when empty")

	return cmd
}

func fetchSeries(cmd *cobra.Command, opts *FetchOptions, id string) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("start") {
		cfg.Start = opts.Start
	}
	if fl.Changed("end") {
		cfg.End = opts.End
	}
	if fl.Changed("api-key") {
		cfg.APIKey = opts.APIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := opts.newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	ctx := logging.WithRunID(cmd.Context(), uuid.NewString())

	client := fred.NewClient(cfg.APIKey)
	client.BaseURL = cfg.FredBaseURL
	client.APIBaseURL = cfg.FredAPIBaseURL

	s, err := client.FetchSeries(ctx, id, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "series fetched", "series", id, "observations", s.Len())

	var w io.Writer = cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.Out, err)
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"DATE", id}); err != nil {
		return err
	}
	for _, o := range s.Obs {
		row := []string{o.Date.Format("2006-01-02"), strconv.FormatFloat(o.Value, 'f', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
