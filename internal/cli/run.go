// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/CarlosBello16/VECM-Final/internal/config"
	"github.com/CarlosBello16/VECM-Final/internal/fred"
	"github.com/CarlosBello16/VECM-Final/internal/logging"
	"github.com/CarlosBello16/VECM-Final/internal/report"
	"github.com/CarlosBello16/VECM-Final/internal/series"
	"github.com/CarlosBello16/VECM-Final/internal/stats"
	"github.com/CarlosBello16/VECM-Final/internal/vecm"
)

const (
	// kpssAlpha is the rejection level for the stationarity tests.
	kpssAlpha = 0.05
	// integrationMaxD bounds the differencing search per series.
	integrationMaxD = 3
	// seasonalPeriod is months per year; the data is monthly.
	seasonalPeriod = 12
	// forecastMonths is the out-of-sample forecast length.
	forecastMonths = 12
	// acfMaxLag is how far the residual autocorrelation plots reach.
	acfMaxLag = 24
	// ljungBoxLag is the default whiteness test horizon.
	ljungBoxLag = 12
)

// RunOptions holds the run command flags. Every field overrides the
// matching config entry only when its flag was set.
type RunOptions struct {
	*RootOptions
	PriceSeries     string
	SentimentSeries string
	Start           string
	End             string
	MaxLag          int
	Horizon         int
	Bootstrap       int
	Seed            int64
	OutDir          string
	APIKey          string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the data and run the full analysis",
		Long: `Run the whole pipeline: fetch both series from FRED, join them into a
monthly panel, seasonally adjust sentiment, log-transform prices, test
integration orders and Engle-Granger cointegration, fit the error
correction model, and write report.html, results.xlsx and the CSV
tables into the output directory.

Example:
  vecm run --out results
  vecm run --start 1990-01-01 --end 2020-01-01 --bootstrap 200 --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.PriceSeries, "series-price", "", "FRED id of the price series")
	cmd.Flags().StringVar(&opts.SentimentSeries, "series-sentiment", "", "FRED id of the sentiment series")
	cmd.Flags().StringVar(&opts.Start, "start", "", "sample start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "sample end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.MaxLag, "max-lag", 0, "largest VAR order searched by the criteria")
	cmd.Flags().IntVar(&opts.Horizon, "horizon", 0, "impulse response and FEVD horizon in months")
	cmd.Flags().IntVar(&opts.Bootstrap, "bootstrap", 0, "bootstrap replications for the IRF bands")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "bootstrap seed; 0 draws one from the clock")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "output directory")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "FRED API key; the keyless CSV endpoint is used when empty")

	return cmd
}

// applyRunFlags copies set flags over the loaded config and re-validates.
func applyRunFlags(cmd *cobra.Command, opts *RunOptions, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("series-price") {
		cfg.PriceSeries = opts.PriceSeries
	}
	if fl.Changed("series-sentiment") {
		cfg.SentimentSeries = opts.SentimentSeries
	}
	if fl.Changed("start") {
		cfg.Start = opts.Start
	}
	if fl.Changed("end") {
		cfg.End = opts.End
	}
	if fl.Changed("max-lag") {
		cfg.MaxLag = opts.MaxLag
	}
	if fl.Changed("horizon") {
		cfg.Horizon = opts.Horizon
	}
	if fl.Changed("bootstrap") {
		cfg.BootstrapReplications = opts.Bootstrap
	}
	if fl.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if fl.Changed("out") {
		cfg.OutDir = opts.OutDir
	}
	if fl.Changed("api-key") {
		cfg.APIKey = opts.APIKey
	}
	return cfg.Validate()
}

func runAnalysis(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, opts, cfg); err != nil {
		return err
	}

	log, err := opts.newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx := logging.WithRunID(cmd.Context(), runID)
	started := time.Now()
	det := cfg.DeterministicTerm()

	log.InfoContext(ctx, "run started",
		"price_series", cfg.PriceSeries,
		"sentiment_series", cfg.SentimentSeries,
		"start", cfg.Start,
		"end", cfg.End)

	// 1. Fetch both series from FRED.
	client := fred.NewClient(cfg.APIKey)
	client.BaseURL = cfg.FredBaseURL
	client.APIBaseURL = cfg.FredAPIBaseURL

	price, err := client.FetchSeries(ctx, cfg.PriceSeries, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "series fetched", "series", cfg.PriceSeries, "observations", price.Len())

	sentiment, err := client.FetchSeries(ctx, cfg.SentimentSeries, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "series fetched", "series", cfg.SentimentSeries, "observations", sentiment.Len())

	// 2. Join on calendar month; incomplete months are dropped.
	panel, err := series.BuildPanel(price, sentiment)
	if err != nil {
		return err
	}
	months, _ := panel.Dims()
	log.InfoContext(ctx, "panel built",
		"months", months,
		"first", panel.Dates[0].Format("2006-01"),
		"last", panel.Dates[months-1].Format("2006-01"))

	// 3. Seasonally adjust sentiment; the adjusted series replaces the
	// raw one everywhere downstream.
	rawSentiment, err := panel.Column(cfg.SentimentSeries)
	if err != nil {
		return err
	}
	decomp, err := stats.Decompose(rawSentiment, seasonalPeriod)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "sentiment seasonally adjusted", "period", seasonalPeriod)

	// 4. Log-transform prices.
	rawPrice, err := panel.Column(cfg.PriceSeries)
	if err != nil {
		return err
	}
	logPrice, err := series.Log100(rawPrice)
	if err != nil {
		return fmt.Errorf("log transform of %s: %w", cfg.PriceSeries, err)
	}

	logName := "log_" + cfg.PriceSeries
	saName := cfg.SentimentSeries + "_sa"
	panel, err = panel.WithColumn(logName, logPrice)
	if err != nil {
		return err
	}
	panel, err = panel.WithColumn(saName, decomp.Adjusted)
	if err != nil {
		return err
	}
	model, err := panel.Select(logName, saName)
	if err != nil {
		return err
	}

	// 5. Integration order per series, raw and transformed.
	var unitRoots []report.UnitRootRow
	for _, entry := range []struct {
		name string
		vals []float64
	}{
		{cfg.PriceSeries, rawPrice},
		{logName, logPrice},
		{cfg.SentimentSeries, rawSentiment},
		{saName, decomp.Adjusted},
	} {
		order, trail, err := stats.IntegrationOrder(entry.vals, integrationMaxD, kpssAlpha)
		if err != nil {
			return fmt.Errorf("integration order of %s: %w", entry.name, err)
		}
		log.InfoContext(ctx, "integration order settled", "series", entry.name, "order", order)
		unitRoots = append(unitRoots, report.UnitRootRow{Name: entry.name, Order: order, Tests: trail})
	}

	// 6. Engle-Granger: adjusted sentiment on log price.
	saVals, err := model.Column(saName)
	if err != nil {
		return err
	}
	logVals, err := model.Column(logName)
	if err != nil {
		return err
	}
	eg, err := stats.EngleGranger(saVals, logVals, kpssAlpha)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "engle-granger tested",
		"statistic", eg.Test.Statistic,
		"p_value", eg.Test.PValue,
		"verdict", eg.Verdict.String())
	if eg.Verdict == stats.Borderline {
		log.WarnContext(ctx, "residual test sits near the rejection threshold",
			"p_value", eg.Test.PValue, "alpha", eg.Alpha)
	}

	// 7. Lag order by information criteria; the pipeline takes the BIC
	// choice. The error correction model uses one lagged difference
	// fewer than the levels order.
	sel, err := vecm.SelectLag(model.Y, cfg.MaxLag, det)
	if err != nil {
		return err
	}
	diffLags := sel.BestBIC - 1
	log.InfoContext(ctx, "lag order selected",
		"bic", sel.BestBIC, "aic", sel.BestAIC, "hq", sel.BestHQ, "fpe", sel.BestFPE)

	// 8. Johansen maximum likelihood estimation.
	m, err := vecm.EstimateVECM(model.Y, model.Names, diffLags, cfg.Rank, det)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "vecm estimated",
		"rank", m.Rank,
		"diff_lags", m.Lags,
		"observations", m.Obs,
		"trace_r0", m.Trace[0].Statistic)

	// 9. Bootstrap confidence bands around the impulse responses.
	bands, err := m.BootstrapIRF(model.Y, vecm.BootstrapOptions{
		NReplications: cfg.BootstrapReplications,
		Horizon:       cfg.Horizon,
		Alpha:         kpssAlpha,
		Seed:          cfg.Seed,
	})
	if err != nil {
		return err
	}
	for shock, band := range bands {
		if band.Failed > 0 {
			log.WarnContext(ctx, "bootstrap replications discarded",
				"shock", m.Names[shock], "failed", band.Failed)
		}
	}
	log.InfoContext(ctx, "bootstrap bands built",
		"replications", cfg.BootstrapReplications, "horizon", cfg.Horizon)

	// 10. Variance decomposition and forecast from the level form.
	level := m.LevelVAR()
	fevd, err := level.FEVD(cfg.Horizon)
	if err != nil {
		return err
	}
	fcValues, err := level.Forecast(model.Y, forecastMonths)
	if err != nil {
		return err
	}
	fcDates := make([]time.Time, forecastMonths)
	lastMonth := panel.Dates[months-1]
	for i := range fcDates {
		fcDates[i] = lastMonth.AddDate(0, i+1, 0)
	}
	log.InfoContext(ctx, "forecast computed", "months", forecastMonths)

	// 11. Granger causality on the differenced panel.
	diffed, err := model.DiffOnce()
	if err != nil {
		return err
	}
	granger, err := vecm.GrangerMatrix(diffed.Y, diffed.Names, sel.BestBIC, det)
	if err != nil {
		return err
	}
	for _, g := range granger {
		log.InfoContext(ctx, "granger tested",
			"cause", g.Cause, "effect", g.Effect,
			"f", g.FStatistic, "p_value", g.PValue, "significant", g.Significant)
	}

	// 12. Residual whiteness per equation.
	fitted := m.ParamsPerEquation()
	lbLag := ljungBoxLag
	if lbLag <= fitted {
		lbLag = fitted + 6
	}
	var diagnostics []report.ResidualDiagnostic
	residRows, _ := m.Residuals.Dims()
	acfLag := acfMaxLag
	if acfLag >= residRows {
		acfLag = residRows - 1
	}
	for k, name := range m.Names {
		col := make([]float64, residRows)
		for t := 0; t < residRows; t++ {
			col[t] = m.Residuals.At(t, k)
		}
		acf, err := stats.ACF(col, acfLag)
		if err != nil {
			return fmt.Errorf("residual acf of %s: %w", name, err)
		}
		lb, err := stats.LjungBox(col, lbLag, fitted)
		if err != nil {
			return fmt.Errorf("ljung-box of %s: %w", name, err)
		}
		diagnostics = append(diagnostics, report.ResidualDiagnostic{Name: name, ACF: acf, LjungBox: lb})
	}

	// 13. Assemble and render the report.
	data := &report.Data{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Version:     Version,
		PriceID:     cfg.PriceSeries,
		SentimentID: cfg.SentimentSeries,
		Start:       panel.Dates[0],
		End:         panel.Dates[months-1],
		Settings: report.Settings{
			MaxLag:        cfg.MaxLag,
			SelectedLag:   sel.BestBIC,
			DiffLags:      diffLags,
			Rank:          cfg.Rank,
			Horizon:       cfg.Horizon,
			Replications:  cfg.BootstrapReplications,
			Seed:          cfg.Seed,
			Deterministic: cfg.Deterministic,
		},
		Dates:        panel.Dates,
		PriceRaw:     rawPrice,
		SentimentRaw: rawSentiment,
		LogPrice:     logPrice,
		SentimentSA:  decomp.Adjusted,
		Seasonal:     decomp,
		UnitRoots:    unitRoots,
		EG:           eg,
		LagTable:     sel,
		Model:        m,
		IRF:          bands,
		FEVD:         fevd,
		Forecast:     &report.ForecastTable{Dates: fcDates, Names: model.Names, Values: fcValues},
		Granger:      granger,
		Residuals:    diagnostics,
	}
	plots, err := report.BuildPlots(data)
	if err != nil {
		return err
	}
	data.Plots = plots

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", cfg.OutDir, err)
	}
	htmlPath := filepath.Join(cfg.OutDir, "report.html")
	if err := report.WriteHTML(htmlPath, data); err != nil {
		return err
	}
	tablesDir := filepath.Join(cfg.OutDir, "tables")
	csvFiles, err := report.WriteCSVs(tablesDir, data)
	if err != nil {
		return err
	}
	xlsxPath := filepath.Join(cfg.OutDir, "results.xlsx")
	if err := report.WriteXLSX(xlsxPath, data); err != nil {
		return err
	}

	log.InfoContext(ctx, "run completed",
		"elapsed", time.Since(started).Round(time.Millisecond).String(),
		"csv_tables", len(csvFiles))

	// Output locations are printed even in quiet mode.
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, htmlPath)
	fmt.Fprintln(out, xlsxPath)
	fmt.Fprintln(out, tablesDir)
	return nil
}
