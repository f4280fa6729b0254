// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/CarlosBello16/VECM-Final/internal/stats"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// RenderHTML writes the full report page for d to w.
func RenderHTML(w io.Writer, d *Data) error {
	tmpl, err := template.New("report.html.tmpl").Funcs(template.FuncMap{
		"f2":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f4":    func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", 100*v) },
		"month": func(t time.Time) string { return t.Format("Jan 2006") },
		"stars": significanceStars,
		"slug":  safeName,
	}).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("report: parse template: %w", err)
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

// WriteHTML renders the report into the file at path.
func WriteHTML(path string, d *Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := RenderHTML(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

func significanceStars(p float64) string {
	switch {
	case p < 0.01:
		return "***"
	case p < 0.05:
		return "**"
	case p < 0.10:
		return "*"
	default:
		return ""
	}
}

// Plot returns the named chart as a data URI, empty when the chart was
// not rendered.
func (d *Data) Plot(name string) template.URL {
	b, ok := d.Plots[name]
	if !ok || len(b) == 0 {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(b))
}

// Months is the panel length.
func (d *Data) Months() int { return len(d.Dates) }

// EGBorderline reports whether the residual test landed between the
// rejection threshold and the top of the tabulated p-value range.
func (d *Data) EGBorderline() bool {
	return d.EG != nil && d.EG.Verdict == stats.Borderline
}

// UnitRootTestRow is one KPSS test flattened for display.
type UnitRootTestRow struct {
	Series     string
	Order      int
	Diff       int
	Statistic  float64
	PValue     float64
	Lags       int
	Regression string
}

// UnitRootTestRows flattens the per-series test trails.
func (d *Data) UnitRootTestRows() []UnitRootTestRow {
	var rows []UnitRootTestRow
	for _, ur := range d.UnitRoots {
		for diff, test := range ur.Tests {
			rows = append(rows, UnitRootTestRow{
				Series:     ur.Name,
				Order:      ur.Order,
				Diff:       diff,
				Statistic:  test.Statistic,
				PValue:     test.PValue,
				Lags:       test.Lags,
				Regression: test.Regression.String(),
			})
		}
	}
	return rows
}

// LagRow is one order of the selection table.
type LagRow struct {
	Lag      int
	AIC      float64
	BIC      float64
	HQ       float64
	FPE      float64
	Selected bool
}

// LagRows expands the criteria table, marking the BIC choice.
func (d *Data) LagRows() []LagRow {
	if d.LagTable == nil {
		return nil
	}
	rows := make([]LagRow, d.LagTable.MaxLag)
	for i := range rows {
		rows[i] = LagRow{
			Lag:      i + 1,
			AIC:      d.LagTable.AIC[i],
			BIC:      d.LagTable.BIC[i],
			HQ:       d.LagTable.HQ[i],
			FPE:      d.LagTable.FPE[i],
			Selected: i+1 == d.LagTable.BestBIC,
		}
	}
	return rows
}

// TraceRow is one null hypothesis of the Johansen table.
type TraceRow struct {
	Rank       int
	Eigenvalue float64
	Statistic  float64
	Critical5  float64
	Reject     bool
}

// TraceRows lays out the trace tests next to their eigenvalues.
func (d *Data) TraceRows() []TraceRow {
	if d.Model == nil {
		return nil
	}
	rows := make([]TraceRow, len(d.Model.Trace))
	for i, tt := range d.Model.Trace {
		eig := 0.0
		if i < len(d.Model.Eigenvalues) {
			eig = d.Model.Eigenvalues[i]
		}
		rows[i] = TraceRow{
			Rank:       tt.Rank,
			Eigenvalue: eig,
			Statistic:  tt.Statistic,
			Critical5:  tt.Critical5,
			Reject:     tt.Critical5 > 0 && tt.Statistic > tt.Critical5,
		}
	}
	return rows
}

// AlphaRow is one adjustment coefficient with its inference.
type AlphaRow struct {
	Equation  string
	Estimate  float64
	SE        float64
	Statistic float64
	PValue    float64
	Stars     string
}

// AlphaRows flattens the loadings of the first cointegrating relation.
func (d *Data) AlphaRows() []AlphaRow {
	if d.Model == nil {
		return nil
	}
	K, _ := d.Model.Alpha.Dims()
	rows := make([]AlphaRow, K)
	for eq := 0; eq < K; eq++ {
		p := d.Model.AlphaP.At(eq, 0)
		rows[eq] = AlphaRow{
			Equation:  d.Model.Names[eq],
			Estimate:  d.Model.Alpha.At(eq, 0),
			SE:        d.Model.AlphaSE.At(eq, 0),
			Statistic: d.Model.AlphaStat.At(eq, 0),
			PValue:    p,
			Stars:     significanceStars(p),
		}
	}
	return rows
}

// BetaRow is one coefficient of the cointegrating vector.
type BetaRow struct {
	Variable    string
	Coefficient float64
}

// BetaRows lists the normalized cointegrating vector.
func (d *Data) BetaRows() []BetaRow {
	if d.Model == nil {
		return nil
	}
	K, _ := d.Model.Beta.Dims()
	rows := make([]BetaRow, K)
	for k := 0; k < K; k++ {
		rows[k] = BetaRow{
			Variable:    d.Model.Names[k],
			Coefficient: d.Model.Beta.At(k, 0),
		}
	}
	return rows
}

// ForecastRow is one month of the point forecast.
type ForecastRow struct {
	Date   time.Time
	Values []float64
}

// ForecastRows pairs forecast dates with their values.
func (d *Data) ForecastRows() []ForecastRow {
	if d.Forecast == nil {
		return nil
	}
	rows := make([]ForecastRow, len(d.Forecast.Dates))
	for i, date := range d.Forecast.Dates {
		_, cols := d.Forecast.Values.Dims()
		vals := make([]float64, cols)
		for k := 0; k < cols; k++ {
			vals[k] = d.Forecast.Values.At(i, k)
		}
		rows[i] = ForecastRow{Date: date, Values: vals}
	}
	return rows
}

// PlotNames an IRF chart exists for, in model variable order.
type NamedPlot struct {
	Title string
	URI   template.URL
}

// IRFPlots returns the impulse response charts in shock order.
func (d *Data) IRFPlots() []NamedPlot {
	if d.Model == nil {
		return nil
	}
	var out []NamedPlot
	for _, nm := range d.Model.Names {
		if uri := d.Plot("irf_" + safeName(nm)); uri != "" {
			out = append(out, NamedPlot{Title: "Shock to " + nm, URI: uri})
		}
	}
	return out
}

// FEVDPlots returns the variance decomposition charts in variable order.
func (d *Data) FEVDPlots() []NamedPlot {
	if d.FEVD == nil {
		return nil
	}
	var out []NamedPlot
	for _, nm := range d.FEVD.Names {
		if uri := d.Plot("fevd_" + safeName(nm)); uri != "" {
			out = append(out, NamedPlot{Title: nm, URI: uri})
		}
	}
	return out
}

// ForecastPlots returns the per-variable forecast charts.
func (d *Data) ForecastPlots() []NamedPlot {
	if d.Forecast == nil {
		return nil
	}
	var out []NamedPlot
	for _, nm := range d.Forecast.Names {
		if uri := d.Plot("forecast_" + safeName(nm)); uri != "" {
			out = append(out, NamedPlot{Title: nm, URI: uri})
		}
	}
	return out
}

// ACFPlots returns the residual autocorrelation charts.
func (d *Data) ACFPlots() []NamedPlot {
	var out []NamedPlot
	for _, diag := range d.Residuals {
		if uri := d.Plot("acf_" + safeName(diag.Name)); uri != "" {
			out = append(out, NamedPlot{Title: diag.Name, URI: uri})
		}
	}
	return out
}
