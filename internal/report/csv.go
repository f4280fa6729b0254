// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const csvDateLayout = "2006-01-02"

// fnum formats a value with six decimals, the precision used across all
// exports.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func fdate(t time.Time) string {
	return t.Format(csvDateLayout)
}

// safeName turns a variable name into a filename fragment.
func safeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// WriteCSVs exports every populated table of d into dir, one file per
// table, and returns the paths written.
func WriteCSVs(dir string, d *Data) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create %s: %w", dir, err)
	}

	type table struct {
		name    string
		write   func(io.Writer, *Data) error
		present bool
	}
	tables := []table{
		{"panel.csv", writePanelCSV, len(d.Dates) > 0},
		{"decomposition.csv", writeDecompositionCSV, d.Seasonal != nil && len(d.Dates) > 0},
		{"unit_roots.csv", writeUnitRootsCSV, len(d.UnitRoots) > 0},
		{"engle_granger.csv", writeEngleGrangerCSV, d.EG != nil},
		{"lag_selection.csv", writeLagSelectionCSV, d.LagTable != nil},
		{"johansen.csv", writeJohansenCSV, d.Model != nil},
		{"alpha.csv", writeAlphaCSV, d.Model != nil},
		{"beta.csv", writeBetaCSV, d.Model != nil},
		{"forecast.csv", writeForecastCSV, d.Forecast != nil},
		{"granger.csv", writeGrangerCSV, len(d.Granger) > 0},
		{"residual_acf.csv", writeResidualACFCSV, len(d.Residuals) > 0},
		{"ljung_box.csv", writeLjungBoxCSV, len(d.Residuals) > 0},
	}

	var written []string
	for _, tb := range tables {
		if !tb.present {
			continue
		}
		path := filepath.Join(dir, tb.name)
		if err := writeCSVFile(path, d, tb.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	shocks := make([]int, 0, len(d.IRF))
	for shock := range d.IRF {
		shocks = append(shocks, shock)
	}
	sort.Ints(shocks)
	for _, shock := range shocks {
		if d.IRF[shock] == nil {
			continue
		}
		name := fmt.Sprintf("irf_%s.csv", safeName(bandShockName(d, shock)))
		path := filepath.Join(dir, name)
		if err := writeCSVFile(path, d, func(w io.Writer, d *Data) error {
			return writeIRFCSV(w, d, shock)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if d.FEVD != nil {
		for i, nm := range d.FEVD.Names {
			name := fmt.Sprintf("fevd_%s.csv", safeName(nm))
			path := filepath.Join(dir, name)
			idx := i
			if err := writeCSVFile(path, d, func(w io.Writer, d *Data) error {
				return writeFEVDCSV(w, d, idx)
			}); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func writeCSVFile(path string, d *Data, write func(io.Writer, *Data) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := write(f, d); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

func bandShockName(d *Data, shock int) string {
	if d.Model != nil && shock < len(d.Model.Names) {
		return d.Model.Names[shock]
	}
	return strconv.Itoa(shock)
}

func writePanelCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "price", "sentiment", "log_price", "sentiment_sa"}); err != nil {
		return err
	}
	for i, date := range d.Dates {
		rec := []string{
			fdate(date),
			fnum(d.PriceRaw[i]),
			fnum(d.SentimentRaw[i]),
			fnum(d.LogPrice[i]),
			fnum(d.SentimentSA[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeDecompositionCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "raw", "trend", "seasonal", "irregular", "adjusted"}); err != nil {
		return err
	}
	s := d.Seasonal
	for i, date := range d.Dates {
		rec := []string{
			fdate(date),
			fnum(s.Raw[i]),
			fnum(s.Trend[i]),
			fnum(s.Seasonal[i]),
			fnum(s.Irregular[i]),
			fnum(s.Adjusted[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeUnitRootsCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"series", "order", "differences", "kpss_statistic", "p_value", "lags", "regression"}); err != nil {
		return err
	}
	for _, row := range d.UnitRoots {
		for diff, test := range row.Tests {
			rec := []string{
				row.Name,
				strconv.Itoa(row.Order),
				strconv.Itoa(diff),
				fnum(test.Statistic),
				fnum(test.PValue),
				strconv.Itoa(test.Lags),
				test.Regression.String(),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeEngleGrangerCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"intercept", "slope", "r2", "kpss_statistic", "p_value", "alpha", "verdict"}); err != nil {
		return err
	}
	eg := d.EG
	rec := []string{
		fnum(eg.Intercept),
		fnum(eg.Slope),
		fnum(eg.R2),
		fnum(eg.Test.Statistic),
		fnum(eg.Test.PValue),
		fnum(eg.Alpha),
		eg.Verdict.String(),
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeLagSelectionCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"lag", "aic", "bic", "hq", "fpe"}); err != nil {
		return err
	}
	sel := d.LagTable
	for i := 0; i < sel.MaxLag; i++ {
		rec := []string{
			strconv.Itoa(i + 1),
			fnum(sel.AIC[i]),
			fnum(sel.BIC[i]),
			fnum(sel.HQ[i]),
			fnum(sel.FPE[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJohansenCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "eigenvalue", "trace_statistic", "critical_5pct"}); err != nil {
		return err
	}
	m := d.Model
	for i, tt := range m.Trace {
		eig := ""
		if i < len(m.Eigenvalues) {
			eig = fnum(m.Eigenvalues[i])
		}
		rec := []string{
			strconv.Itoa(tt.Rank),
			eig,
			fnum(tt.Statistic),
			fnum(tt.Critical5),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeAlphaCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"equation", "relation", "estimate", "std_error", "t_statistic", "p_value"}); err != nil {
		return err
	}
	m := d.Model
	K, r := m.Alpha.Dims()
	for eq := 0; eq < K; eq++ {
		for c := 0; c < r; c++ {
			rec := []string{
				m.Names[eq],
				strconv.Itoa(c + 1),
				fnum(m.Alpha.At(eq, c)),
				fnum(m.AlphaSE.At(eq, c)),
				fnum(m.AlphaStat.At(eq, c)),
				fnum(m.AlphaP.At(eq, c)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBetaCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "relation", "coefficient"}); err != nil {
		return err
	}
	m := d.Model
	K, r := m.Beta.Dims()
	for k := 0; k < K; k++ {
		for c := 0; c < r; c++ {
			rec := []string{
				m.Names[k],
				strconv.Itoa(c + 1),
				fnum(m.Beta.At(k, c)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeIRFCSV(w io.Writer, d *Data, shock int) error {
	band := d.IRF[shock]
	cw := csv.NewWriter(w)

	names := d.Model.Names
	header := []string{"horizon"}
	for _, nm := range names {
		header = append(header, nm, nm+"_lower", nm+"_upper")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rows, cols := band.Point.Dims()
	for h := 0; h < rows; h++ {
		rec := []string{strconv.Itoa(h)}
		for k := 0; k < cols; k++ {
			rec = append(rec,
				fnum(band.Point.At(h, k)),
				fnum(band.Lower.At(h, k)),
				fnum(band.Upper.At(h, k)),
			)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFEVDCSV(w io.Writer, d *Data, variable int) error {
	fevd := d.FEVD
	cw := csv.NewWriter(w)

	header := []string{"horizon"}
	for _, nm := range fevd.Names {
		header = append(header, "share_"+nm)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	shares := fevd.Shares[variable]
	rows, cols := shares.Dims()
	for h := 0; h < rows; h++ {
		rec := []string{strconv.Itoa(h)}
		for j := 0; j < cols; j++ {
			rec = append(rec, fnum(shares.At(h, j)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeForecastCSV(w io.Writer, d *Data) error {
	fc := d.Forecast
	cw := csv.NewWriter(w)

	header := append([]string{"date"}, fc.Names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	rows, cols := fc.Values.Dims()
	for i := 0; i < rows; i++ {
		rec := []string{fdate(fc.Dates[i])}
		for k := 0; k < cols; k++ {
			rec = append(rec, fnum(fc.Values.At(i, k)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeGrangerCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"cause", "effect", "lags", "f_statistic", "p_value", "significant"}); err != nil {
		return err
	}
	for _, g := range d.Granger {
		rec := []string{
			g.Cause,
			g.Effect,
			strconv.Itoa(g.Lags),
			fnum(g.FStatistic),
			fnum(g.PValue),
			strconv.FormatBool(g.Significant),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeResidualACFCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"equation", "lag", "autocorrelation", "bound"}); err != nil {
		return err
	}
	for _, diag := range d.Residuals {
		for lag, v := range diag.ACF.Values {
			rec := []string{
				diag.Name,
				strconv.Itoa(lag),
				fnum(v),
				fnum(diag.ACF.Bound),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeLjungBoxCSV(w io.Writer, d *Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"equation", "statistic", "df", "p_value"}); err != nil {
		return err
	}
	for _, diag := range d.Residuals {
		lb := diag.LjungBox
		rec := []string{
			diag.Name,
			fnum(lb.Statistic),
			strconv.Itoa(lb.DF),
			fnum(lb.PValue),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
