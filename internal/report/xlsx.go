// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX exports every populated table of d into a single workbook,
// one sheet per table.
func WriteXLSX(path string, d *Data) error {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{f: f, first: true}

	if len(d.Dates) > 0 {
		if err := w.panelSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.Seasonal != nil && len(d.Dates) > 0 {
		if err := w.decompositionSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if len(d.UnitRoots) > 0 {
		if err := w.unitRootSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.EG != nil {
		if err := w.engleGrangerSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.LagTable != nil {
		if err := w.lagSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.Model != nil {
		if err := w.johansenSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
		if err := w.loadingSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if len(d.IRF) > 0 && d.Model != nil {
		if err := w.irfSheets(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.FEVD != nil {
		if err := w.fevdSheets(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if d.Forecast != nil {
		if err := w.forecastSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if len(d.Granger) > 0 {
		if err := w.grangerSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}
	if len(d.Residuals) > 0 {
		if err := w.diagnosticsSheet(d); err != nil {
			return fmt.Errorf("report: workbook: %w", err)
		}
	}

	if w.first {
		return fmt.Errorf("report: workbook: nothing to export")
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

type workbook struct {
	f     *excelize.File
	first bool
}

// sheet registers a new sheet, renaming the default one on first use.
func (w *workbook) sheet(name string) (string, error) {
	if w.first {
		w.first = false
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return "", err
		}
		return name, nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return "", err
	}
	return name, nil
}

func (w *workbook) setRow(sheet string, row int, vals []any) error {
	for i, v := range vals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if fv, ok := v.(float64); ok && (math.IsNaN(fv) || math.IsInf(fv, 0)) {
			v = ""
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) panelSheet(d *Data) error {
	sh, err := w.sheet("Panel")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"date", "price", "sentiment", "log_price", "sentiment_sa"}); err != nil {
		return err
	}
	for i, date := range d.Dates {
		row := []any{fdate(date), d.PriceRaw[i], d.SentimentRaw[i], d.LogPrice[i], d.SentimentSA[i]}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) decompositionSheet(d *Data) error {
	sh, err := w.sheet("Decomposition")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"date", "raw", "trend", "seasonal", "irregular", "adjusted"}); err != nil {
		return err
	}
	s := d.Seasonal
	for i, date := range d.Dates {
		row := []any{fdate(date), s.Raw[i], s.Trend[i], s.Seasonal[i], s.Irregular[i], s.Adjusted[i]}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) unitRootSheet(d *Data) error {
	sh, err := w.sheet("Unit roots")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"series", "order", "differences", "kpss_statistic", "p_value", "lags", "regression"}); err != nil {
		return err
	}
	r := 2
	for _, ur := range d.UnitRoots {
		for diff, test := range ur.Tests {
			row := []any{ur.Name, ur.Order, diff, test.Statistic, test.PValue, test.Lags, test.Regression.String()}
			if err := w.setRow(sh, r, row); err != nil {
				return err
			}
			r++
		}
	}
	return nil
}

func (w *workbook) engleGrangerSheet(d *Data) error {
	sh, err := w.sheet("Engle-Granger")
	if err != nil {
		return err
	}
	eg := d.EG
	rows := [][]any{
		{"intercept", eg.Intercept},
		{"slope", eg.Slope},
		{"r2", eg.R2},
		{"kpss_statistic", eg.Test.Statistic},
		{"p_value", eg.Test.PValue},
		{"alpha", eg.Alpha},
		{"verdict", eg.Verdict.String()},
	}
	for i, row := range rows {
		if err := w.setRow(sh, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) lagSheet(d *Data) error {
	sh, err := w.sheet("Lag selection")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"lag", "aic", "bic", "hq", "fpe"}); err != nil {
		return err
	}
	sel := d.LagTable
	for i := 0; i < sel.MaxLag; i++ {
		row := []any{i + 1, sel.AIC[i], sel.BIC[i], sel.HQ[i], sel.FPE[i]}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) johansenSheet(d *Data) error {
	sh, err := w.sheet("Johansen")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"rank", "eigenvalue", "trace_statistic", "critical_5pct"}); err != nil {
		return err
	}
	for i, tt := range d.Model.Trace {
		eig := any("")
		if i < len(d.Model.Eigenvalues) {
			eig = d.Model.Eigenvalues[i]
		}
		if err := w.setRow(sh, i+2, []any{tt.Rank, eig, tt.Statistic, tt.Critical5}); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) loadingSheet(d *Data) error {
	sh, err := w.sheet("Loadings")
	if err != nil {
		return err
	}
	m := d.Model
	if err := w.setRow(sh, 1, []any{"equation", "relation", "alpha", "std_error", "t_statistic", "p_value"}); err != nil {
		return err
	}
	K, rk := m.Alpha.Dims()
	r := 2
	for eq := 0; eq < K; eq++ {
		for c := 0; c < rk; c++ {
			row := []any{
				m.Names[eq], c + 1,
				m.Alpha.At(eq, c), m.AlphaSE.At(eq, c),
				m.AlphaStat.At(eq, c), m.AlphaP.At(eq, c),
			}
			if err := w.setRow(sh, r, row); err != nil {
				return err
			}
			r++
		}
	}

	r++
	if err := w.setRow(sh, r, []any{"variable", "relation", "beta"}); err != nil {
		return err
	}
	r++
	for k := 0; k < K; k++ {
		for c := 0; c < rk; c++ {
			if err := w.setRow(sh, r, []any{m.Names[k], c + 1, m.Beta.At(k, c)}); err != nil {
				return err
			}
			r++
		}
	}
	return nil
}

func (w *workbook) irfSheets(d *Data) error {
	shocks := make([]int, 0, len(d.IRF))
	for s := range d.IRF {
		shocks = append(shocks, s)
	}
	sort.Ints(shocks)

	for _, s := range shocks {
		band := d.IRF[s]
		if band == nil {
			continue
		}
		sh, err := w.sheet("IRF " + bandShockName(d, s))
		if err != nil {
			return err
		}

		header := []any{"horizon"}
		for _, nm := range d.Model.Names {
			header = append(header, nm, nm+"_lower", nm+"_upper")
		}
		if err := w.setRow(sh, 1, header); err != nil {
			return err
		}

		rows, cols := band.Point.Dims()
		for h := 0; h < rows; h++ {
			row := []any{h}
			for k := 0; k < cols; k++ {
				row = append(row, band.Point.At(h, k), band.Lower.At(h, k), band.Upper.At(h, k))
			}
			if err := w.setRow(sh, h+2, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *workbook) fevdSheets(d *Data) error {
	for i, nm := range d.FEVD.Names {
		sh, err := w.sheet("FEVD " + nm)
		if err != nil {
			return err
		}

		header := []any{"horizon"}
		for _, shock := range d.FEVD.Names {
			header = append(header, "share_"+shock)
		}
		if err := w.setRow(sh, 1, header); err != nil {
			return err
		}

		shares := d.FEVD.Shares[i]
		rows, cols := shares.Dims()
		for h := 0; h < rows; h++ {
			row := []any{h}
			for j := 0; j < cols; j++ {
				row = append(row, shares.At(h, j))
			}
			if err := w.setRow(sh, h+2, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *workbook) forecastSheet(d *Data) error {
	sh, err := w.sheet("Forecast")
	if err != nil {
		return err
	}
	fc := d.Forecast

	header := []any{"date"}
	for _, nm := range fc.Names {
		header = append(header, nm)
	}
	if err := w.setRow(sh, 1, header); err != nil {
		return err
	}
	rows, cols := fc.Values.Dims()
	for i := 0; i < rows; i++ {
		row := []any{fdate(fc.Dates[i])}
		for k := 0; k < cols; k++ {
			row = append(row, fc.Values.At(i, k))
		}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) grangerSheet(d *Data) error {
	sh, err := w.sheet("Granger")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"cause", "effect", "lags", "f_statistic", "p_value", "significant"}); err != nil {
		return err
	}
	for i, g := range d.Granger {
		row := []any{g.Cause, g.Effect, g.Lags, g.FStatistic, g.PValue, g.Significant}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) diagnosticsSheet(d *Data) error {
	sh, err := w.sheet("Diagnostics")
	if err != nil {
		return err
	}
	if err := w.setRow(sh, 1, []any{"equation", "ljung_box", "df", "p_value"}); err != nil {
		return err
	}
	for i, diag := range d.Residuals {
		lb := diag.LjungBox
		row := []any{diag.Name, lb.Statistic, lb.DF, lb.PValue}
		if err := w.setRow(sh, i+2, row); err != nil {
			return err
		}
	}
	return nil
}
