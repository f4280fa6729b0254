// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BuildPlots renders every chart the report embeds and returns them as
// PNG bytes keyed by chart name.
func BuildPlots(d *Data) (map[string][]byte, error) {
	out := make(map[string][]byte)

	if len(d.Dates) > 0 {
		png, err := panelPlot(d)
		if err != nil {
			return nil, fmt.Errorf("report: panel plot: %w", err)
		}
		out["panel"] = png
	}

	if d.Seasonal != nil && len(d.Dates) > 0 {
		png, err := decompositionPlot(d)
		if err != nil {
			return nil, fmt.Errorf("report: decomposition plot: %w", err)
		}
		out["decomposition"] = png
	}

	if d.Model != nil {
		shocks := make([]int, 0, len(d.IRF))
		for s := range d.IRF {
			shocks = append(shocks, s)
		}
		sort.Ints(shocks)
		for _, s := range shocks {
			png, err := irfPlot(d, s)
			if err != nil {
				return nil, fmt.Errorf("report: irf plot: %w", err)
			}
			out["irf_"+safeName(d.Model.Names[s])] = png
		}
	}

	if d.FEVD != nil {
		for i, nm := range d.FEVD.Names {
			png, err := fevdPlot(d, i)
			if err != nil {
				return nil, fmt.Errorf("report: fevd plot: %w", err)
			}
			out["fevd_"+safeName(nm)] = png
		}
	}

	if d.Forecast != nil {
		for k, nm := range d.Forecast.Names {
			png, err := forecastPlot(d, k)
			if err != nil {
				return nil, fmt.Errorf("report: forecast plot: %w", err)
			}
			out["forecast_"+safeName(nm)] = png
		}
	}

	for _, diag := range d.Residuals {
		png, err := acfPlot(diag)
		if err != nil {
			return nil, fmt.Errorf("report: acf plot: %w", err)
		}
		out["acf_"+safeName(diag.Name)] = png
	}

	return out, nil
}

// timeXYs pairs dates with values, skipping entries that are not finite
// (the moving-average trend has no value near the sample edges).
func timeXYs(dates []time.Time, vals []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	return pts
}

func indexXYs(vals []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

func newTimePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func newIndexPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, colorIdx int, dashed bool) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = plotutil.Color(colorIdx)
	if dashed {
		l.Dashes = plotutil.Dashes(2)
	}
	p.Add(l)
	if name != "" {
		p.Legend.Add(name, l)
	}
	return nil
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(7*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func panelPlot(d *Data) ([]byte, error) {
	p := newTimePlot("Model inputs", "")
	if err := addLine(p, "100·log "+d.PriceID, timeXYs(d.Dates, d.LogPrice), 0, false); err != nil {
		return nil, err
	}
	if err := addLine(p, d.SentimentID+" (SA)", timeXYs(d.Dates, d.SentimentSA), 1, false); err != nil {
		return nil, err
	}
	return renderPNG(p)
}

func decompositionPlot(d *Data) ([]byte, error) {
	p := newTimePlot("Seasonal decomposition of "+d.SentimentID, "index")
	if err := addLine(p, "raw", timeXYs(d.Dates, d.Seasonal.Raw), 0, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "trend", timeXYs(d.Dates, d.Seasonal.Trend), 1, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "adjusted", timeXYs(d.Dates, d.Seasonal.Adjusted), 2, true); err != nil {
		return nil, err
	}
	return renderPNG(p)
}

func irfPlot(d *Data, shock int) ([]byte, error) {
	band := d.IRF[shock]
	p := newIndexPlot("Responses to a "+d.Model.Names[shock]+" shock", "months", "response")

	_, K := band.Point.Dims()
	for k := 0; k < K; k++ {
		if err := addLine(p, d.Model.Names[k], matColXYs(band.Point, k), k, false); err != nil {
			return nil, err
		}
		if err := addLine(p, "", matColXYs(band.Lower, k), k, true); err != nil {
			return nil, err
		}
		if err := addLine(p, "", matColXYs(band.Upper, k), k, true); err != nil {
			return nil, err
		}
	}
	return renderPNG(p)
}

func matColXYs(mx interface {
	Dims() (int, int)
	At(int, int) float64
}, col int) plotter.XYs {
	rows, _ := mx.Dims()
	pts := make(plotter.XYs, 0, rows)
	for h := 0; h < rows; h++ {
		v := mx.At(h, col)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(h), Y: v})
	}
	return pts
}

func fevdPlot(d *Data, variable int) ([]byte, error) {
	p := newIndexPlot("Forecast error variance of "+d.FEVD.Names[variable], "months", "share")
	p.Y.Min = 0
	p.Y.Max = 1

	for j, nm := range d.FEVD.Names {
		if err := addLine(p, nm+" shock", matColXYs(d.FEVD.Shares[variable], j), j, false); err != nil {
			return nil, err
		}
	}
	return renderPNG(p)
}

func forecastPlot(d *Data, variable int) ([]byte, error) {
	nm := d.Forecast.Names[variable]
	p := newTimePlot("Forecast of "+nm, "")

	// Trailing history for context, matched by panel column.
	var hist []float64
	switch variable {
	case 0:
		hist = d.LogPrice
	case 1:
		hist = d.SentimentSA
	}
	if len(hist) > 0 {
		tail := len(hist) - 48
		if tail < 0 {
			tail = 0
		}
		if err := addLine(p, "observed", timeXYs(d.Dates[tail:], hist[tail:]), 0, false); err != nil {
			return nil, err
		}
	}

	fc := make([]float64, len(d.Forecast.Dates))
	for i := range fc {
		fc[i] = d.Forecast.Values.At(i, variable)
	}
	if err := addLine(p, "forecast", timeXYs(d.Forecast.Dates, fc), 1, true); err != nil {
		return nil, err
	}
	return renderPNG(p)
}

func acfPlot(diag ResidualDiagnostic) ([]byte, error) {
	p := newIndexPlot("Residual autocorrelation: "+diag.Name, "lag", "acf")

	sc, err := plotter.NewScatter(indexXYs(diag.ACF.Values))
	if err != nil {
		return nil, err
	}
	sc.Color = plotutil.Color(0)
	p.Add(sc)

	n := float64(len(diag.ACF.Values) - 1)
	bounds := []float64{diag.ACF.Bound, -diag.ACF.Bound, 0}
	for i, b := range bounds {
		line := plotter.XYs{{X: 0, Y: b}, {X: n, Y: b}}
		l, err := plotter.NewLine(line)
		if err != nil {
			return nil, err
		}
		if i < 2 {
			l.Dashes = plotutil.Dashes(2)
		}
		p.Add(l)
	}
	return renderPNG(p)
}
