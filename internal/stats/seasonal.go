// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"
	"math"
)

// Decomposition is an additive split of a series into components.
// Trend and Irregular are NaN near the edges where the centered moving
// average is undefined; Seasonal and Adjusted cover every observation.
// Wherever Trend is defined, Trend + Seasonal + Irregular reconstructs the
// raw value exactly.
type Decomposition struct {
	Period    int
	Raw       []float64
	Trend     []float64
	Seasonal  []float64
	Irregular []float64
	Adjusted  []float64
}

// Factors returns the seasonal factor for each phase of the cycle
// (for monthly data: January first).
func (d *Decomposition) Factors() []float64 {
	out := make([]float64, d.Period)
	copy(out, d.Seasonal[:d.Period])
	return out
}

// Decompose performs a classical additive seasonal decomposition with the
// given period (12 for monthly data). The trend is a centered moving
// average (a 2xM average when the period is even), the seasonal component
// is the per-phase mean of the detrended series re-centered to sum to zero
// over one cycle, and the seasonally adjusted series is raw minus seasonal.
//
// At least two full cycles of data are required; below that the seasonal
// means are not estimable.
func Decompose(x []float64, period int) (*Decomposition, error) {
	n := len(x)
	if period < 2 {
		return nil, fmt.Errorf("decompose: period must be >= 2, got %d", period)
	}
	if n < 2*period {
		return nil, fmt.Errorf("decompose: need at least %d observations for period %d, got %d", 2*period, period, n)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("decompose: non-finite value at position %d", i)
		}
	}

	raw := make([]float64, n)
	copy(raw, x)

	trend := centeredMA(raw, period)

	// Per-phase means of the detrended series
	sums := make([]float64, period)
	counts := make([]int, period)
	for t := 0; t < n; t++ {
		if math.IsNaN(trend[t]) {
			continue
		}
		phase := t % period
		sums[phase] += raw[t] - trend[t]
		counts[phase]++
	}

	means := make([]float64, period)
	grand := 0.0
	for i := 0; i < period; i++ {
		if counts[i] == 0 {
			return nil, fmt.Errorf("decompose: phase %d has no detrended observations", i)
		}
		means[i] = sums[i] / float64(counts[i])
		grand += means[i]
	}
	grand /= float64(period)

	// Center so the factors sum to zero over one cycle
	for i := range means {
		means[i] -= grand
	}

	seasonal := make([]float64, n)
	irregular := make([]float64, n)
	adjusted := make([]float64, n)
	for t := 0; t < n; t++ {
		seasonal[t] = means[t%period]
		adjusted[t] = raw[t] - seasonal[t]
		if math.IsNaN(trend[t]) {
			irregular[t] = math.NaN()
		} else {
			irregular[t] = raw[t] - trend[t] - seasonal[t]
		}
	}

	return &Decomposition{
		Period:    period,
		Raw:       raw,
		Trend:     trend,
		Seasonal:  seasonal,
		Irregular: irregular,
		Adjusted:  adjusted,
	}, nil
}

// centeredMA computes the centered moving-average trend. For an even window
// the two extreme observations get half weight, which centers the average
// on an actual observation.
func centeredMA(x []float64, period int) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	if period%2 == 0 {
		half := period / 2
		for t := half; t < n-half; t++ {
			sum := 0.5*x[t-half] + 0.5*x[t+half]
			for j := -half + 1; j <= half-1; j++ {
				sum += x[t+j]
			}
			out[t] = sum / float64(period)
		}
		return out
	}

	half := (period - 1) / 2
	for t := half; t < n-half; t++ {
		sum := 0.0
		for j := -half; j <= half; j++ {
			sum += x[t+j]
		}
		out[t] = sum / float64(period)
	}
	return out
}
