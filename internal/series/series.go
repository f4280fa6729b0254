// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package series holds the observation, series and panel types used by the
// analysis, plus the small set of transforms (differencing, scaled log)
// applied before modeling. Everything here produces new values; nothing is
// mutated in place.
package series

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Observation is a single monthly data point.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is a named monthly time series.
type Series struct {
	ID  string
	Obs []Observation
}

// NewSeries builds a series from observations, sorted by date.
// It fails if two observations fall in the same calendar month.
func NewSeries(id string, obs []Observation) (*Series, error) {
	if id == "" {
		return nil, fmt.Errorf("series id must not be empty")
	}
	cp := make([]Observation, len(obs))
	copy(cp, obs)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Date.Before(cp[j].Date) })

	seen := make(map[int]bool, len(cp))
	for _, o := range cp {
		k := monthKey(o.Date)
		if seen[k] {
			return nil, fmt.Errorf("series %s: duplicate observation for %s", id, o.Date.Format("2006-01"))
		}
		seen[k] = true
	}

	return &Series{ID: id, Obs: cp}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Obs) }

// Values returns the observation values in date order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.Obs))
	for i, o := range s.Obs {
		out[i] = o.Value
	}
	return out
}

// Dates returns the observation dates in order.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Obs))
	for i, o := range s.Obs {
		out[i] = o.Date
	}
	return out
}

// monthKey collapses a date to its calendar month.
func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// Diff returns the first differences x_t - x_{t-1}. Output has length n-1.
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	out := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		out[i-1] = x[i] - x[i-1]
	}
	return out
}

// DiffN applies first differencing k times.
func DiffN(x []float64, k int) ([]float64, error) {
	if k < 0 {
		return nil, fmt.Errorf("diff order must be >= 0, got %d", k)
	}
	if len(x) <= k {
		return nil, fmt.Errorf("need more than %d observations to difference %d times, got %d", k, k, len(x))
	}
	out := make([]float64, len(x))
	copy(out, x)
	for i := 0; i < k; i++ {
		out = Diff(out)
	}
	return out, nil
}

// Log100 returns 100*ln(x) for each value. The scaling keeps the
// transformed price index on a magnitude comparable to the sentiment index.
func Log100(x []float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, v := range x {
		if v <= 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("log transform requires positive values, got %g at position %d", v, i)
		}
		out[i] = 100.0 * math.Log(v)
	}
	return out, nil
}
