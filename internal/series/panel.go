// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package series

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Panel is a wide monthly table: one row per month, one column per series.
// Rows where any series was missing are dropped at construction, and the
// retained range is checked to be gap-free.
type Panel struct {
	// Column names, in the same order as the columns of Y
	Names []string
	// Month stamps for each row
	Dates []time.Time
	// Data matrix, T x K
	Y *mat.Dense
}

// BuildPanel joins series on calendar month, keeping only months where every
// series has a value. Columns follow argument order.
func BuildPanel(ss ...*Series) (*Panel, error) {
	if len(ss) == 0 {
		return nil, fmt.Errorf("no series given")
	}

	names := make([]string, len(ss))
	maps := make([]map[int]float64, len(ss))
	for i, s := range ss {
		if s == nil || len(s.Obs) == 0 {
			return nil, fmt.Errorf("series %d is empty", i)
		}
		names[i] = s.ID
		m := make(map[int]float64, len(s.Obs))
		for _, o := range s.Obs {
			m[monthKey(o.Date)] = o.Value
		}
		maps[i] = m
	}

	// Walk the first series in order and keep months present everywhere.
	var dates []time.Time
	var rows [][]float64
	for _, o := range ss[0].Obs {
		k := monthKey(o.Date)
		row := make([]float64, len(ss))
		ok := true
		for i, m := range maps {
			v, has := m[k]
			if !has {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}
		dates = append(dates, time.Date(o.Date.Year(), o.Date.Month(), 1, 0, 0, 0, 0, time.UTC))
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("series share no common months")
	}

	// The retained range must be consecutive months. An interior hole means
	// the provider delivered a broken series and the analysis cannot proceed.
	for i := 1; i < len(dates); i++ {
		if monthKey(dates[i]) != monthKey(dates[i-1])+1 {
			return nil, fmt.Errorf("gap in joined panel between %s and %s",
				dates[i-1].Format("2006-01"), dates[i].Format("2006-01"))
		}
	}

	data := make([]float64, len(rows)*len(ss))
	for t, row := range rows {
		copy(data[t*len(ss):(t+1)*len(ss)], row)
	}

	return &Panel{
		Names: names,
		Dates: dates,
		Y:     mat.NewDense(len(rows), len(ss), data),
	}, nil
}

// Dims returns rows (months) and columns (series).
func (p *Panel) Dims() (int, int) { return p.Y.Dims() }

// Index returns the column position of a named series.
func (p *Panel) Index(name string) (int, error) {
	for i, n := range p.Names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("panel has no column %q", name)
}

// Column returns a copy of the named column.
func (p *Panel) Column(name string) ([]float64, error) {
	j, err := p.Index(name)
	if err != nil {
		return nil, err
	}
	T, _ := p.Y.Dims()
	out := make([]float64, T)
	mat.Col(out, j, p.Y)
	return out, nil
}

// WithColumn returns a new panel with an extra column appended.
func (p *Panel) WithColumn(name string, vals []float64) (*Panel, error) {
	T, K := p.Y.Dims()
	if len(vals) != T {
		return nil, fmt.Errorf("column %q has %d values, panel has %d rows", name, len(vals), T)
	}
	for _, n := range p.Names {
		if n == name {
			return nil, fmt.Errorf("panel already has column %q", name)
		}
	}

	out := mat.NewDense(T, K+1, nil)
	for t := 0; t < T; t++ {
		for k := 0; k < K; k++ {
			out.Set(t, k, p.Y.At(t, k))
		}
		out.Set(t, K, vals[t])
	}

	names := make([]string, K+1)
	copy(names, p.Names)
	names[K] = name

	dates := make([]time.Time, T)
	copy(dates, p.Dates)

	return &Panel{Names: names, Dates: dates, Y: out}, nil
}

// Select returns a new panel with the named columns, in the given order.
func (p *Panel) Select(names ...string) (*Panel, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no columns selected")
	}
	T, _ := p.Y.Dims()

	out := mat.NewDense(T, len(names), nil)
	for j, name := range names {
		idx, err := p.Index(name)
		if err != nil {
			return nil, err
		}
		for t := 0; t < T; t++ {
			out.Set(t, j, p.Y.At(t, idx))
		}
	}

	dates := make([]time.Time, T)
	copy(dates, p.Dates)

	sel := make([]string, len(names))
	copy(sel, names)

	return &Panel{Names: sel, Dates: dates, Y: out}, nil
}

// DiffOnce returns a panel of first differences of every column. The first
// month is dropped.
func (p *Panel) DiffOnce() (*Panel, error) {
	T, K := p.Y.Dims()
	if T < 2 {
		return nil, fmt.Errorf("need at least 2 rows to difference, got %d", T)
	}

	out := mat.NewDense(T-1, K, nil)
	for t := 1; t < T; t++ {
		for k := 0; k < K; k++ {
			out.Set(t-1, k, p.Y.At(t, k)-p.Y.At(t-1, k))
		}
	}

	names := make([]string, K)
	copy(names, p.Names)

	dates := make([]time.Time, T-1)
	copy(dates, p.Dates[1:])

	return &Panel{Names: names, Dates: dates, Y: out}, nil
}
