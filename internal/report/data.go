// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package report renders the results of an analysis run as an HTML page
// with embedded charts, plus CSV and XLSX exports of every table.
package report

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/CarlosBello16/VECM-Final/internal/stats"
	"github.com/CarlosBello16/VECM-Final/internal/vecm"
)

// UnitRootRow summarizes the integration order search for one series:
// the tests run on successive differences and the order they settled on.
type UnitRootRow struct {
	Name  string
	Order int
	Tests []*stats.KPSSResult
}

// ResidualDiagnostic holds the residual checks for one model equation.
type ResidualDiagnostic struct {
	Name     string
	ACF      *stats.ACFResult
	LjungBox *stats.LjungBoxResult
}

// ForecastTable is a dated point forecast for every variable.
type ForecastTable struct {
	Dates  []time.Time
	Names  []string
	Values *mat.Dense
}

// Settings echoes the run parameters into the report.
type Settings struct {
	MaxLag        int
	SelectedLag   int
	DiffLags      int
	Rank          int
	Horizon       int
	Replications  int
	Seed          int64
	Deterministic string
}

// Data carries everything the renderers need. The slices indexed by month
// (PriceRaw, SentimentRaw, LogPrice, SentimentSA) are all aligned with
// Dates.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Version     string

	PriceID     string
	SentimentID string
	Start       time.Time
	End         time.Time
	Settings    Settings

	Dates        []time.Time
	PriceRaw     []float64
	SentimentRaw []float64
	LogPrice     []float64
	SentimentSA  []float64

	Seasonal *stats.Decomposition

	UnitRoots []UnitRootRow
	EG        *stats.EngleGrangerResult
	LagTable  *vecm.LagSelection
	Model     *vecm.VECM
	IRF       map[int]*vecm.IRFBand
	FEVD      *vecm.FEVDResult
	Forecast  *ForecastTable
	Granger   []*vecm.GrangerResult
	Residuals []ResidualDiagnostic

	// PNG charts by name, embedded into the HTML page.
	Plots map[string][]byte
}
