// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Deterministic selects which deterministic terms enter the short-run
// equations.
type Deterministic int

const (
	DetNone Deterministic = iota
	DetConst
	DetTrend
	DetConstTrend
)

func (d Deterministic) String() string {
	switch d {
	case DetNone:
		return "none"
	case DetConst:
		return "const"
	case DetTrend:
		return "trend"
	case DetConstTrend:
		return "const+trend"
	default:
		return "unknown"
	}
}

func (d Deterministic) hasConst() bool {
	return d == DetConst || d == DetConstTrend
}

func (d Deterministic) hasTrend() bool {
	return d == DetTrend || d == DetConstTrend
}

// columns is the number of deterministic regressors.
func (d Deterministic) columns() int {
	n := 0
	if d.hasConst() {
		n++
	}
	if d.hasTrend() {
		n++
	}
	return n
}

// ParseDeterministic maps a config string onto a Deterministic value.
func ParseDeterministic(s string) (Deterministic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return DetNone, nil
	case "", "const":
		return DetConst, nil
	case "trend":
		return DetTrend, nil
	case "const+trend", "const-trend", "both":
		return DetConstTrend, nil
	default:
		return DetConst, fmt.Errorf("unknown deterministic term %q", s)
	}
}

// ModelSpec describes a levels VAR to fit.
type ModelSpec struct {
	// Number of lags p
	Lags int
	// Deterministic terms included in each equation
	Deterministic Deterministic
}

// VAR is a reduced-form vector autoregression in levels:
// y_t = C·d_t + A_1 y_{t-1} + ... + A_p y_{t-p} + u_t.
type VAR struct {
	Model ModelSpec
	// Variable names, one per column of the data it was fitted on
	Names []string

	// Coefficient matrices A_1..A_p, each K x K
	A []*mat.Dense

	// Deterministic coefficients, K x detCols (constant column first)
	C *mat.Dense

	// Residual covariance, K x K
	SigmaU *mat.SymDense
}

// VECM is a fitted vector error-correction model
// Δy_t = α β' y_{t-1} + Γ_1 Δy_{t-1} + ... + Γ_{p-1} Δy_{t-p+1} + C·d_t + u_t
// with the deterministic terms restricted to the short-run part.
// Everything is fixed at estimation time and never mutated.
type VECM struct {
	// Variable names, one per column
	Names []string
	// Number of lagged difference terms; the levels VAR has order Lags+1
	Lags int
	// Cointegration rank r
	Rank int
	// Deterministic terms in the short-run equations
	Deterministic Deterministic

	// Adjustment coefficients, K x r
	Alpha *mat.Dense
	// Cointegrating vectors, K x r, normalized so the first variable's
	// coefficient is one
	Beta *mat.Dense
	// Short-run coefficient matrices Γ_1..Γ_{p-1}, each K x K
	Gamma []*mat.Dense
	// Deterministic coefficients, K x detCols, nil when none
	C *mat.Dense

	// Standard errors, t statistics and two-sided normal p-values for the
	// adjustment coefficients, each K x r
	AlphaSE   *mat.Dense
	AlphaStat *mat.Dense
	AlphaP    *mat.Dense

	// Residual covariance with degrees-of-freedom correction, K x K
	SigmaU *mat.SymDense
	// Residuals of the differenced system, T_eff x K
	Residuals *mat.Dense

	// Eigenvalues of the reduced-rank problem, descending
	Eigenvalues []float64
	// Johansen trace tests for each rank hypothesis
	Trace []TraceTest

	// Effective sample size (rows used after lagging)
	Obs int
}

// TraceTest is one row of the Johansen trace table: the null hypothesis
// "rank <= Rank" with its statistic and, when tabulated, the 5% critical
// value (0 when unavailable).
type TraceTest struct {
	Rank      int
	Statistic float64
	Critical5 float64
}

// LagSelection holds the information criteria for every candidate lag,
// all computed on the common sample so the values are comparable.
type LagSelection struct {
	// Largest lag that was searched; slice index i holds lag i+1
	MaxLag int
	AIC    []float64
	BIC    []float64
	HQ     []float64
	FPE    []float64

	// Selected lag per criterion (1-based)
	BestAIC int
	BestBIC int
	BestHQ  int
	BestFPE int
}

// BootstrapOptions configures the residual bootstrap for IRF bands.
type BootstrapOptions struct {
	// Number of bootstrap replications
	NReplications int
	// IRF horizon; responses run from impact (0) through Horizon
	Horizon int
	// Band coverage: bands are the alpha/2 and 1-alpha/2 quantiles
	Alpha float64
	// RNG seed; 0 draws a time-based seed
	Seed int64
}

// IRFBand holds the point impulse responses to one shock with bootstrap
// confidence bands. Matrices are (Horizon+1) x K: row h is the response of
// every variable h months after the shock.
type IRFBand struct {
	Shock   int
	Horizon int
	Alpha   float64

	Point *mat.Dense
	Lower *mat.Dense
	Upper *mat.Dense

	// Replications that failed to re-estimate and were skipped
	Failed int
}

// FEVDResult is a forecast-error variance decomposition. Shares[j] is an
// (Horizon+1) x K matrix: row h gives the fraction of variable j's
// (h+1)-step forecast-error variance attributed to each orthogonalized
// shock. Every row sums to one.
type FEVDResult struct {
	Names   []string
	Horizon int
	Shares  []*mat.Dense
}

// GrangerResult is one pairwise Granger causality test.
type GrangerResult struct {
	Cause       string
	Effect      string
	FStatistic  float64
	PValue      float64
	Lags        int
	Significant bool
}
