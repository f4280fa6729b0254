// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"
)

// CointegrationVerdict is a three-way reading of the residual test.
// Borderline covers the awkward zone where the test fails to reject
// stationarity but only just; the exact statistic and p-value are always
// carried alongside so a reader can make their own call.
type CointegrationVerdict int

const (
	NotCointegrated CointegrationVerdict = iota
	Borderline
	Cointegrated
)

func (v CointegrationVerdict) String() string {
	switch v {
	case NotCointegrated:
		return "not cointegrated"
	case Borderline:
		return "borderline"
	case Cointegrated:
		return "cointegrated"
	default:
		return "unknown"
	}
}

// EngleGrangerResult holds the static regression and the stationarity test
// on its residuals.
type EngleGrangerResult struct {
	// y = Intercept + Slope*x + residual
	Intercept float64
	Slope     float64
	R2        float64
	Residuals []float64

	// Level KPSS on the residuals. Under cointegration the residuals are
	// stationary, so the test should fail to reject.
	Test *KPSSResult

	// Significance level used for the verdict
	Alpha   float64
	Verdict CointegrationVerdict
}

// EngleGranger runs the two-step cointegration test: fit y on x by OLS with
// an intercept, then test the residuals for stationarity. Both series must
// have the same length.
func EngleGranger(y, x []float64, alpha float64) (*EngleGrangerResult, error) {
	if len(y) != len(x) {
		return nil, fmt.Errorf("engle-granger: series lengths differ: %d vs %d", len(y), len(x))
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("engle-granger: alpha must be in (0,1), got %g", alpha)
	}

	fit, err := OLS(y, [][]float64{x}, true)
	if err != nil {
		return nil, fmt.Errorf("engle-granger: static regression: %v", err)
	}

	test, err := KPSS(fit.Residuals, RegressionLevel, -1)
	if err != nil {
		return nil, fmt.Errorf("engle-granger: residual test: %v", err)
	}

	return &EngleGrangerResult{
		Intercept: fit.Coef[0],
		Slope:     fit.Coef[1],
		R2:        fit.R2,
		Residuals: fit.Residuals,
		Test:      test,
		Alpha:     alpha,
		Verdict:   readVerdict(test.PValue, alpha),
	}, nil
}

// readVerdict maps a residual-test p-value to the three-way verdict. The
// KPSS p-value is table-clamped to [0.01, 0.10]: rejecting stationarity at
// alpha means no cointegration, a p-value at the table ceiling is a clean
// pass, and anything in between fails to reject only narrowly.
func readVerdict(p, alpha float64) CointegrationVerdict {
	switch {
	case p < alpha:
		return NotCointegrated
	case p < kpssPValues[0]:
		return Borderline
	default:
		return Cointegrated
	}
}
