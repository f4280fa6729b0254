// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"fmt"

	"github.com/CarlosBello16/VECM-Final/internal/series"
)

// IntegrationOrder counts the unit roots of x: the series is differenced
// until a level KPSS test no longer rejects stationarity at the given
// significance level. It returns the differencing order d together with the
// test trail (trail[i] is the KPSS result on the i-times-differenced
// series), so callers can report the statistic at every stage.
//
// Differencing a series d times and re-testing never rejects, because that
// is exactly the loop's exit condition.
func IntegrationOrder(x []float64, maxD int, alpha float64) (int, []*KPSSResult, error) {
	if maxD < 0 {
		return 0, nil, fmt.Errorf("integration order: maxD must be >= 0, got %d", maxD)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, nil, fmt.Errorf("integration order: alpha must be in (0,1), got %g", alpha)
	}

	work := make([]float64, len(x))
	copy(work, x)

	var trail []*KPSSResult
	for d := 0; ; d++ {
		res, err := KPSS(work, RegressionLevel, -1)
		if err != nil {
			return 0, trail, fmt.Errorf("integration order: test at d=%d: %v", d, err)
		}
		trail = append(trail, res)

		// Failing to reject the stationarity null ends the loop.
		if res.PValue >= alpha {
			return d, trail, nil
		}
		if d == maxD {
			return 0, trail, fmt.Errorf("integration order: still non-stationary after %d differences (statistic %.4f)", maxD, res.Statistic)
		}
		work = series.Diff(work)
	}
}
