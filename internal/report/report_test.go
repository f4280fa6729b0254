// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/CarlosBello16/VECM-Final/internal/stats"
	"github.com/CarlosBello16/VECM-Final/internal/vecm"
)

// fixture builds a small, fully hand-specified Data value. The numbers
// are chosen to be exact in six-decimal output, so renderings are stable
// across platforms.
func fixture() *Data {
	dates := []time.Time{
		time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	names := []string{"log_CSUSHPISA", "UMCSENT_sa"}

	model := &vecm.VECM{
		Names:         names,
		Lags:          1,
		Rank:          1,
		Deterministic: vecm.DetConst,
		Alpha:         mat.NewDense(2, 1, []float64{-0.021, 0.154}),
		Beta:          mat.NewDense(2, 1, []float64{1.0, -1.3341}),
		AlphaSE:       mat.NewDense(2, 1, []float64{0.012, 0.028}),
		AlphaStat:     mat.NewDense(2, 1, []float64{-1.75, 5.5}),
		AlphaP:        mat.NewDense(2, 1, []float64{0.0801, 0.0}),
		SigmaU:        mat.NewSymDense(2, []float64{0.8, 0.1, 0.1, 0.5}),
		Residuals:     mat.NewDense(2, 2, []float64{0.1, -0.2, -0.1, 0.2}),
		Eigenvalues:   []float64{0.082, 0.0105},
		Trace: []vecm.TraceTest{
			{Rank: 0, Statistic: 38.21, Critical5: 15.4947},
			{Rank: 1, Statistic: 4.2, Critical5: 3.8415},
		},
		Obs: 398,
	}

	band0 := &vecm.IRFBand{
		Shock: 0, Horizon: 3, Alpha: 0.05,
		Point: mat.NewDense(4, 2, []float64{
			0.62, 0.00,
			0.43, 0.11,
			0.30, 0.15,
			0.21, 0.16,
		}),
		Lower: mat.NewDense(4, 2, []float64{
			0.57, -0.05,
			0.38, 0.06,
			0.25, 0.10,
			0.16, 0.11,
		}),
		Upper: mat.NewDense(4, 2, []float64{
			0.67, 0.05,
			0.48, 0.16,
			0.35, 0.20,
			0.26, 0.21,
		}),
	}
	band1 := &vecm.IRFBand{
		Shock: 1, Horizon: 3, Alpha: 0.05,
		Point: mat.NewDense(4, 2, []float64{
			0.00, 0.31,
			0.05, 0.22,
			0.07, 0.15,
			0.08, 0.11,
		}),
		Lower: mat.NewDense(4, 2, []float64{
			-0.05, 0.26,
			0.00, 0.17,
			0.02, 0.10,
			0.03, 0.06,
		}),
		Upper: mat.NewDense(4, 2, []float64{
			0.05, 0.36,
			0.10, 0.27,
			0.12, 0.20,
			0.13, 0.16,
		}),
	}

	return &Data{
		RunID:       "test-run-1",
		GeneratedAt: time.Date(2022, time.February, 2, 12, 0, 0, 0, time.UTC),
		Version:     "test",
		PriceID:     "CSUSHPISA",
		SentimentID: "UMCSENT",
		Start:       dates[0],
		End:         dates[len(dates)-1],
		Settings: Settings{
			MaxLag: 3, SelectedLag: 2, DiffLags: 1, Rank: 1,
			Horizon: 3, Replications: 25, Seed: 42, Deterministic: "const",
		},

		Dates:        dates,
		PriceRaw:     []float64{235.1, 237.8, 240.2, 243.0},
		SentimentRaw: []float64{79.0, 76.8, 84.9, 88.3},
		LogPrice:     []float64{546.0, 547.2, 548.2, 549.3},
		SentimentSA:  []float64{80.1, 77.5, 84.2, 87.6},

		Seasonal: &stats.Decomposition{
			Period:    12,
			Raw:       []float64{79.0, 76.8, 84.9, 88.3},
			Trend:     []float64{79.5, 80.0, 80.5, 81.0},
			Seasonal:  []float64{-1.1, -3.4, 4.0, 6.5},
			Irregular: []float64{0.6, 0.2, 0.4, 0.8},
			Adjusted:  []float64{80.1, 80.2, 80.9, 81.8},
		},

		UnitRoots: []UnitRootRow{
			{
				Name: "log_CSUSHPISA", Order: 1,
				Tests: []*stats.KPSSResult{
					{Statistic: 0.7391, PValue: 0.01, Lags: 17, Regression: stats.RegressionLevel},
					{Statistic: 0.2105, PValue: 0.10, Lags: 17, Regression: stats.RegressionLevel},
				},
			},
			{
				Name: "UMCSENT_sa", Order: 1,
				Tests: []*stats.KPSSResult{
					{Statistic: 0.583, PValue: 0.0215, Lags: 14, Regression: stats.RegressionLevel},
					{Statistic: 0.1012, PValue: 0.10, Lags: 14, Regression: stats.RegressionLevel},
				},
			},
		},

		EG: &stats.EngleGrangerResult{
			Intercept: 12.5,
			Slope:     0.75,
			R2:        0.9321,
			Test:      &stats.KPSSResult{Statistic: 0.4219, PValue: 0.0632, Lags: 16, Regression: stats.RegressionLevel},
			Alpha:     0.05,
			Verdict:   stats.Borderline,
		},

		LagTable: &vecm.LagSelection{
			MaxLag: 3,
			AIC:    []float64{1.5, 1.2, 1.3},
			BIC:    []float64{1.6, 1.25, 1.45},
			HQ:     []float64{1.55, 1.22, 1.35},
			FPE:    []float64{4.48, 4.0, 4.2},
			BestAIC: 2, BestBIC: 2, BestHQ: 2, BestFPE: 2,
		},

		Model: model,
		IRF:   map[int]*vecm.IRFBand{0: band0, 1: band1},
		FEVD: &vecm.FEVDResult{
			Names:   names,
			Horizon: 3,
			Shares: []*mat.Dense{
				mat.NewDense(4, 2, []float64{
					1.00, 0.00,
					0.97, 0.03,
					0.95, 0.05,
					0.94, 0.06,
				}),
				mat.NewDense(4, 2, []float64{
					0.18, 0.82,
					0.22, 0.78,
					0.25, 0.75,
					0.27, 0.73,
				}),
			},
		},
		Forecast: &ForecastTable{
			Dates: []time.Time{
				time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
			},
			Names:  names,
			Values: mat.NewDense(2, 2, []float64{550.1, 88.9, 550.9, 89.4}),
		},
		Granger: []*vecm.GrangerResult{
			{Cause: "log_CSUSHPISA", Effect: "UMCSENT_sa", FStatistic: 9.41, PValue: 0.0001, Lags: 2, Significant: true},
			{Cause: "UMCSENT_sa", Effect: "log_CSUSHPISA", FStatistic: 1.22, PValue: 0.2964, Lags: 2, Significant: false},
		},
		Residuals: []ResidualDiagnostic{
			{
				Name:     "log_CSUSHPISA",
				ACF:      &stats.ACFResult{Values: []float64{1, 0.08, -0.05, 0.04}, Bound: 0.098, N: 400},
				LjungBox: &stats.LjungBoxResult{Statistic: 6.21, PValue: 0.5183, Lags: 8, DF: 7},
			},
			{
				Name:     "UMCSENT_sa",
				ACF:      &stats.ACFResult{Values: []float64{1, -0.02, 0.06, -0.01}, Bound: 0.098, N: 400},
				LjungBox: &stats.LjungBoxResult{Statistic: 9.84, PValue: 0.1975, Lags: 8, DF: 7},
			},
		},
	}
}
