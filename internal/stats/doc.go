// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package stats implements the univariate statistical procedures of the
// analysis: the KPSS stationarity test, iterative unit-root counting,
// classical seasonal decomposition, ordinary least squares, the
// Engle-Granger cointegration test and residual autocorrelation
// diagnostics.
//
// # Files
//
//   - kpss.go: KPSS test with Bartlett-kernel long-run variance
//   - unitroot.go: integration order via difference-and-retest
//   - seasonal.go: additive decomposition (trend/seasonal/irregular)
//   - ols.go: least squares with an SVD fallback for singular designs
//   - engle_granger.go: static regression plus residual stationarity test
//   - acf.go: autocorrelation function and Ljung-Box statistic
//
// All functions are deterministic: the same input always produces the same
// output, which the pipeline relies on for reproducible reports.
package stats
