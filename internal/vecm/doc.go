// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package vecm implements the multivariate side of the analysis: lag-order
// selection for a levels VAR, maximum-likelihood estimation of a vector
// error-correction model with a fixed cointegration rank, and the
// post-estimation tools (forecasts, orthogonalized impulse responses with
// bootstrap bands, forecast-error variance decompositions and Granger
// causality tests).
//
// The VECM is estimated in two stages. The cointegrating vector comes from
// the Johansen reduced-rank eigenproblem; given that vector, the adjustment
// and short-run coefficients come from an ordinary regression of the
// differenced data on the error-correction term, the lagged differences and
// the deterministic terms, which also yields their standard errors. All
// dynamic analysis goes through the equivalent levels-VAR representation.
package vecm
