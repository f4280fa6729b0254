// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A zero-sum monthly pattern used across the decomposition tests.
var testFactors = []float64{3, 1, -2, 4, 0, -3, 2, -1, -4, 1, 2, -3}

func TestDecomposeRecoversPureSeasonalPattern(t *testing.T) {
	// Constant level plus a zero-sum cycle: the centered average is exactly
	// the level, so the factors come back exactly.
	x := make([]float64, 48)
	for i := range x {
		x[i] = 50.0 + testFactors[i%12]
	}

	dec, err := Decompose(x, 12)
	require.NoError(t, err)

	factors := dec.Factors()
	for i, want := range testFactors {
		assert.InDelta(t, want, factors[i], 1e-9, "factor %d", i)
	}
	for i := 6; i < 42; i++ {
		assert.InDelta(t, 50.0, dec.Trend[i], 1e-9)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	// Trend + seasonal + small oscillation
	x := make([]float64, 96)
	for i := range x {
		x[i] = 80.0 + 0.1*float64(i) + testFactors[i%12]
		if i%2 == 0 {
			x[i] += 0.25
		} else {
			x[i] -= 0.25
		}
	}

	dec, err := Decompose(x, 12)
	require.NoError(t, err)

	for i := range x {
		// adjusted plus seasonal reconstructs raw everywhere
		assert.InDelta(t, x[i], dec.Adjusted[i]+dec.Seasonal[i], 1e-9)

		if math.IsNaN(dec.Trend[i]) {
			assert.True(t, math.IsNaN(dec.Irregular[i]))
			continue
		}
		// the three components reconstruct raw wherever the trend exists
		assert.InDelta(t, x[i], dec.Trend[i]+dec.Seasonal[i]+dec.Irregular[i], 1e-9)
	}

	sum := 0.0
	for _, f := range dec.Factors() {
		sum += f
	}
	assert.InDelta(t, 0.0, sum, 1e-9, "factors must sum to zero over a cycle")
}

func TestDecomposeTrendEdges(t *testing.T) {
	x := make([]float64, 48)
	for i := range x {
		x[i] = float64(i) + testFactors[i%12]
	}

	dec, err := Decompose(x, 12)
	require.NoError(t, err)

	// centered 2x12 average exists for t in [6, n-7]
	assert.True(t, math.IsNaN(dec.Trend[5]))
	assert.False(t, math.IsNaN(dec.Trend[6]))
	assert.False(t, math.IsNaN(dec.Trend[41]))
	assert.True(t, math.IsNaN(dec.Trend[42]))
}

func TestDecomposeOddPeriod(t *testing.T) {
	pattern := []float64{2, -1, -1}
	x := make([]float64, 15)
	for i := range x {
		x[i] = 10.0 + pattern[i%3]
	}

	dec, err := Decompose(x, 3)
	require.NoError(t, err)

	factors := dec.Factors()
	for i, want := range pattern {
		assert.InDelta(t, want, factors[i], 1e-9)
	}
}

func TestDecomposeAdjustedKeepsSingleUnitRoot(t *testing.T) {
	// Trend plus a strong cycle, shaped like the sentiment index. The
	// moving average of a linear trend is the trend itself, so adjustment
	// strips the cycle exactly and leaves a series with one unit root.
	x := make([]float64, 240)
	for i := range x {
		x[i] = 80.0 + 0.5*float64(i) + testFactors[i%12]
	}

	dec, err := Decompose(x, 12)
	require.NoError(t, err)

	d, _, err := IntegrationOrder(dec.Adjusted, 3, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestDecomposeValidation(t *testing.T) {
	_, err := Decompose(ramp(20), 12)
	assert.Error(t, err, "less than two full cycles")

	_, err = Decompose(ramp(20), 1)
	assert.Error(t, err)

	x := ramp(30)
	x[3] = math.NaN()
	_, err = Decompose(x, 12)
	assert.Error(t, err)
}
