// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// simulateOneWayDrive draws a pair in which x feeds into y with a lag but
// never the other way around.
func simulateOneWayDrive(seed int64, T int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))

	Y := mat.NewDense(T, 2, nil)
	for t := 1; t < T; t++ {
		x := 0.5*Y.At(t-1, 0) + rng.NormFloat64()
		y := 0.3*Y.At(t-1, 1) + 0.8*Y.At(t-1, 0) + rng.NormFloat64()
		Y.Set(t, 0, x)
		Y.Set(t, 1, y)
	}
	return Y
}

func TestGrangerCausalityDetectsDirection(t *testing.T) {
	Y := simulateOneWayDrive(17, 300)
	names := []string{"x", "y"}

	fwd, err := GrangerCausality(Y, names, 2, DetConst, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, "x", fwd.Cause)
	assert.Equal(t, "y", fwd.Effect)
	assert.Equal(t, 2, fwd.Lags)
	assert.True(t, fwd.Significant)
	assert.Less(t, fwd.PValue, 0.01)
	assert.Greater(t, fwd.FStatistic, 10.0)

	rev, err := GrangerCausality(Y, names, 2, DetConst, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, "y", rev.Cause)
	assert.Equal(t, "x", rev.Effect)
	assert.Greater(t, rev.PValue, 0.001)
	assert.GreaterOrEqual(t, rev.FStatistic, 0.0)
}

func TestGrangerMatrixCoversOrderedPairs(t *testing.T) {
	Y := simulateOneWayDrive(9, 200)
	names := []string{"x", "y"}

	results, err := GrangerMatrix(Y, names, 2, DetConst)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "x", results[0].Cause)
	assert.Equal(t, "y", results[0].Effect)
	assert.Equal(t, "y", results[1].Cause)
	assert.Equal(t, "x", results[1].Effect)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.PValue, 0.0)
		assert.LessOrEqual(t, r.PValue, 1.0)
	}
}

func TestGrangerValidation(t *testing.T) {
	Y := simulateOneWayDrive(3, 50)
	names := []string{"x", "y"}

	_, err := GrangerCausality(nil, names, 2, DetConst, 0, 1)
	assert.Error(t, err)

	_, err = GrangerCausality(Y, names, 0, DetConst, 0, 1)
	assert.Error(t, err)

	_, err = GrangerCausality(Y, names, 2, DetConst, 0, 0)
	assert.Error(t, err)

	_, err = GrangerCausality(Y, names, 2, DetConst, 0, 5)
	assert.Error(t, err)

	_, err = GrangerCausality(Y, []string{"x"}, 2, DetConst, 0, 1)
	assert.Error(t, err)

	short := mat.NewDense(5, 2, nil)
	_, err = GrangerCausality(short, names, 2, DetConst, 0, 1)
	assert.Error(t, err)
}
