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

// simulateVAR2 draws from a stable VAR(2) whose second lag carries most of
// the signal, so order selection has something to find.
func simulateVAR2(seed int64, T int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))

	a1 := [][]float64{{0.2, 0.0}, {0.0, 0.2}}
	a2 := [][]float64{{0.5, 0.1}, {0.1, 0.4}}

	Y := mat.NewDense(T, 2, nil)
	for t := 2; t < T; t++ {
		for eq := 0; eq < 2; eq++ {
			v := rng.NormFloat64()
			for k := 0; k < 2; k++ {
				v += a1[eq][k]*Y.At(t-1, k) + a2[eq][k]*Y.At(t-2, k)
			}
			Y.Set(t, eq, v)
		}
	}
	return Y
}

func TestSelectLagPrefersTrueOrder(t *testing.T) {
	Y := simulateVAR2(21, 400)

	sel, err := SelectLag(Y, 6, DetConst)
	require.NoError(t, err)

	assert.Equal(t, 6, sel.MaxLag)
	require.Len(t, sel.AIC, 6)
	require.Len(t, sel.BIC, 6)
	require.Len(t, sel.HQ, 6)
	require.Len(t, sel.FPE, 6)

	// BIC penalizes hardest and lands on the generating order.
	assert.Equal(t, 2, sel.BestBIC)
	assert.GreaterOrEqual(t, sel.BestAIC, 2)
	assert.GreaterOrEqual(t, sel.BestHQ, 2)
	assert.GreaterOrEqual(t, sel.BestFPE, 2)

	// Order one misses the dominant second lag under every criterion.
	assert.Greater(t, sel.BIC[0], sel.BIC[1])
	assert.Greater(t, sel.AIC[0], sel.AIC[1])
}

func TestSelectLagDeterministic(t *testing.T) {
	Y := simulateVAR2(21, 300)

	a, err := SelectLag(Y, 5, DetConst)
	require.NoError(t, err)
	b, err := SelectLag(Y, 5, DetConst)
	require.NoError(t, err)

	assert.Equal(t, a.BestAIC, b.BestAIC)
	assert.Equal(t, a.BestBIC, b.BestBIC)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.AIC[i], b.AIC[i])
		assert.Equal(t, a.BIC[i], b.BIC[i])
		assert.Equal(t, a.HQ[i], b.HQ[i])
		assert.Equal(t, a.FPE[i], b.FPE[i])
	}
}

func TestSelectLagValidation(t *testing.T) {
	_, err := SelectLag(nil, 4, DetConst)
	assert.Error(t, err)

	Y := simulateVAR2(5, 30)
	_, err = SelectLag(Y, 0, DetConst)
	assert.Error(t, err)

	_, err = SelectLag(Y, 14, DetConst)
	assert.Error(t, err)
}

func TestArgminOrder(t *testing.T) {
	assert.Equal(t, 2, argminOrder([]float64{3.0, 1.5, 2.0}))
	assert.Equal(t, 1, argminOrder([]float64{1.0, 1.0, 2.0}))
	assert.Equal(t, 3, argminOrder([]float64{5.0, 4.0, 3.0}))
}
