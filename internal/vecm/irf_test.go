// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// triangularVAR1 is a hand-specified VAR(1) in which the first variable
// never reacts to the second, with unit residual covariance.
func triangularVAR1() *VAR {
	return &VAR{
		Model: ModelSpec{Lags: 1, Deterministic: DetConst},
		Names: []string{"y1", "y2"},
		A: []*mat.Dense{denseFromRows([][]float64{
			{0.5, 0.0},
			{0.2, 0.3},
		})},
		C:      denseFromRows([][]float64{{0.0}, {0.0}}),
		SigmaU: mat.NewSymDense(2, []float64{1, 0, 0, 1}),
	}
}

func TestPsiMatchesPowersOfA(t *testing.T) {
	v := triangularVAR1()

	psi, err := v.Psi(3)
	require.NoError(t, err)
	require.Len(t, psi, 4)

	want := [][][]float64{
		{{1, 0}, {0, 1}},
		{{0.5, 0}, {0.2, 0.3}},
		{{0.25, 0}, {0.16, 0.09}},
		{{0.125, 0}, {0.098, 0.027}},
	}
	for h := range want {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assert.InDelta(t, want[h][i][j], psi[h].At(i, j), 1e-12)
			}
		}
	}
}

func TestIRFUnitCovarianceIsFirstColumnOfPowers(t *testing.T) {
	v := triangularVAR1()

	irf, err := v.IRF(3, 0)
	require.NoError(t, err)

	rows, cols := irf.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 2, cols)

	wantY1 := []float64{1, 0.5, 0.25, 0.125}
	wantY2 := []float64{0, 0.2, 0.16, 0.098}
	for h := 0; h < 4; h++ {
		assert.InDelta(t, wantY1[h], irf.At(h, 0), 1e-12)
		assert.InDelta(t, wantY2[h], irf.At(h, 1), 1e-12)
	}
}

func TestIRFScalesWithShockStandardDeviation(t *testing.T) {
	v := triangularVAR1()
	v.SigmaU = mat.NewSymDense(2, []float64{4, 0, 0, 1})

	irf, err := v.IRF(2, 0)
	require.NoError(t, err)

	// A one standard deviation shock in y1 is twice as large.
	assert.InDelta(t, 2.0, irf.At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, irf.At(1, 0), 1e-12)
	assert.InDelta(t, 0.4, irf.At(1, 1), 1e-12)
}

func TestIRFFallsBackToUnitShock(t *testing.T) {
	v := triangularVAR1()
	v.SigmaU = nil

	irf, err := v.IRF(1, 1)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, irf.At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, irf.At(0, 1), 1e-12)
	assert.InDelta(t, 0.0, irf.At(1, 0), 1e-12)
	assert.InDelta(t, 0.3, irf.At(1, 1), 1e-12)
}

func TestFEVDRowsSumToOne(t *testing.T) {
	v := &VAR{
		Model: ModelSpec{Lags: 1, Deterministic: DetConst},
		Names: []string{"y1", "y2"},
		A: []*mat.Dense{denseFromRows([][]float64{
			{0.5, -0.2},
			{0.3, 0.4},
		})},
		SigmaU: mat.NewSymDense(2, []float64{1.0, 0.3, 0.3, 0.8}),
	}

	fevd, err := v.FEVD(10)
	require.NoError(t, err)
	require.Len(t, fevd.Shares, 2)

	for i := 0; i < 2; i++ {
		rows, cols := fevd.Shares[i].Dims()
		require.Equal(t, 11, rows)
		require.Equal(t, 2, cols)
		for h := 0; h < rows; h++ {
			total := 0.0
			for j := 0; j < cols; j++ {
				share := fevd.Shares[i].At(h, j)
				assert.GreaterOrEqual(t, share, 0.0)
				total += share
			}
			assert.InDelta(t, 1.0, total, 1e-10)
		}
	}
}

func TestFEVDExogenousFirstVariable(t *testing.T) {
	v := triangularVAR1()

	fevd, err := v.FEVD(6)
	require.NoError(t, err)

	// y1 is driven by its own shock alone at every horizon.
	for h := 0; h <= 6; h++ {
		assert.InDelta(t, 1.0, fevd.Shares[0].At(h, 0), 1e-12)
		assert.InDelta(t, 0.0, fevd.Shares[0].At(h, 1), 1e-12)
	}
	// y2 receives spillover from the y1 shock after impact.
	assert.Greater(t, fevd.Shares[1].At(6, 0), 0.0)
}

func TestIRFValidation(t *testing.T) {
	v := triangularVAR1()

	_, err := v.IRF(-1, 0)
	assert.Error(t, err)

	_, err = v.IRF(5, 2)
	assert.Error(t, err)

	_, err = v.Psi(-1)
	assert.Error(t, err)

	var empty VAR
	_, err = empty.IRF(5, 0)
	assert.Error(t, err)

	_, err = empty.FEVD(5)
	assert.Error(t, err)

	v.SigmaU = nil
	_, err = v.FEVD(5)
	assert.Error(t, err)
}
