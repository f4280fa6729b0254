// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestBuildPlotsRendersEveryChart(t *testing.T) {
	d := fixture()

	plots, err := BuildPlots(d)
	require.NoError(t, err)

	want := []string{
		"panel",
		"decomposition",
		"irf_log_csushpisa",
		"irf_umcsent_sa",
		"fevd_log_csushpisa",
		"fevd_umcsent_sa",
		"forecast_log_csushpisa",
		"forecast_umcsent_sa",
		"acf_log_csushpisa",
		"acf_umcsent_sa",
	}
	assert.Len(t, plots, len(want))
	for _, key := range want {
		png, ok := plots[key]
		require.True(t, ok, key)
		require.Greater(t, len(png), len(pngMagic), key)
		assert.Equal(t, pngMagic, png[:len(pngMagic)], key)
	}
}

func TestBuildPlotsSkipsMissingSections(t *testing.T) {
	d := fixture()
	d.Seasonal = nil
	d.Model = nil
	d.FEVD = nil
	d.Forecast = nil
	d.Residuals = nil

	plots, err := BuildPlots(d)
	require.NoError(t, err)

	assert.Contains(t, plots, "panel")
	assert.Len(t, plots, 1)
}

func TestTimeXYsSkipsNonFinite(t *testing.T) {
	d := fixture()
	vals := []float64{1, math.NaN(), 3, 4}

	pts := timeXYs(d.Dates, vals)
	require.Len(t, pts, 3)
	assert.Equal(t, 1.0, pts[0].Y)
	assert.Equal(t, 3.0, pts[1].Y)
}
