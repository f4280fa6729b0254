// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCommandStdout(t *testing.T) {
	payload := map[string][]byte{
		"TEST1": []byte("DATE,TEST1\n2020-01-01,1.5\n2020-02-01,.\n2020-03-01,2.25\n"),
	}
	srv := fredTestServer(t, payload)
	t.Setenv("VECM_FRED_BASE_URL", srv.URL)

	stdout := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fetch", "TEST1",
		"--start", "2020-01-01", "--end", "2020-03-01", "--quiet"})

	require.NoError(t, cmd.Execute())

	// The missing-value month is dropped, not zero-filled.
	assert.Equal(t, "DATE,TEST1\n2020-01-01,1.5\n2020-03-01,2.25\n", stdout.String())
}

func TestFetchCommandToFile(t *testing.T) {
	payload := map[string][]byte{
		"TEST1": []byte("DATE,TEST1\n2020-01-01,1.5\n"),
	}
	srv := fredTestServer(t, payload)
	t.Setenv("VECM_FRED_BASE_URL", srv.URL)

	out := filepath.Join(t.TempDir(), "obs.csv")
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fetch", "TEST1",
		"--start", "2020-01-01", "--end", "2020-03-01", "--out", out, "--quiet"})

	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "DATE,TEST1\n2020-01-01,1.5\n", string(b))
}

func TestFetchCommandUnknownSeries(t *testing.T) {
	srv := fredTestServer(t, nil)
	t.Setenv("VECM_FRED_BASE_URL", srv.URL)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fetch", "NOPE", "--quiet"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestFetchCommandRequiresSeriesArg(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fetch"})

	err := cmd.Execute()
	require.Error(t, err)
}
