// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestFetchSeriesCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/fredgraph.csv", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "CSUSHPISA", q.Get("id"))
		assert.Equal(t, "1988-01-01", q.Get("cosd"))
		assert.Equal(t, "1988-05-01", q.Get("coed"))

		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("DATE,CSUSHPISA\n" +
			"1988-01-01,64.123\n" +
			"1988-02-01,64.892\n" +
			"1988-03-01,.\n" +
			"1988-04-01,66.034\n"))
	}))
	defer srv.Close()

	c := NewClient("")
	c.BaseURL = srv.URL

	s, err := c.FetchSeries(context.Background(), "CSUSHPISA", day(1988, time.January), day(1988, time.May))
	require.NoError(t, err)

	assert.Equal(t, "CSUSHPISA", s.ID)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{64.123, 64.892, 66.034}, s.Values())
	assert.Equal(t, day(1988, time.February), s.Obs[1].Date)
}

func TestFetchSeriesJSONWithKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fred/series/observations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "UMCSENT", q.Get("series_id"))
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "json", q.Get("file_type"))
		assert.Equal(t, "1988-01-01", q.Get("observation_start"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"observations":[` +
			`{"date":"1988-01-01","value":"97.2"},` +
			`{"date":"1988-02-01","value":"."},` +
			`{"date":"1988-03-01","value":"94.6"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.APIBaseURL = srv.URL

	s, err := c.FetchSeries(context.Background(), "UMCSENT", day(1988, time.January), day(1988, time.March))
	require.NoError(t, err)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{97.2, 94.6}, s.Values())
}

func TestFetchSeriesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("")
	c.BaseURL = srv.URL

	_, err := c.FetchSeries(context.Background(), "NOPE", day(1988, time.January), day(1989, time.January))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
	assert.Contains(t, err.Error(), "404")
}

func TestFetchSeriesAllMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("DATE,UMCSENT\n1988-01-01,.\n1988-02-01,.\n"))
	}))
	defer srv.Close()

	c := NewClient("")
	c.BaseURL = srv.URL

	_, err := c.FetchSeries(context.Background(), "UMCSENT", day(1988, time.January), day(1988, time.March))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no observations")
}

func TestFetchSeriesMalformedValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("DATE,UMCSENT\n1988-01-01,abc\n"))
	}))
	defer srv.Close()

	c := NewClient("")
	c.BaseURL = srv.URL

	_, err := c.FetchSeries(context.Background(), "UMCSENT", day(1988, time.January), day(1988, time.March))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse value")
}

func TestFetchSeriesValidation(t *testing.T) {
	c := NewClient("")

	_, err := c.FetchSeries(context.Background(), "", day(1988, time.January), day(1989, time.January))
	assert.Error(t, err)

	_, err = c.FetchSeries(context.Background(), "CSUSHPISA", day(1989, time.January), day(1988, time.January))
	assert.Error(t, err)
}
