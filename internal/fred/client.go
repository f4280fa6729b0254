// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

// Package fred downloads observations from the St. Louis Fed FRED
// service. Without an API key it reads the public fredgraph CSV
// endpoint; with a key it switches to the official JSON API.
package fred

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CarlosBello16/VECM-Final/internal/series"
)

const (
	// DefaultBaseURL serves the keyless fredgraph CSV downloads.
	DefaultBaseURL = "https://fred.stlouisfed.org"
	// DefaultAPIBaseURL serves the keyed JSON API.
	DefaultAPIBaseURL = "https://api.stlouisfed.org"

	dateLayout = "2006-01-02"
	// missingMark is how FRED renders a missing observation.
	missingMark = "."
)

// Client fetches FRED series over HTTP.
type Client struct {
	BaseURL    string
	APIBaseURL string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a client against the public FRED endpoints. An empty
// apiKey selects the keyless CSV path.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIBaseURL: DefaultAPIBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchSeries downloads the observations of one series between start and
// end inclusive. Missing observations are dropped, never zero-filled.
func (c *Client) FetchSeries(ctx context.Context, id string, start, end time.Time) (*series.Series, error) {
	if id == "" {
		return nil, fmt.Errorf("fred: series id required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("fred: end %s before start %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	if c.APIKey != "" {
		return c.fetchJSON(ctx, id, start, end)
	}
	return c.fetchCSV(ctx, id, start, end)
}

func (c *Client) fetchCSV(ctx context.Context, id string, start, end time.Time) (*series.Series, error) {
	q := url.Values{}
	q.Set("id", id)
	q.Set("cosd", start.Format(dateLayout))
	q.Set("coed", end.Format(dateLayout))
	u := fmt.Sprintf("%s/graph/fredgraph.csv?%s", strings.TrimRight(c.BaseURL, "/"), q.Encode())

	body, err := c.get(ctx, u, id)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := csv.NewReader(body)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("fred: fetch %s: read header: %w", id, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("fred: fetch %s: malformed header %q", id, strings.Join(header, ","))
	}

	var obs []series.Observation
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fred: fetch %s: read row: %w", id, err)
		}
		if len(rec) < 2 || rec[1] == missingMark || rec[1] == "" {
			continue
		}
		o, err := parseObservation(rec[0], rec[1])
		if err != nil {
			return nil, fmt.Errorf("fred: fetch %s: %w", id, err)
		}
		obs = append(obs, o)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fred: fetch %s: no observations between %s and %s",
			id, start.Format(dateLayout), end.Format(dateLayout))
	}
	return series.NewSeries(id, obs)
}

// observationsResponse mirrors the JSON shape of the keyed API: dates and
// values both arrive as strings.
type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

func (c *Client) fetchJSON(ctx context.Context, id string, start, end time.Time) (*series.Series, error) {
	q := url.Values{}
	q.Set("series_id", id)
	q.Set("api_key", c.APIKey)
	q.Set("file_type", "json")
	q.Set("observation_start", start.Format(dateLayout))
	q.Set("observation_end", end.Format(dateLayout))
	u := fmt.Sprintf("%s/fred/series/observations?%s", strings.TrimRight(c.APIBaseURL, "/"), q.Encode())

	body, err := c.get(ctx, u, id)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp observationsResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("fred: fetch %s: decode response: %w", id, err)
	}

	var obs []series.Observation
	for _, raw := range resp.Observations {
		if raw.Value == missingMark || raw.Value == "" {
			continue
		}
		o, err := parseObservation(raw.Date, raw.Value)
		if err != nil {
			return nil, fmt.Errorf("fred: fetch %s: %w", id, err)
		}
		obs = append(obs, o)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fred: fetch %s: no observations between %s and %s",
			id, start.Format(dateLayout), end.Format(dateLayout))
	}
	return series.NewSeries(id, obs)
}

// get issues the request and hands back the body on a 200, closing it on
// every other outcome.
func (c *Client) get(ctx context.Context, u, id string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fred: fetch %s: build request: %w", id, err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fred: fetch %s: %w", id, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fred: fetch %s: unexpected status %s", id, resp.Status)
	}
	return resp.Body, nil
}

func parseObservation(date, value string) (series.Observation, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return series.Observation{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return series.Observation{}, fmt.Errorf("parse value %q on %s: %w", value, date, err)
	}
	return series.Observation{Date: d, Value: v}, nil
}
