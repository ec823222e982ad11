// Package solar looks up building solar potential through the Google
// Solar API and supplies region-based fallback estimates when the API is
// unavailable. It feeds the sizing divisor; the quote math never depends
// on it.
package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://solar.googleapis.com"

// The panel wattage assumed when deriving array capacity from the API's
// panel count.
const estimationPanelW = 400

// Potential summarizes what sizing needs from a building insights lookup.
type Potential struct {
	HSP          float64 `json:"hsp"`
	MaxPanels    int     `json:"max_panels,omitempty"`
	MaxArrayArea float64 `json:"max_array_area,omitempty"`
	MaxArrayKWp  float64 `json:"max_array_kwp,omitempty"`
}

// Client queries the buildingInsights endpoint. Constructed with an
// explicit API key; an empty key yields a permanently disabled client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

func (c *Client) Enabled() bool { return c.apiKey != "" }

type buildingInsights struct {
	SolarPotential *struct {
		MaxSunshineHoursPerYear float64 `json:"maxSunshineHoursPerYear"`
		MaxArrayPanels          int     `json:"maxArrayPanels"`
		MaxArrayAreaMeters2     float64 `json:"maxArrayAreaMeters2"`
	} `json:"solarPotential"`
}

// Lookup finds the closest building insights for a coordinate and derives
// the average daily peak sun hours from the yearly sunshine figure.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (*Potential, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("solar lookup disabled: no API key configured")
	}

	q := url.Values{}
	q.Set("location.latitude", fmt.Sprintf("%f", lat))
	q.Set("location.longitude", fmt.Sprintf("%f", lng))
	q.Set("key", c.apiKey)
	endpoint := c.baseURL + "/v1/buildingInsights:findClosest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solar API returned status %d", resp.StatusCode)
	}

	var data buildingInsights
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode solar API response: %w", err)
	}
	if data.SolarPotential == nil {
		return nil, fmt.Errorf("no solar potential for this location")
	}

	sp := data.SolarPotential
	hsp := sp.MaxSunshineHoursPerYear / 365

	return &Potential{
		HSP:          math.Round(hsp*100) / 100,
		MaxPanels:    sp.MaxArrayPanels,
		MaxArrayArea: sp.MaxArrayAreaMeters2,
		MaxArrayKWp:  float64(sp.MaxArrayPanels) * estimationPanelW / 1000,
	}, nil
}

// Average measured HSP per region, used when the API fails or is not
// configured.
var regionHSP = map[string]float64{
	"Port-au-Prince": 5.4,
	"Cap-Haïtien":    5.2,
	"Les Cayes":      5.5,
	"Jacmel":         5.3,
	"Gonaïves":       5.6,
}

const fallbackHSP = 5.2

// RegionDefaultHSP returns the fallback peak-sun-hours estimate for a
// region, or the country-wide average for an unknown or empty region.
func RegionDefaultHSP(region string) float64 {
	if v, ok := regionHSP[region]; ok {
		return v
	}
	return fallbackHSP
}
