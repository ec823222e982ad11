package solar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/buildingInsights:findClosest", r.URL.Path)
		assert.Equal(t, "18.540000", r.URL.Query().Get("location.latitude"))
		assert.Equal(t, "-72.340000", r.URL.Query().Get("location.longitude"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"solarPotential": {
				"maxSunshineHoursPerYear": 1971,
				"maxArrayPanels": 25,
				"maxArrayAreaMeters2": 48.5
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key").WithBaseURL(srv.URL)
	p, err := c.Lookup(context.Background(), 18.54, -72.34)
	require.NoError(t, err)

	// 1971 sunshine hours a year is 5.4 a day.
	assert.InDelta(t, 5.4, p.HSP, 1e-9)
	assert.Equal(t, 25, p.MaxPanels)
	assert.InDelta(t, 48.5, p.MaxArrayArea, 1e-9)
	assert.InDelta(t, 10.0, p.MaxArrayKWp, 1e-9) // 25 panels at 400 W
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"non-200 status", http.StatusForbidden, `{"error":{}}`, "status 403"},
		{"missing solar potential", http.StatusOK, `{"name":"buildings/x"}`, "no solar potential"},
		{"malformed body", http.StatusOK, `{`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient("k").WithBaseURL(srv.URL).Lookup(context.Background(), 18.5, -72.3)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLookupDisabledWithoutKey(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.Enabled())

	_, err := c.Lookup(context.Background(), 18.5, -72.3)
	assert.Error(t, err)
}

func TestRegionDefaultHSP(t *testing.T) {
	tests := []struct {
		region string
		want   float64
	}{
		{"Port-au-Prince", 5.4},
		{"Cap-Haïtien", 5.2},
		{"Les Cayes", 5.5},
		{"Jacmel", 5.3},
		{"Gonaïves", 5.6},
		{"Nulle Part", 5.2},
		{"", 5.2},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RegionDefaultHSP(tt.region), 1e-9, tt.region)
	}
}
