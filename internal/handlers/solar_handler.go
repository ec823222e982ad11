package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"solardevis-pro/internal/solar"
)

// GetSolarPotential estimates the peak sun hours for a site, preferring
// the building insights API and falling back to regional averages. The
// result feeds the sizing divisor; it never blocks quote computation.
func (h *Handlers) GetSolarPotential(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		region = h.cfg.DefaultRegion
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)

	if h.solar.Enabled() && latErr == nil && lngErr == nil {
		potential, err := h.solar.Lookup(c.Request.Context(), lat, lng)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"source": "api", "potential": potential})
			return
		}
		log.Warn().Err(err).Msg("solar lookup failed, using regional default")
	}

	c.JSON(http.StatusOK, gin.H{
		"source": "regional_default",
		"potential": solar.Potential{
			HSP: solar.RegionDefaultHSP(region),
		},
		"region": region,
	})
}
