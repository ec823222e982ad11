package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus tells the UI which optional features are usable so it
// can degrade up front instead of failing at call time. Missing
// credentials disable a panel, never the quote itself.
func (h *Handlers) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"analysis_enabled": h.analyst.Enabled(),
		"solar_enabled":    h.solar.Enabled(),
		"defaults": gin.H{
			"peak_sun_hours": h.cfg.PeakSunHours,
			"panel_wattage":  h.cfg.PanelWattage,
			"region":         h.cfg.DefaultRegion,
		},
	})
}
