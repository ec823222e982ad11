package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"solardevis-pro/internal/ai"
	"solardevis-pro/internal/models"
	"solardevis-pro/internal/quote"
)

type AnalysisRequest struct {
	Profile models.ClientProfile `json:"profile" binding:"required"`
	Config  *models.QuoteConfig  `json:"config"`
}

type AnalysisResponse struct {
	Analysis  string `json:"analysis"`
	Generated bool   `json:"generated"`
}

// PostAnalysis returns the narrative analysis for a profile. The call is
// best effort: when the service is disabled or unreachable the fixed
// fallback text comes back with generated=false, never an error status.
func (h *Handlers) PostAnalysis(c *gin.Context) {
	var input AnalysisRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile is required"})
		return
	}

	if !h.analyst.Enabled() {
		c.JSON(http.StatusOK, AnalysisResponse{Analysis: ai.FallbackMessage(true)})
		return
	}

	var grandTotal float64
	if input.Config != nil {
		grandTotal = quote.Compute(input.Profile.Items, *input.Config).GrandTotal
	}

	text, err := h.analyst.Analyze(c.Request.Context(), input.Profile, input.Config, grandTotal)
	if err != nil {
		log.Warn().Err(err).Msg("analysis unavailable")
		c.JSON(http.StatusOK, AnalysisResponse{Analysis: ai.FallbackMessage(false)})
		return
	}

	c.JSON(http.StatusOK, AnalysisResponse{Analysis: text, Generated: true})
}
