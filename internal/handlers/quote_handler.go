package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"solardevis-pro/internal/ai"
	"solardevis-pro/internal/audit"
	"solardevis-pro/internal/document"
	"solardevis-pro/internal/models"
)

type UpdateProfileRequest struct {
	Items  []models.LineItem  `json:"items" binding:"required"`
	Config models.QuoteConfig `json:"config"`
}

// UpdateProfile commits an editing session: the item list and the quote
// config replace the stored ones wholesale and the totals are recomputed.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	profile, _, ok := h.loadProfile(c)
	if !ok {
		return
	}

	var input UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// Items appended by hand in the editor arrive without an identifier.
	for i := range input.Items {
		if input.Items[i].ID == "" {
			input.Items[i].ID = uuid.NewString()
		}
	}

	profile.Items = input.Items
	audit.Recompute(profile)

	idx, _ := strconv.Atoi(c.Param("idx"))
	if err := h.store.ReplaceProfile(c.Param("id"), idx, *profile, input.Config); err != nil {
		log.Error().Err(err).Msg("replace profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save quote"})
		return
	}

	c.JSON(http.StatusOK, h.buildQuoteView(*profile, input.Config))
}

// GetQuote computes the financial breakdown and sizing for a profile
// under its stored configuration.
func (h *Handlers) GetQuote(c *gin.Context) {
	profile, cfg, ok := h.loadProfile(c)
	if !ok {
		return
	}
	view := h.buildQuoteView(*profile, *cfg)
	c.JSON(http.StatusOK, gin.H{
		"breakdown": view.Breakdown,
		"sizing":    view.Sizing,
	})
}

// GetQuotePDF renders the printable quote as a PDF download. The paper
// document carries figures and signatures only, never the AI narrative.
func (h *Handlers) GetQuotePDF(c *gin.Context) {
	profile, cfg, ok := h.loadProfile(c)
	if !ok {
		return
	}
	view := h.buildQuoteView(*profile, *cfg)

	pdf, err := document.GeneratePDF(document.QuoteDocument{
		Number:    quoteNumber(),
		Date:      today(),
		Profile:   view.Profile,
		Config:    view.Config,
		Breakdown: view.Breakdown,
		Sizing:    view.Sizing,
	})
	if err != nil {
		log.Error().Err(err).Msg("generate quote PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="devis.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetQuoteDocument renders the on-screen quote page. Entering the
// document triggers exactly one analysis request; any failure degrades
// to the fixed fallback text and never blocks the quote itself.
func (h *Handlers) GetQuoteDocument(c *gin.Context) {
	profile, cfg, ok := h.loadProfile(c)
	if !ok {
		return
	}
	view := h.buildQuoteView(*profile, *cfg)

	analysis := h.analysisOrFallback(c, view)

	page, err := document.RenderHTML(document.QuoteDocument{
		Number:    quoteNumber(),
		Date:      today(),
		Profile:   view.Profile,
		Config:    view.Config,
		Breakdown: view.Breakdown,
		Sizing:    view.Sizing,
		Analysis:  analysis,
	})
	if err != nil {
		log.Error().Err(err).Msg("render quote document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (h *Handlers) analysisOrFallback(c *gin.Context, view quoteView) string {
	if !h.analyst.Enabled() {
		return ai.FallbackMessage(true)
	}
	text, err := h.analyst.Analyze(c.Request.Context(), view.Profile, &view.Config, view.Breakdown.GrandTotal)
	if err != nil {
		log.Warn().Err(err).Msg("analysis unavailable")
		return ai.FallbackMessage(false)
	}
	return text
}
