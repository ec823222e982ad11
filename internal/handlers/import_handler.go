package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"solardevis-pro/internal/audit"
	"solardevis-pro/internal/models"
	"solardevis-pro/internal/store"
)

// CreateImport ingests an uploaded audit export (.csv or .xlsx), groups
// it into client profiles and opens a new import session.
func (h *Handlers) CreateImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audit file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	var items []models.LineItem
	lowerName := strings.ToLower(fileHeader.Filename)
	switch {
	case strings.HasSuffix(lowerName, ".xlsx"):
		items, err = audit.ParseXLSX(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read Excel file"})
			return
		}
	default:
		raw, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		items = audit.ParseCSV(string(raw))
	}

	if len(items) == 0 {
		// Malformed or empty input is "no data parsed", not a failure.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No data parsed from the uploaded file"})
		return
	}

	profiles := audit.GroupByClient(items)
	imp, err := h.store.CreateImport(fileHeader.Filename, profiles)
	if err != nil {
		log.Error().Err(err).Msg("create import session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store import"})
		return
	}

	c.JSON(http.StatusCreated, imp)
}

// GetImport lists the profiles detected in an import session.
func (h *Handlers) GetImport(c *gin.Context) {
	imp, err := h.store.GetImport(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Import not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load import session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load import"})
		return
	}
	c.JSON(http.StatusOK, imp)
}

// GetProfile returns one profile with its current quote config and the
// computed breakdown and sizing.
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, cfg, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.buildQuoteView(*profile, *cfg))
}

// loadProfile resolves the :id/:idx pair of a request. On failure it has
// already written the error response.
func (h *Handlers) loadProfile(c *gin.Context) (*models.ClientProfile, *models.QuoteConfig, bool) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile index"})
		return nil, nil, false
	}

	profile, cfg, err := h.store.GetProfile(c.Param("id"), idx)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return nil, nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("load profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return nil, nil, false
	}
	return profile, cfg, true
}
