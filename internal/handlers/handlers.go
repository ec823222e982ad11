// Package handlers wires the HTTP API: audit import, quote editing,
// document rendering, analysis and solar lookup.
package handlers

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"solardevis-pro/internal/ai"
	"solardevis-pro/internal/auth"
	"solardevis-pro/internal/config"
	"solardevis-pro/internal/models"
	"solardevis-pro/internal/quote"
	"solardevis-pro/internal/sizing"
	"solardevis-pro/internal/solar"
	"solardevis-pro/internal/store"
)

type Handlers struct {
	cfg     *config.Config
	store   *store.Store
	analyst ai.Analyst
	solar   *solar.Client
	tokens  *auth.TokenIssuer

	agentPasswordHash []byte
}

func New(cfg *config.Config, st *store.Store, analyst ai.Analyst, solarClient *solar.Client, tokens *auth.TokenIssuer) (*Handlers, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AgentPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash agent password: %w", err)
	}
	return &Handlers{
		cfg:               cfg,
		store:             st,
		analyst:           analyst,
		solar:             solarClient,
		tokens:            tokens,
		agentPasswordHash: hash,
	}, nil
}

// sizingParamsFor merges per-quote sizing overrides with the service
// defaults.
func (h *Handlers) sizingParamsFor(cfg models.QuoteConfig) sizing.Params {
	p := sizing.Params{
		PeakSunHours:            cfg.PeakSunHours,
		SystemEfficiencyPercent: cfg.SystemEfficiencyPercent,
		PanelWattage:            cfg.PanelWattage,
	}
	if p.PeakSunHours <= 0 {
		p.PeakSunHours = h.cfg.PeakSunHours
	}
	if p.PanelWattage <= 0 {
		p.PanelWattage = h.cfg.PanelWattage
	}
	return p.Normalized()
}

// quoteView is the computed state of one quote session, returned by the
// editing and document endpoints.
type quoteView struct {
	Profile   models.ClientProfile `json:"profile"`
	Config    models.QuoteConfig   `json:"config"`
	Breakdown quote.Breakdown      `json:"breakdown"`
	Sizing    sizing.Result        `json:"sizing"`
}

func (h *Handlers) buildQuoteView(profile models.ClientProfile, cfg models.QuoteConfig) quoteView {
	return quoteView{
		Profile:   profile,
		Config:    cfg,
		Breakdown: quote.Compute(profile.Items, cfg),
		Sizing:    sizing.Calculate(profile.TotalDailyKWh, h.sizingParamsFor(cfg)),
	}
}

// quoteNumber mirrors the numbering on the original document: a random
// six-digit reference, purely presentational.
func quoteNumber() string {
	return fmt.Sprintf("%06d", rand.Intn(100000))
}

func today() string {
	return time.Now().Format("02/01/2006")
}
