// Package ai generates the narrative energy analysis that accompanies a
// quote. The generator is a swappable capability behind a single-method
// interface; the quote and sizing math never depend on it.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"solardevis-pro/internal/models"
	"solardevis-pro/internal/quote"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Analyst produces a markdown narrative for a client profile. A nil
// config means the quote has not been priced yet; grandTotal is only
// meaningful when config is present.
type Analyst interface {
	Analyze(ctx context.Context, profile models.ClientProfile, cfg *models.QuoteConfig, grandTotal float64) (string, error)
	Enabled() bool
}

// GeminiAnalyst calls the Google AI API. Constructed with an explicit
// API key; an empty key yields a permanently disabled analyst.
type GeminiAnalyst struct {
	apiKey string
	model  string
}

func NewGeminiAnalyst(apiKey, model string) *GeminiAnalyst {
	if model == "" {
		model = "gemini-2.0-flash-001"
	}
	return &GeminiAnalyst{apiKey: apiKey, model: model}
}

func (a *GeminiAnalyst) Enabled() bool { return a.apiKey != "" }

// Analyze asks the model for a short professional analysis in French.
func (a *GeminiAnalyst) Analyze(ctx context.Context, profile models.ClientProfile, cfg *models.QuoteConfig, grandTotal float64) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(profile, cfg, grandTotal)))
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty analysis response")
	}
	return text, nil
}

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("analysis service disabled: no API key configured")

func buildPrompt(profile models.ClientProfile, cfg *models.QuoteConfig, grandTotal float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, `En tant qu'expert en énergie solaire, analyse le profil de consommation suivant pour un client résidentiel.
Client: %s
Adresse: %s
Consommation journalière totale estimée: %.2f kWh
Puissance de crête (tout allumé): %.0f W

Détails des appareils:
`, profile.Name, profile.Address, profile.TotalDailyKWh, profile.TotalMaxW)

	for _, i := range profile.Items {
		fmt.Fprintf(&b, "- %s: %gkWh/h, %gh/j, Qte: %d\n", i.Device, i.HourlyKWh, i.DurationHours, i.Quantity)
	}

	if cfg != nil {
		fmt.Fprintf(&b, `
Devis proposé: total TTC de %s (marge %.0f%%, remise %.0f%%, forfait installation %s).
`, quote.FormatEUR(grandTotal), cfg.MarginPercent, cfg.DiscountPercent, quote.FormatEUR(cfg.InstallCost))
	}

	b.WriteString(`
Fournis une analyse professionnelle courte (en français) incluant:
1. Une évaluation de la pertinence d'une installation photovoltaïque.
2. Le dimensionnement conseillé (en kWc).
3. Un conseil spécifique sur la gestion des appareils.
4. Une estimation des économies annuelles potentielles.

Réponds en format Markdown structuré sans mentionner que tu es une IA.`)

	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}

// FallbackMessage is shown instead of the analysis when the service is
// unreachable or unconfigured. Raw transport errors never reach the user.
func FallbackMessage(missingKey bool) string {
	reason := "Erreur de communication avec le service Google AI."
	if missingKey {
		reason = "La clé GEMINI_API_KEY n'a pas été détectée."
	}
	return "### ⚠️ Analyse indisponible\n\nImpossible de générer l'analyse automatique actuellement.\n\n**Raison probable :** " + reason
}
