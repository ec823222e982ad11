package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solardevis-pro/internal/models"
	"solardevis-pro/internal/quote"
	"solardevis-pro/internal/sizing"
)

func docFixture() QuoteDocument {
	items := []models.LineItem{
		{ID: "it-1", Device: "Réfrigérateur", PeakW: 300, Quantity: 1, UnitPrice: 450, CountsForSizing: true},
		{ID: "it-2", Device: "Climatiseur", PeakW: 1500, Quantity: 2, UnitPrice: 850, CountsForSizing: true},
	}
	cfg := models.DefaultQuoteConfig()
	cfg.DiscountPercent = 10

	return QuoteDocument{
		Number: "042137",
		Date:   "30/08/2026",
		Profile: models.ClientProfile{
			Name:          "Dupont",
			Address:       "12 Rue des Palmiers",
			SiteName:      "Maison principale",
			VisitDate:     "2024-03-01",
			Items:         items,
			TotalDailyKWh: 18.0,
			TotalMaxW:     3300,
		},
		Config:    cfg,
		Breakdown: quote.Compute(items, cfg),
		Sizing:    sizing.Calculate(18.0, sizing.DefaultParams()),
	}
}

func TestGeneratePDF(t *testing.T) {
	out, err := GeneratePDF(docFixture())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output is a PDF document")
}

func TestGeneratePDFEmptyProfile(t *testing.T) {
	doc := QuoteDocument{Number: "000001", Date: "30/08/2026"}
	out, err := GeneratePDF(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(docFixture())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Dupont")
	assert.Contains(t, html, "12 Rue des Palmiers")
	assert.Contains(t, html, "Devis N° 042137")
	assert.Contains(t, html, "Réfrigérateur")
	assert.Contains(t, html, "Climatiseur")
	assert.Contains(t, html, "Forfait Installation", "install line present when cost configured")
	assert.Contains(t, html, "Réduction de 10%")
	assert.Contains(t, html, "Total TTC")
	assert.NotContains(t, html, "Analyse Experte", "no analysis section without analysis text")
}

func TestRenderHTMLWithoutInstallOrDiscount(t *testing.T) {
	doc := docFixture()
	doc.Config.InstallCost = 0
	doc.Config.DiscountPercent = 0
	doc.Breakdown = quote.Compute(doc.Profile.Items, doc.Config)

	out, err := RenderHTML(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "Forfait Installation")
	assert.NotContains(t, html, "Réduction de")
	assert.NotContains(t, html, "TVA sur Installation")
}

func TestRenderHTMLAnalysisSection(t *testing.T) {
	doc := docFixture()
	doc.Analysis = "### Recommandation\n\nUne installation de **5 kWc** est pertinente."

	out, err := RenderHTML(doc)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Analyse Experte")
	assert.Contains(t, html, "<h3>Recommandation</h3>")
	assert.Contains(t, html, "<strong>5 kWc</strong>")
}

func TestRenderAnalysisHTMLStripsCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bare markdown", "## Titre\n\ncorps"},
		{"generic fence", "```\n## Titre\n\ncorps\n```"},
		{"markdown fence", "```markdown\n## Titre\n\ncorps\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderAnalysisHTML(tt.in)
			require.NoError(t, err)
			assert.Contains(t, string(out), "<h2>Titre</h2>")
			assert.NotContains(t, string(out), "```")
		})
	}
}

func TestRenderHTMLEscapesClientInput(t *testing.T) {
	doc := docFixture()
	doc.Profile.Name = `<script>alert("x")</script>`

	out, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>alert"), "client fields are escaped")
}
