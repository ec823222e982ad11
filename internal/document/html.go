package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"solardevis-pro/internal/quote"
)

// RenderAnalysisHTML converts the markdown narrative into HTML. Models
// sometimes wrap their answer in a code fence; strip it first.
func RenderAnalysisHTML(markdown string) (template.HTML, error) {
	cleaned := stripCodeFence(markdown)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(cleaned), &buf); err != nil {
		return "", fmt.Errorf("render analysis markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func stripCodeFence(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

var docTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"eur": quote.FormatEUR,
}).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Devis {{.Number}} — {{.Profile.Name}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1e293b; max-width: 900px; margin: 2rem auto; }
  h1 { color: #2563eb; }
  table { width: 100%; border-collapse: collapse; margin: 1.5rem 0; }
  th { text-align: left; border-bottom: 2px solid #0f172a; padding: .5rem 0; font-size: .75rem; text-transform: uppercase; }
  td { padding: .5rem 0; border-bottom: 1px solid #e2e8f0; }
  td.num, th.num { text-align: right; }
  .totals { max-width: 24rem; margin-left: auto; }
  .totals div { display: flex; justify-content: space-between; padding: .25rem 0; }
  .grand { border-top: 2px solid #0f172a; font-weight: bold; font-size: 1.1rem; }
  .muted { color: #64748b; font-size: .85rem; }
  .analysis { background: #f8fafc; border-radius: 1rem; padding: 1.5rem; margin-top: 2rem; }
  @media print { .analysis { display: none; } }
</style>
</head>
<body>
<h1>SolarDevis Pro</h1>
<p class="muted">Devis N° {{.Number}} — {{.Date}}</p>

<h2>{{.Profile.Name}}</h2>
<p>{{.Profile.Address}}<br><span class="muted">{{.Profile.SiteName}} — visite du {{.Profile.VisitDate}}</span></p>

<p><strong>Dimensionnement suggéré :</strong> {{printf "%.2f" .Sizing.NeededKWp}} kWc ({{.Sizing.PanelCount}} panneaux)<br>
<strong>Consommation journalière :</strong> {{printf "%.2f" .Profile.TotalDailyKWh}} kWh/j — crête {{printf "%.0f" .Profile.TotalMaxW}} W</p>

<table>
<tr><th>Désignation Appareil</th><th class="num">Puissance (W)</th><th class="num">Qté</th><th class="num">P.U. HT</th><th class="num">Total HT</th></tr>
{{range .Breakdown.Lines}}<tr><td>{{.Device}}</td><td class="num">{{printf "%.0f" .PeakW}}</td><td class="num">{{.Quantity}}</td><td class="num">{{eur .EffectiveUnitHT}}</td><td class="num">{{eur .LineTotalHT}}</td></tr>
{{end}}{{if gt .Breakdown.InstallCost 0.0}}<tr><td>Forfait Installation &amp; Mise en service</td><td class="num">-</td><td class="num">1</td><td class="num">{{eur .Breakdown.InstallCost}}</td><td class="num">{{eur .Breakdown.InstallCost}}</td></tr>
{{end}}</table>

<div class="totals">
  <div><span>Total Matériel HT</span><span>{{eur .Breakdown.MaterialSubtotal}}</span></div>
  {{if gt .Config.DiscountPercent 0.0}}<div><span>Réduction de {{printf "%.0f" .Config.DiscountPercent}}%</span><span>- {{eur .Breakdown.DiscountAmount}}</span></div>{{end}}
  <div><span>TVA sur Matériel ({{printf "%.1f" .Config.MaterialTaxPercent}}%)</span><span>{{eur .Breakdown.MaterialTax}}</span></div>
  {{if gt .Breakdown.InstallCost 0.0}}<div><span>TVA sur Installation ({{printf "%.1f" .Config.InstallTaxPercent}}%)</span><span>{{eur .Breakdown.InstallTax}}</span></div>{{end}}
  <div class="grand"><span>Total TTC</span><span>{{eur .Breakdown.GrandTotal}}</span></div>
</div>

{{if .AnalysisHTML}}<div class="analysis">
<h3>Analyse Experte</h3>
{{.AnalysisHTML}}
</div>{{end}}
</body>
</html>
`))

type htmlView struct {
	QuoteDocument
	AnalysisHTML template.HTML
}

// RenderHTML produces the on-screen printable quote page. The analysis
// section is included when present and hidden by print styles, matching
// the paper layout of the PDF.
func RenderHTML(doc QuoteDocument) ([]byte, error) {
	view := htmlView{QuoteDocument: doc}
	if doc.Analysis != "" {
		rendered, err := RenderAnalysisHTML(doc.Analysis)
		if err != nil {
			return nil, err
		}
		view.AnalysisHTML = rendered
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render quote document: %w", err)
	}
	return buf.Bytes(), nil
}
