// Package document renders the printable quote, as a PDF for download
// and as an HTML page for on-screen review. Layout fidelity is the whole
// job of this package; the numbers always come in already computed.
package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"solardevis-pro/internal/models"
	"solardevis-pro/internal/quote"
	"solardevis-pro/internal/sizing"
)

// QuoteDocument is everything a rendered quote needs.
type QuoteDocument struct {
	Number    string
	Date      string
	Profile   models.ClientProfile
	Config    models.QuoteConfig
	Breakdown quote.Breakdown
	Sizing    sizing.Result
	// Analysis is markdown; only the HTML view shows it, the printed
	// quote carries figures and signature blocks only.
	Analysis string
}

// GeneratePDF creates the printable quote using maroto/v2 and returns the
// raw PDF bytes.
func GeneratePDF(doc QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addClientBlock(m, doc)
	addSizingBlock(m, doc)
	addItemsTable(m, doc)
	addTotals(m, doc)
	addSignatureBlock(m)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, doc QuoteDocument) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("SolarDevis Pro", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 37, Green: 99, Blue: 235},
				}),
			),
			col.New(6).Add(
				text.New("DEVIS", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
		row.New(7).Add(
			col.New(6).Add(
				text.New("Solution d'énergie renouvelable sur mesure", props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("N° %s — %s", doc.Number, doc.Date), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		),
		row.New(4),
	)
}

func addClientBlock(m core.Maroto, doc QuoteDocument) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100}}

	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New("CLIENT", label))),
		row.New(6).Add(col.New(12).Add(text.New(doc.Profile.Name, props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Left,
		}))),
		row.New(5).Add(col.New(12).Add(text.New(doc.Profile.Address, props.Text{
			Size: 8, Align: align.Left,
		}))),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%s — visite du %s", doc.Profile.SiteName, doc.Profile.VisitDate),
			props.Text{Size: 8, Align: align.Left, Color: &props.Color{Red: 100, Green: 100, Blue: 100}},
		))),
		row.New(4),
	)
}

func addSizingBlock(m core.Maroto, doc QuoteDocument) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100}}
	value := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}

	panelW := doc.Config.PanelWattage
	if panelW <= 0 {
		panelW = sizing.DefaultPanelWattage
	}

	m.AddRows(
		row.New(5).Add(
			col.New(6).Add(text.New("DIMENSIONNEMENT SUGGÉRÉ", label)),
			col.New(6).Add(text.New("CONSOMMATION JOURNALIÈRE", label)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(fmt.Sprintf("%.2f kWc — %d panneaux (%.0fW)",
				doc.Sizing.NeededKWp, doc.Sizing.PanelCount, panelW), value)),
			col.New(6).Add(text.New(fmt.Sprintf("%.2f kWh/j — crête %.0f W",
				doc.Profile.TotalDailyKWh, doc.Profile.TotalMaxW), value)),
		),
		row.New(4),
	)
}

func addItemsTable(m core.Maroto, doc QuoteDocument) {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	headerRight := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New("Désignation Appareil", header)),
			col.New(2).Add(text.New("Puissance (W)", headerRight)),
			col.New(1).Add(text.New("Qté", headerRight)),
			col.New(2).Add(text.New("P.U. HT", headerRight)),
			col.New(2).Add(text.New("Total HT", headerRight)),
		),
	)

	cell := props.Text{Size: 8, Align: align.Left}
	cellRight := props.Text{Size: 8, Align: align.Right}

	for _, line := range doc.Breakdown.Lines {
		m.AddRows(
			row.New(6).Add(
				col.New(5).Add(text.New(line.Device, cell)),
				col.New(2).Add(text.New(fmt.Sprintf("%.0f", line.PeakW), cellRight)),
				col.New(1).Add(text.New(fmt.Sprintf("%d", line.Quantity), cellRight)),
				col.New(2).Add(text.New(quote.FormatEUR(line.EffectiveUnitHT), cellRight)),
				col.New(2).Add(text.New(quote.FormatEUR(line.LineTotalHT), cellRight)),
			),
		)
	}

	// The install line only exists when an install cost was configured.
	if doc.Breakdown.InstallCost > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(5).Add(text.New("Forfait Installation & Mise en service", cell)),
				col.New(2).Add(text.New("-", cellRight)),
				col.New(1).Add(text.New("1", cellRight)),
				col.New(2).Add(text.New(quote.FormatEUR(doc.Breakdown.InstallCost), cellRight)),
				col.New(2).Add(text.New(quote.FormatEUR(doc.Breakdown.InstallCost), cellRight)),
			),
		)
	}

	m.AddRows(row.New(4))
}

func addTotals(m core.Maroto, doc QuoteDocument) {
	label := props.Text{Size: 8, Align: align.Left}
	amount := props.Text{Size: 8, Align: align.Right}

	totalRow := func(name, value string) core.Row {
		return row.New(5).Add(
			col.New(7),
			col.New(3).Add(text.New(name, label)),
			col.New(2).Add(text.New(value, amount)),
		)
	}

	m.AddRows(totalRow("Total Matériel HT", quote.FormatEUR(doc.Breakdown.MaterialSubtotal)))

	if doc.Config.DiscountPercent > 0 {
		m.AddRows(totalRow(
			fmt.Sprintf("Réduction de %.0f%%", doc.Config.DiscountPercent),
			"- "+quote.FormatEUR(doc.Breakdown.DiscountAmount),
		))
	}

	m.AddRows(
		totalRow(fmt.Sprintf("TVA sur Matériel (%.1f%%)", doc.Config.MaterialTaxPercent),
			quote.FormatEUR(doc.Breakdown.MaterialTax)),
	)
	if doc.Breakdown.InstallCost > 0 {
		m.AddRows(
			totalRow(fmt.Sprintf("TVA sur Installation (%.1f%%)", doc.Config.InstallTaxPercent),
				quote.FormatEUR(doc.Breakdown.InstallTax)),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(7),
			col.New(3).Add(text.New("TOTAL TTC", props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Left,
			})),
			col.New(2).Add(text.New(quote.FormatEUR(doc.Breakdown.GrandTotal), props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right,
				Color: &props.Color{Red: 37, Green: 99, Blue: 235},
			})),
		),
		row.New(4),
	)
}

func addSignatureBlock(m core.Maroto) {
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(
				`Bon pour accord. Faire précéder la signature de la mention "Lu et approuvé".`,
				props.Text{Size: 7, Align: align.Left, Color: &props.Color{Red: 120, Green: 120, Blue: 120}},
			)),
			col.New(3).Add(text.New("Signature Client", props.Text{
				Size: 8, Style: fontstyle.Bold, Align: align.Left,
			})),
			col.New(3).Add(text.New("Fait le : ___ / ___ / 202___", props.Text{
				Size: 8, Align: align.Right,
			})),
		),
		row.New(24),
		row.New(5).Add(col.New(12).Add(text.New(
			"SolarDevis Pro • Devis valable 30 jours",
			props.Text{Size: 7, Align: align.Center, Color: &props.Color{Red: 150, Green: 150, Blue: 150}},
		))),
	)
}
