// Package quote applies the commercial configuration to a priced item
// list and produces the financial breakdown of a quote.
package quote

import (
	"github.com/shopspring/decimal"

	"solardevis-pro/internal/models"
)

// Line is one row of the printed quote: the margin-adjusted unit price is
// what the client sees, never the raw purchase price.
type Line struct {
	ItemID          string  `json:"item_id"`
	Device          string  `json:"device"`
	PeakW           float64 `json:"peak_w"`
	Quantity        int     `json:"quantity"`
	EffectiveUnitHT float64 `json:"effective_unit_ht"`
	LineTotalHT     float64 `json:"line_total_ht"`
}

// Breakdown is the full financial result for one quote. Every component
// is already rounded to two decimals; the grand total is their plain sum.
type Breakdown struct {
	Lines                 []Line  `json:"lines"`
	MaterialSubtotal      float64 `json:"material_subtotal"`
	DiscountAmount        float64 `json:"discount_amount"`
	MaterialAfterDiscount float64 `json:"material_after_discount"`
	MaterialTax           float64 `json:"material_tax"`
	InstallCost           float64 `json:"install_cost"`
	InstallTax            float64 `json:"install_tax"`
	GrandTotal            float64 `json:"grand_total"`
}

// round2 rounds half away from zero at two decimals. Applied to every
// intermediate currency amount immediately after computation so
// floating-point drift never compounds across the breakdown.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func pct(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(decimal.NewFromInt(100))
}

// Compute produces the breakdown for a set of items under the given
// commercial configuration. Inputs are assumed numeric and non-negative;
// validation, if any, happens upstream in the editor.
func Compute(items []models.LineItem, cfg models.QuoteConfig) Breakdown {
	marginMult := decimal.NewFromInt(1).Add(pct(cfg.MarginPercent))

	lines := make([]Line, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		unit := round2(decimal.NewFromFloat(item.UnitPrice).Mul(marginMult))
		lineTotal := round2(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, Line{
			ItemID:          item.ID,
			Device:          item.Device,
			PeakW:           item.PeakW,
			Quantity:        item.Quantity,
			EffectiveUnitHT: unit.InexactFloat64(),
			LineTotalHT:     lineTotal.InexactFloat64(),
		})
	}
	subtotal = round2(subtotal)

	discount := round2(subtotal.Mul(pct(cfg.DiscountPercent)))
	afterDiscount := subtotal.Sub(discount)
	materialTax := round2(afterDiscount.Mul(pct(cfg.MaterialTaxPercent)))

	install := round2(decimal.NewFromFloat(cfg.InstallCost))
	// A zero install cost still contributes a (zero) tax line to the sum,
	// it just never appears on the rendered quote.
	installTax := round2(install.Mul(pct(cfg.InstallTaxPercent)))

	grand := afterDiscount.Add(materialTax).Add(install).Add(installTax)

	return Breakdown{
		Lines:                 lines,
		MaterialSubtotal:      subtotal.InexactFloat64(),
		DiscountAmount:        discount.InexactFloat64(),
		MaterialAfterDiscount: afterDiscount.InexactFloat64(),
		MaterialTax:           materialTax.InexactFloat64(),
		InstallCost:           install.InexactFloat64(),
		InstallTax:            installTax.InexactFloat64(),
		GrandTotal:            grand.InexactFloat64(),
	}
}
