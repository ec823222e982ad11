package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solardevis-pro/internal/models"
)

func item(client, address, device string, hourlyKWh, peakW, hours float64, qty int) models.LineItem {
	return models.LineItem{
		ID:              device + "-" + client,
		Client:          client,
		Address:         address,
		SiteName:        "Site " + client,
		VisitDate:       "2024-03-01",
		Device:          device,
		HourlyKWh:       hourlyKWh,
		PeakW:           peakW,
		DurationHours:   hours,
		Quantity:        qty,
		CountsForSizing: true,
	}
}

func TestGroupByClientPartition(t *testing.T) {
	items := []models.LineItem{
		item("Dupont", "Rue A", "Frigo", 0.15, 300, 24, 1),
		item("Joseph", "Rue B", "Clim", 1.2, 1500, 6, 1),
		item("Dupont", "Rue A", "TV", 0.1, 120, 5, 2),
		item("Dupont", "Rue C", "Frigo", 0.15, 300, 24, 1), // same client, other address
	}

	profiles := GroupByClient(items)
	require.Len(t, profiles, 3, "one profile per distinct (client, address) pair")

	// First-seen order is preserved.
	assert.Equal(t, "Dupont", profiles[0].Name)
	assert.Equal(t, "Rue A", profiles[0].Address)
	assert.Equal(t, "Joseph", profiles[1].Name)
	assert.Equal(t, "Rue C", profiles[2].Address)

	// Every input item lands in exactly one profile.
	total := 0
	for _, p := range profiles {
		total += len(p.Items)
	}
	assert.Equal(t, len(items), total)
	assert.Len(t, profiles[0].Items, 2)
}

func TestGroupByClientMetadataFromFirstItem(t *testing.T) {
	first := item("Dupont", "Rue A", "Frigo", 0.15, 300, 24, 1)
	second := item("Dupont", "Rue A", "Clim", 1.2, 1500, 6, 1)
	second.SiteName = "Autre lieu"
	second.VisitDate = "2099-01-01"

	profiles := GroupByClient([]models.LineItem{first, second})
	require.Len(t, profiles, 1)
	assert.Equal(t, first.SiteName, profiles[0].SiteName, "later metadata is silently ignored")
	assert.Equal(t, first.VisitDate, profiles[0].VisitDate)
}

func TestGroupByClientEmpty(t *testing.T) {
	assert.Empty(t, GroupByClient(nil))
}

func TestComputeTotals(t *testing.T) {
	items := []models.LineItem{
		item("c", "a", "Frigo", 0.15, 300, 24, 1), // 3.6 kWh, 300 W
		item("c", "a", "Clim", 1.2, 1500, 6, 2),   // 14.4 kWh, 3000 W
	}

	daily, maxW := ComputeTotals(items)
	assert.InDelta(t, 18.0, daily, 1e-9)
	assert.InDelta(t, 3300, maxW, 1e-9)
}

func TestComputeTotalsOrderIndependentAndIdempotent(t *testing.T) {
	items := []models.LineItem{
		item("c", "a", "A", 0.5, 100, 4, 3),
		item("c", "a", "B", 1.25, 900, 2, 1),
		item("c", "a", "C", 0.05, 60, 12, 5),
	}
	reversed := []models.LineItem{items[2], items[1], items[0]}

	d1, w1 := ComputeTotals(items)
	d2, w2 := ComputeTotals(reversed)
	assert.InDelta(t, d1, d2, 1e-9)
	assert.InDelta(t, w1, w2, 1e-9)

	d3, w3 := ComputeTotals(items)
	assert.Equal(t, d1, d3, "recomputation has no hidden state")
	assert.Equal(t, w1, w3)
}

func TestComputeTotalsSizingExcludedItems(t *testing.T) {
	accessory := item("c", "a", "Support de fixation", 0.2, 500, 2, 1)
	accessory.CountsForSizing = false

	items := []models.LineItem{
		item("c", "a", "Frigo", 0.15, 300, 24, 1),
		accessory,
	}

	daily, maxW := ComputeTotals(items)
	// Energy counts every item; peak power skips excluded ones.
	assert.InDelta(t, 3.6+0.4, daily, 1e-9)
	assert.InDelta(t, 300, maxW, 1e-9)
}

func TestRecompute(t *testing.T) {
	profiles := GroupByClient([]models.LineItem{item("c", "a", "Frigo", 0.15, 300, 24, 1)})
	require.Len(t, profiles, 1)
	p := profiles[0]

	p.Items = append(p.Items, item("c", "a", "Clim", 1.2, 1500, 6, 1))
	Recompute(&p)
	assert.InDelta(t, 3.6+7.2, p.TotalDailyKWh, 1e-9)
	assert.InDelta(t, 1800, p.TotalMaxW, 1e-9)

	// Removing every item zeroes the totals.
	p.Items = nil
	Recompute(&p)
	assert.Zero(t, p.TotalDailyKWh)
	assert.Zero(t, p.TotalMaxW)
}
