package audit

import (
	"solardevis-pro/internal/models"
)

// GroupByClient partitions line items into one profile per distinct
// (client, address) pair, preserving first-encountered order. Profile
// metadata comes from the first item of each group; later items with
// different metadata are ignored.
func GroupByClient(items []models.LineItem) []models.ClientProfile {
	order := make([]string, 0)
	groups := make(map[string][]models.LineItem)

	for _, item := range items {
		key := item.Client + "-" + item.Address
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	profiles := make([]models.ClientProfile, 0, len(order))
	for _, key := range order {
		group := groups[key]
		first := group[0]
		dailyKWh, maxW := ComputeTotals(group)
		profiles = append(profiles, models.ClientProfile{
			Name:          first.Client,
			Address:       first.Address,
			SiteName:      first.SiteName,
			VisitDate:     first.VisitDate,
			Items:         group,
			TotalDailyKWh: dailyKWh,
			TotalMaxW:     maxW,
		})
	}
	return profiles
}

// ComputeTotals derives the consumption totals for a set of items.
// Daily energy counts every item; peak power counts only items flagged
// for sizing, so billed accessories do not inflate the system size.
// Called at grouping time and again after every edit to the item list.
func ComputeTotals(items []models.LineItem) (dailyKWh, maxW float64) {
	for _, i := range items {
		qty := float64(i.Quantity)
		dailyKWh += i.HourlyKWh * i.DurationHours * qty
		if i.CountsForSizing {
			maxW += i.PeakW * qty
		}
	}
	return dailyKWh, maxW
}

// Recompute refreshes a profile's totals from its current item list.
func Recompute(p *models.ClientProfile) {
	p.TotalDailyKWh, p.TotalMaxW = ComputeTotals(p.Items)
}
