// Package sizing converts a daily energy total into photovoltaic system
// sizing figures.
package sizing

import (
	"math"
)

// Defaults when nothing is configured: the fixed 3.5 kWh/kWp/day divisor
// and 425 W panels.
const (
	DefaultPeakSunHours     = 3.5
	DefaultPanelWattage     = 425
	DefaultSystemEfficiency = 100
)

// Params are the sizing assumptions for one quote or region.
type Params struct {
	PeakSunHours            float64 `json:"peak_sun_hours"`
	SystemEfficiencyPercent float64 `json:"system_efficiency_percent"`
	PanelWattage            float64 `json:"panel_wattage"`
}

// DefaultParams returns the sizing assumptions used when a quote does not
// carry its own.
func DefaultParams() Params {
	return Params{
		PeakSunHours:            DefaultPeakSunHours,
		SystemEfficiencyPercent: DefaultSystemEfficiency,
		PanelWattage:            DefaultPanelWattage,
	}
}

// Normalized fills zero fields with the defaults.
func (p Params) Normalized() Params {
	if p.PeakSunHours <= 0 {
		p.PeakSunHours = DefaultPeakSunHours
	}
	if p.SystemEfficiencyPercent <= 0 {
		p.SystemEfficiencyPercent = DefaultSystemEfficiency
	}
	if p.PanelWattage <= 0 {
		p.PanelWattage = DefaultPanelWattage
	}
	return p
}

// divisor is the effective kWh produced per installed kWp per day.
func (p Params) divisor() float64 {
	return p.PeakSunHours * p.SystemEfficiencyPercent / 100
}

// Result holds the derived sizing figures. NeededKWp is rounded to two
// decimals for display; PanelCount is derived from the unrounded value.
type Result struct {
	NeededKWp  float64 `json:"needed_kwp"`
	PanelCount int     `json:"panel_count"`
}

// Calculate sizes a system for the given daily consumption. Zero or
// negative input yields zero or negative sizing; callers decide whether
// that means "no system needed".
func Calculate(dailyKWh float64, p Params) Result {
	p = p.Normalized()
	neededKWp := dailyKWh / p.divisor()
	// Always provision the next whole panel.
	panelCount := int(math.Ceil(neededKWp * 1000 / p.PanelWattage))
	return Result{
		NeededKWp:  math.Round(neededKWp*100) / 100,
		PanelCount: panelCount,
	}
}
