package models

import (
	"time"
)

// LineItem - one appliance/device entry from a site audit.
// One row of the imported file, or an entry added by the agent in the editor.
type LineItem struct {
	ID              string  `json:"id"`
	Client          string  `json:"client"`
	SiteName        string  `json:"site_name"`
	Address         string  `json:"address"`
	VisitDate       string  `json:"visit_date"`
	Agent           string  `json:"agent"`
	Device          string  `json:"device"`
	HourlyKWh       float64 `json:"hourly_kwh"`
	PeakW           float64 `json:"peak_w"`
	DurationHours   float64 `json:"duration_hours"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	CountsForSizing bool    `json:"counts_for_sizing"` // accessories can be billed without driving peak-power sizing
}

// ClientProfile - all line items sharing a (client, address) key,
// with the consumption totals derived from them.
type ClientProfile struct {
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	SiteName      string     `json:"site_name"`
	VisitDate     string     `json:"visit_date"`
	Items         []LineItem `json:"items"`
	TotalDailyKWh float64    `json:"total_daily_kwh"`
	TotalMaxW     float64    `json:"total_max_w"`
}

// QuoteConfig - commercial parameters for one quote session.
// Created with defaults when editing begins; replaced wholesale on save.
type QuoteConfig struct {
	MarginPercent      float64 `json:"margin_percent"`
	DiscountPercent    float64 `json:"discount_percent"`
	MaterialTaxPercent float64 `json:"material_tax_percent"`
	InstallCost        float64 `json:"install_cost"`
	InstallTaxPercent  float64 `json:"install_tax_percent"`

	// Sizing assumptions for this quote. Zero means "use the service defaults".
	PanelWattage            float64 `json:"panel_wattage,omitempty"`
	PeakSunHours            float64 `json:"peak_sun_hours,omitempty"`
	SystemEfficiencyPercent float64 `json:"system_efficiency_percent,omitempty"`
}

// DefaultQuoteConfig returns the commercial parameters the editor starts from.
func DefaultQuoteConfig() QuoteConfig {
	return QuoteConfig{
		MarginPercent:      20,
		DiscountPercent:    0,
		MaterialTaxPercent: 20,
		InstallCost:        1500,
		InstallTaxPercent:  10,
	}
}

// AuditImport - one uploaded audit file and the profiles grouped out of it.
// Lives only in the in-memory store; gone when the process exits.
type AuditImport struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	FileName  string          `json:"file_name"`
	CreatedAt time.Time       `json:"created_at"`
	Profiles  []ProfileRecord `gorm:"foreignKey:ImportID" json:"profiles"`
}

// ProfileRecord - the stored form of one ClientProfile inside an import.
// Items and config are serialized as JSON blobs; the editing flow always
// replaces them wholesale, never field by field.
type ProfileRecord struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	ImportID      string  `gorm:"index;size:36" json:"-"`
	Position      int     `json:"position"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	SiteName      string  `json:"site_name"`
	VisitDate     string  `json:"visit_date"`
	TotalDailyKWh float64 `json:"total_daily_kwh"`
	TotalMaxW     float64 `json:"total_max_w"`
	ItemsJSON     string  `json:"-"`
	ConfigJSON    string  `json:"-"`
}
