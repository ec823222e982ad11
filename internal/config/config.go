// Package config holds the environment-driven configuration of the
// service. Credentials for the external collaborators are read once here
// and passed to the clients at construction time; nothing probes the
// environment at call sites.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SOLARDEVIS"

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:5173"`

	JWTSecret     string `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	AgentUsername string `envconfig:"AGENT_USERNAME" default:"agent"`
	AgentPassword string `envconfig:"AGENT_PASSWORD" default:"solaire"`

	// External collaborators. Empty keys leave the feature disabled
	// instead of failing at call time.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-001"`
	SolarAPIKey  string `envconfig:"GOOGLE_SOLAR_API_KEY"`

	// Default sizing assumptions, overridable per quote.
	PeakSunHours  float64 `envconfig:"PEAK_SUN_HOURS" default:"3.5"`
	PanelWattage  float64 `envconfig:"PANEL_WATTAGE" default:"425"`
	DefaultRegion string  `envconfig:"DEFAULT_REGION" default:"Port-au-Prince"`

	WebDir string `envconfig:"WEB_DIR" default:"./web"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Origins splits the configured CORS origins list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnalysisEnabled reports whether the AI narrative feature can run.
func (c *Config) AnalysisEnabled() bool { return c.GeminiAPIKey != "" }

// SolarEnabled reports whether the solar-potential lookup can run.
func (c *Config) SolarEnabled() bool { return c.SolarAPIKey != "" }
