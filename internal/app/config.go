package app

import "fmt"

// Config holds all the configuration an App instance needs to run.
type Config struct {
	// ManifestPath points at a manifest file or directory. Empty means the
	// compiled-in feature definitions are used.
	ManifestPath string
	// ReportFormat selects the capability report rendering: "text" or "json".
	ReportFormat string

	LogFormat  string
	LogLevel   string
	StatusPort int
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "text"
	}
	if cfg.ReportFormat != "text" && cfg.ReportFormat != "json" {
		return nil, fmt.Errorf("invalid report format %q: must be 'text' or 'json'", cfg.ReportFormat)
	}
	return &cfg, nil
}
