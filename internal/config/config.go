// Package config defines service configuration structures and loading hooks.
//
// Defaults come from New; Load layers an optional YAML file and LEAGUE_*
// environment variables on top.
package config

import (
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataSource is a file path or http(s) URL for the league document.
	// Empty means the bundled sample league.
	DataSource string `koanf:"data_source"`

	// DataTimeoutMS bounds remote fetches.
	DataTimeoutMS int `koanf:"data_timeout_ms"`

	// LoadDelayMS simulates latency before each load.
	LoadDelayMS int `koanf:"load_delay_ms"`

	// FavoritesPath is the SQLite file holding preferences. Empty keeps them in memory.
	FavoritesPath string `koanf:"favorites_path"`

	// SuccessNoticeMS is how long the save notice stays raised.
	SuccessNoticeMS int `koanf:"success_notice_ms"`

	// MaxScore is the inclusive upper bound for an edited score.
	MaxScore int `koanf:"max_score"`

	// RecentMatchesLimit caps the favorite team's recent matches.
	RecentMatchesLimit int `koanf:"recent_matches_limit"`

	// CORSAllowedOrigins is a comma separated list; "*" allows any origin.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// MetricsNamespace and MetricsSubsystem prefix every Prometheus series.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsLabels is a comma separated list of name=value constant labels.
	MetricsLabels string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8080",
		DataTimeoutMS:      10_000,
		LoadDelayMS:        0,
		FavoritesPath:      "league.db",
		SuccessNoticeMS:    3_000,
		MaxScore:           7,
		RecentMatchesLimit: 5,
		CORSAllowedOrigins: "*",
		MetricsNamespace:   "league",
		MetricsSubsystem:   "standings",
	}
}

// DataTimeout returns DataTimeoutMS as a duration.
func (c *Config) DataTimeout() time.Duration {
	return time.Duration(c.DataTimeoutMS) * time.Millisecond
}

// LoadDelay returns LoadDelayMS as a duration.
func (c *Config) LoadDelay() time.Duration {
	return time.Duration(c.LoadDelayMS) * time.Millisecond
}

// SuccessNotice returns SuccessNoticeMS as a duration.
func (c *Config) SuccessNotice() time.Duration {
	return time.Duration(c.SuccessNoticeMS) * time.Millisecond
}

// CORSOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// MetricsConstLabels parses MetricsLabels. Entries without "=" are skipped.
func (c *Config) MetricsConstLabels() map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(c.MetricsLabels, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			out[name] = strings.TrimSpace(value)
		}
	}
	return out
}
