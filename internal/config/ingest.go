package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	EnvIngestCommonsURL  = "TALLY_INGEST_COMMONS_URL"
	EnvIngestLegisURL    = "TALLY_INGEST_LEGIS_URL"
	EnvIngestUserAgent   = "TALLY_INGEST_USER_AGENT"
	EnvIngestTimeout     = "TALLY_INGEST_TIMEOUT"
	EnvIngestMaxRetries  = "TALLY_INGEST_MAX_RETRIES"
	EnvIngestDelay       = "TALLY_INGEST_DELAY"
	EnvIngestSnapshots   = "TALLY_INGEST_SNAPSHOTS"
	EnvIngestEmptyPages  = "TALLY_INGEST_EMPTY_PAGES"
)

// IngestConfig holds parameters for the parliamentary source scrapers.
type IngestConfig struct {
	// CommonsURL is the House of Commons site root, serving member and
	// vote pages.
	CommonsURL string `toml:"commons_url"`
	// LegisURL is the LEGISinfo site root, serving bill pages.
	LegisURL   string `toml:"legis_url"`
	UserAgent  string `toml:"user_agent"`
	Timeout    string `toml:"timeout"`
	MaxRetries int    `toml:"max_retries"`
	// Delay is the politeness pause between successive page fetches.
	Delay string `toml:"delay"`
	// EmptyPages is how many consecutive empty listing pages end a
	// paginated crawl.
	EmptyPages int `toml:"empty_pages"`
	// Snapshots archives every fetched page to blob storage when true.
	Snapshots bool `toml:"snapshots"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *IngestConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// DelayDuration returns Delay as a time.Duration.
func (c *IngestConfig) DelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.Delay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *IngestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *IngestConfig) Merge(overlay *IngestConfig) {
	if overlay.CommonsURL != "" {
		c.CommonsURL = overlay.CommonsURL
	}
	if overlay.LegisURL != "" {
		c.LegisURL = overlay.LegisURL
	}
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.Delay != "" {
		c.Delay = overlay.Delay
	}
	if overlay.EmptyPages != 0 {
		c.EmptyPages = overlay.EmptyPages
	}
	if overlay.Snapshots {
		c.Snapshots = true
	}
}

func (c *IngestConfig) loadDefaults() {
	if c.CommonsURL == "" {
		c.CommonsURL = "https://www.ourcommons.ca"
	}
	if c.LegisURL == "" {
		c.LegisURL = "https://www.parl.ca"
	}
	if c.UserAgent == "" {
		c.UserAgent = "tally/1.0 (parliamentary records aggregator)"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.Delay == "" {
		c.Delay = "2s"
	}
	if c.EmptyPages == 0 {
		c.EmptyPages = 3
	}
}

func (c *IngestConfig) loadEnv() {
	if v := os.Getenv(EnvIngestCommonsURL); v != "" {
		c.CommonsURL = v
	}
	if v := os.Getenv(EnvIngestLegisURL); v != "" {
		c.LegisURL = v
	}
	if v := os.Getenv(EnvIngestUserAgent); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv(EnvIngestTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvIngestMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvIngestDelay); v != "" {
		c.Delay = v
	}
	if v := os.Getenv(EnvIngestEmptyPages); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EmptyPages = n
		}
	}
	if v := os.Getenv(EnvIngestSnapshots); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Snapshots = b
		}
	}
}

func (c *IngestConfig) validate() error {
	for name, raw := range map[string]string{"commons_url": c.CommonsURL, "legis_url": c.LegisURL} {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Delay); err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	return nil
}
