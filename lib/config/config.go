// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "LIGHTBOX_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is a local machine talking to the mock service.
	Development Environment = "development"
	// Production talks to a real photo service.
	Production Environment = "production"
)

// Config is the master configuration for Lightbox.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// API configures the photo service client.
	API APIConfig `yaml:"api"`

	// Feed configures query debouncing, scroll sampling, and fetches.
	Feed FeedConfig `yaml:"feed"`

	// Log configures diagnostics.
	Log LogConfig `yaml:"log"`

	// Mock configures lightbox-mock.
	Mock MockConfig `yaml:"mock"`

	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the sections an environment may override. Only
// non-zero fields replace base values.
type Overrides struct {
	API  *APIConfig  `yaml:"api,omitempty"`
	Feed *FeedConfig `yaml:"feed,omitempty"`
	Log  *LogConfig  `yaml:"log,omitempty"`
	Mock *MockConfig `yaml:"mock,omitempty"`
}

// APIConfig configures the photo service client.
type APIConfig struct {
	// BaseURL is the service root. Default: http://localhost:3004
	BaseURL string `yaml:"base_url"`

	// SearchPath and ListPath are the endpoint paths.
	SearchPath string `yaml:"search_path"`
	ListPath   string `yaml:"list_path"`

	// ImageBaseURL is the root image URLs are built under.
	ImageBaseURL string `yaml:"image_base_url"`

	// PerPage is the page size. Default: 10
	PerPage int `yaml:"per_page"`

	// Format is the response encoding: json or cbor.
	Format string `yaml:"format"`

	// RequestsPerSecond paces requests; zero disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// FeedConfig carries the feed's timing constants.
type FeedConfig struct {
	// MinQueryLength is the shortest trimmed query that searches.
	MinQueryLength int `yaml:"min_query_length"`

	// QuietPeriod is how long typing must pause before a search.
	QuietPeriod Duration `yaml:"quiet_period"`

	// ScrollInterval is the minimum spacing of load-more triggers.
	ScrollInterval Duration `yaml:"scroll_interval"`

	// NearBottomFraction is the share of the viewport height within
	// which the list counts as scrolled to the bottom.
	NearBottomFraction float64 `yaml:"near_bottom_fraction"`

	// FetchTimeout bounds a single page fetch.
	FetchTimeout Duration `yaml:"fetch_timeout"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level"`

	// Output is a file receiving JSON log records. Empty keeps logs
	// in the status bar only.
	Output string `yaml:"output"`
}

// MockConfig configures the mock photo service.
type MockConfig struct {
	// Listen is the TCP address to serve on.
	Listen string `yaml:"listen"`

	// Seed is a JSONC seed file. Empty generates SeedCount photos.
	Seed string `yaml:"seed"`

	// SeedCount is the size of the generated catalog.
	SeedCount int `yaml:"seed_count"`

	// Database is the catalog file. Empty keeps it in memory.
	Database string `yaml:"database"`

	// Latency delays every photo response.
	Latency Duration `yaml:"latency"`
}

// Duration is a time.Duration written in YAML as a duration string.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return fmt.Errorf("line %d: duration must be a string like \"2s\": %w", node.Line, err)
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the default configuration: the reference timing
// constants against a mock service on localhost.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:      "http://localhost:3004",
			SearchPath:   "/photos/search",
			ListPath:     "/photos",
			ImageBaseURL: "https://live.staticflickr.com",
			PerPage:      10,
			Format:       "json",
		},
		Feed: FeedConfig{
			MinQueryLength:     3,
			QuietPeriod:        Duration(2 * time.Second),
			ScrollInterval:     Duration(time.Second),
			NearBottomFraction: 0.6,
			FetchTimeout:       Duration(15 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		Mock: MockConfig{
			Listen:    "localhost:3004",
			SeedCount: 240,
		},
	}
}

// Load loads the file named by LIGHTBOX_CONFIG. Fails if the variable
// is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your lightbox.yaml, or use --config", EnvironmentVariable)
	}
	return LoadFile(path)
}

// Resolve picks the configuration for a binary: the --config path if
// given, else LIGHTBOX_CONFIG if set, else Default. The result is
// validated.
func Resolve(flagPath string) (*Config, error) {
	var cfg *Config
	var err error
	switch {
	case flagPath != "":
		cfg, err = LoadFile(flagPath)
	case os.Getenv(EnvironmentVariable) != "":
		cfg, err = Load()
	default:
		cfg = Default()
		cfg.expandVariables()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from path over Default, then applies
// environment overrides and variable expansion. It does not validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &Overrides{
				API: &APIConfig{RequestsPerSecond: 4, Burst: 2},
				Log: &LogConfig{Level: "warn"},
			}
		}
	}
	if overrides == nil {
		return
	}

	if api := overrides.API; api != nil {
		override(&c.API.BaseURL, api.BaseURL)
		override(&c.API.SearchPath, api.SearchPath)
		override(&c.API.ListPath, api.ListPath)
		override(&c.API.ImageBaseURL, api.ImageBaseURL)
		override(&c.API.PerPage, api.PerPage)
		override(&c.API.Format, api.Format)
		override(&c.API.RequestsPerSecond, api.RequestsPerSecond)
		override(&c.API.Burst, api.Burst)
	}
	if feed := overrides.Feed; feed != nil {
		override(&c.Feed.MinQueryLength, feed.MinQueryLength)
		override(&c.Feed.QuietPeriod, feed.QuietPeriod)
		override(&c.Feed.ScrollInterval, feed.ScrollInterval)
		override(&c.Feed.NearBottomFraction, feed.NearBottomFraction)
		override(&c.Feed.FetchTimeout, feed.FetchTimeout)
	}
	if log := overrides.Log; log != nil {
		override(&c.Log.Level, log.Level)
		override(&c.Log.Output, log.Output)
	}
	if mock := overrides.Mock; mock != nil {
		override(&c.Mock.Listen, mock.Listen)
		override(&c.Mock.Seed, mock.Seed)
		override(&c.Mock.SeedCount, mock.SeedCount)
		override(&c.Mock.Database, mock.Database)
		override(&c.Mock.Latency, mock.Latency)
	}
}

// override replaces *target with value unless value is the zero value.
func override[T comparable](target *T, value T) {
	var zero T
	if value != zero {
		*target = value
	}
}

func (c *Config) expandVariables() {
	for _, field := range []*string{
		&c.API.BaseURL,
		&c.API.ImageBaseURL,
		&c.Log.Output,
		&c.Mock.Listen,
		&c.Mock.Seed,
		&c.Mock.Database,
	} {
		*field = expandVars(*field)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %q", c.Environment))
	}

	errs = append(errs, validateURL("api.base_url", c.API.BaseURL))
	errs = append(errs, validateURL("api.image_base_url", c.API.ImageBaseURL))
	for name, path := range map[string]string{"api.search_path": c.API.SearchPath, "api.list_path": c.API.ListPath} {
		if !strings.HasPrefix(path, "/") {
			errs = append(errs, fmt.Errorf("%s must start with / (got %q)", name, path))
		}
	}
	if c.API.PerPage < 1 || c.API.PerPage > 100 {
		errs = append(errs, fmt.Errorf("api.per_page must be in [1, 100] (got %d)", c.API.PerPage))
	}
	if c.API.Format != "json" && c.API.Format != "cbor" {
		errs = append(errs, fmt.Errorf("api.format must be json or cbor (got %q)", c.API.Format))
	}
	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.requests_per_second must not be negative"))
	}
	if c.API.Burst < 0 {
		errs = append(errs, fmt.Errorf("api.burst must not be negative"))
	}

	if c.Feed.MinQueryLength < 1 {
		errs = append(errs, fmt.Errorf("feed.min_query_length must be at least 1 (got %d)", c.Feed.MinQueryLength))
	}
	if c.Feed.QuietPeriod < 0 {
		errs = append(errs, fmt.Errorf("feed.quiet_period must not be negative"))
	}
	if c.Feed.ScrollInterval < 0 {
		errs = append(errs, fmt.Errorf("feed.scroll_interval must not be negative"))
	}
	if c.Feed.NearBottomFraction <= 0 || c.Feed.NearBottomFraction > 1 {
		errs = append(errs, fmt.Errorf("feed.near_bottom_fraction must be in (0, 1] (got %v)", c.Feed.NearBottomFraction))
	}
	if c.Feed.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("feed.fetch_timeout must be positive"))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level))
	}

	if c.Mock.Listen == "" {
		errs = append(errs, fmt.Errorf("mock.listen is required"))
	}
	if c.Mock.SeedCount < 0 {
		errs = append(errs, fmt.Errorf("mock.seed_count must not be negative"))
	}
	if c.Mock.Latency < 0 {
		errs = append(errs, fmt.Errorf("mock.latency must not be negative"))
	}

	return errors.Join(errs...)
}

func validateURL(name, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s must be an http or https URL (got %q)", name, value)
	}
	return nil
}

// LogLevel returns Log.Level as a slog.Level. Call after Validate.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
