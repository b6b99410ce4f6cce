// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (./storevoice.yaml or /etc/storevoice/storevoice.yaml)
//  3. Default values
//
// Sensitive data (the PostgreSQL password) is never logged; Config
// implements Stringer through a masking MarshalJSON.
//
// Error handling uses sentinel errors so callers can check with
// errors.Is(); validation wraps them with context via fmt.Errorf.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidListenAddr indicates the HTTP listen address is invalid.
	ErrInvalidListenAddr = errors.New("invalid listen address")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidVendorURL indicates the vendor base URL is missing or malformed.
	ErrInvalidVendorURL = errors.New("invalid vendor base URL")

	// ErrInvalidPriceCeiling indicates the scrape price ceiling is not positive.
	ErrInvalidPriceCeiling = errors.New("invalid price ceiling")

	// ErrInvalidFetchRate indicates the scrape request rate is not positive.
	ErrInvalidFetchRate = errors.New("invalid fetch rate")
)

// Config stores the application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
type Config struct {
	// HTTP server
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`

	// PostgreSQL catalog storage
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// Vendor site (public storefront used by the live and direct tiers)
	VendorBaseURL    string `mapstructure:"vendor_base_url" json:"vendor_base_url"`
	VendorSearchPath string `mapstructure:"vendor_search_path" json:"vendor_search_path"`

	// Live data capability (MCP endpoint; empty disables the tier)
	LiveEndpoint   string `mapstructure:"live_endpoint" json:"live_endpoint"`
	LiveTimeoutSec int    `mapstructure:"live_timeout_sec" json:"live_timeout_sec"`

	// Direct-fetch scraping
	ScrapePriceCeiling float64 `mapstructure:"scrape_price_ceiling" json:"scrape_price_ceiling"`
	ScrapeUserAgent    string  `mapstructure:"scrape_user_agent" json:"scrape_user_agent"`
	ScrapeTimeoutSec   int     `mapstructure:"scrape_timeout_sec" json:"scrape_timeout_sec"`
	ScrapeRatePerSec   float64 `mapstructure:"scrape_rate_per_sec" json:"scrape_rate_per_sec"`

	// Telemetry (OTLP endpoint; empty disables export)
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" json:"service_name"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	viper.SetConfigName("storevoice")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/storevoice")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"config_name", "storevoice.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("listen_addr", ":8080")

	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "storevoice")
	viper.SetDefault("postgres_password", "storevoice_dev_password")
	viper.SetDefault("postgres_db_name", "storevoice")
	viper.SetDefault("postgres_ssl_mode", "disable")

	viper.SetDefault("vendor_base_url", "https://www.multitech.com.cy")
	viper.SetDefault("vendor_search_path", "/index.php?route=product/search&search=")

	viper.SetDefault("live_timeout_sec", 15)

	viper.SetDefault("scrape_price_ceiling", 10000)
	viper.SetDefault("scrape_timeout_sec", 10)
	viper.SetDefault("scrape_rate_per_sec", 2)

	viper.SetDefault("service_name", "storevoice")
	viper.SetDefault("log_level", "info")
}

// bindEnvVariables binds environment overrides explicitly. Implicit
// AutomaticEnv is avoided so the accepted variable set stays auditable.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("listen_addr", "STOREVOICE_LISTEN_ADDR")

	mustBind("postgres_host", "STOREVOICE_POSTGRES_HOST")
	mustBind("postgres_port", "STOREVOICE_POSTGRES_PORT")
	mustBind("postgres_user", "STOREVOICE_POSTGRES_USER")
	mustBind("postgres_password", "STOREVOICE_POSTGRES_PASSWORD")
	mustBind("postgres_db_name", "STOREVOICE_POSTGRES_DB")
	mustBind("postgres_ssl_mode", "STOREVOICE_POSTGRES_SSL_MODE")

	mustBind("vendor_base_url", "STOREVOICE_VENDOR_BASE_URL")
	mustBind("live_endpoint", "STOREVOICE_LIVE_ENDPOINT")
	mustBind("otlp_endpoint", "STOREVOICE_OTLP_ENDPOINT")
	mustBind("log_level", "STOREVOICE_LOG_LEVEL")
}

// Validate performs fail-fast range checks on the loaded configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidListenAddr)
	}
	if strings.TrimSpace(c.PostgresHost) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if strings.TrimSpace(c.PostgresDBName) == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidPostgresDBName)
	}
	if c.VendorBaseURL != "" {
		parsed, err := url.Parse(c.VendorBaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidVendorURL, c.VendorBaseURL)
		}
	}
	if c.ScrapePriceCeiling <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPriceCeiling, c.ScrapePriceCeiling)
	}
	if c.ScrapeRatePerSec <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFetchRate, c.ScrapeRatePerSec)
	}
	return nil
}

// ConnString builds the PostgreSQL connection string for pgxpool.
func (c *Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.PostgresUser),
		url.QueryEscape(c.PostgresPassword),
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDBName,
		c.PostgresSSLMode,
	)
}

// SearchURL renders the vendor's public search URL for a query.
func (c *Config) SearchURL(query string) string {
	return strings.TrimSuffix(c.VendorBaseURL, "/") + c.VendorSearchPath + url.QueryEscape(query)
}

// VendorSite is the bare host used to scope live searches.
func (c *Config) VendorSite() string {
	parsed, err := url.Parse(c.VendorBaseURL)
	if err != nil || parsed.Host == "" {
		return c.VendorBaseURL
	}
	return parsed.Host
}

// LiveTimeout returns the live-tier call budget as a duration.
func (c *Config) LiveTimeout() time.Duration {
	if c.LiveTimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.LiveTimeoutSec) * time.Second
}

// ScrapeTimeout returns the direct-fetch budget as a duration.
func (c *Config) ScrapeTimeout() time.Duration {
	if c.ScrapeTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ScrapeTimeoutSec) * time.Second
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret for safe logging. Short secrets are fully
// masked; longer ones keep first and last two characters for debugging.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with sensitive field masking.
// When adding new sensitive fields, update this method.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
