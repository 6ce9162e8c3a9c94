package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "config.yaml"

const (
	defaultPort        = 3000
	defaultWebhookRate = 10.0
	defaultDatabaseURL = "jobboard.db"
	defaultAttempts    = 3
	defaultBaseDelay   = time.Second
	defaultMinInterval = 2 * time.Second
	slackHookPrefix    = "https://hooks.slack.com/"
)

// DefaultCategories and DefaultLocations populate the board's checkbox lists
// when the config does not name any.
var (
	DefaultCategories = []string{"Programming", "Data Science", "Designing", "Networking", "Management", "Marketing", "Cybersecurity"}
	DefaultLocations  = []string{"Bangalore", "Washington", "Hyderabad", "Mumbai", "California", "Chennai", "New York"}
)

// Config is the root configuration shared by the server and the board.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Webhook      WebhookConfig
	Notification NotificationConfig
	Board        BoardConfig
	Retry        RetryConfig
	Tracing      TracingConfig
}

// TracingConfig enables OTLP trace export when Endpoint (host:port) is set.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port        int
	WebhookRate float64 // webhook requests per second allowed per client IP
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// DatabaseConfig selects the user store. URLs starting with postgres:// use
// Postgres; anything else is a SQLite file path.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// WebhookConfig holds the identity provider's signing secret (whsec_...).
type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// BoardConfig drives the board client.
type BoardConfig struct {
	Categories []string
	Locations  []string
	Catalogs   []CatalogConfig
}

// EnabledCatalogs returns the catalogs with enabled set, in file order.
func (b BoardConfig) EnabledCatalogs() []CatalogConfig {
	var out []CatalogConfig
	for _, c := range b.Catalogs {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// CatalogConfig describes one job source. Exactly one of File and URL is set.
type CatalogConfig struct {
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// Kind returns "file" or "remote".
func (c CatalogConfig) Kind() string {
	if c.URL != "" {
		return "remote"
	}
	return "file"
}

// RetryConfig controls retries of remote catalog fetches.
type RetryConfig struct {
	Attempts    int
	BaseDelay   time.Duration
	MinInterval time.Duration // spacing between requests to the same catalog host
}

// rawConfig mirrors the YAML layout; zero values are replaced by defaults.
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Webhook      WebhookConfig      `yaml:"webhook"`
	Notification NotificationConfig `yaml:"notification"`
	Board        rawBoardConfig     `yaml:"board"`
	Retry        rawRetryConfig     `yaml:"retry"`
	Tracing      TracingConfig      `yaml:"tracing"`
}

type rawServerConfig struct {
	Port        int     `yaml:"port"`
	WebhookRate float64 `yaml:"webhook_rate"`
}

type rawBoardConfig struct {
	Categories []string        `yaml:"categories"`
	Locations  []string        `yaml:"locations"`
	Catalogs   []CatalogConfig `yaml:"catalogs"`
}

type rawRetryConfig struct {
	Attempts    int    `yaml:"attempts"`
	BaseDelay   string `yaml:"base_delay"`
	MinInterval string `yaml:"min_interval"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg, _ := build(rawConfig{})
	return cfg
}

// Load reads and parses the YAML config file at path, applies environment
// overrides, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadOrDefault behaves like Load, except that a missing file yields the
// defaults (with environment overrides) unless required is set.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if required || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(raw rawConfig) (*Config, error) {
	baseDelay, err := parseDuration("retry.base_delay", raw.Retry.BaseDelay, defaultBaseDelay)
	if err != nil {
		return nil, err
	}
	minInterval, err := parseDuration("retry.min_interval", raw.Retry.MinInterval, defaultMinInterval)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        orDefault(raw.Server.Port, defaultPort),
			WebhookRate: orDefault(raw.Server.WebhookRate, defaultWebhookRate),
		},
		Database:     DatabaseConfig{URL: orDefault(raw.Database.URL, defaultDatabaseURL)},
		Webhook:      raw.Webhook,
		Notification: raw.Notification,
		Board: BoardConfig{
			Categories: raw.Board.Categories,
			Locations:  raw.Board.Locations,
			Catalogs:   raw.Board.Catalogs,
		},
		Retry: RetryConfig{
			Attempts:    orDefault(raw.Retry.Attempts, defaultAttempts),
			BaseDelay:   baseDelay,
			MinInterval: minInterval,
		},
		Tracing: TracingConfig{
			Endpoint:    raw.Tracing.Endpoint,
			ServiceName: orDefault(raw.Tracing.ServiceName, "jobboard"),
		},
	}
	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "log"
	}
	if len(cfg.Board.Categories) == 0 {
		cfg.Board.Categories = DefaultCategories
	}
	if len(cfg.Board.Locations) == 0 {
		cfg.Board.Locations = DefaultLocations
	}
	return cfg, nil
}

func parseDuration(field, v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, v, err)
	}
	return d, nil
}

// applyEnv lets the deployment environment override file values.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CLERK_WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.Secret = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.WebhookRate <= 0 {
		return fmt.Errorf("server.webhook_rate must be positive, got %v", cfg.Server.WebhookRate)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackHookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackHookPrefix)
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	seen := make(map[string]bool)
	for i, c := range cfg.Board.Catalogs {
		if c.Name == "" {
			return fmt.Errorf("board.catalogs[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("board.catalogs[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
		if (c.File == "") == (c.URL == "") {
			return fmt.Errorf("board.catalogs[%d] (%s): exactly one of file or url must be set", i, c.Name)
		}
	}

	if cfg.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must not be negative, got %v", cfg.Retry.BaseDelay)
	}
	if cfg.Retry.MinInterval < 0 {
		return fmt.Errorf("retry.min_interval must not be negative, got %v", cfg.Retry.MinInterval)
	}
	return nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
