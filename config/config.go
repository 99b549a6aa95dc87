// Package config loads the estate configuration.
//
// Settings are read, in order, from the defaults, an optional TOML file and
// the ESTATE_* environment variables (possibly set in a .env file). Later
// sources win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all estate configuration.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Log       LogConfig       `toml:"log"`
	Report    ReportConfig    `toml:"report"`
	Valuation ValuationConfig `toml:"valuation"`
}

// DatabaseConfig selects the store.
type DatabaseConfig struct {
	Driver string `toml:"driver"` // "sqlite" or "postgres"
	DSN    string `toml:"dsn"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `toml:"level"`
	Environment string `toml:"environment"` // production and staging log JSON
}

// ReportConfig holds report preferences.
type ReportConfig struct {
	Currency string `toml:"currency"`
	Locale   string `toml:"locale"` // BCP 47 tag used to sort reports
	User     string `toml:"user"`   // default owner of the records
	Cron     string `toml:"cron"`   // schedule of the watch command
}

// ValuationConfig locates the market value of a property in a JSON endpoint.
type ValuationConfig struct {
	URL  string `toml:"url,omitempty"`  // "{property}" is replaced by the property id
	Path string `toml:"path,omitempty"` // JSONPath of the value in the response
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Database:  DatabaseConfig{Driver: "sqlite", DSN: "estate.db"},
		Log:       LogConfig{Level: "info", Environment: "development"},
		Report:    ReportConfig{Currency: "CAD", Locale: "en", User: "default", Cron: "0 6 * * *"},
		Valuation: ValuationConfig{Path: "$.value"},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "estate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "estate")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or the default one if path is empty.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %q: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// .env is optional and never overrides the environment.
	_ = godotenv.Load()
	applyEnv(&cfg)

	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Environment = strings.ToLower(cfg.Log.Environment)
	cfg.Report.Currency = strings.ToUpper(cfg.Report.Currency)
	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return cfg, fmt.Errorf("invalid database driver %q, want sqlite or postgres", cfg.Database.Driver)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for name, field := range map[string]*string{
		"ESTATE_DB_DRIVER":      &cfg.Database.Driver,
		"ESTATE_DB_DSN":         &cfg.Database.DSN,
		"ESTATE_LOG_LEVEL":      &cfg.Log.Level,
		"ESTATE_ENVIRONMENT":    &cfg.Log.Environment,
		"ESTATE_CURRENCY":       &cfg.Report.Currency,
		"ESTATE_LOCALE":         &cfg.Report.Locale,
		"ESTATE_USER":           &cfg.Report.User,
		"ESTATE_CRON":           &cfg.Report.Cron,
		"ESTATE_VALUATION_URL":  &cfg.Valuation.URL,
		"ESTATE_VALUATION_PATH": &cfg.Valuation.Path,
	} {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
