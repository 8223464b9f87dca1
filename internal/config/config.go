// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the resolved configuration. It is read once at startup and
// not revisited.
type Config struct {
	// API settings
	BaseURL string `json:"base_url" yaml:"base_url"`

	// OAuth settings
	GoogleClientID string `json:"google_client_id" yaml:"google_client_id"`

	// Request behavior
	TimeoutMs   int `json:"timeout_ms" yaml:"timeout_ms"`
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
	BaseDelayMs int `json:"base_delay_ms" yaml:"base_delay_ms"`

	// Request/response logging feature flags
	LogRequests  bool `json:"log_requests" yaml:"log_requests"`
	LogResponses bool `json:"log_responses" yaml:"log_responses"`

	// Default pet for meal/weight commands (overridable by --pet)
	PetID string `json:"pet_id" yaml:"pet_id"`

	// Output settings
	Format string `json:"format" yaml:"format"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-" yaml:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceDotenv  Source = "dotenv"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// FlagOverrides holds command-line flag values.
type FlagOverrides struct {
	BaseURL string
	Pet     string
	Format  string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:     "http://localhost:8000",
		TimeoutMs:   30000,
		MaxAttempts: 3,
		BaseDelayMs: 500,
		Format:      "json",
		Sources:     make(map[string]string),
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > .env > global file > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	loadFromFile(cfg, globalConfigPath())

	// A .env in the working directory populates the process environment
	// without overriding variables that are already set.
	if err := godotenv.Load(); err == nil {
		cfg.Sources["dotenv"] = string(SourceDotenv)
	}

	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", cfg.TimeoutMs)
	}
	if cfg.BaseDelayMs < 0 {
		return fmt.Errorf("base_delay_ms must not be negative, got %d", cfg.BaseDelayMs)
	}
	return nil
}

// loadFromFile merges a config file into cfg. Both JSON and YAML layouts are
// accepted; a missing file is skipped, a malformed one is reported and skipped.
func loadFromFile(cfg *Config, path string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return
	}

	merged := *cfg
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		err = yaml.Unmarshal(data, &merged)
	} else {
		err = json.Unmarshal(data, &merged)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return
	}

	markChanged(cfg, &merged, SourceGlobal)
	merged.Sources = cfg.Sources
	*cfg = merged
}

// markChanged records the source for every field the file layer changed.
func markChanged(old, merged *Config, source Source) {
	if merged.BaseURL != old.BaseURL {
		old.Sources["base_url"] = string(source)
	}
	if merged.GoogleClientID != old.GoogleClientID {
		old.Sources["google_client_id"] = string(source)
	}
	if merged.TimeoutMs != old.TimeoutMs {
		old.Sources["timeout_ms"] = string(source)
	}
	if merged.MaxAttempts != old.MaxAttempts {
		old.Sources["max_attempts"] = string(source)
	}
	if merged.BaseDelayMs != old.BaseDelayMs {
		old.Sources["base_delay_ms"] = string(source)
	}
	if merged.LogRequests != old.LogRequests {
		old.Sources["log_requests"] = string(source)
	}
	if merged.LogResponses != old.LogResponses {
		old.Sources["log_responses"] = string(source)
	}
	if merged.PetID != old.PetID {
		old.Sources["pet_id"] = string(source)
	}
	if merged.Format != old.Format {
		old.Sources["format"] = string(source)
	}
}

// LoadFromEnv loads configuration from PETCARE_* environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("PETCARE_BASE_URL"); v != "" {
		cfg.BaseURL = v
		cfg.Sources["base_url"] = string(SourceEnv)
	}
	if v := os.Getenv("PETCARE_GOOGLE_CLIENT_ID"); v != "" {
		cfg.GoogleClientID = v
		cfg.Sources["google_client_id"] = string(SourceEnv)
	}
	if v := os.Getenv("PETCARE_PET_ID"); v != "" {
		cfg.PetID = v
		cfg.Sources["pet_id"] = string(SourceEnv)
	}
	if v := os.Getenv("PETCARE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutMs = n
			cfg.Sources["timeout_ms"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("PETCARE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxAttempts = n
			cfg.Sources["max_attempts"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("PETCARE_BASE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BaseDelayMs = n
			cfg.Sources["base_delay_ms"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("PETCARE_LOG_REQUESTS"); v != "" {
		if b, ok := parseEnvBool(v); ok {
			cfg.LogRequests = b
			cfg.Sources["log_requests"] = string(SourceEnv)
		}
	}
	if v := os.Getenv("PETCARE_LOG_RESPONSES"); v != "" {
		if b, ok := parseEnvBool(v); ok {
			cfg.LogResponses = b
			cfg.Sources["log_responses"] = string(SourceEnv)
		}
	}
}

// parseEnvBool parses a boolean environment variable strictly.
// Returns (value, true) for recognized values, (false, false) for unrecognized.
func parseEnvBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
		cfg.Sources["base_url"] = string(SourceFlag)
	}
	if o.Pet != "" {
		cfg.PetID = o.Pet
		cfg.Sources["pet_id"] = string(SourceFlag)
	}
	if o.Format != "" {
		cfg.Format = o.Format
		cfg.Sources["format"] = string(SourceFlag)
	}
}

// LoadGlobalFile returns defaults merged with only the global config file,
// ignoring env vars and flags. Used by `config set` so a persisted edit
// does not bake in ephemeral overrides.
func LoadGlobalFile() *Config {
	cfg := Default()
	loadFromFile(cfg, globalConfigPath())
	return cfg
}

// Save writes the persistable fields back to the global config file as JSON.
func Save(cfg *Config) error {
	dir := GlobalConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

// globalConfigPath returns the first existing global config file,
// preferring JSON over YAML.
func globalConfigPath() string {
	dir := GlobalConfigDir()
	for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GlobalConfigDir returns the global config directory path.
func GlobalConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "petcare")
}

// NormalizeBaseURL ensures consistent URL format (no trailing slash).
func NormalizeBaseURL(url string) string {
	return strings.TrimSuffix(url, "/")
}
