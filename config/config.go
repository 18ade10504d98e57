// Package config loads busbilet settings.
//
// Values are layered, later layers winning:
//   - built-in defaults
//   - the config file named by --config or BUSBILET_CONFIG (YAML, or JSON
//     with comments when the extension is .json/.jsonc)
//   - a .env file in the working directory, which never overrides variables
//     already set in the environment
//   - BUSBILET_* environment variables
//   - command-line flags, applied by the caller
//
// A missing file named explicitly is an error; a missing .env is not.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig      = "BUSBILET_CONFIG"
	EnvAPIURL      = "BUSBILET_API_URL"
	EnvTimeout     = "BUSBILET_HTTP_TIMEOUT"
	EnvMaxAttempts = "BUSBILET_MAX_ATTEMPTS"
	EnvLogLevel    = "BUSBILET_LOG_LEVEL"
	EnvLogFile     = "BUSBILET_LOG_FILE"
	EnvCache       = "BUSBILET_CACHE"
)

type Config struct {
	API   APIConfig   `yaml:"api" json:"api"`
	Log   LogConfig   `yaml:"log" json:"log"`
	Cache CacheConfig `yaml:"cache" json:"cache"`
}

// APIConfig locates the booking service.
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:5112/api.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each HTTP request.
	// Default: 15s
	Timeout Duration `yaml:"timeout" json:"timeout"`

	// MaxAttempts for idempotent lookups. Purchases are always sent once.
	// Default: 1
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// File receives the interactive UI's log. Empty selects the user cache dir.
	File string `yaml:"file" json:"file"`
}

type CacheConfig struct {
	// Enabled keeps the station list on disk between runs.
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Duration decodes "15s"-style strings from YAML and JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration must be a string like \"15s\": %w", err)
	}
	return d.parse(raw)
}

func (d *Duration) parse(raw string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:5112/api",
			Timeout:     Duration(15 * time.Second),
			MaxAttempts: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// BUSBILET_CONFIG is consulted and, when that is unset too, no file is read.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		if err := c.API.Timeout.parse(v); err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxAttempts)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid int %q", EnvMaxAttempts, v)
		}
		c.API.MaxAttempts = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCache)); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid bool %q", EnvCache, v)
		}
		c.Cache.Enabled = enabled
	}
	return nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return errors.New("api.base_url is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", base)
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api.max_attempts must be at least 1, got %d", c.API.MaxAttempts)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
