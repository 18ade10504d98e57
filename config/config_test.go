package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolate runs the test from an empty directory so no stray .env is read,
// and clears the variables Load consults.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{EnvConfig, EnvAPIURL, EnvTimeout, EnvMaxAttempts, EnvLogLevel, EnvLogFile, EnvCache} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5112/api" {
		t.Fatalf("unexpected base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Std() != 15*time.Second || cfg.API.MaxAttempts != 1 {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "busbilet.yaml")
	writeFile(t, path, `
api:
  base_url: https://bilet.example.com/api
  timeout: 5s
  max_attempts: 2
log:
  level: debug
cache:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "https://bilet.example.com/api" || cfg.API.Timeout.Std() != 5*time.Second || cfg.API.MaxAttempts != 2 {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Log.Level != "debug" || cfg.Cache.Enabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_JSONCFileFromEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "busbilet.jsonc")
	writeFile(t, path, `{
  // staging booking service
  "api": {"base_url": "https://staging.example.com/api", "timeout": "3s",},
}`)
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "https://staging.example.com/api" || cfg.API.Timeout.Std() != 3*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "busbilet.yaml")
	writeFile(t, path, "api:\n  base_url: https://file.example.com/api\n")
	t.Setenv(EnvAPIURL, "https://env.example.com/api")
	t.Setenv(EnvMaxAttempts, "3")
	t.Setenv(EnvCache, "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com/api" {
		t.Fatalf("expected env override, got %s", cfg.API.BaseURL)
	}
	if cfg.API.MaxAttempts != 3 || cfg.Cache.Enabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "BUSBILET_LOG_LEVEL=debug\nBUSBILET_API_URL=https://dotenv.example.com/api\n")
	t.Setenv(EnvAPIURL, "https://shell.example.com/api")
	// isolate leaves the key set but empty, which godotenv treats as present.
	if err := os.Unsetenv(EnvLogLevel); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "https://shell.example.com/api" {
		t.Fatalf("expected shell value to win, got %s", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected .env log level, got %s", cfg.Log.Level)
	}
	_ = os.Unsetenv(EnvLogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	t.Setenv(EnvAPIURL, "localhost:5112")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for url without scheme")
	}

	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid timeout")
	}

	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "loud")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestFlags_Override(t *testing.T) {
	isolate(t)

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bind(fs)
	if err := fs.Parse([]string{"--api-url", "https://flag.example.com/api", "--log-level", "warn"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := flags.Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.API.BaseURL != "https://flag.example.com/api" || cfg.Log.Level != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
