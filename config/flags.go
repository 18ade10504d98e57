package config

import "github.com/spf13/pflag"

// Flags are the command-line overrides shared by every command.
type Flags struct {
	ConfigPath string
	APIURL     string
	LogLevel   string
}

func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "path to a YAML or JSONC config file (default $"+EnvConfig+")")
	fs.StringVar(&f.APIURL, "api-url", "", "booking API base URL (default $"+EnvAPIURL+" or http://localhost:5112/api)")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Load reads the configuration and applies the flags on top of it.
func (f Flags) Load() (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.APIURL != "" {
		cfg.API.BaseURL = f.APIURL
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
