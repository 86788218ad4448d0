package config

import (
	"os"
	"path/filepath"
	"strings"

	"limeade/pkg/client"
	"limeade/pkg/errors"
	"limeade/pkg/server"

	"gopkg.in/yaml.v3"
)

const (
	EnvAddr     = "LIMEADE_ADDR"
	EnvServer   = "LIMEADE_SERVER"
	EnvLogLevel = "LIMEADE_LOG_LEVEL"
	// EnvLogFilter is the log filter variable of earlier limeade releases,
	// e.g. "debug" or "limeade=debug". LIMEADE_LOG_LEVEL wins over it.
	EnvLogFilter = "LIMEADE"

	BackendSystem = "system"
	BackendMemory = "memory"
)

// Config holds the settings read from the config file and environment.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Client   ClientConfig `yaml:"client"`
	LogLevel string       `yaml:"log_level,omitempty"`
}

type ServerConfig struct {
	// Addr is the listen address of 'limeade server'.
	Addr string `yaml:"addr"`
	// Backend selects the clipboard: "system" or "memory".
	Backend string `yaml:"backend,omitempty"`
}

type ClientConfig struct {
	// Target is the server used by copy and paste.
	Target string `yaml:"target"`
}

// Load reads the config file, applies environment overrides and fills in
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "limeade", "config.yaml"), nil
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := &Config{}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewWithError(errors.ExitCodeConfig, "failed to read config file", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvServer); v != "" {
		cfg.Client.Target = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	} else if v := os.Getenv(EnvLogFilter); v != "" {
		cfg.LogLevel = filterLevel(v)
	}
}

// filterLevel extracts the level from a filter such as "warn" or
// "hyper=info,limeade=debug". The last directive wins.
func filterLevel(filter string) string {
	directives := strings.Split(filter, ",")
	last := strings.TrimSpace(directives[len(directives)-1])
	if i := strings.LastIndex(last, "="); i >= 0 {
		last = last[i+1:]
	}
	return strings.ToLower(last)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = server.DefaultAddr
	}
	if cfg.Server.Backend == "" {
		cfg.Server.Backend = BackendSystem
	}
	if cfg.Client.Target == "" {
		cfg.Client.Target = client.DefaultTarget
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Server.Backend {
	case BackendSystem, BackendMemory:
	default:
		return errors.ConfigError("unknown server backend " + cfg.Server.Backend + " (expected system or memory)")
	}
	return nil
}
