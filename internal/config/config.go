package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
)

type rawConfig struct {
	Server *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database *struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Logging *struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	// Durations use Go syntax, e.g. "10m" or "800ms".
	InactivityTimeout string `yaml:"inactivity_timeout"`
	Solo              *struct {
		AIDelay string `yaml:"ai_delay"`
	} `yaml:"solo"`
	// Remote points networked rooms at another server's relay. Empty serves
	// rooms from this process.
	Remote *struct {
		RelayURL string `yaml:"relay_url"`
	} `yaml:"remote"`
	// Rules overrides individual engine rules; omitted keys keep defaults.
	Rules *engine.Rules `yaml:"rules"`
}

// LoadedConfig is the validated configuration of the server.
type LoadedConfig struct {
	ServerAddress     string
	DatabasePath      string
	LogLevel          string
	LogPretty         bool
	InactivityTimeout time.Duration
	AIDelay           time.Duration
	RelayURL          string
	Rules             engine.Rules
}

// Default returns the configuration used when no file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:     constants.DefaultAddr,
		DatabasePath:      constants.DefaultDBPath,
		LogLevel:          "info",
		InactivityTimeout: 30 * time.Minute,
		AIDelay:           800 * time.Millisecond,
		Rules:             engine.DefaultRules(),
	}
}

// LoadConfig reads the YAML file at path on top of Default.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(b, path)
}

// Parse decodes a YAML document; name only decorates error messages.
func Parse(b []byte, name string) (*LoadedConfig, error) {
	cfg := Default()
	rc := rawConfig{Rules: &cfg.Rules}
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", name, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Logging != nil {
		if lvl := strings.TrimSpace(rc.Logging.Level); lvl != "" {
			cfg.LogLevel = lvl
		}
		cfg.LogPretty = rc.Logging.Pretty
	}
	if rc.InactivityTimeout != "" {
		d, err := time.ParseDuration(rc.InactivityTimeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config file %s: invalid inactivity_timeout %q", name, rc.InactivityTimeout)
		}
		cfg.InactivityTimeout = d
	}
	if rc.Solo != nil && rc.Solo.AIDelay != "" {
		d, err := time.ParseDuration(rc.Solo.AIDelay)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("config file %s: invalid solo.ai_delay %q", name, rc.Solo.AIDelay)
		}
		cfg.AIDelay = d
	}
	if rc.Remote != nil {
		cfg.RelayURL = strings.TrimSpace(rc.Remote.RelayURL)
	}
	if rc.Rules != nil && rc.Rules != &cfg.Rules {
		cfg.Rules = *rc.Rules
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", name, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by NEIGHBOR_WARS_CONFIG (or the default
// path) when it exists, then applies NEIGHBOR_WARS_DB and
// NEIGHBOR_WARS_ADDR overrides.
func FromEnv() (*LoadedConfig, error) {
	path := os.Getenv(constants.EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigPath
	}
	cfg := Default()
	if _, err := os.Stat(path); err == nil || explicit {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(constants.EnvAddr); v != "" {
		cfg.ServerAddress = v
	}
	return cfg, nil
}
