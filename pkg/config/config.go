// Package config handles configuration for flutter-driver.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Encoding
	DefaultTimeoutMs int  `yaml:"defaultTimeoutMs"` // Applied to commands without a timeout (0 = none)
	Pretty           bool `yaml:"pretty"`           // Indent JSON output

	// Logging
	LogFile string `yaml:"logFile"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultTimeout returns DefaultTimeoutMs as a duration.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutMs) * time.Millisecond
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.DefaultTimeoutMs < 0 {
		return core.ErrInvalidConfig.WithMessagef("defaultTimeoutMs must not be negative, got %d", c.DefaultTimeoutMs)
	}
	return nil
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, core.ErrInvalidConfig.WithMessagef("%s: invalid config", path).WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	if path := findInDir(dir); path != "" {
		return Load(path)
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// Resolve loads path when given, otherwise the first config found in the
// working directory or the home directory.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	for _, dir := range []string{".", GetHome()} {
		if found := findInDir(dir); found != "" {
			return Load(found)
		}
	}
	return &Config{}, nil
}

func findInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
