package app

import (
	"fmt"
	"os"

	coreconfig "github.com/m3rciful/leadbot/core/config"
	coredatabase "github.com/m3rciful/leadbot/core/database"
	"github.com/m3rciful/leadbot/funnel"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config aggregates core bot settings with the application-specific sections.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Funnel   funnel.Links        `yaml:"funnel"`
}

// Load reads YAML configuration, applies environment overrides, and
// validates the result. Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		// Missing file is fine: everything can come from the environment.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := coredatabase.Normalize(&cfg.Database); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Funnel.Normalize()

	return cfg, nil
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}
