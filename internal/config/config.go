// Package config resolves the server's runtime configuration from the
// environment. MCP servers are launched by a host process (Claude
// Desktop, an editor, a CLI agent), so environment variables are the
// only practical configuration channel — there are no flags to pass.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration.
type Config struct {
	// DataDir holds the SQLite database. Defaults to ~/.prepready.
	DataDir string `env:"PREPREADY_DATA_DIR"`
	// FrameworkDir optionally holds extra framework YAML files loaded
	// at startup alongside the shipped catalog.
	FrameworkDir string `env:"PREPREADY_FRAMEWORK_DIR"`
	// DefaultOrg is the organization used when a tool call doesn't
	// name one. A single-site operator never has to pass it.
	DefaultOrg string `env:"PREPREADY_ORG" envDefault:"default"`
	// DefaultFramework is the scheme audits run against when a tool
	// call doesn't name one.
	DefaultFramework string `env:"PREPREADY_FRAMEWORK" envDefault:"eatsafe"`
}

// Load parses the environment and fills in path defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolving home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".prepready")
	}
	return cfg, nil
}
