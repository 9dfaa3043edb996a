// Package config loads match configuration. The two boolean gates here are
// the only configuration the sandbox itself consumes; everything else
// parameterizes the harness around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config describes one match.
type Config struct {
	// ProgramRoot is the directory agent program sources are loaded from,
	// one <identity>.js per program.
	ProgramRoot string `yaml:"program_root"`
	// Programs maps a team name ("a" or "b") to its program identity.
	Programs map[string]string `yaml:"programs"`

	BytecodeLimit    int `yaml:"bytecode_limit"`
	OverageThreshold int `yaml:"overage_threshold"`

	// DebugMethods enables the developer-only action surface for agent
	// programs.
	DebugMethods bool `yaml:"debug_methods"`
	// TestingTerminate forces every agent program to terminate at its
	// first yield point. Deterministic shutdown-path testing aid.
	TestingTerminate bool `yaml:"testing_terminate"`

	Seed   int64 `yaml:"seed"`
	Rounds int   `yaml:"rounds"`
}

// Default returns a config with sane match parameters and both gates off.
func Default() *Config {
	return &Config{
		ProgramRoot:      "programs",
		Programs:         map[string]string{},
		BytecodeLimit:    10000,
		OverageThreshold: 5,
		Rounds:           100,
	}
}

// Load reads and validates a match config file. Unset numeric fields take
// their defaults.
func Load(path string) (*Config, error) {
	clean := filepath.Clean(path)
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("invalid config path %q", path)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", clean, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", clean, err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations the engine cannot honor.
func (c *Config) Validate() error {
	if c.BytecodeLimit <= 0 {
		return fmt.Errorf("bytecode_limit must be positive, got %d", c.BytecodeLimit)
	}
	if c.OverageThreshold <= 0 {
		return fmt.Errorf("overage_threshold must be positive, got %d", c.OverageThreshold)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	for team := range c.Programs {
		if team != "a" && team != "b" {
			return fmt.Errorf("unknown team %q in programs (want \"a\" or \"b\")", team)
		}
	}
	return nil
}
