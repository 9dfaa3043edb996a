package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
program_root: ./bots
programs:
  a: alpha
  b: beta
bytecode_limit: 6000
overage_threshold: 3
debug_methods: true
testing_terminate: false
seed: 12345
rounds: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./bots", cfg.ProgramRoot)
	assert.Equal(t, "alpha", cfg.Programs["a"])
	assert.Equal(t, "beta", cfg.Programs["b"])
	assert.Equal(t, 6000, cfg.BytecodeLimit)
	assert.Equal(t, 3, cfg.OverageThreshold)
	assert.True(t, cfg.DebugMethods)
	assert.False(t, cfg.TestingTerminate)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.Equal(t, 50, cfg.Rounds)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
programs:
  a: alpha
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.BytecodeLimit)
	assert.Equal(t, 5, cfg.OverageThreshold)
	assert.Equal(t, 100, cfg.Rounds)
	assert.False(t, cfg.DebugMethods)
	assert.False(t, cfg.TestingTerminate)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bytecode limit", func(c *Config) { c.BytecodeLimit = 0 }},
		{"negative overage threshold", func(c *Config) { c.OverageThreshold = -1 }},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"unknown team", func(c *Config) { c.Programs["zombie"] = "brains" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
