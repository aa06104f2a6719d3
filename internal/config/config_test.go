package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"QSIM_LOG_LEVEL", "QSIM_LOG_PRETTY", "QSIM_MAX_QUBITS", "QSIM_PRECISION", "QSIM_WORKERS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 20, cfg.MaxQubits)
	assert.Equal(t, 4, cfg.Precision)
	assert.Positive(t, cfg.Workers)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QSIM_LOG_LEVEL", "debug")
	t.Setenv("QSIM_LOG_PRETTY", "false")
	t.Setenv("QSIM_MAX_QUBITS", "12")
	t.Setenv("QSIM_PRECISION", "6")
	t.Setenv("QSIM_WORKERS", "3")

	cfg := FromEnv()

	assert.Equal(t, &Config{LogLevel: "debug", MaxQubits: 12, Precision: 6, Workers: 3}, cfg)
	assert.Equal(t, "debug", cfg.Logging().Level)
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("QSIM_MAX_QUBITS", "many")
	t.Setenv("QSIM_LOG_PRETTY", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 20, cfg.MaxQubits)
	assert.True(t, cfg.LogPretty)
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", MaxQubits: 10, Precision: 4, Workers: 1}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
		{"zero qubits", func(c *Config) { c.MaxQubits = 0 }},
		{"above hard cap", func(c *Config) { c.MaxQubits = 25 }},
		{"negative precision", func(c *Config) { c.Precision = -1 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
	}

	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
