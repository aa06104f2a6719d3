package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"loud", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
	assert.False(t, ValidLevel("loud"))
	assert.False(t, ValidLevel(""))
	assert.True(t, ValidLevel("disabled"))
	assert.True(t, ValidLevel("off"))
	assert.True(t, ValidLevel("panic"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Out: &buf})

	log.Info().Msg("hidden")
	log.Warn().Str("run_id", "abc").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"run_id":"abc"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Pretty: true, Out: &buf})

	log.Info().Int("qubits", 2).Msg("ready")

	out := buf.String()
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "qubits=2")
	assert.NotContains(t, out, "{")
}
