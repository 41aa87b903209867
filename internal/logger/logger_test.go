package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
}

func TestNew_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "inventory", Output: &buf})

	log.Info().Msg("started")

	assert.Contains(t, buf.String(), `"service":"inventory"`)
	assert.Contains(t, buf.String(), `"message":"started"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "inventory", Level: "error", Output: &buf})

	log.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}
