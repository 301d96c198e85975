package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "https://pokeapi.co", cfg.PokeAPIBaseURL)
	assert.Equal(t, time.Second*10, cfg.PokeAPITimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POKEQUIZ_PORT", "9000")
	t.Setenv("POKEQUIZ_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("POKEQUIZ_DEBUG", "true")

	cfg := Load()

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Debug)
}
