package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	AllowedOrigins []string
	Debug          bool
	PokeAPIBaseURL string
	PokeAPITimeout time.Duration
}

// Load reads configuration from the environment. Every key can be set
// with a POKEQUIZ_ prefix, e.g. POKEQUIZ_PORT, POKEQUIZ_ALLOWED_ORIGINS.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("POKEQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 3001)
	v.SetDefault("allowed-origins", "*")
	v.SetDefault("debug", false)
	v.SetDefault("pokeapi-url", "https://pokeapi.co")
	v.SetDefault("pokeapi-timeout", "10s")

	return Config{
		Port:           v.GetInt("port"),
		AllowedOrigins: splitOrigins(v.GetString("allowed-origins")),
		Debug:          v.GetBool("debug"),
		PokeAPIBaseURL: v.GetString("pokeapi-url"),
		PokeAPITimeout: v.GetDuration("pokeapi-timeout"),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
