package config

import (
	"os"
	"strings"
)

// Config carries the process-level knobs; everything else lives in
// per-room settings.
type Config struct {
	Port           string
	AllowedOrigins []string
	GinMode        string
	Debug          bool
}

// Load reads configuration from the environment, defaulting to a local
// development setup.
func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "5000"),
		GinMode:        getenv("GIN_MODE", "debug"),
		AllowedOrigins: []string{"http://localhost:5173"},
		Debug:          os.Getenv("DEBUG") == "true",
	}
	if origins, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
