package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration, read from the environment.
type Config struct {
	Port        string
	SupabaseURL string
	SupabaseKey string
	// DatabaseURL selects the Postgres-backed store when set; otherwise the
	// seeded in-memory store is used.
	DatabaseURL string
	JWTSecret   string
	// RejectSiblingsOnAccept rejects a job's other pending applications when
	// one is accepted.
	RejectSiblingsOnAccept bool
	LogLevel               string
}

// Load builds a Config from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:                   envOr("PORT", "8080"),
		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseKey:            os.Getenv("SUPABASE_KEY"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		RejectSiblingsOnAccept: os.Getenv("REJECT_SIBLINGS_ON_ACCEPT") == "true",
		LogLevel:               envOr("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration is usable. Supabase credentials are
// optional: without them every read is served from the local store.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if (c.SupabaseURL == "") != (c.SupabaseKey == "") {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set together")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
