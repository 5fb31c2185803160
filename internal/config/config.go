package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the API process.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Global balance knob passed to every fight, 0-100.
	Lethality int `env:"LETHALITY" envDefault:"25"`
}

// Load reads configuration from the environment, with a best-effort .env
// file load first.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Lethality < 0 || cfg.Lethality > 100 {
		return Config{}, fmt.Errorf("LETHALITY %d out of range [0,100]", cfg.Lethality)
	}
	return cfg, nil
}
