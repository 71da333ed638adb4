package server

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the HTTP server settings, loaded from SCREENTIME_* variables.
type Config struct {
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8080"`
	DBPath      string `envconfig:"DB_PATH"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins string `envconfig:"CORS_ORIGINS"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("screentime", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
