package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	DataPath         string        `env:"DATA_PATH" envDefault:"data/entities.json"`
	DataURL          string        `env:"DATA_URL"`
	ShareBaseURL     string        `env:"SHARE_BASE_URL" envDefault:"http://localhost:8080/team"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment   bool          `env:"LOG_DEVELOPMENT"`
	RevalidateSecret string        `env:"REVALIDATE_SECRET"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"12s"`
}

// Load reads the optional dotenv files and parses the environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
