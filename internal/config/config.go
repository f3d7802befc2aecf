// Package config loads the MIONJO runtime configuration from the environment
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting shared by the MIONJO binaries
type Config struct {
	DBPath   string `env:"MIONJO_DB_PATH" envDefault:"data/mionjo.db"`
	DBDriver string `env:"MIONJO_DB_DRIVER" envDefault:"sqlite3"`
	HTTPAddr string `env:"MIONJO_HTTP_ADDR" envDefault:":8080"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`

	RegisterURL         string `env:"MIONJO_REGISTER_URL"`
	PredictionsSchedule string `env:"MIONJO_PREDICTIONS_SCHEDULE" envDefault:"0 6 * * *"`
	SyncSchedule        string `env:"MIONJO_SYNC_SCHEDULE" envDefault:"30 6 * * 1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file and parses the environment into a Config
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
		log.Println("Loaded environment from .env")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
