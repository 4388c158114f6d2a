package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"taskpal"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"taskpal"`
	DBName     string `env:"DB_NAME" envDefault:"taskpal"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"default-secret-key-change-me"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASSWORD"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	Port    string `env:"PORT" envDefault:"8080"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
