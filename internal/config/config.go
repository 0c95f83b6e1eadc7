// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/app.db"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"wordle_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment    string `env:"NODE_ENV"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiresDays <= 0 {
		cfg.JWTExpiresDays = 14
	}
	return cfg, nil
}

// Production reports whether cookies should be Secure / SameSite=None.
func (c Config) Production() bool { return c.Environment == "production" }

// TokenTTL is the lifetime of issued auth tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
