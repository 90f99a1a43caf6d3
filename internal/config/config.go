// Package config loads duelhall settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the process configuration
type Config struct {
	HTTPAddr string `env:"DUELHALL_HTTP_ADDR" envDefault:":3003"`

	Store         string `env:"DUELHALL_STORE" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	SQLitePath    string `env:"DUELHALL_SQLITE_PATH" envDefault:"duelhall.db"`

	CharacterServiceURL string `env:"CHARACTER_SERVICE_URL,required,notEmpty"`
	InternalToken       string `env:"INTERNAL_TOKEN,required,notEmpty"`
	JWTSecret           string `env:"JWT_SECRET,required,notEmpty"`

	DuelTimeout time.Duration `env:"DUEL_TIMEOUT" envDefault:"5m"`

	// Discord is optional; the bot only starts when a token is set
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	OTelEndpoint string `env:"DUELHALL_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files into the environment, then parses and
// validates the configuration. Variables already set are not overridden.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the env tags cannot express
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis store")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("DUELHALL_SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.DuelTimeout <= 0 {
		return fmt.Errorf("DUEL_TIMEOUT must be positive, got %s", c.DuelTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// DiscordEnabled reports whether the bot should start
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
