package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port            string        `env:"PORT" env-default:"8080"`
	GinMode         string        `env:"GIN_MODE" env-default:"release"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	FrontendURL     string        `env:"FRONTEND_URL" env-default:"http://localhost:5173"`
	ExtraOrigins    []string      `env:"ALLOWED_ORIGINS" env-separator:","`
	Board           Board
	SessionIdle     time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" env-default:"10m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Board bounds what clients may ask for when creating or resizing a game
type Board struct {
	DefaultHeight int `env:"DEFAULT_BOARD_HEIGHT" env-default:"6"`
	DefaultWidth  int `env:"DEFAULT_BOARD_WIDTH" env-default:"7"`
	MaxHeight     int `env:"MAX_BOARD_HEIGHT" env-default:"20"`
	MaxWidth      int `env:"MAX_BOARD_WIDTH" env-default:"20"`
}

// LoadConfig reads the environment. A .env file, if any, is expected to
// have been loaded into it already.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	b := c.Board
	if b.DefaultHeight <= 0 || b.DefaultWidth <= 0 {
		return fmt.Errorf("default board must be positive, got %dx%d", b.DefaultHeight, b.DefaultWidth)
	}
	if b.DefaultHeight > b.MaxHeight || b.DefaultWidth > b.MaxWidth {
		return fmt.Errorf("default board %dx%d exceeds max %dx%d",
			b.DefaultHeight, b.DefaultWidth, b.MaxHeight, b.MaxWidth)
	}
	if c.SessionIdle <= 0 || c.CleanupInterval <= 0 {
		return fmt.Errorf("session idle timeout and cleanup interval must be positive")
	}
	return nil
}

// AllowedOrigins is the frontend URL, local development and any extra CSV values
func (c *Config) AllowedOrigins() []string {
	origins := []string{c.FrontendURL, "http://localhost:5173"}
	for _, origin := range c.ExtraOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
