package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	FaceitAPIKey  string
	SteamAPIKey   string
	FaceitBaseURL string
	SteamBaseURL  string
	DBPath        string
	LogLevel      string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		FaceitAPIKey:  getEnv("FACEIT_API_KEY", ""),
		SteamAPIKey:   getEnv("STEAM_API_KEY", ""),
		FaceitBaseURL: getEnv("FACEIT_BASE_URL", "https://open.faceit.com/data/v4"),
		SteamBaseURL:  getEnv("STEAM_BASE_URL", "https://api.steampowered.com"),
		DBPath:        getEnv("DB_PATH", "scout.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.FaceitAPIKey == "" {
		return nil, fmt.Errorf("FACEIT_API_KEY is required")
	}
	if cfg.SteamAPIKey == "" {
		logger.Warn().Msg("STEAM_API_KEY not set, playtime lookups will report zero hours")
	}

	logger.Info().
		Str("faceit_base_url", cfg.FaceitBaseURL).
		Str("steam_base_url", cfg.SteamBaseURL).
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
