package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DataPath string
	Port     string
	LogLevel slog.Level
}

func FromEnv() Config {
	// local dev convenience; a missing .env is fine
	_ = godotenv.Load()

	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		DataPath: envOr("DATA_PATH", "data/onboarding.csv"),
		Port:     envOr("PORT", "8080"),
		LogLevel: lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
