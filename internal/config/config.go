package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	BcryptCost        int
	SessionTTLMinutes int
	LeaderboardLimit  int
	HistoryLimit      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:quizhub.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		BcryptCost:        envIntOr("BCRYPT_COST", 10),
		SessionTTLMinutes: envIntOr("SESSION_TTL_MINUTES", 720),
		LeaderboardLimit:  envIntOr("LEADERBOARD_LIMIT", 50),
		HistoryLimit:      envIntOr("HISTORY_LIMIT", 20),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
