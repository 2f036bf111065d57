package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// config is read from the environment (and .env, via godotenv).
type config struct {
	Port            string
	LogLevel        string
	SongsFile       string // empty uses the embedded catalog
	Backend         string // "json" or "sqlite"
	LeaderboardFile string
	DBPath          string
	SessionSecret   string
	SessionTTL      time.Duration
	DailySalt       string
	ClientOrigin    string
	Production      bool
}

func loadConfig() (config, error) {
	c := config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SongsFile:       os.Getenv("SONGS_FILE"),
		Backend:         getEnv("LEADERBOARD_BACKEND", "json"),
		LeaderboardFile: getEnv("LEADERBOARD_FILE", "./data/leaderboard.json"),
		DBPath:          getEnv("DB_PATH", "./data/app.db"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      time.Duration(envInt("SESSION_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		DailySalt:       getEnv("DAILY_SALT", "lyrics-daily"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:      os.Getenv("NODE_ENV") == "production",
	}
	switch c.Backend {
	case "json", "sqlite":
	default:
		return c, fmt.Errorf("LEADERBOARD_BACKEND must be json or sqlite, got %q", c.Backend)
	}
	if c.Production && c.SessionSecret == "" {
		return c, fmt.Errorf("SESSION_SECRET is required in production")
	}
	return c, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}
