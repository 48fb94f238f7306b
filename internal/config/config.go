package config

import (
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             string
	CORSOrigin       string
	MigrationsDir    string
	GenerateInterval time.Duration
	LoginKickDelay   time.Duration
}

func Load() Config {
	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             os.Getenv("PORT"),
		CORSOrigin:       os.Getenv("CORS_ORIGIN"),
		MigrationsDir:    os.Getenv("MIGRATIONS_DIR"),
		GenerateInterval: parseHours(os.Getenv("GENERATE_INTERVAL_HOURS")),
		LoginKickDelay:   2 * time.Second,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.GenerateInterval == 0 {
		cfg.GenerateInterval = time.Hour
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	return cfg
}

func parseHours(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw + "h")
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
