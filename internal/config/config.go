package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the server reads from the environment. A .env
// file in the working directory is honored when present.
type Config struct {
	Addr        string
	DatabaseURL string
	// StrategySeed fixes bot randomness across restarts; 0 keeps it
	// seeded from the clock.
	StrategySeed int64
	TickInterval time.Duration
	Development  bool
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         getenv("ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		TickInterval: time.Second,
		Development:  os.Getenv("ENV") == "development",
	}

	if v := os.Getenv("STRATEGY_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.StrategySeed = seed
		}
	}
	if v := os.Getenv("TICK_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
