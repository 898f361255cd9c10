package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	RabbitURL       string
	RedisAddr       string
	RateLimitPerMin int
	SweepIntervalMS int
	StaleAfterMS    int
	Env             string
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "5000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "batepapo"),
		RabbitURL:       getenv("RABBIT_URL", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "60")),
		SweepIntervalMS: atoi(getenv("SWEEP_INTERVAL_MS", "15000")),
		StaleAfterMS:    atoi(getenv("STALE_AFTER_MS", "10000")),
		Env:             getenv("APP_ENV", "dev"),
	}
}

func (c Config) Prod() bool { return c.Env == "prod" }

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
