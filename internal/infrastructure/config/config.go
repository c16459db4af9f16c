package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	APIKey    string        `env:"API_KEY"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shopkeeper"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig tunes the sensitive-operation sliding window. Store selects
// the backing implementation: "redis" shares the window across processes,
// "memory" keeps it process-local.
type RateLimitConfig struct {
	Store     string        `env:"RATE_LIMIT_STORE,     default=redis"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW,    default=5m"`
	Threshold int           `env:"RATE_LIMIT_THRESHOLD, default=3"`
}

// LockoutConfig tunes the failed-login account lock.
type LockoutConfig struct {
	MaxFailures int           `env:"LOCKOUT_MAX_FAILURES, default=5"`
	Duration    time.Duration `env:"LOCKOUT_DURATION,     default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
