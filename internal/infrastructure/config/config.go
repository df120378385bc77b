package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// Lifetimes are configured in milliseconds.
	ExpirationMs        int64 `env:"JWT_EXPIRATION,         default=86400000"`
	RefreshExpirationMs int64 `env:"JWT_REFRESH_EXPIRATION, default=604800000"`
}

// AccessTTL returns the access-token lifetime as a duration.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.ExpirationMs) * time.Millisecond
}

// RefreshTTL returns the refresh-token lifetime as a duration.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshExpirationMs) * time.Millisecond
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=event_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
