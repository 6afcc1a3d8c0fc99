package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	Game  GameConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=airport_tycoon"`
	// Transactions requires a replica set; disable against a standalone mongod.
	Transactions bool `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GameConfig tunes the background schedulers.
type GameConfig struct {
	// SweepInterval is how often expired parking spots are reclaimed.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL,   default=1h"`
	// ArrivalInterval is how often due flight arrivals are settled.
	ArrivalInterval time.Duration `env:"ARRIVAL_INTERVAL, default=1m"`
	// SweepWorkers is the number of concurrent sweep workers; airports are
	// hashed onto workers so each airport is always swept by the same one.
	SweepWorkers int `env:"SWEEP_WORKERS,    default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
