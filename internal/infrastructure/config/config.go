package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,           default=8080"`
	Env          string `env:"ENV,            default=development"`
	JWTSecret    string `env:"JWT_SECRET"`
	LogLevel     string `env:"LOG_LEVEL,      default=info"`
	IngestAPIKey string `env:"INGEST_API_KEY"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Paystack PaystackConfig
	Sweep    SweepConfig
	Alerts   AlertsConfig
	SMTP     SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=linkroom"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type PaystackConfig struct {
	SecretKey string `env:"PAYSTACK_SECRET_KEY"`
	BaseURL   string `env:"PAYSTACK_BASE_URL, default=https://api.paystack.co"`
}

type SweepConfig struct {
	Interval      time.Duration `env:"SWEEP_INTERVAL,       default=24h"`
	RetentionDays int           `env:"JOB_RETENTION_DAYS,   default=45"`
}

type AlertsConfig struct {
	Interval time.Duration `env:"ALERTS_INTERVAL, default=1h"`
	Workers  int           `env:"ALERTS_WORKERS,  default=4"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
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
