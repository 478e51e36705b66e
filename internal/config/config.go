package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the process-wide configuration, resolved once at startup and
// passed explicitly into every constructor.
type Config struct {
	Port        string `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevelRaw string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// Kafka is optional; with no brokers configured, domain events are
	// dropped instead of published.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"portal.events"`

	// Bootstrap admin. Seeded at startup when both are set and the email is
	// not yet registered.
	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD"`
}

// LoadConfig reads .env (if present) and resolves the configuration from the
// environment.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments configure the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// LogLevel maps the configured level name onto slog's levels, defaulting to
// info for anything unrecognized.
func (c *Config) LogLevel() slog.Level {
	switch c.LogLevelRaw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
