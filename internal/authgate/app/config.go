package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSecretKey signs tokens when SECRET_KEY is unset. It is public, so
// any deployment relying on it accepts forged tokens; startup warns about it.
const DefaultSecretKey = "<<<!__Your_Secret_Key_123456789__?>>>"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port      int           `env:"PORT" envDefault:"3333"`                 // HTTP server port
	SecretKey string        `env:"SECRET_KEY"`                             // HS256 signing secret
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`              // Lifetime of issued tokens
	Driver    string        `env:"STORE_DRIVER" envDefault:"sqlite"`       // sqlite or postgres
	DBFile    string        `env:"AUTH_DATABASE_FILE" envDefault:"authgate.db"`
	DSN       string        `env:"DATABASE_DSN"` // Required when Driver is postgres

	Env       string `env:"ENV" envDefault:"dev"`         // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json or text

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	SeedDemoUsers       bool          `env:"SEED_DEMO_USERS" envDefault:"false"`
	SwaggerEnabled      bool          `env:"SWAGGER_ENABLED" envDefault:"true"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the application cannot start with.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Driver)
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL must not be negative")
	}
	return nil
}

// Secret returns the signing secret and whether the built-in fallback is used.
func (c *Config) Secret() ([]byte, bool) {
	if c.SecretKey == "" {
		return []byte(DefaultSecretKey), true
	}
	return []byte(c.SecretKey), false
}
