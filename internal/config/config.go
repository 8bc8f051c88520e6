package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	// FrontendAPIToken is the shared secret expected in X-API-TOKEN.
	// Leaving it empty locks the API.
	FrontendAPIToken string `env:"FRONTEND_API_TOKEN"`

	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DATABASE_"`
	Postgres Postgres `envPrefix:"POSTGRES_"`
	Logger   Logger   `envPrefix:"LOGGER_"`
}

type HTTP struct {
	Address           string        `env:"ADDRESS,expand" envDefault:":3000"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	MetricsEnabled    bool          `env:"METRICS_ENABLED" envDefault:"false"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// DSN takes precedence over the POSTGRES_* variables.
	DSN string `env:"DSN,expand"`
}

type Postgres struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DB       string `env:"DB"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type Logger struct {
	Level  slog.Level `env:"LEVEL" envDefault:"info"`
	Format string     `env:"FORMAT" envDefault:"text"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return errors.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Logger.Format {
	case "text", "json":
	default:
		return errors.Errorf("unsupported logger format %q", c.Logger.Format)
	}

	if _, err := c.DSN(); err != nil {
		return err
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() (string, error) {
	if c.Database.DSN != "" {
		return c.Database.DSN, nil
	}
	if c.Database.Driver != "postgres" {
		return "", errors.Errorf("DATABASE_DSN must be set for driver %q", c.Database.Driver)
	}

	pg := c.Postgres
	if pg.User == "" || pg.DB == "" {
		return "", errors.New("either DATABASE_DSN or POSTGRES_USER and POSTGRES_DB must be set")
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		pg.Host, pg.User, pg.Password, pg.DB, pg.Port, pg.SSLMode), nil
}
