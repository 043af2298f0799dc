package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DataSourceJSON   = "json"
	DataSourceSQLite = "sqlite"
)

type Config struct {
	Server struct {
		Host string `env:"HOST" envDefault:"0.0.0.0"`
		Port int    `env:"PORT" envDefault:"8000"`

		// Gin engine mode: debug, release or test
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Time allowed for in-flight requests to finish on shutdown
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Data struct {
		// Where the snapshot is loaded from: json or sqlite
		Source string `env:"DATA_SOURCE" envDefault:"json"`

		Dir          string `env:"DATA_DIR" envDefault:"data"`
		MarketFile   string `env:"MARKET_DATA_FILE" envDefault:"market_data.json"`
		PropertyFile string `env:"PROPERTY_DATA_FILE" envDefault:"property_data.json"`
		SQLitePath   string `env:"SQLITE_PATH" envDefault:"data/cre.db"`
	}

	Cache struct {
		// Number of market overview responses kept in memory
		OverviewSize int `env:"OVERVIEW_CACHE_SIZE" envDefault:"128"`
	}

	CORS struct {
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Data.Source {
	case DataSourceJSON, DataSourceSQLite:
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q: use %s or %s", c.Data.Source, DataSourceJSON, DataSourceSQLite)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	if c.Cache.OverviewSize <= 0 {
		return fmt.Errorf("OVERVIEW_CACHE_SIZE must be positive, got %d", c.Cache.OverviewSize)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) MarketDataPath() string {
	return filepath.Join(c.Data.Dir, c.Data.MarketFile)
}

func (c *Config) PropertyDataPath() string {
	return filepath.Join(c.Data.Dir, c.Data.PropertyFile)
}

// NewLogger builds the process logger from the Log settings.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(c.Log.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
