package config

import (
	"fmt"
	"time"

	"github.com/quickeats/quickeats/pkg/config"
	"github.com/quickeats/quickeats/pkg/database"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"quickeats"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DB struct {
		Host     string `env:"DB_HOST" envDefault:"localhost"`
		Port     int    `env:"DB_PORT" envDefault:"5432"`
		User     string `env:"DB_USER" envDefault:"quickeats"`
		Password string `env:"DB_PASSWORD,required"`
		Name     string `env:"DB_NAME" envDefault:"quickeats"`
		SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
		MaxConns int    `env:"DB_MAX_CONNS" envDefault:"10"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	}

	Cart struct {
		TTL time.Duration `env:"CART_TTL" envDefault:"24h"`
	}

	Geocode struct {
		BaseURL     string        `env:"GEOCODE_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
		Timeout     time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`
		MinInterval time.Duration `env:"GEOCODE_MIN_INTERVAL" envDefault:"1s"`
		UserAgent   string        `env:"GEOCODE_USER_AGENT" envDefault:"quickeats/1.0"`
	}
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP_PORT %d", cfg.HTTPPort)
	}
	return &cfg, nil
}

// PostgresConfig adapts the DB section for the shared pool constructor.
func (c *Config) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		DBName:   c.DB.Name,
		SSLMode:  c.DB.SSLMode,
		MaxConns: int32(c.DB.MaxConns),
		MinConns: 1,
	}
}

// RedisConfig adapts the Redis section for the shared client constructor.
func (c *Config) RedisConfig() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.Redis.Host,
		Port:     c.Redis.Port,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}
