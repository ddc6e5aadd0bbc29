package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// MongoConfig holds the connection and target namespace for the movies collection.
type MongoConfig struct {
	URI              string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017" json:"uri"`
	Database         string        `env:"MONGODB_DATABASE" envDefault:"sample_mflix" json:"database"`
	Collection       string        `env:"MONGODB_COLLECTION" envDefault:"movies" json:"collection"`
	ConnectTimeout   time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"30s" json:"connect_timeout"`
	OperationTimeout time.Duration `env:"MONGODB_OPERATION_TIMEOUT" envDefault:"10s" json:"operation_timeout"`
	AppName          string        `env:"MONGODB_APP_NAME" envDefault:"mflix-catalog" json:"app_name"`
}

// Namespace returns the db.collection pair.
func (m MongoConfig) Namespace() string {
	return m.Database + "." + m.Collection
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"localhost" json:"host"`
	Port            string        `env:"SERVER_PORT" envDefault:"3000" json:"port"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s" json:"read_timeout"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s" json:"write_timeout"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s" json:"shutdown_timeout"`
}

// Addr returns host:port for fiber.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// CacheConfig controls the Redis page cache.
type CacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED" envDefault:"false" json:"enabled"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"5m" json:"ttl"`
	Prefix  string        `env:"CACHE_PREFIX" envDefault:"mflix:page:" json:"prefix"`
	Redis   RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host            string        `env:"REDIS_HOST" envDefault:"localhost" json:"host"`
	Port            string        `env:"REDIS_PORT" envDefault:"6379" json:"port"`
	Password        string        `env:"REDIS_PASSWORD" envDefault:"" json:"-"`
	Database        int           `env:"REDIS_DB" envDefault:"0" json:"database"`
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3" json:"max_retries"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10" json:"pool_size"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2" json:"min_idle_conns"`
	EnableTLS       bool          `env:"REDIS_ENABLE_TLS" envDefault:"false" json:"enable_tls"`
	DialTimeout     time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s" json:"dial_timeout"`
	ReadTimeout     time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s" json:"read_timeout"`
	WriteTimeout    time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s" json:"write_timeout"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s" json:"pool_timeout"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m" json:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h" json:"conn_max_lifetime"`
}

// GetAddr returns host:port for the Redis client
func (r *RedisConfig) GetAddr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// LogConfig selects the logger backend and output
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info" json:"level"`
	Format      string `env:"LOG_FORMAT" envDefault:"text" json:"format"`
	Backend     string `env:"LOG_BACKEND" envDefault:"logrus" json:"backend"`
	Environment string `env:"ENVIRONMENT" envDefault:"development" json:"environment"`
}

// CatalogConfig holds all configuration for the catalog module.
type CatalogConfig struct {
	Mongo  MongoConfig  `json:"mongo"`
	Server ServerConfig `json:"server"`
	Cache  CacheConfig  `json:"cache"`
	Log    LogConfig    `json:"log"`
}

// LoadDotEnv loads the given .env files, or ./.env when none are given.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*CatalogConfig, error) {
	cfg := &CatalogConfig{}

	// env/v6 parses nested structs without a prefix
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load catalog configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and repairs non-positive durations
func (c *CatalogConfig) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGODB_URI must not be empty")
	}
	if c.Mongo.Database == "" {
		return errors.New("MONGODB_DATABASE must not be empty")
	}
	if c.Mongo.Collection == "" {
		return errors.New("MONGODB_COLLECTION must not be empty")
	}
	if c.Mongo.ConnectTimeout <= 0 {
		c.Mongo.ConnectTimeout = 30 * time.Second
	}
	if c.Mongo.OperationTimeout <= 0 {
		c.Mongo.OperationTimeout = 10 * time.Second
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	return nil
}

// DefaultCatalogConfig returns a CatalogConfig with default values.
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Mongo: MongoConfig{
			URI:              "mongodb://localhost:27017",
			Database:         "sample_mflix",
			Collection:       "movies",
			ConnectTimeout:   30 * time.Second,
			OperationTimeout: 10 * time.Second,
			AppName:          "mflix-catalog",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            "3000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     5 * time.Minute,
			Prefix:  "mflix:page:",
			Redis: RedisConfig{
				Host:            "localhost",
				Port:            "6379",
				MaxRetries:      3,
				PoolSize:        10,
				MinIdleConns:    2,
				DialTimeout:     5 * time.Second,
				ReadTimeout:     3 * time.Second,
				WriteTimeout:    3 * time.Second,
				PoolTimeout:     4 * time.Second,
				ConnMaxIdleTime: 30 * time.Minute,
				ConnMaxLifetime: time.Hour,
			},
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "text",
			Backend:     "logrus",
			Environment: "development",
		},
	}
}
