package config

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// orDefault keeps go-redis defaults from kicking in for unset durations.
func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// NewRedisClient builds the page cache client. It does not dial until first use.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:            cfg.GetAddr(),
		Password:        cfg.Password,
		DB:              cfg.Database,
		MaxRetries:      cfg.MaxRetries,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		DialTimeout:     orDefault(cfg.DialTimeout, 5*time.Second),
		ReadTimeout:     orDefault(cfg.ReadTimeout, 3*time.Second),
		WriteTimeout:    orDefault(cfg.WriteTimeout, 3*time.Second),
		PoolTimeout:     orDefault(cfg.PoolTimeout, 4*time.Second),
		ConnMaxIdleTime: orDefault(cfg.ConnMaxIdleTime, 30*time.Minute),
		ConnMaxLifetime: orDefault(cfg.ConnMaxLifetime, time.Hour),
	}
	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return redis.NewClient(opts)
}
