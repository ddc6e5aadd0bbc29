package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_COLLECTION", "CACHE_ENABLED", "SERVER_PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "sample_mflix", cfg.Mongo.Database)
	assert.Equal(t, "movies", cfg.Mongo.Collection)
	assert.Equal(t, "sample_mflix.movies", cfg.Mongo.Namespace())
	assert.Equal(t, 30*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.Mongo.OperationTimeout)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.GetAddr())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27018")
	t.Setenv("MONGODB_DATABASE", "catalog")
	t.Setenv("MONGODB_COLLECTION", "films")
	t.Setenv("MONGODB_OPERATION_TIMEOUT", "2s")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DIAL_TIMEOUT", "750ms")
	t.Setenv("REDIS_READ_TIMEOUT", "1s")
	t.Setenv("LOG_BACKEND", "zap")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27018", cfg.Mongo.URI)
	assert.Equal(t, "catalog.films", cfg.Mongo.Namespace())
	assert.Equal(t, 2*time.Second, cfg.Mongo.OperationTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.Redis.GetAddr())
	assert.Equal(t, 750*time.Millisecond, cfg.Cache.Redis.DialTimeout)
	assert.Equal(t, time.Second, cfg.Cache.Redis.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Cache.Redis.WriteTimeout)
	assert.Equal(t, "zap", cfg.Log.Backend)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load catalog configuration")
}

func TestValidate(t *testing.T) {
	t.Run("empty collection rejected", func(t *testing.T) {
		cfg := DefaultCatalogConfig()
		cfg.Mongo.Collection = ""
		assert.EqualError(t, cfg.Validate(), "MONGODB_COLLECTION must not be empty")
	})

	t.Run("empty uri rejected", func(t *testing.T) {
		cfg := DefaultCatalogConfig()
		cfg.Mongo.URI = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive durations repaired", func(t *testing.T) {
		cfg := DefaultCatalogConfig()
		cfg.Mongo.OperationTimeout = 0
		cfg.Cache.TTL = -time.Second
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 10*time.Second, cfg.Mongo.OperationTimeout)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("values are exported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("MFLIX_DOTENV_PROBE=loaded\n"), 0o600))
		t.Setenv("MFLIX_DOTENV_PROBE", "")
		os.Unsetenv("MFLIX_DOTENV_PROBE")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("MFLIX_DOTENV_PROBE"))
	})
}

func TestMongoClientOptions(t *testing.T) {
	cfg := DefaultCatalogConfig().Mongo
	opts := MongoClientOptions(&cfg)

	require.NotNil(t, opts.AppName)
	assert.Equal(t, "mflix-catalog", *opts.AppName)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 30*time.Second, *opts.ConnectTimeout)
	assert.Equal(t, []string{"localhost:27017"}, opts.Hosts)
}

func TestNewRedisClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultCatalogConfig().Cache.Redis
		cfg.Database = 4
		client := NewRedisClient(&cfg)
		defer client.Close()

		opts := client.Options()
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 4, opts.DB)
		assert.Equal(t, 5*time.Second, opts.DialTimeout)
		assert.Equal(t, 3*time.Second, opts.ReadTimeout)
		assert.Equal(t, 4*time.Second, opts.PoolTimeout)
		assert.Equal(t, 30*time.Minute, opts.ConnMaxIdleTime)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("timeouts come from config", func(t *testing.T) {
		cfg := DefaultCatalogConfig().Cache.Redis
		cfg.DialTimeout = 250 * time.Millisecond
		cfg.ReadTimeout = time.Second
		cfg.WriteTimeout = 2 * time.Second
		cfg.PoolTimeout = 6 * time.Second
		cfg.ConnMaxLifetime = 10 * time.Minute
		cfg.EnableTLS = true
		client := NewRedisClient(&cfg)
		defer client.Close()

		opts := client.Options()
		assert.Equal(t, 250*time.Millisecond, opts.DialTimeout)
		assert.Equal(t, time.Second, opts.ReadTimeout)
		assert.Equal(t, 2*time.Second, opts.WriteTimeout)
		assert.Equal(t, 6*time.Second, opts.PoolTimeout)
		assert.Equal(t, 10*time.Minute, opts.ConnMaxLifetime)
		require.NotNil(t, opts.TLSConfig)
		assert.Equal(t, "localhost", opts.TLSConfig.ServerName)
	})

	t.Run("unset durations fall back", func(t *testing.T) {
		client := NewRedisClient(&RedisConfig{Host: "localhost", Port: "6379"})
		defer client.Close()

		assert.Equal(t, 5*time.Second, client.Options().DialTimeout)
		assert.Equal(t, time.Hour, client.Options().ConnMaxLifetime)
	})
}
