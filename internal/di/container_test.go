package di

import (
	"context"
	"reflect"
	"testing"
	"time"

	cataloghttp "mflix-catalog/internal/catalog/adapter/http"
	"mflix-catalog/internal/catalog/config"
	"mflix-catalog/internal/catalog/domain/repository"
	"mflix-catalog/internal/catalog/usecase"
	"mflix-catalog/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lazyClient returns a client that has not talked to any server yet
func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	return client
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	cfg := config.DefaultCatalogConfig()
	c := NewContainer(cfg, logger.NewLoggerWithConfig("error", "json"))
	c.MongoClient = lazyClient(t)
	return c
}

func TestContainer_InitializeCatalog(t *testing.T) {
	c := newTestContainer(t)
	defer c.Close()

	require.NoError(t, c.InitializeCatalog(context.Background()))

	assert.NotNil(t, c.Repository)
	assert.Nil(t, c.PageCache, "cache is disabled by default")
	assert.NotNil(t, c.CatalogUsecase)
	assert.NotNil(t, c.HTTPHandler)
	assert.Same(t, c.CatalogUsecase, c.HTTPHandler.CatalogUC)
	assert.Equal(t, "sample_mflix.movies", c.Repository.Namespace())
}

func TestContainer_GetService(t *testing.T) {
	c := newTestContainer(t)
	defer c.Close()
	require.NoError(t, c.InitializeCatalog(context.Background()))

	uc, err := GetService[*usecase.CatalogUsecase](c)
	require.NoError(t, err)
	assert.Same(t, c.CatalogUsecase, uc)

	h, err := GetService[*cataloghttp.HTTPHandler](c)
	require.NoError(t, err)
	assert.Same(t, c.HTTPHandler, h)

	repo, err := GetService[repository.MovieRepository](c)
	require.NoError(t, err)
	assert.Equal(t, c.Repository, repo)

	_, err = GetService[*config.CatalogConfig](c)
	assert.ErrorContains(t, err, "not registered")
}

func TestContainer_Register(t *testing.T) {
	c := NewContainer(config.DefaultCatalogConfig(), logger.NewLoggerWithConfig("error", "json"))

	assert.Error(t, c.Register(nil))
	require.NoError(t, c.Register(c.Config))

	got, err := c.Resolve(reflect.TypeOf(c.Config))
	require.NoError(t, err)
	assert.Same(t, c.Config, got)
}

func TestContainer_CacheFallsBackWhenRedisDown(t *testing.T) {
	c := newTestContainer(t)
	defer c.Close()
	c.Config.Cache.Enabled = true
	c.Config.Cache.Redis.Host = "127.0.0.1"
	c.Config.Cache.Redis.Port = "1"
	c.Config.Cache.Redis.MaxRetries = -1

	require.NoError(t, c.InitializeCatalog(context.Background()))
	assert.Nil(t, c.PageCache)
	assert.NotNil(t, c.RedisClient)
}

func TestContainer_InitializeRequiresConfig(t *testing.T) {
	c := NewContainer(nil, logger.NewLoggerWithConfig("error", "json"))
	assert.Error(t, c.InitializeCatalog(context.Background()))
}

func TestContainer_HealthCheckFailsWithoutServer(t *testing.T) {
	c := newTestContainer(t)
	defer c.Close()
	require.NoError(t, c.InitializeCatalog(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.ErrorContains(t, c.HealthCheck(ctx), "MongoDB health check failed")
}

func TestContainer_Close(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.InitializeCatalog(context.Background()))

	require.NoError(t, c.Close())
	assert.Nil(t, c.MongoClient)
	assert.Nil(t, c.CatalogUsecase)

	_, err := GetService[*usecase.CatalogUsecase](c)
	assert.Error(t, err)
}
