package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"
	"time"

	"mflix-catalog/internal/catalog/adapter/cache"
	cataloghttp "mflix-catalog/internal/catalog/adapter/http"
	"mflix-catalog/internal/catalog/adapter/persistence/mongodb"
	"mflix-catalog/internal/catalog/config"
	"mflix-catalog/internal/catalog/domain/repository"
	"mflix-catalog/internal/catalog/usecase"
	"mflix-catalog/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const closeTimeout = 30 * time.Second

// Container owns the connections and catalog components for one process
type Container struct {
	mu       sync.RWMutex
	services map[reflect.Type]interface{}

	Config *config.CatalogConfig
	Logger logger.Logger

	// Connections. Pre-set clients are reused by InitializeCatalog.
	MongoClient *mongo.Client
	RedisClient *redis.Client

	Repository     repository.MovieRepository
	PageCache      repository.PageCache
	CatalogUsecase *usecase.CatalogUsecase
	HTTPHandler    *cataloghttp.HTTPHandler
}

// NewContainer creates an empty container for cfg
func NewContainer(cfg *config.CatalogConfig, log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{
		services: make(map[reflect.Type]interface{}),
		Config:   cfg,
		Logger:   log,
	}
}

// InitializeCatalog connects to MongoDB (and Redis when the cache is enabled)
// and wires the repository, cache, usecase and HTTP handler.
func (c *Container) InitializeCatalog(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Config == nil {
		return errors.New("configuration must be loaded before the catalog module")
	}

	if c.MongoClient == nil {
		client, err := config.ConnectMongo(ctx, &c.Config.Mongo)
		if err != nil {
			return err
		}
		c.MongoClient = client
		c.Logger.WithFields(map[string]interface{}{
			"database":   c.Config.Mongo.Database,
			"collection": c.Config.Mongo.Collection,
		}).Info("MongoDB connection established successfully")
	}

	coll := c.MongoClient.Database(c.Config.Mongo.Database).Collection(c.Config.Mongo.Collection)
	c.Repository = mongodb.NewMovieRepository(coll, c.Logger, c.Config.Mongo.OperationTimeout)

	c.PageCache = nil
	if c.Config.Cache.Enabled {
		c.PageCache = c.initPageCache(ctx)
	}

	c.CatalogUsecase = usecase.NewCatalogUsecase(c.Repository, c.PageCache, c.Logger)
	c.HTTPHandler = cataloghttp.NewCatalogHTTPHandler(c.CatalogUsecase, c.Logger.WithComponent("http"))

	c.register(c.Repository)
	c.register(c.CatalogUsecase)
	c.register(c.HTTPHandler)
	return nil
}

// initPageCache returns nil when Redis cannot be reached so queries still go to MongoDB.
func (c *Container) initPageCache(ctx context.Context) repository.PageCache {
	if c.RedisClient == nil {
		c.RedisClient = config.NewRedisClient(&c.Config.Cache.Redis)
	}

	pageCache := cache.NewRedisPageCache(c.RedisClient, c.Config.Cache.Prefix, c.Config.Cache.TTL, c.Logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pageCache.Ping(pingCtx); err != nil {
		c.Logger.Warnf("Redis unavailable at %s, page cache disabled: %v", c.Config.Cache.Redis.GetAddr(), err)
		return nil
	}

	c.Logger.Infof("Page cache enabled on %s (ttl %s)", c.Config.Cache.Redis.GetAddr(), c.Config.Cache.TTL)
	return pageCache
}

func (c *Container) register(service interface{}) {
	serviceType := reflect.TypeOf(service)
	if serviceType.Kind() == reflect.Ptr {
		serviceType = serviceType.Elem()
	}
	c.services[serviceType] = service
}

// Register registers a service instance
func (c *Container) Register(service interface{}) error {
	if service == nil {
		return errors.New("cannot register a nil service")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(service)
	return nil
}

// Resolve resolves a service by type
func (c *Container) Resolve(serviceType reflect.Type) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if serviceType != nil && serviceType.Kind() == reflect.Ptr {
		serviceType = serviceType.Elem()
	}
	if service, exists := c.services[serviceType]; exists {
		return service, nil
	}

	if serviceType != nil && serviceType.Kind() == reflect.Interface {
		for _, service := range c.services {
			if reflect.TypeOf(service).Implements(serviceType) {
				return service, nil
			}
		}
	}
	return nil, fmt.Errorf("service of type %v not registered", serviceType)
}

// GetService is a generic helper for resolving services
func GetService[T any](c *Container) (T, error) {
	var zero T
	serviceType := reflect.TypeOf((*T)(nil)).Elem()

	service, err := c.Resolve(serviceType)
	if err != nil {
		return zero, err
	}

	if typedService, ok := service.(T); ok {
		return typedService, nil
	}
	return zero, fmt.Errorf("service is not of expected type %T", zero)
}

// HealthCheck pings MongoDB and, when the cache is active, Redis
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient != nil {
		if err := c.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}
	if c.PageCache != nil && c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup releases connections in reverse order of initialization
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.RedisClient = nil
	}

	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect MongoDB: %w", err))
		}
		c.MongoClient = nil
	}

	if zl, ok := c.Logger.(interface{ Sync() error }); ok {
		_ = zl.Sync()
	}

	c.services = make(map[reflect.Type]interface{})
	c.Repository, c.PageCache, c.CatalogUsecase, c.HTTPHandler = nil, nil, nil, nil

	return errors.Join(errs...)
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}
	c.Logger.Debug("Container resources closed")
	return nil
}

// Bootstrap loads .env and the environment, builds the logger and initializes the catalog
func Bootstrap(ctx context.Context) (*Container, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// stdout belongs to command output
	log := logger.New(logger.Options{
		Backend:     cfg.Log.Backend,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Environment: cfg.Log.Environment,
		Output:      os.Stderr,
	})

	c := NewContainer(cfg, log)
	if err := c.InitializeCatalog(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
