package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"mflix-catalog/internal/catalog/domain/model"
	"mflix-catalog/internal/catalog/domain/repository"
	apperrors "mflix-catalog/internal/shared/errors"
	"mflix-catalog/internal/shared/logger"
	"mflix-catalog/internal/shared/utils"
)

// CatalogUsecaseInterface is what the HTTP and CLI adapters depend on
type CatalogUsecaseInterface interface {
	CreateIndex(ctx context.Context, spec model.IndexSpec) (string, error)
	EnsureTitleIndex(ctx context.Context) (string, error)
	ListIndexes(ctx context.Context) ([]model.IndexInfo, error)
	DropIndex(ctx context.Context, name string) error
	FindMovies(ctx context.Context, query model.MovieQuery) (repository.Cursor, error)
	FetchPage(ctx context.Context, query model.MovieQuery, req model.PageRequest) (*model.Page, error)
	Seed(ctx context.Context, movies []model.Movie) (int, error)
	Run(ctx context.Context) (*RunResult, error)
	HealthCheck(ctx context.Context) error
}

// RunResult is the outcome of the index-then-query flow.
// Cursor is unconsumed; the caller owns it and must Close it.
type RunResult struct {
	IndexName string
	Query     model.MovieQuery
	Cursor    repository.Cursor
}

// CatalogUsecase implements CatalogUsecaseInterface
type CatalogUsecase struct {
	repo   repository.MovieRepository
	cache  repository.PageCache
	logger logger.Logger
}

var _ CatalogUsecaseInterface = (*CatalogUsecase)(nil)

// NewCatalogUsecase wires the repository and an optional page cache (nil disables caching)
func NewCatalogUsecase(repo repository.MovieRepository, cache repository.PageCache, log logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		repo:   repo,
		cache:  cache,
		logger: log.WithComponent("catalog_usecase"),
	}
}

// scope tags ctx with the operation and the collection it runs against
func (uc *CatalogUsecase) scope(ctx context.Context, operation string) context.Context {
	ctx = utils.WithOperation(ctx, operation)
	return utils.WithCollection(ctx, uc.repo.Namespace())
}

func (uc *CatalogUsecase) log(ctx context.Context) logger.Logger {
	return uc.logger.WithContext(ctx)
}

// CreateIndex creates spec on the movies collection
func (uc *CatalogUsecase) CreateIndex(ctx context.Context, spec model.IndexSpec) (string, error) {
	ctx = uc.scope(ctx, "create_index")
	uc.log(ctx).WithFields(map[string]interface{}{
		"keys":      spec.Document(),
		"namespace": uc.repo.Namespace(),
	}).Debug("Creating index")

	if err := spec.Validate(); err != nil {
		return "", err
	}

	name, err := uc.repo.CreateIndex(ctx, spec)
	if err != nil {
		uc.log(ctx).Errorf("Failed to create index: %v", err)
		return "", fmt.Errorf("failed to create index: %w", err)
	}

	uc.log(ctx).Infof("Index created: %s", name)
	return name, nil
}

// EnsureTitleIndex creates {title: 1}
func (uc *CatalogUsecase) EnsureTitleIndex(ctx context.Context) (string, error) {
	return uc.CreateIndex(ctx, model.TitleIndex())
}

// ListIndexes lists the indexes on the movies collection
func (uc *CatalogUsecase) ListIndexes(ctx context.Context) ([]model.IndexInfo, error) {
	ctx = uc.scope(ctx, "list_indexes")

	indexes, err := uc.repo.ListIndexes(ctx)
	if err != nil {
		uc.log(ctx).Errorf("Failed to list indexes: %v", err)
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}

	uc.log(ctx).WithFields(map[string]interface{}{"count": len(indexes)}).Debug("Listed indexes")
	return indexes, nil
}

// DropIndex drops a named index
func (uc *CatalogUsecase) DropIndex(ctx context.Context, name string) error {
	ctx = uc.scope(ctx, "drop_index")

	if err := uc.repo.DropIndex(ctx, name); err != nil {
		uc.log(ctx).Errorf("Failed to drop index %q: %v", name, err)
		return fmt.Errorf("failed to drop index: %w", err)
	}

	uc.log(ctx).Infof("Index dropped: %s", name)
	return nil
}

// FindMovies builds the cursor for query. Nothing beyond the first batch is read.
func (uc *CatalogUsecase) FindMovies(ctx context.Context, query model.MovieQuery) (repository.Cursor, error) {
	ctx = uc.scope(ctx, "find")

	if err := query.Validate(); err != nil {
		return nil, err
	}

	cursor, err := uc.repo.Find(ctx, query)
	if err != nil {
		uc.log(ctx).Errorf("Failed to build cursor: %v", err)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	return cursor, nil
}

// FetchPage materializes one page of query results, consulting the cache first
func (uc *CatalogUsecase) FetchPage(ctx context.Context, query model.MovieQuery, req model.PageRequest) (*model.Page, error) {
	ctx = uc.scope(ctx, "fetch_page")

	offset, err := model.DecodePageToken(req.Token)
	if err != nil {
		return nil, err
	}
	limit := req.EffectiveLimit()

	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := PageCacheKey(uc.repo.Namespace(), query, offset, limit)
	if page := uc.cachedPage(ctx, key); page != nil {
		return page, nil
	}

	// one extra row tells us whether another page exists
	query.Skip = offset
	query.Limit = int64(limit) + 1

	cursor, err := uc.repo.Find(ctx, query)
	if err != nil {
		uc.log(ctx).Errorf("Failed to build cursor: %v", err)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]model.MovieSummary, 0, limit)
	hasNext := false
	for cursor.Next(ctx) {
		if len(items) == limit {
			hasNext = true
			break
		}
		var row model.MovieSummary
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode movie: %w", err)
		}
		items = append(items, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	page := &model.Page{
		Items: items,
		Pagination: model.Pagination{
			HasNext: hasNext,
			HasPrev: offset > 0,
			Count:   len(items),
		},
	}
	if hasNext {
		page.Pagination.NextToken = model.EncodePageToken(offset + int64(limit))
	}
	if offset > 0 {
		prev := offset - int64(limit)
		if prev < 0 {
			prev = 0
		}
		page.Pagination.PrevToken = model.EncodePageToken(prev)
	}

	uc.storePage(ctx, key, page)
	return page, nil
}

func (uc *CatalogUsecase) cachedPage(ctx context.Context, key string) *model.Page {
	if uc.cache == nil {
		return nil
	}
	page, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			uc.log(ctx).Warnf("Page cache read failed: %v", err)
		}
		return nil
	}
	uc.log(ctx).Debug("Page served from cache")
	return page
}

func (uc *CatalogUsecase) storePage(ctx context.Context, key string, page *model.Page) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, page); err != nil {
		uc.log(ctx).Warnf("Page cache write failed: %v", err)
	}
}

// Seed inserts movies into the collection
func (uc *CatalogUsecase) Seed(ctx context.Context, movies []model.Movie) (int, error) {
	ctx = uc.scope(ctx, "seed")

	n, err := uc.repo.InsertMovies(ctx, movies)
	if err != nil {
		uc.log(ctx).Errorf("Failed to seed movies: %v", err)
		return n, fmt.Errorf("failed to seed movies: %w", err)
	}

	uc.log(ctx).Infof("Seeded %d movies into %s", n, uc.repo.Namespace())
	return n, nil
}

// Run creates the title index, then builds the drama cursor without consuming it
func (uc *CatalogUsecase) Run(ctx context.Context) (*RunResult, error) {
	name, err := uc.EnsureTitleIndex(ctx)
	if err != nil {
		return nil, err
	}

	query := model.DramaMoviesQuery()
	cursor, err := uc.FindMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	return &RunResult{IndexName: name, Query: query, Cursor: cursor}, nil
}

// HealthCheck pings the database
func (uc *CatalogUsecase) HealthCheck(ctx context.Context) error {
	if err := uc.repo.Ping(ctx); err != nil {
		return fmt.Errorf("mongodb unhealthy: %w", err)
	}
	return nil
}

// PageCacheKey identifies a page by namespace, descriptor, offset and limit
func PageCacheKey(namespace string, query model.MovieQuery, offset int64, limit int) string {
	query.Skip, query.Limit = 0, 0
	raw, _ := json.Marshal(struct {
		NS     string           `json:"ns"`
		Query  model.MovieQuery `json:"q"`
		Offset int64            `json:"o"`
		Limit  int              `json:"l"`
	}{namespace, query, offset, limit})
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
