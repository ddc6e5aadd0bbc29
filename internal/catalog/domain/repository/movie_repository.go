package repository

import (
	"context"

	"mflix-catalog/internal/catalog/domain/model"
)

// Cursor is a lazy, server-backed iterator over query results.
// *mongo.Cursor satisfies it directly.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	All(ctx context.Context, results interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// MovieRepository is the port to the movies collection.
type MovieRepository interface {
	// CreateIndex builds the index and returns the name the server reports.
	CreateIndex(ctx context.Context, spec model.IndexSpec) (string, error)
	ListIndexes(ctx context.Context) ([]model.IndexInfo, error)
	DropIndex(ctx context.Context, name string) error
	// Find returns an unconsumed cursor; no documents are read until Next is called.
	Find(ctx context.Context, query model.MovieQuery) (Cursor, error)
	InsertMovies(ctx context.Context, movies []model.Movie) (int, error)
	Ping(ctx context.Context) error
	Namespace() string
}

// PageCache stores materialized result pages.
type PageCache interface {
	// Get returns errors.ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (*model.Page, error)
	Set(ctx context.Context, key string, page *model.Page) error
}
