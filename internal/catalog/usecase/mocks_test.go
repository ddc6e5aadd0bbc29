package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"mflix-catalog/internal/catalog/domain/model"
	"mflix-catalog/internal/catalog/domain/repository"
	"mflix-catalog/internal/shared/logger"

	"github.com/stretchr/testify/mock"
)

// MockMovieRepository mocks repository.MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) CreateIndex(ctx context.Context, spec model.IndexSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *MockMovieRepository) ListIndexes(ctx context.Context) ([]model.IndexInfo, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.IndexInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) DropIndex(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockMovieRepository) Find(ctx context.Context, query model.MovieQuery) (repository.Cursor, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.(repository.Cursor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) InsertMovies(ctx context.Context, movies []model.Movie) (int, error) {
	args := m.Called(ctx, movies)
	return args.Int(0), args.Error(1)
}

func (m *MockMovieRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMovieRepository) Namespace() string {
	return "sample_mflix.movies"
}

// MockPageCache mocks repository.PageCache
type MockPageCache struct {
	mock.Mock
}

func (m *MockPageCache) Get(ctx context.Context, key string) (*model.Page, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*model.Page), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPageCache) Set(ctx context.Context, key string, page *model.Page) error {
	return m.Called(ctx, key, page).Error(0)
}

// sliceCursor is an in-memory repository.Cursor
type sliceCursor struct {
	rows   []model.MovieSummary
	pos    int
	err    error
	closed bool
}

func newSliceCursor(rows ...model.MovieSummary) *sliceCursor {
	return &sliceCursor{rows: rows, pos: -1}
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if c.closed || c.err != nil {
		return false
	}
	c.pos++
	return c.pos < len(c.rows)
}

func (c *sliceCursor) Decode(val interface{}) error {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return errors.New("no current document")
	}
	raw, _ := json.Marshal(c.rows[c.pos])
	return json.Unmarshal(raw, val)
}

func (c *sliceCursor) All(ctx context.Context, results interface{}) error {
	raw, _ := json.Marshal(c.rows[c.pos+1:])
	c.pos = len(c.rows)
	return json.Unmarshal(raw, results)
}

func (c *sliceCursor) Err() error { return c.err }

func (c *sliceCursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

// TestLogger implements the Logger interface for tests
type TestLogger struct{}

func (l *TestLogger) Debug(args ...interface{})                              {}
func (l *TestLogger) Info(args ...interface{})                               {}
func (l *TestLogger) Warn(args ...interface{})                               {}
func (l *TestLogger) Error(args ...interface{})                              {}
func (l *TestLogger) Fatal(args ...interface{})                              {}
func (l *TestLogger) Debugf(format string, args ...interface{})              {}
func (l *TestLogger) Infof(format string, args ...interface{})               {}
func (l *TestLogger) Warnf(format string, args ...interface{})               {}
func (l *TestLogger) Errorf(format string, args ...interface{})              {}
func (l *TestLogger) Fatalf(format string, args ...interface{})              {}
func (l *TestLogger) WithFields(fields map[string]interface{}) logger.Logger { return l }
func (l *TestLogger) WithContext(ctx context.Context) logger.Logger          { return l }
func (l *TestLogger) WithComponent(component string) logger.Logger           { return l }
