package mongodb

import (
	"context"
	"fmt"
	"time"

	"mflix-catalog/internal/catalog/domain/model"
	"mflix-catalog/internal/catalog/domain/repository"
	apperrors "mflix-catalog/internal/shared/errors"
	"mflix-catalog/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MovieRepository implements repository.MovieRepository on a single collection
type MovieRepository struct {
	coll      *mongo.Collection
	logger    logger.Logger
	opTimeout time.Duration
}

var _ repository.MovieRepository = (*MovieRepository)(nil)

// NewMovieRepository wraps coll. A zero opTimeout leaves deadlines to the caller's context.
func NewMovieRepository(coll *mongo.Collection, log logger.Logger, opTimeout time.Duration) *MovieRepository {
	return &MovieRepository{
		coll:      coll,
		logger:    log.WithComponent("movie_repository"),
		opTimeout: opTimeout,
	}
}

// Namespace returns db.collection
func (r *MovieRepository) Namespace() string {
	return r.coll.Database().Name() + "." + r.coll.Name()
}

// CreateIndex creates the index described by spec and returns the server's index name
func (r *MovieRepository) CreateIndex(ctx context.Context, spec model.IndexSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    spec.Document(),
		Options: IndexOptions(spec),
	}

	name, err := r.coll.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return "", translateError("create index", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"index":     name,
		"namespace": r.Namespace(),
	}).Debug("createIndexes acknowledged")
	return name, nil
}

// ListIndexes returns every index on the collection, _id_ included
func (r *MovieRepository) ListIndexes(ctx context.Context) ([]model.IndexInfo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Indexes().List(ctx)
	if err != nil {
		return nil, translateError("list indexes", err)
	}
	defer cursor.Close(ctx)

	indexes := []model.IndexInfo{}
	for cursor.Next(ctx) {
		var doc indexDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode index specification: %w", err)
		}
		indexes = append(indexes, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, translateError("list indexes", err)
	}
	return indexes, nil
}

// DropIndex removes a named index
func (r *MovieRepository) DropIndex(ctx context.Context, name string) error {
	if name == "" || name == "*" {
		return apperrors.NewValidationError("index name is required").WithCause(apperrors.ErrInvalidIndexSpec)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.Indexes().DropOne(ctx, name); err != nil {
		return translateError("drop index", err)
	}
	return nil
}

// Find issues the query and returns the cursor without reading past the first batch
func (r *MovieRepository) Find(ctx context.Context, query model.MovieQuery) (repository.Cursor, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cursor, err := r.coll.Find(ctx, query.Filter.Document(), FindOptions(query))
	if err != nil {
		return nil, translateError("find", err)
	}
	return cursor, nil
}

// InsertMovies inserts movies and returns how many were written
func (r *MovieRepository) InsertMovies(ctx context.Context, movies []model.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(movies))
	for _, m := range movies {
		docs = append(docs, m)
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, translateError("insert movies", err)
	}
	return len(res.InsertedIDs), nil
}

// Ping checks the primary is reachable
func (r *MovieRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return translateError("ping", err)
	}
	return nil
}

func (r *MovieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

// IndexOptions maps the optional parts of spec onto driver options
func IndexOptions(spec model.IndexSpec) *options.IndexOptions {
	opts := options.Index()
	if spec.Name != "" {
		opts.SetName(spec.Name)
	}
	if spec.Unique {
		opts.SetUnique(true)
	}
	if spec.Sparse {
		opts.SetSparse(true)
	}
	return opts
}

// FindOptions attaches sort, projection, limit and skip. Empty parts are left unset.
func FindOptions(query model.MovieQuery) *options.FindOptions {
	opts := options.Find()
	if len(query.Sort) > 0 {
		opts.SetSort(query.Sort.Document())
	}
	if len(query.Projection) > 0 {
		opts.SetProjection(query.Projection.Document())
	}
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}
	if query.Skip > 0 {
		opts.SetSkip(query.Skip)
	}
	return opts
}

// indexDocument is one entry of listIndexes output
type indexDocument struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique bool   `bson:"unique,omitempty"`
	Sparse bool   `bson:"sparse,omitempty"`
	V      int32  `bson:"v,omitempty"`
}

func (d indexDocument) toModel() model.IndexInfo {
	info := model.IndexInfo{
		Name:    d.Name,
		Unique:  d.Unique,
		Sparse:  d.Sparse,
		Version: d.V,
		Keys:    make([]model.IndexKey, 0, len(d.Key)),
	}
	for _, e := range d.Key {
		info.Keys = append(info.Keys, model.IndexKey{Field: e.Key, Direction: directionOf(e.Value)})
	}
	return info
}

// directionOf reads 1/-1 in any numeric width. Special index types ("text", "2dsphere") yield 0.
func directionOf(v interface{}) model.SortDirection {
	var f float64
	switch n := v.(type) {
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0
	}
	switch {
	case f > 0:
		return model.Ascending
	case f < 0:
		return model.Descending
	}
	return 0
}
