package model

import (
	"fmt"

	apperrors "mflix-catalog/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
)

const idField = "_id"

// FieldValue is one equality predicate.
type FieldValue struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// Filter is a conjunction of equality predicates, kept in declaration order.
type Filter []FieldValue

// Document renders the filter, e.g. {type: "movie", genre: "Drama"}.
func (f Filter) Document() bson.D {
	doc := make(bson.D, 0, len(f))
	for _, fv := range f {
		doc = append(doc, bson.E{Key: fv.Field, Value: fv.Value})
	}
	return doc
}

// SortSpec is an ordered list of sort keys.
type SortSpec []IndexKey

// Document renders the sort, e.g. {type: 1, genre: 1}.
func (s SortSpec) Document() bson.D {
	return keysDocument(s)
}

// ProjectedField includes (true) or excludes (false) a field from results.
type ProjectedField struct {
	Field   string `json:"field"`
	Include bool   `json:"include"`
}

// Projection selects output fields. An empty projection returns whole documents.
type Projection []ProjectedField

// Document renders the projection, e.g. {_id: 0, type: 1, genre: 1}.
func (p Projection) Document() bson.D {
	doc := make(bson.D, 0, len(p))
	for _, pf := range p {
		v := int32(0)
		if pf.Include {
			v = 1
		}
		doc = append(doc, bson.E{Key: pf.Field, Value: v})
	}
	return doc
}

// Validate enforces the server rule that inclusion and exclusion cannot mix, except for _id.
func (p Projection) Validate() error {
	var includes, excludes int
	seen := make(map[string]struct{}, len(p))
	for _, pf := range p {
		if err := ValidateFieldName(pf.Field); err != nil {
			return apperrors.NewValidationError(err.Error()).WithCause(apperrors.ErrInvalidProjection)
		}
		if _, dup := seen[pf.Field]; dup {
			return apperrors.NewValidationError(fmt.Sprintf("duplicate projection field %q", pf.Field)).
				WithCause(apperrors.ErrInvalidProjection)
		}
		seen[pf.Field] = struct{}{}
		if pf.Field == idField {
			continue
		}
		if pf.Include {
			includes++
		} else {
			excludes++
		}
	}
	if includes > 0 && excludes > 0 {
		return apperrors.NewValidationError("projection cannot mix inclusion and exclusion").
			WithCause(apperrors.ErrInvalidProjection)
	}
	return nil
}

// MovieQuery is the filter + sort + projection descriptor handed to find.
type MovieQuery struct {
	Filter     Filter     `json:"filter"`
	Sort       SortSpec   `json:"sort,omitempty"`
	Projection Projection `json:"projection,omitempty"`
	Limit      int64      `json:"limit,omitempty"`
	Skip       int64      `json:"skip,omitempty"`
}

// DramaMoviesQuery finds dramas of type movie, sorted by type then genre, keeping only those two fields.
func DramaMoviesQuery() MovieQuery {
	return MoviesByGenreQuery("movie", "Drama")
}

// MoviesByGenreQuery is DramaMoviesQuery with the type and genre values substituted.
func MoviesByGenreQuery(kind, genre string) MovieQuery {
	return MovieQuery{
		Filter: Filter{
			{Field: "type", Value: kind},
			{Field: "genre", Value: genre},
		},
		Sort: SortSpec{
			{Field: "type", Direction: Ascending},
			{Field: "genre", Direction: Ascending},
		},
		Projection: Projection{
			{Field: "_id", Include: false},
			{Field: "type", Include: true},
			{Field: "genre", Include: true},
		},
	}
}

// Validate checks every part of the descriptor before it reaches the server.
func (q MovieQuery) Validate() error {
	for i, fv := range q.Filter {
		if err := ValidateFieldName(fv.Field); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("filter[%d]: %v", i, err)).
				WithCause(apperrors.ErrInvalidQuery)
		}
	}
	for i, k := range q.Sort {
		if err := ValidateFieldName(k.Field); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("sort[%d]: %v", i, err)).
				WithCause(apperrors.ErrInvalidQuery)
		}
		if !k.Direction.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("sort[%d]: direction must be 1 or -1", i)).
				WithCause(apperrors.ErrInvalidDirection)
		}
	}
	if err := q.Projection.Validate(); err != nil {
		return err
	}
	if q.Limit < 0 || q.Skip < 0 {
		return apperrors.NewValidationError("limit and skip must be non-negative").
			WithCause(apperrors.ErrInvalidQuery)
	}
	return nil
}
