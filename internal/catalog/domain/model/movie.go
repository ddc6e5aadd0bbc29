package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	apperrors "mflix-catalog/internal/shared/errors"
)

// MovieSummary is a result row after the {_id: 0, type: 1, genre: 1} projection.
type MovieSummary struct {
	Type  string `json:"type" bson:"type"`
	Genre string `json:"genre" bson:"genre"`
}

// Movie is a seedable movies document. Only the fields the catalog touches are modelled.
type Movie struct {
	Title string `json:"title" bson:"title"`
	Type  string `json:"type" bson:"type"`
	Genre string `json:"genre" bson:"genre"`
	Year  int    `json:"year,omitempty" bson:"year,omitempty"`
}

// SampleMovies is the fixed set inserted by the seed command.
func SampleMovies() []Movie {
	return []Movie{
		{Title: "The Godfather", Type: "movie", Genre: "Drama", Year: 1972},
		{Title: "Casablanca", Type: "movie", Genre: "Drama", Year: 1942},
		{Title: "12 Angry Men", Type: "movie", Genre: "Drama", Year: 1957},
		{Title: "Airplane!", Type: "movie", Genre: "Comedy", Year: 1980},
		{Title: "Alien", Type: "movie", Genre: "Horror", Year: 1979},
		{Title: "The Wire", Type: "series", Genre: "Drama", Year: 2002},
		{Title: "Cosmos", Type: "series", Genre: "Documentary", Year: 1980},
	}
}

// Page size bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 1000
)

// PageRequest asks for one page of results.
type PageRequest struct {
	Token string `json:"pageToken,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// EffectiveLimit clamps Limit into [1, MaxPageLimit], defaulting to DefaultPageLimit.
func (r PageRequest) EffectiveLimit() int {
	switch {
	case r.Limit <= 0:
		return DefaultPageLimit
	case r.Limit > MaxPageLimit:
		return MaxPageLimit
	}
	return r.Limit
}

// Pagination describes the position of a page within the result set.
type Pagination struct {
	HasNext   bool   `json:"hasNext"`
	HasPrev   bool   `json:"hasPrev"`
	NextToken string `json:"nextToken,omitempty"`
	PrevToken string `json:"prevToken,omitempty"`
	Count     int    `json:"count"`
}

// Page is a materialized slice of the cursor.
type Page struct {
	Items      []MovieSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type pageToken struct {
	Offset int64 `json:"o"`
}

// EncodePageToken produces the opaque token for an offset. Offset 0 encodes to "".
func EncodePageToken(offset int64) string {
	if offset <= 0 {
		return ""
	}
	raw, _ := json.Marshal(pageToken{Offset: offset})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodePageToken returns the offset carried by token. An empty token is offset 0.
func DecodePageToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, invalidToken(err)
	}
	var pt pageToken
	if err := json.Unmarshal(raw, &pt); err != nil {
		return 0, invalidToken(err)
	}
	if pt.Offset < 0 {
		return 0, invalidToken(fmt.Errorf("negative offset %d", pt.Offset))
	}
	return pt.Offset, nil
}

func invalidToken(cause error) error {
	return apperrors.NewValidationError("invalid page token").
		WithCause(fmt.Errorf("%w: %v", apperrors.ErrInvalidPageToken, cause))
}
