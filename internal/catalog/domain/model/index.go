package model

import (
	"fmt"
	"strings"

	apperrors "mflix-catalog/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
)

// SortDirection is the per-key ordering used by sort and index documents.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Valid reports whether d is 1 or -1.
func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// IndexKey is one field of an index or sort specification.
type IndexKey struct {
	Field     string        `json:"field" bson:"field"`
	Direction SortDirection `json:"direction" bson:"direction"`
}

// IndexSpec describes an index to create. Key order is significant.
type IndexSpec struct {
	Name   string     `json:"name,omitempty"`
	Keys   []IndexKey `json:"keys"`
	Unique bool       `json:"unique,omitempty"`
	Sparse bool       `json:"sparse,omitempty"`
}

// IndexInfo describes an index as reported by listIndexes.
type IndexInfo struct {
	Name    string     `json:"name"`
	Keys    []IndexKey `json:"keys"`
	Unique  bool       `json:"unique,omitempty"`
	Sparse  bool       `json:"sparse,omitempty"`
	Version int32      `json:"v,omitempty"`
}

// HasKeys reports whether the index key pattern equals keys, in order.
func (i IndexInfo) HasKeys(keys ...IndexKey) bool {
	if len(i.Keys) != len(keys) {
		return false
	}
	for n := range keys {
		if i.Keys[n] != keys[n] {
			return false
		}
	}
	return true
}

// TitleIndex is the single-field ascending index on title.
func TitleIndex() IndexSpec {
	return IndexSpec{Keys: []IndexKey{{Field: "title", Direction: Ascending}}}
}

// Document renders the key pattern, e.g. {title: 1}.
func (s IndexSpec) Document() bson.D {
	return keysDocument(s.Keys)
}

// DefaultName is the name the server assigns when none is given: field_dir pairs joined by "_".
func (s IndexSpec) DefaultName() string {
	parts := make([]string, 0, len(s.Keys)*2)
	for _, k := range s.Keys {
		parts = append(parts, k.Field, fmt.Sprintf("%d", int(k.Direction)))
	}
	return strings.Join(parts, "_")
}

// Validate checks field names, directions and duplicates.
func (s IndexSpec) Validate() error {
	ve := apperrors.NewValidationErrors()
	if len(s.Keys) == 0 {
		ve.Add("keys", "index must have at least one key", nil)
	}

	seen := make(map[string]struct{}, len(s.Keys))
	for i, k := range s.Keys {
		path := fmt.Sprintf("keys[%d]", i)
		if err := ValidateFieldName(k.Field); err != nil {
			ve.Add(path+".field", err.Error(), k.Field)
		}
		if !k.Direction.Valid() {
			ve.Add(path+".direction", "direction must be 1 or -1", int(k.Direction))
		}
		if _, dup := seen[k.Field]; dup {
			ve.Add(path+".field", fmt.Sprintf("duplicate index field %q", k.Field), k.Field)
		}
		seen[k.Field] = struct{}{}
	}
	if strings.ContainsRune(s.Name, 0) {
		ve.Add("name", "index name cannot contain NUL", s.Name)
	}

	if ve.HasErrors() {
		return ve.ToAppError().WithCause(apperrors.ErrInvalidIndexSpec)
	}
	return nil
}

// ValidateFieldName rejects names the server would treat as operators or reject outright.
func ValidateFieldName(field string) error {
	switch {
	case field == "":
		return fmt.Errorf("%w: field name cannot be empty", apperrors.ErrInvalidFieldName)
	case strings.HasPrefix(field, "$"):
		return fmt.Errorf("%w: field name %q cannot start with '$'", apperrors.ErrInvalidFieldName, field)
	case strings.ContainsRune(field, 0):
		return fmt.Errorf("%w: field name cannot contain NUL", apperrors.ErrInvalidFieldName)
	case strings.HasPrefix(field, ".") || strings.HasSuffix(field, ".") || strings.Contains(field, ".."):
		return fmt.Errorf("%w: field path %q has an empty segment", apperrors.ErrInvalidFieldName, field)
	}
	return nil
}

func keysDocument(keys []IndexKey) bson.D {
	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k.Field, Value: int32(k.Direction)})
	}
	return doc
}
