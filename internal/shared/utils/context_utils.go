package utils

import (
	"context"
	"errors"

	"mflix-catalog/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
	ErrOperationNotFound  = errors.New("operation not found in context")
	ErrOperationNotString = errors.New("operation in context is not a string")
)

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// GetOperationFromContext retrieves the operation name from the context.
func GetOperationFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.OperationKey)
	if val == nil {
		return "", ErrOperationNotFound
	}
	operation, ok := val.(string)
	if !ok {
		return "", ErrOperationNotString
	}
	return operation, nil
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithOperation returns a copy of ctx carrying the operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// WithCollection returns a copy of ctx carrying the db.collection namespace.
func WithCollection(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, contextkeys.CollectionKey, namespace)
}
