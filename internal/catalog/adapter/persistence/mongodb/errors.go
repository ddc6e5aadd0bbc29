package mongodb

import (
	"context"
	"errors"
	"fmt"

	apperrors "mflix-catalog/internal/shared/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes the catalog distinguishes.
const (
	codeIndexNotFound         int32 = 27
	codeIndexOptionsConflict  int32 = 85
	codeIndexKeySpecsConflict int32 = 86
)

// translateError classifies driver errors into AppErrors. The driver error stays in the
// chain, so errors.As(err, &mongo.CommandError{}) keeps working for callers.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	isCmd := errors.As(err, &cmdErr)

	switch {
	case isCmd && (cmdErr.Code == codeIndexOptionsConflict || cmdErr.Code == codeIndexKeySpecsConflict):
		return apperrors.NewConflictError(op+" failed").
			WithCode(cmdErr.Name).
			WithCause(fmt.Errorf("%w: %w", apperrors.ErrIndexConflict, err))
	case isCmd && cmdErr.Code == codeIndexNotFound:
		return apperrors.NewNotFoundError("index").
			WithCode(cmdErr.Name).
			WithCause(fmt.Errorf("%w: %w", apperrors.ErrIndexNotFound, err))
	case mongo.IsDuplicateKeyError(err):
		return apperrors.NewConflictError(op + " failed: duplicate key").WithCause(err)
	case mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(op + " timed out").WithCause(err)
	case mongo.IsNetworkError(err):
		return apperrors.NewInfrastructureError(op + " failed: network error").WithCause(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
