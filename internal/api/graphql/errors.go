package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/logger"
)

// ErrorPresenter formats errors the same way the REST API does.
// Internal failures are logged and masked.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		return internalError(ctx, err)
	}

	switch apiErr.Code {
	case apierrors.ErrCodeInternalError, apierrors.ErrCodeServiceError, apierrors.ErrCodeDatabaseError:
		return internalError(ctx, err)
	case apierrors.ErrCodeNotFound:
		return &gqlerror.Error{
			Err:     err,
			Message: "Not found",
			Extensions: map[string]interface{}{
				"code":    string(apierrors.ErrCodeNotFound),
				"message": apiErr.Message,
			},
		}
	}

	gqlErr := &gqlerror.Error{
		Err:     err,
		Message: apiErr.Message,
		Extensions: map[string]interface{}{
			"code":    string(apiErr.Code),
			"message": apiErr.Message,
		},
	}
	if apiErr.Details != "" {
		gqlErr.Extensions["details"] = apiErr.Details
	}
	return gqlErr
}

func internalError(ctx context.Context, err error) *gqlerror.Error {
	logger.ErrorCtx(ctx, err, zap.String("error", "Unhandled GraphQL error"))
	return &gqlerror.Error{
		Err:     err,
		Message: "Internal server error",
		Extensions: map[string]interface{}{
			"code":    string(apierrors.ErrCodeInternalError),
			"message": "Internal server error",
		},
	}
}

// recoverResolver turns a resolver panic into an internal error
func recoverResolver(ctx context.Context, r interface{}) error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", r), zap.Any("panic", r))
	return apierrors.NewInternalError("Internal server error")
}
