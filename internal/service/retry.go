package service

import (
	"context"

	"vocam/internal/domain"
)

// retryOnce calls fn again if the first attempt failed with a transient error.
// Conflicts, policy blocks and missing rows are returned as is.
func retryOnce[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err == nil || !domain.IsTransient(err) || ctx.Err() != nil {
		return v, err
	}
	return fn()
}

// retryOnceErr is retryOnce for calls that return only an error.
func retryOnceErr(ctx context.Context, fn func() error) error {
	_, err := retryOnce(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
