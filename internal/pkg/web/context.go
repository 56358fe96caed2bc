package web

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoParams is returned when the request context carries no decoded
// payload of the requested type.
var ErrNoParams = errors.New("no decoded payload in context")

type paramsKey struct{}

// NewContextWithParams stores a decoded request payload for the handler.
func NewContextWithParams(ctx context.Context, params any) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

func ParamsFromContext[T any](ctx context.Context) (T, error) {
	params, ok := ctx.Value(paramsKey{}).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: want %T", ErrNoParams, zero)
	}
	return params, nil
}
