package tools

import (
	"context"
	"errors"
)

// ErrMissingIdentity is returned by tools invoked without a caller user id.
var ErrMissingIdentity = errors.New("invalid request: user_id not provided")

// Caller identifies the end user on whose behalf tools run.
type Caller struct {
	UserID   int64          `json:"user_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller carried by ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// RequireCaller returns the caller carried by ctx or ErrMissingIdentity.
func RequireCaller(ctx context.Context) (Caller, error) {
	c, ok := CallerFrom(ctx)
	if !ok || c.UserID == 0 {
		return Caller{}, ErrMissingIdentity
	}
	return c, nil
}
