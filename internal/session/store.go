// Package session keeps the last successful order of each browser session.
package session

import (
	"context"

	"car-leasing/internal/model"
)

// Store associates a session id with the snapshot of its last order.
// Get returns nil without error when the session has no live snapshot.
type Store interface {
	Get(ctx context.Context, sid string) (*model.LastOrder, error)
	Put(ctx context.Context, sid string, order model.LastOrder) error
}

type contextKey struct{}

// WithID returns a copy of ctx carrying the session id.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, contextKey{}, sid)
}

// IDFromContext returns the session id stored by the session middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(contextKey{}).(string)
	return sid, ok && sid != ""
}
