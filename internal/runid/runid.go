// Package runid correlates the events of one generation run.
package runid

import (
	"context"

	"github.com/google/uuid"
)

type key struct{}

// NewContext returns a copy of parent carrying a fresh run ID, and the ID.
// An ID already present in parent is shadowed, so runs started from one
// caller context never share an ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
