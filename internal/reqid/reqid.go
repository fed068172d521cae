// Package reqid attaches a random per-request identifier to a context so
// event subscribers can correlate start and finish events.
package reqid

import (
	"context"
	"math/rand"
)

type key struct{}

// NewContext returns a copy of parent carrying a fresh random request ID,
// along with the generated ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int63()
	return context.WithValue(parent, key{}, id), id
}

// FromContext reports the request ID stored in ctx, if any.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}
