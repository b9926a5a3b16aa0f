package ports

import (
	"context"
	"time"
)

// Optional memo of optimized visiting orders keyed by a fingerprint of the input.
type RouteCache interface {
	GetSequence(ctx context.Context, key string) (_ []int, ok bool, err error)
	PutSequence(ctx context.Context, key string, stopIDs []int, ttl time.Duration) error
}
