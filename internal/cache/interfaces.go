package cache

import (
	"context"

	"LearnScout/be/internal/content"
)

// Store is the result cache. Get reports a miss for absent, expired and
// unreadable entries alike; Put appends a new version and never needs a
// prior delete. Both operate on (normalized query, bucket key).
type Store interface {
	Get(ctx context.Context, query, bucketKey string) (*content.ResultSet, bool)
	Put(ctx context.Context, query, bucketKey string, payload *content.ResultSet) error
}
