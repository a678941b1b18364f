package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"LearnScout/be/internal/content"
	"LearnScout/be/internal/db"
)

// Normalize canonicalizes a raw query for use as a cache key.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// BucketKey combines the content-type scope with the learning level, so
// the same query cached at different levels never collides.
func BucketKey(scope string, level content.Level) string {
	return scope + "_" + string(level)
}

// RepositoryImpl is a log-structured cache over the search_cache table:
// writes append, reads take the most recent unexpired row. Concurrent
// misses for one key may both insert; most-recent-wins resolves the race
// without locking.
type RepositoryImpl struct {
	db  *db.LSDb
	ttl time.Duration
}

func NewRepositoryImpl(db *db.LSDb, ttl time.Duration) *RepositoryImpl {
	return &RepositoryImpl{db: db, ttl: ttl}
}

func (r *RepositoryImpl) Get(ctx context.Context, query, bucketKey string) (*content.ResultSet, bool) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		`SELECT results FROM search_cache
		 WHERE query = $1 AND content_key = $2 AND expires_at > now()
		 ORDER BY created_at DESC
		 LIMIT 1`,
		Normalize(query), bucketKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		// A flaky cache backend must not fail the search.
		log.Printf("cache read failed, treating as miss: %v", err)
		return nil, false
	}

	var payload content.ResultSet
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("cache payload corrupt, treating as miss: %v", err)
		return nil, false
	}
	return &payload, true
}

func (r *RepositoryImpl) Put(ctx context.Context, query, bucketKey string, payload *content.ResultSet) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO search_cache (query, content_key, results, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		Normalize(query), bucketKey, raw, time.Now().Add(r.ttl))
	return err
}
