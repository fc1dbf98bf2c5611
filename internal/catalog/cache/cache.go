// Package cache is a sqlite-backed read-through cache in front of the
// catalog service. The decorator fetches all listings once per view; caching
// them with a TTL keeps repeat sessions from refetching the entire catalog.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/oakhaus/decorator/internal/catalog"
)

// Source wraps an inner catalog.Source with cached listings. Cache failures
// are never fatal: a broken cache degrades to fetching from the inner
// source.
type Source struct {
	inner  catalog.Source
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func New(inner catalog.Source, db *sql.DB, ttl time.Duration, logger *slog.Logger) *Source {
	return &Source{inner: inner, db: db, ttl: ttl, logger: logger, now: time.Now}
}

func (s *Source) Categories(ctx context.Context) ([]catalog.Category, error) {
	return listing(ctx, s, "categories", s.inner.Categories)
}

func (s *Source) Subcategories(ctx context.Context) ([]catalog.Subcategory, error) {
	return listing(ctx, s, "subcategories", s.inner.Subcategories)
}

func (s *Source) Products(ctx context.Context) ([]catalog.Product, error) {
	return listing(ctx, s, "products", s.inner.Products)
}

func listing[T any](ctx context.Context, s *Source, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if payload, ok := s.lookup(ctx, key); ok {
		var out []T
		if err := json.Unmarshal(payload, &out); err == nil {
			return out, nil
		}
		s.logger.Warn("corrupt cache entry, refetching", "key", key)
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

// lookup returns the cached payload for key if it exists and is fresh.
func (s *Source) lookup(ctx context.Context, key string) ([]byte, bool) {
	var payload []byte
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM catalog_cache WHERE key = ?", key,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if s.now().Unix()-fetchedAt > int64(s.ttl/time.Second) {
		return nil, false
	}
	return payload, true
}

func (s *Source) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalog_cache (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, key, payload, s.now().Unix())
	if err != nil {
		s.logger.Warn("cache store failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached listing.
func (s *Source) Invalidate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM catalog_cache"); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
