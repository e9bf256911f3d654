package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// ProductCodeSource is the upstream listing, normally the submission
// backend client.
type ProductCodeSource interface {
	ProductCodes(ctx context.Context, page, limit int, search string) ([]models.ProductCode, error)
}

// ProductCodes caches classification pages in Redis. The listing changes
// rarely, so a short TTL keeps lookups cheap without a refresh protocol.
type ProductCodes struct {
	source ProductCodeSource
	cache  *Cache
	ttl    time.Duration
}

func NewProductCodes(source ProductCodeSource, cache *Cache, ttl time.Duration) *ProductCodes {
	return &ProductCodes{source: source, cache: cache, ttl: ttl}
}

func pageKey(page, limit int, search string) string {
	return fmt.Sprintf("productcodes:%d:%d:%s", page, limit, search)
}

func (p *ProductCodes) ProductCodes(ctx context.Context, page, limit int, search string) ([]models.ProductCode, error) {
	key := pageKey(page, limit, search)

	var cached []models.ProductCode
	err := p.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrMiss) {
		// Redis trouble: serve from the source rather than failing.
		slog.Warn("product-code cache read failed", "key", key, "error", err)
	}

	codes, err := p.source.ProductCodes(ctx, page, limit, search)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, codes, p.ttl); err != nil {
		slog.Warn("product-code cache write failed", "key", key, "error", err)
	}
	return codes, nil
}
