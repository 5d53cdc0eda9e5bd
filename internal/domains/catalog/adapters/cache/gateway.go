// Package cache decorates the catalog gateway with a tag-keyed read cache.
// Cart operations live in a different context and never pass through here.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

// DefaultTTL bounds how long a catalog read is served from memory.
const DefaultTTL = time.Hour

// Resource tags, used as invalidation handles for grouped reads.
const (
	TagProducts    = "products"
	TagCollections = "collections"
)

// ProductTag returns the per-product invalidation tag.
func ProductTag(handle string) string { return "product-" + handle }

// CollectionTag returns the per-collection invalidation tag.
func CollectionTag(handle string) string { return "collection-" + handle }

var (
	_ ports.Gateway     = (*Gateway)(nil)
	_ ports.Invalidator = (*Gateway)(nil)
)

type entry struct {
	value     any
	tags      []string
	expiresAt time.Time
}

// Gateway caches successful reads from the inner gateway. Concurrent misses
// for the same key are collapsed into a single upstream call. Errors,
// not-found included, are never cached.
type Gateway struct {
	inner ports.Gateway
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

// Option configures the caching gateway.
type Option func(*Gateway)

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway wraps inner with caching.
func NewGateway(inner ports.Gateway, opts ...Option) *Gateway {
	g := &Gateway{
		inner:   inner,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: map[string]entry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Invalidate drops every entry carrying the given tag.
func (g *Gateway) Invalidate(tag string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, e := range g.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(g.entries, key)
				break
			}
		}
	}
}

func (g *Gateway) lookup(key string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entries[key]
	if !ok || g.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (g *Gateway) store(key string, value any, tags ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = entry{value: value, tags: tags, expiresAt: g.now().Add(g.ttl)}
}

func (g *Gateway) fetch(ctx context.Context, key string, tags []string, load func(context.Context) (any, error)) (any, error) {
	if value, ok := g.lookup(key); ok {
		return value, nil
	}
	value, err, _ := g.group.Do(key, func() (any, error) {
		if value, ok := g.lookup(key); ok {
			return value, nil
		}
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		g.store(key, value, tags...)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// ListProducts serves the product list from cache when fresh.
func (g *Gateway) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	key := fmt.Sprintf("products:%d", limit)
	value, err := g.fetch(ctx, key, []string{TagProducts}, func(ctx context.Context) (any, error) {
		return g.inner.ListProducts(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Product), nil
}

// GetProduct serves a single product from cache when fresh.
func (g *Gateway) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	key := "product:" + handle
	value, err := g.fetch(ctx, key, []string{TagProducts, ProductTag(handle)}, func(ctx context.Context) (any, error) {
		return g.inner.GetProduct(ctx, handle)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Product), nil
}

// ListCollections serves the collection list from cache when fresh.
func (g *Gateway) ListCollections(ctx context.Context, limit int) ([]domain.Collection, error) {
	key := fmt.Sprintf("collections:%d", limit)
	value, err := g.fetch(ctx, key, []string{TagCollections}, func(ctx context.Context) (any, error) {
		return g.inner.ListCollections(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Collection), nil
}

// GetCollection serves a single collection from cache when fresh.
func (g *Gateway) GetCollection(ctx context.Context, handle string, limit int) (*domain.Collection, error) {
	key := fmt.Sprintf("collection:%s:%d", handle, limit)
	value, err := g.fetch(ctx, key, []string{TagCollections, CollectionTag(handle)}, func(ctx context.Context) (any, error) {
		return g.inner.GetCollection(ctx, handle, limit)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Collection), nil
}
