// Package requestcache memoizes reads for the lifetime of a single request.
//
// A cache is attached to a context with WithCache and consulted by Do.
// Callers sharing a key inside one request observe one underlying call,
// including concurrent callers. Failed calls are not remembered.
package requestcache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheContextKey struct{}

// Cache holds memoized values for one request.
type Cache struct {
	mu     sync.Mutex
	values map[string]any
	group  singleflight.Group
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{values: make(map[string]any)}
}

// WithCache attaches a fresh cache to ctx.
func WithCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheContextKey{}, New())
}

// FromContext returns the cache attached to ctx, or nil.
func FromContext(ctx context.Context) *Cache {
	c, _ := ctx.Value(cacheContextKey{}).(*Cache)
	return c
}

// Do returns the memoized result for key or computes it with fn.
// Without a cache in ctx, fn is called directly.
func Do[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	c := FromContext(ctx)
	if c == nil {
		return fn(ctx)
	}

	if v, ok := c.load(key); ok {
		out, _ := v.(T)
		return out, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.load(key); ok {
			return v, nil
		}
		res, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, res)
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	out, _ := v.(T)
	return out, nil
}

// Reset drops every memoized value in the cache attached to ctx.
// Writes call it so later reads in the same request see fresh rows.
func Reset(ctx context.Context) {
	c := FromContext(ctx)
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.values)
}

func (c *Cache) load(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *Cache) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = v
}
