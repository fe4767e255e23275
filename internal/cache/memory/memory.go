// Package memory is the default in-process StatusCache backend.
package memory

import (
	"context"
	"sync"

	"kopesha/internal/cache"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[string]cache.Entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]cache.Entry)}
}

func (c *Cache) Put(_ context.Context, checkoutRequestID string, e cache.Entry) error {
	c.mu.Lock()
	c.entries[checkoutRequestID] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Get(_ context.Context, checkoutRequestID string) (cache.Entry, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[checkoutRequestID]
	c.mu.RUnlock()
	return e, ok, nil
}

func (c *Cache) Remove(_ context.Context, checkoutRequestID string) error {
	c.mu.Lock()
	delete(c.entries, checkoutRequestID)
	c.mu.Unlock()
	return nil
}
