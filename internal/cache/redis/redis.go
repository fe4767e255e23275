// Package redis backs the StatusCache with a shared Redis instance so that
// multiple API replicas see the same ephemeral payment state.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"kopesha/internal/cache"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "kopesha:payment:"

type Cache struct {
	rdb *goredis.Client
}

func New(addr string) *Cache {
	return &Cache{rdb: goredis.NewClient(&goredis.Options{Addr: addr})}
}

func (c *Cache) Put(ctx context.Context, checkoutRequestID string, e cache.Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+checkoutRequestID, b, 0).Err()
}

func (c *Cache) Get(ctx context.Context, checkoutRequestID string) (cache.Entry, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+checkoutRequestID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cache.Entry{}, false, nil
	}
	if err != nil {
		return cache.Entry{}, false, err
	}
	var e cache.Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return cache.Entry{}, false, err
	}
	return e, true, nil
}

func (c *Cache) Remove(ctx context.Context, checkoutRequestID string) error {
	// DEL of a missing key is already a no-op in Redis.
	return c.rdb.Del(ctx, keyPrefix+checkoutRequestID).Err()
}
