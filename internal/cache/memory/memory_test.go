package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"kopesha/internal/cache"
)

func TestPutGetRemove(t *testing.T) {
	ctx := context.Background()
	c := New()

	e := cache.Entry{State: cache.StatePending, Description: "PayHero STK Push sent", UpdatedAt: time.Now()}
	if err := c.Put(ctx, "ws_CO_1", e); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.Get(ctx, "ws_CO_1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.State != cache.StatePending || got.Description != e.Description {
		t.Errorf("got %+v", got)
	}

	// Whole-entry replacement.
	if err := c.Put(ctx, "ws_CO_1", cache.Entry{State: cache.StateSuccess, Description: "ok"}); err != nil {
		t.Fatal(err)
	}
	got, _, _ = c.Get(ctx, "ws_CO_1")
	if got.State != cache.StateSuccess || got.Description != "ok" {
		t.Errorf("replacement not whole-entry: %+v", got)
	}

	if err := c.Remove(ctx, "ws_CO_1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "ws_CO_1"); ok {
		t.Error("entry still present after remove")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	if err := New().Remove(context.Background(), "nope"); err != nil {
		t.Fatalf("remove of missing key: %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		key := fmt.Sprintf("ws_CO_%d", i%10)
		go func() {
			defer wg.Done()
			_ = c.Put(ctx, key, cache.Entry{State: cache.StatePending})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx, key)
		}()
		go func() {
			defer wg.Done()
			_ = c.Remove(ctx, key)
		}()
	}
	wg.Wait()
}
