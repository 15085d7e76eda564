package cache

import (
	"context"
	"sync"
	"time"
)

// MemCache is a small in-memory TTL cache sitting in front of Redis.
type MemCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Close()
}

type memCache struct {
	entries       sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

type memCacheItem struct {
	value     any
	expiresAt time.Time
}

// NewMemCache creates the cache and starts its cleanup worker.
func NewMemCache() MemCache {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &memCache{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(5 * time.Minute),
		ctx:           ctx,
	}

	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-mc.ctx.Done():
				return
			}
		}
	}()

	return mc
}

// cleanup drops every expired key.
func (mc *memCache) cleanup() {
	now := time.Now()
	mc.entries.Range(func(key, value any) bool {
		item := value.(*memCacheItem)
		if now.After(item.expiresAt) {
			mc.entries.Delete(key)
		}
		return true
	})
}

// Close shuts down the cleanup worker.
func (mc *memCache) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the cached value, or nil when missing or expired.
func (mc *memCache) Get(key string) any {
	value, exists := mc.entries.Load(key)
	if !exists {
		return nil
	}

	item := value.(*memCacheItem)
	if time.Now().After(item.expiresAt) {
		mc.entries.Delete(key)
		return nil
	}

	return item.value
}

// Set stores a value with the given TTL.
func (mc *memCache) Set(key string, value any, ttl time.Duration) {
	mc.entries.Store(key, &memCacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}
