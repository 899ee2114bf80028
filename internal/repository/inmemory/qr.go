package inmemory

import (
	"context"
	"sync"
	"time"
)

const defaultQRCacheEntries = 4096

// QRImageCache keeps rendered QR images in process memory until they expire.
type QRImageCache struct {
	mu       sync.RWMutex
	items    map[string]imageItem
	maxItems int
	now      func() time.Time
}

type imageItem struct {
	value     []byte
	expiresAt time.Time
}

func NewQRImageCache(maxItems int) *QRImageCache {
	if maxItems <= 0 {
		maxItems = defaultQRCacheEntries
	}
	return &QRImageCache{
		items:    make(map[string]imageItem),
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (c *QRImageCache) Get(_ context.Context, key string) ([]byte, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return item.value, true
}

func (c *QRImageCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if len(value) == 0 || ttl <= 0 {
		c.Delete(key)
		return
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.purgeExpiredLocked(now)
		if len(c.items) >= c.maxItems {
			return
		}
	}

	c.items[key] = imageItem{
		value:     value,
		expiresAt: now.Add(ttl),
	}
}

func (c *QRImageCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *QRImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *QRImageCache) purgeExpiredLocked(now time.Time) {
	for key, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, key)
		}
	}
}
