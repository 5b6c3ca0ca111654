package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/limbo/coco/pkg/entity"
)

// MemoryCache keeps encoded snapshots in process memory. Nothing survives a
// restart; used when no durable cache is configured and in tests.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[uuid.UUID][]byte),
	}
}

func (c *MemoryCache) Save(uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error {
	raw, err := encode(snapshot)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items[uid] = raw
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Load(uid uuid.UUID) (*entity.UserPracticeSnapshot, error) {
	c.mu.RLock()
	raw, ok := c.items[uid]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decode(raw)
}

func (c *MemoryCache) Clear(uid uuid.UUID) error {
	c.mu.Lock()
	delete(c.items, uid)
	c.mu.Unlock()
	return nil
}
