package storage

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 30 * time.Minute

// MemoryStore keeps slots in process memory. Entries never expire unless a ttl is given.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory store. A zero ttl keeps entries until removed.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{cache: gocache.New(ttl, memoryCleanupInterval)}
}

func (s *MemoryStore) Get(_ context.Context, owner, key string) ([]byte, error) {
	v, found := s.cache.Get(slotKey(owner, key))
	if !found {
		return nil, ErrNotFound
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Set(_ context.Context, owner, key string, value []byte) error {
	s.cache.SetDefault(slotKey(owner, key), append([]byte(nil), value...))
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, owner, key string) error {
	s.cache.Delete(slotKey(owner, key))
	return nil
}
