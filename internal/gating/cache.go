package gating

import (
	"hash/fnv"
	"sort"
	"sync"

	"brainink_backend/internal/model"
)

// OrderCache memoizes ResolveOrder keyed by a hash of the definition set.
// ResolveOrder is pure, so the cached map stays valid until the definitions
// change; whichever layer owns the course session owns the cache.
type OrderCache struct {
	mu   sync.Mutex
	key  uint64
	prev PreviousMap
}

func (c *OrderCache) Resolve(definitions []model.Assignment) PreviousMap {
	key := hashDefinitions(definitions)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prev != nil && c.key == key {
		return c.prev
	}
	c.prev = ResolveOrder(definitions)
	c.key = key
	return c.prev
}

// hashDefinitions is order-insensitive: the same definition set hashes the
// same regardless of fetch ordering.
func hashDefinitions(definitions []model.Assignment) uint64 {
	keys := make([]uint64, 0, len(definitions))
	for _, d := range definitions {
		h := fnv.New64a()
		var buf [8]byte
		putUint64(&buf, uint64(d.ID))
		h.Write(buf[:])
		putUint64(&buf, uint64(d.CreatedAt.UnixNano()))
		h.Write(buf[:])
		if d.BlockID != nil {
			putUint64(&buf, uint64(*d.BlockID))
			h.Write(buf[:])
		}
		keys = append(keys, h.Sum64())
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	h := fnv.New64a()
	var buf [8]byte
	for _, k := range keys {
		putUint64(&buf, k)
		h.Write(buf[:])
	}
	return h.Sum64()
}

func putUint64(buf *[8]byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}
