package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-power-overlay/internal/util"
)

// MemoryCacheEntry wraps a cached value with access tracking
type MemoryCacheEntry[V any] struct {
	Value        V
	LastAccessed int64
	Hits         int
}

// MemoryCache is a small keyed in-memory cache safe for concurrent use
type MemoryCache[V any] struct {
	mu      sync.RWMutex
	name    string
	entries map[string]*MemoryCacheEntry[V]
}

func NewMemoryCache[V any](name string) *MemoryCache[V] {
	return &MemoryCache[V]{
		name:    name,
		entries: make(map[string]*MemoryCacheEntry[V]),
	}
}

func (mc *MemoryCache[V]) Set(key string, value V) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries[key] = &MemoryCacheEntry[V]{
		Value:        value,
		LastAccessed: time.Now().Unix(),
	}
}

func (mc *MemoryCache[V]) Get(key string) (V, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[key]
	if !ok || entry == nil {
		var zero V
		return zero, false
	}
	entry.LastAccessed = time.Now().Unix()
	entry.Hits++
	return entry.Value, true
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
// Errors from compute are returned and nothing is cached.
func (mc *MemoryCache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if value, ok := mc.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	mc.Set(key, value)
	return value, nil
}

func (mc *MemoryCache[V]) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// Clear drops all entries
func (mc *MemoryCache[V]) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	dropped := len(mc.entries)
	mc.entries = make(map[string]*MemoryCacheEntry[V])
	util.LogDebug(fmt.Sprintf("MemoryCache[%s]: cleared %d entries", mc.name, dropped))
}
