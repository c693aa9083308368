// Package store keeps dedup keys in memory (Bloom filter + LRU) and across runs (SQLite).
package store

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DedupStore provides thread-safe deduplication of song keys using Bloom filters and LRU cache.
// Once more than maxKeys keys are stored the oldest ones are evicted.
type DedupStore struct {
	keys                   map[string]struct{}
	bloom                  *bloom.BloomFilter
	lru                    *lru.Cache[string, struct{}]
	mutex                  sync.RWMutex
	maxKeys                int
	bloomFalsePositiveRate float64
}

// NewDedupStore creates a new deduplication store with the specified capacity and false positive rate.
func NewDedupStore(maxKeys int, bloomFalsePositiveRate float64) *DedupStore {
	if maxKeys <= 0 || maxKeys > int(^uint(0)>>1) {
		panic("maxKeys value out of range")
	}

	ds := &DedupStore{
		keys:                   make(map[string]struct{}),
		bloom:                  bloom.NewWithEstimates(uint(maxKeys), bloomFalsePositiveRate),
		maxKeys:                maxKeys,
		bloomFalsePositiveRate: bloomFalsePositiveRate,
	}
	// lru.NewWithEvict only fails for non-positive sizes.
	ds.lru, _ = lru.NewWithEvict[string, struct{}](maxKeys, ds.onEvict)
	return ds
}

// Has checks if a key exists in the deduplication store.
func (ds *DedupStore) Has(key string) bool {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	if !ds.bloom.TestString(key) {
		return false
	}

	_, exists := ds.keys[key]
	return exists
}

// Add adds a key to the deduplication store.
func (ds *DedupStore) Add(key string) {
	ds.AddIfAbsent(key)
}

// AddIfAbsent adds a key and reports whether it was new.
func (ds *DedupStore) AddIfAbsent(key string) bool {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if _, exists := ds.keys[key]; exists {
		return false
	}

	ds.keys[key] = struct{}{}
	ds.bloom.AddString(key)
	ds.lru.Add(key, struct{}{})
	return true
}

// Load clears the store and loads the provided keys, oldest first.
func (ds *DedupStore) Load(keys []string) {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	ds.clear()

	for _, key := range keys {
		if key != "" {
			ds.keys[key] = struct{}{}
			ds.bloom.AddString(key)
			ds.lru.Add(key, struct{}{})
		}
	}
}

// Size returns the number of keys currently stored.
func (ds *DedupStore) Size() int {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return len(ds.keys)
}

func (ds *DedupStore) clear() {
	ds.lru.Purge()
	ds.keys = make(map[string]struct{})
	ds.bloom = bloom.NewWithEstimates(uint(ds.maxKeys), ds.bloomFalsePositiveRate)
}

// onEvict keeps the key map in step with the LRU. It runs with ds.mutex held.
func (ds *DedupStore) onEvict(key string, _ struct{}) {
	delete(ds.keys, key)
}
