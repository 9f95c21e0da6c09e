package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats provides statistics about cache usage
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Size      int
}

// Memory is an in-memory TTL cache bounded by entry count
type Memory[V any] struct {
	mu         sync.RWMutex
	items      map[string]*item[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type item[V any] struct {
	value  V
	expiry time.Time
	added  time.Time
}

// NewMemory creates a cache whose entries live for ttl. maxEntries <= 0 means unbounded.
// A janitor removes expired entries every interval until Stop is called.
func NewMemory[V any](ttl time.Duration, maxEntries int, interval time.Duration) *Memory[V] {
	m := &Memory[V]{
		items:      make(map[string]*item[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	if interval > 0 {
		m.wg.Add(1)
		go m.janitor(interval)
	}

	return m
}

// Get returns the live value stored under key
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || m.now().After(it.expiry) {
		m.misses.Add(1)
		var zero V
		return zero, false
	}

	m.hits.Add(1)
	return it.value, true
}

// Set stores value under key, evicting the oldest entry when full
func (m *Memory[V]) Set(key string, value V) {
	now := m.now()

	m.mu.Lock()
	if _, exists := m.items[key]; !exists && m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.evictLocked(now)
	}
	m.items[key] = &item[V]{value: value, expiry: now.Add(m.ttl), added: now}
	m.mu.Unlock()

	m.sets.Add(1)
}

// Len returns the number of stored entries, expired or not
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Stats returns cache statistics
func (m *Memory[V]) Stats() Stats {
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Sets:      m.sets.Load(),
		Evictions: m.evictions.Load(),
		Size:      m.Len(),
	}
}

// Stop ends the janitor. Safe to call more than once.
func (m *Memory[V]) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.wg.Wait()
}

func (m *Memory[V]) janitor(interval time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Memory[V]) removeExpired() {
	now := m.now()
	m.mu.Lock()
	for key, it := range m.items {
		if now.After(it.expiry) {
			delete(m.items, key)
			m.evictions.Add(1)
		}
	}
	m.mu.Unlock()
}

// evictLocked drops expired entries, or the oldest one if none have expired
func (m *Memory[V]) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	removed := false

	for key, it := range m.items {
		if now.After(it.expiry) {
			delete(m.items, key)
			m.evictions.Add(1)
			removed = true
			continue
		}
		if oldestKey == "" || it.added.Before(oldest) {
			oldestKey, oldest = key, it.added
		}
	}

	if !removed && oldestKey != "" {
		delete(m.items, oldestKey)
		m.evictions.Add(1)
	}
}
