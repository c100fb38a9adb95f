// Package lru is a thread-safe least-recently-used cache built on the
// lock-free list instead of a mutex-guarded one: the hot path (Get on a
// resident key) only ever drives the list's lock-free Remove/PushFront
// pair, and eviction is pushed to a background worker the same way the
// original cache does it, via a sync.Cond rather than polling.
package lru

import (
	"errors"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/hashicorp/golang-lru/simplelru"
	cmap "github.com/orcaman/concurrent-map"
	"go.uber.org/zap"

	"github.com/concurrent-ds/lockfreelist/internal/logging"
	"github.com/concurrent-ds/lockfreelist/list"
)

// entry is both the key index's value and, by embedding list.Node, a
// member of the order list: one allocation serves both structures.
type entry struct {
	list.Node
	key   string
	value interface{}
}

func asEntry(n *list.Node) *entry {
	return (*entry)(unsafe.Pointer(n))
}

// LRU is a thread-safe LRU cache keyed by string.
type LRU struct {
	capacity int
	len      int64 // atomic
	items    cmap.ConcurrentMap
	order    *list.List
	onEvict  simplelru.EvictCallback
	cleanup  sync.Cond
}

// New returns an LRU cache holding at most size entries.
func New(size int) (*LRU, error) {
	return NewWithEvict(size, nil)
}

// NewWithEvict is New with a callback invoked, outside any lock, for
// every entry the background worker evicts.
func NewWithEvict(size int, onEvict simplelru.EvictCallback) (*LRU, error) {
	if size <= 0 {
		return nil, errors.New("lru: size must be positive")
	}
	c := &LRU{
		capacity: size,
		items:    cmap.New(),
		order:    list.New(),
		onEvict:  onEvict,
		cleanup:  *sync.NewCond(new(sync.Mutex)),
	}
	go c.cleanupWorker()
	return c, nil
}

func (c *LRU) cleanupWorker() {
	c.cleanup.L.Lock()
	defer c.cleanup.L.Unlock()

	for {
		for n := c.Len(); n > c.capacity; n = c.Len() {
			// Claim one eviction by decrementing the counter so other
			// callers racing Add see room before the pop actually runs.
			atomic.AddInt64(&c.len, -1)
			c.cleanup.L.Unlock()

			c.evictOldest()

			c.cleanup.L.Lock()
		}
		c.cleanup.Wait()
	}
}

// evictOldest pops and removes the current tail of the order list. It is
// called with the len counter already claimed by the caller; on a failed
// pop it returns the claim so a later signal retries.
func (c *LRU) evictOldest() {
	it, err := c.order.End().Prev()
	if err != nil {
		atomic.AddInt64(&c.len, 1)
		return
	}
	n, err := it.Value()
	if err != nil {
		atomic.AddInt64(&c.len, 1)
		return
	}
	e := asEntry(n)

	if err := c.order.Remove(n); err != nil {
		atomic.AddInt64(&c.len, 1)
		return
	}

	var evicted *entry
	c.items.RemoveCb(e.key, func(key string, v interface{}, exists bool) bool {
		if !exists || v.(*entry) != e {
			return false
		}
		evicted = v.(*entry)
		return true
	})

	if evicted != nil {
		logging.L().Debug("lru: evicted entry", zap.String("key", evicted.key))
		if c.onEvict != nil {
			c.onEvict(evicted.key, evicted.value)
		}
	}
}

// Add inserts or updates key's value and marks it most recently used.
// It reports whether the cache is now over capacity; the actual
// eviction runs asynchronously on the background worker, not inline.
func (c *LRU) Add(key string, value interface{}) bool {
	var created *entry
	raw := c.items.Upsert(key, nil, func(exists bool, valueInMap, _ interface{}) interface{} {
		if exists {
			e := valueInMap.(*entry)
			e.value = value
			return e
		}
		e := &entry{key: key, value: value}
		created = e
		return e
	})

	if created == nil {
		c.touch(raw.(*entry))
		return false
	}

	if err := c.order.PushFront(&created.Node); err != nil {
		panic(err) // created is fresh and non-nil; PushFront cannot fail here
	}

	n := atomic.AddInt64(&c.len, 1)
	if n > int64(c.capacity) {
		c.cleanup.Signal()
		return true
	}
	return false
}

// touch moves e's node to the front of the order list. The list has no
// dedicated move-to-front primitive, so this is a plain remove-then-push;
// a concurrent Get racing the same key sees at worst a brief gap where
// e is absent from the order list, never a duplicate or lost entry.
func (c *LRU) touch(e *entry) {
	if err := c.order.Remove(&e.Node); err != nil {
		return
	}
	_ = c.order.PushFront(&e.Node)
}

// Get returns key's value and marks it most recently used.
func (c *LRU) Get(key string) (value interface{}, ok bool) {
	raw, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	e := raw.(*entry)
	c.touch(e)
	return e.value, true
}

// Peek returns key's value without affecting its recency.
func (c *LRU) Peek(key string) (value interface{}, ok bool) {
	raw, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	return raw.(*entry).value, true
}

// Remove evicts key immediately, if present.
func (c *LRU) Remove(key string) bool {
	raw, found := c.items.Get(key)
	if !found {
		return false
	}
	e := raw.(*entry)
	c.items.Remove(key)
	if err := c.order.Remove(&e.Node); err == nil {
		atomic.AddInt64(&c.len, -1)
	}
	return true
}

// Len returns the number of entries currently in the cache.
func (c *LRU) Len() int {
	return int(atomic.LoadInt64(&c.len))
}
