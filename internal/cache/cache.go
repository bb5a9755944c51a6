// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package cache implements the block cache: an LRU of decoded block buffers
// keyed by (owner_id, block_offset).
package cache

import (
	"container/list"
	"sync"

	"github.com/cockroachdb/swiss"
)

// Key identifies a cached block: the owning table's id plus the block's
// byte offset within that table's file.
type Key struct {
	OwnerID uint64
	Offset  uint64
}

// Value is a typed handle to a cached block's decoded bytes. It replaces
// the source engine's opaque any-typed cache value (spec.md §9 Open
// Questions: "Block-cache value type").
type Value struct {
	buf []byte
}

// Bytes returns the decoded block bytes the handle refers to.
func (v *Value) Bytes() []byte { return v.buf }

type entry struct {
	key   Key
	value *Value
}

// Cache is a single doubly linked list (LRU order) plus a swiss-table hash
// index, both guarded by one mutex, per spec.md §4.O / §5 ("a coarse mutex
// guards both the hash map and the LRU list").
type Cache struct {
	mu          sync.Mutex
	capacity    int
	ll          *list.List // MRU at Front, LRU at Back
	index       *swiss.Map[Key, *list.Element]
	metrics     metrics
	nextOwnerID uint64
	ownerMu     sync.Mutex
}

// New returns a Cache with room for capacity entries.
func New(capacity int) *Cache {
	c := &Cache{
		capacity: capacity,
		ll:       list.New(),
		index:    swiss.New[Key, *list.Element](8),
	}
	c.metrics.init()
	return c
}

// NewID returns a fresh, monotonically increasing owner id for a newly
// opened table to key its blocks by.
func (c *Cache) NewID() uint64 {
	c.ownerMu.Lock()
	defer c.ownerMu.Unlock()
	c.nextOwnerID++
	return c.nextOwnerID
}

// Insert adds buf to the cache under key, evicting the least-recently-used
// entry first if the cache is at capacity (or the prior record for key, if
// key is already present), and returns a handle that stays valid until the
// caller drops it or the cache evicts it.
func (c *Cache) Insert(key Key, buf []byte) *Value {
	v := &Value{buf: buf}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index.Get(key); ok {
		c.ll.Remove(el)
		c.index.Delete(key)
	}
	for c.ll.Len() >= c.capacity && c.capacity > 0 {
		back := c.ll.Back()
		if back == nil {
			break
		}
		ev := back.Value.(*entry)
		c.ll.Remove(back)
		c.index.Delete(ev.key)
		c.metrics.evictions.Inc()
	}
	el := c.ll.PushFront(&entry{key: key, value: v})
	c.index.Put(key, el)
	return v
}

// Lookup returns the cached Value for key, moving it to most-recently-used
// on a hit.
func (c *Cache) Lookup(key Key) (*Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index.Get(key)
	if !ok {
		c.metrics.misses.Inc()
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.metrics.hits.Inc()
	return el.Value.(*entry).value, true
}

// Erase removes key from the cache, if present.
func (c *Cache) Erase(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index.Get(key); ok {
		c.ll.Remove(el)
		c.index.Delete(key)
	}
}

// Len returns the total number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
