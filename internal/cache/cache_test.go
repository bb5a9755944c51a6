// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheInsertAndLookup(t *testing.T) {
	c := New(2)
	k := Key{OwnerID: 1, Offset: 0}
	c.Insert(k, []byte("hello"))

	v, ok := c.Lookup(k)
	require.True(t, ok)
	require.Equal(t, "hello", string(v.Bytes()))
}

func TestCacheLookupMiss(t *testing.T) {
	c := New(2)
	_, ok := c.Lookup(Key{OwnerID: 1, Offset: 0})
	require.False(t, ok)
}

// TestCacheLRUEvictsLeastRecentlyTouched is spec.md §8 scenario 8: a
// 2-entry cache, insert "1" then "2", touch "1" (Lookup moves it to
// most-recently-used), then insert "3" — exactly one eviction, and it must
// be "2", the least-recently-touched entry, not "1".
func TestCacheLRUEvictsLeastRecentlyTouched(t *testing.T) {
	c := New(2)
	k1 := Key{OwnerID: 1, Offset: 1}
	k2 := Key{OwnerID: 1, Offset: 2}
	k3 := Key{OwnerID: 1, Offset: 3}

	c.Insert(k1, []byte("1"))
	c.Insert(k2, []byte("2"))
	_, ok := c.Lookup(k1)
	require.True(t, ok)

	c.Insert(k3, []byte("3"))

	require.Equal(t, 2, c.Len())
	_, ok = c.Lookup(k2)
	require.False(t, ok, "k2 should have been evicted as least-recently-touched")
	v1, ok := c.Lookup(k1)
	require.True(t, ok, "k1 should survive: it was touched before k3 was inserted")
	require.Equal(t, "1", string(v1.Bytes()))
	v3, ok := c.Lookup(k3)
	require.True(t, ok)
	require.Equal(t, "3", string(v3.Bytes()))
}

func TestCacheReinsertMovesToFrontWithoutDuplicating(t *testing.T) {
	c := New(2)
	k1 := Key{OwnerID: 1, Offset: 1}
	k2 := Key{OwnerID: 1, Offset: 2}
	k3 := Key{OwnerID: 1, Offset: 3}

	c.Insert(k1, []byte("1"))
	c.Insert(k2, []byte("2"))
	c.Insert(k1, []byte("1-updated")) // re-insert: refreshes k1, doesn't grow the list
	c.Insert(k3, []byte("3"))         // capacity 2: evicts k2, the LRU entry

	require.Equal(t, 2, c.Len())
	_, ok := c.Lookup(k2)
	require.False(t, ok)
	v1, ok := c.Lookup(k1)
	require.True(t, ok)
	require.Equal(t, "1-updated", string(v1.Bytes()))
}

func TestCacheErase(t *testing.T) {
	c := New(2)
	k := Key{OwnerID: 2, Offset: 5}
	c.Insert(k, []byte("x"))
	c.Erase(k)
	_, ok := c.Lookup(k)
	require.False(t, ok)
}

func TestCacheLen(t *testing.T) {
	c := New(16)
	for i := uint64(0); i < 10; i++ {
		c.Insert(Key{OwnerID: 1, Offset: i}, []byte("v"))
	}
	require.Equal(t, 10, c.Len())
}

func TestCacheNewIDIsMonotonicAndUnique(t *testing.T) {
	c := New(2)
	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		id := c.NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestCacheMetricsCollectorsRegistrable(t *testing.T) {
	c := New(2)
	require.Len(t, c.Collectors(), 3)
}
