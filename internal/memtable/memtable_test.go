// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"testing"

	"github.com/lessdb/lessdb/internal/base"
	"github.com/stretchr/testify/require"
)

func newTestMemTable() *MemTable {
	return New(base.InternalKeyComparer(base.DefaultComparer), 4<<10)
}

func TestMemTableAddAndIterate(t *testing.T) {
	m := newTestMemTable()
	m.Add(1, base.InternalKeyKindSet, []byte("b"), []byte("vb"))
	m.Add(2, base.InternalKeyKindSet, []byte("a"), []byte("va"))
	m.Add(3, base.InternalKeyKindSet, []byte("c"), []byte("vc"))

	it := m.NewIter()
	require.True(t, it.First())
	require.Equal(t, "a", string(it.Key().UserKey))
	require.Equal(t, "va", string(it.Value()))
	require.True(t, it.Next())
	require.Equal(t, "b", string(it.Key().UserKey))
	require.True(t, it.Next())
	require.Equal(t, "c", string(it.Key().UserKey))
	require.False(t, it.Next())
}

func TestMemTableMultipleVersionsNewestFirst(t *testing.T) {
	m := newTestMemTable()
	m.Add(1, base.InternalKeyKindSet, []byte("k"), []byte("v1"))
	m.Add(5, base.InternalKeyKindSet, []byte("k"), []byte("v5"))
	m.Add(3, base.InternalKeyKindSet, []byte("k"), []byte("v3"))

	it := m.NewIter()
	require.True(t, it.First())
	require.Equal(t, base.SeqNum(5), it.Key().SeqNum())
	require.True(t, it.Next())
	require.Equal(t, base.SeqNum(3), it.Key().SeqNum())
	require.True(t, it.Next())
	require.Equal(t, base.SeqNum(1), it.Key().SeqNum())
	require.False(t, it.Next())
}

func TestMemTableSeekGE(t *testing.T) {
	m := newTestMemTable()
	m.Add(1, base.InternalKeyKindSet, []byte("apple"), []byte("1"))
	m.Add(2, base.InternalKeyKindSet, []byte("cherry"), []byte("2"))
	m.Add(3, base.InternalKeyKindSet, []byte("banana"), []byte("3"))

	it := m.NewIter()
	require.True(t, it.SeekGE([]byte("banana"), base.SeqNumMax, base.InternalKeyKindSet))
	require.Equal(t, "banana", string(it.Key().UserKey))

	require.True(t, it.SeekGE([]byte("b"), base.SeqNumMax, base.InternalKeyKindSet))
	require.Equal(t, "banana", string(it.Key().UserKey))

	require.False(t, it.SeekGE([]byte("z"), base.SeqNumMax, base.InternalKeyKindSet))
}

func TestMemTableSeqNumRange(t *testing.T) {
	m := newTestMemTable()
	first, last := m.SeqNumRange()
	require.Zero(t, first)
	require.Zero(t, last)

	m.Add(5, base.InternalKeyKindSet, []byte("a"), nil)
	m.Add(2, base.InternalKeyKindSet, []byte("b"), nil)
	m.Add(9, base.InternalKeyKindSet, []byte("c"), nil)

	first, last = m.SeqNumRange()
	require.Equal(t, base.SeqNum(2), first)
	require.Equal(t, base.SeqNum(9), last)
}

func TestMemTableApproximateMemoryUsageGrows(t *testing.T) {
	m := newTestMemTable()
	before := m.ApproximateMemoryUsage()
	m.Add(1, base.InternalKeyKindSet, []byte("some-key"), []byte("some-value"))
	after := m.ApproximateMemoryUsage()
	require.Greater(t, after, before)
}

func TestMemTableDeletionEntryHasEmptyValue(t *testing.T) {
	m := newTestMemTable()
	m.Add(1, base.InternalKeyKindSet, []byte("k"), []byte("v"))
	m.Add(2, base.InternalKeyKindDelete, []byte("k"), nil)

	it := m.NewIter()
	require.True(t, it.First())
	require.Equal(t, base.InternalKeyKindDelete, it.Key().Kind())
	require.Empty(t, it.Value())
}
