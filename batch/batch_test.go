// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package batch

import (
	"fmt"
	"testing"

	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/internal/memtable"
	"github.com/stretchr/testify/require"
)

func TestBatchPutDeleteIterate(t *testing.T) {
	b := New()
	b.Put([]byte("foo"), []byte("bar"))
	b.Delete([]byte("box"))
	b.Put([]byte("baz"), []byte("boo"))

	require.Equal(t, 3, b.Count())
	require.False(t, b.Empty())

	var out string
	err := b.Iterate(func(kind base.InternalKeyKind, key, value []byte) error {
		switch kind {
		case base.InternalKeyKindSet:
			out += fmt.Sprintf("Put(%s, %s)", key, value)
		case base.InternalKeyKindDelete:
			out += fmt.Sprintf("Delete(%s)", key)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "Put(foo, bar)Delete(box)Put(baz, boo)", out)
}

func TestBatchDataLoadRoundTrip(t *testing.T) {
	b := New()
	b.Put([]byte("k1"), []byte("v1"))
	b.Delete([]byte("k2"))
	b.SetSeqNum(100)

	encoded := append([]byte(nil), b.Data()...)

	loaded, err := Load(encoded)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Count())
	require.Equal(t, base.SeqNum(100), loaded.SeqNum())

	var kinds []base.InternalKeyKind
	require.NoError(t, loaded.Iterate(func(kind base.InternalKeyKind, key, value []byte) error {
		kinds = append(kinds, kind)
		return nil
	}))
	require.Equal(t, []base.InternalKeyKind{base.InternalKeyKindSet, base.InternalKeyKindDelete}, kinds)
}

func TestBatchLoadRejectsCorruptedCount(t *testing.T) {
	b := New()
	b.Put([]byte("k"), []byte("v"))
	data := append([]byte(nil), b.Data()...)

	// Lie about the record count in the header.
	base.EncodeFixed32(data[8:12], 99)

	_, err := Load(data)
	require.Error(t, err)
}

func TestBatchLoadRejectsTruncatedBuffer(t *testing.T) {
	_, err := Load([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestBatchInsertIntoAssignsContiguousSeqNums(t *testing.T) {
	b := New()
	b.Put([]byte("a"), []byte("1"))
	b.Put([]byte("b"), []byte("2"))
	b.Delete([]byte("c"))
	b.SetSeqNum(10)

	mt := memtable.New(base.InternalKeyComparer(base.DefaultComparer), 4<<10)
	require.NoError(t, b.InsertInto(mt))

	it := mt.NewIter()
	var seqs []base.SeqNum
	for ok := it.First(); ok; ok = it.Next() {
		seqs = append(seqs, it.Key().SeqNum())
	}
	require.ElementsMatch(t, []base.SeqNum{10, 11, 12}, seqs)

	first, last := mt.SeqNumRange()
	require.Equal(t, base.SeqNum(10), first)
	require.Equal(t, base.SeqNum(12), last)
}
