// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memtable implements the in-memory staging area for recent
// mutations: a skip list over an arena, keyed by packed (internal_key,
// value) entries.
//
// Reference: RocksDB-lineage db/memtable.cc; original_source/src/MemTable.cc.
package memtable

import (
	"github.com/lessdb/lessdb/internal/arenaskl"
	"github.com/lessdb/lessdb/internal/base"
)

// MemTable holds a skip list of packed (internal_key, value) entries. Entry
// layout: varlen(internal_key) ‖ varlen(value), where varlen(x) is a
// varint32 length followed by the raw bytes. Add allocates one contiguous
// entry from the arena and inserts it into the skip list; Iterator.SeekGE
// positions an iterator at the first entry whose internal key is >= the
// lookup key.
type MemTable struct {
	arena    *arenaskl.Arena
	skl      *arenaskl.Skiplist
	cmp      *base.Comparer // the internal-key comparer
	seqRange struct {
		first, last base.SeqNum
	}
}

// New creates an empty MemTable ordered by the given internal-key
// comparer (see base.InternalKeyComparer).
func New(cmp *base.Comparer, arenaChunkSize uint32) *MemTable {
	m := &MemTable{
		arena: arenaskl.NewArena(arenaChunkSize),
		cmp:   cmp,
	}
	m.skl = arenaskl.NewSkiplist(func(a, b []byte) int {
		ak := decodeEntryInternalKey(a)
		bk := decodeEntryInternalKey(b)
		return cmp.Compare(ak, bk)
	})
	return m
}

// decodeEntryInternalKey extracts the internal-key slice from a packed
// entry (varlen(internal_key) ‖ varlen(value)) without touching the value.
func decodeEntryInternalKey(entry []byte) []byte {
	ik, _, ok := base.GetLengthPrefixedBytes(entry)
	if !ok {
		base.AssertionFailedf("corrupt memtable entry: truncated internal key")
	}
	return ik
}

// Add inserts (key, seq, kind, value) into the memtable. DELETION entries
// must pass an empty value; the caller (batch.Batch.InsertInto) is
// responsible for that invariant.
func (m *MemTable) Add(seq base.SeqNum, kind base.InternalKeyKind, key, value []byte) {
	ik := base.MakeInternalKey(key, seq, kind)

	entryLen := ikLen(ik) + varlenLen(len(value)) + len(value)
	buf := m.arena.Alloc(uint32(entryLen))
	buf = buf[:0]
	buf = appendInternalKeyVarlen(buf, ik)
	buf = base.PutLengthPrefixedBytes(buf, value)

	if _, inserted := m.skl.Insert(buf); !inserted {
		base.AssertionFailedf("duplicate internal key inserted into memtable: %s", ik)
	}

	if m.seqRange.first == 0 || seq < m.seqRange.first {
		m.seqRange.first = seq
	}
	if seq > m.seqRange.last {
		m.seqRange.last = seq
	}
}

func ikLen(ik base.InternalKey) int { return varlenLen(ik.Size()) + ik.Size() }

func varlenLen(n int) int {
	switch {
	case n < 1<<7:
		return 1
	case n < 1<<14:
		return 2
	case n < 1<<21:
		return 3
	case n < 1<<28:
		return 4
	default:
		return 5
	}
}

func appendInternalKeyVarlen(dst []byte, ik base.InternalKey) []byte {
	dst = base.EncodeVarint32(dst, uint32(ik.Size()))
	return ik.Encode(dst)
}

// ApproximateMemoryUsage returns the arena's reserved byte count, which the
// (out-of-scope) flush scheduler uses to decide when this memtable is full.
func (m *MemTable) ApproximateMemoryUsage() uint64 {
	return m.arena.BytesUsed()
}

// SeqNumRange returns the smallest and largest sequence numbers added so
// far. Both are zero if the memtable is empty.
func (m *MemTable) SeqNumRange() (first, last base.SeqNum) {
	return m.seqRange.first, m.seqRange.last
}

// Iterator walks memtable entries in internal-key order, decoding
// (internal key, value) lazily from each entry pointer.
type Iterator struct {
	it  *arenaskl.Iterator
	cmp *base.Comparer
}

// NewIter returns an iterator over m.
func (m *MemTable) NewIter() *Iterator {
	return &Iterator{it: m.skl.NewIter(), cmp: m.cmp}
}

// SeekGE positions the iterator at the first entry whose internal key is
// >= the internal key (key, seq, kind). Callers performing a point lookup
// typically pass the highest possible trailer for key so the first match
// returned is the newest version.
func (it *Iterator) SeekGE(key []byte, seq base.SeqNum, kind base.InternalKeyKind) bool {
	ik := base.MakeInternalKey(key, seq, kind)
	var buf []byte
	buf = appendInternalKeyVarlen(buf, ik)
	return it.it.SeekGE(buf)
}

// First positions the iterator at the smallest entry.
func (it *Iterator) First() bool { return it.it.First() }

// Next advances to the next entry.
func (it *Iterator) Next() bool { return it.it.Next() }

// Valid reports whether the iterator is positioned on an entry.
func (it *Iterator) Valid() bool { return it.it.Valid() }

// Key decodes the internal key at the iterator's current position.
func (it *Iterator) Key() base.InternalKey {
	raw, _, ok := base.GetLengthPrefixedBytes(it.it.Key())
	if !ok {
		base.AssertionFailedf("corrupt memtable entry: truncated internal key")
	}
	ik, ok := base.DecodeInternalKey(raw)
	if !ok {
		base.AssertionFailedf("corrupt memtable entry: undersized internal key")
	}
	return ik
}

// Value decodes the value at the iterator's current position.
func (it *Iterator) Value() []byte {
	_, rest, ok := base.GetLengthPrefixedBytes(it.it.Key())
	if !ok {
		base.AssertionFailedf("corrupt memtable entry: truncated internal key")
	}
	v, _, ok := base.GetLengthPrefixedBytes(rest)
	if !ok {
		base.AssertionFailedf("corrupt memtable entry: truncated value")
	}
	return v
}
