// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package batch implements the write-batch buffer format: a group of Put
// and Delete operations that commit atomically and are assigned a
// contiguous run of sequence numbers when applied to a memtable.
package batch

import (
	"github.com/lessdb/lessdb/internal/base"
)

// headerLen is the size of the batch header: sequence number (8 bytes) ‖
// record count (4 bytes).
const headerLen = 12

// Batch accumulates Put/Delete operations into the wire format spec.md
// §4.P describes: a header followed by one variable-length record per
// operation, each record ‖ kind byte ‖ length-prefixed key [‖
// length-prefixed value for Put].
type Batch struct {
	data  []byte
	count uint32
}

// New returns an empty batch with its header reserved.
func New() *Batch {
	b := &Batch{data: make([]byte, headerLen)}
	return b
}

// Put appends a Set record.
func (b *Batch) Put(key, value []byte) {
	b.data = append(b.data, byte(base.InternalKeyKindSet))
	b.data = base.PutLengthPrefixedBytes(b.data, key)
	b.data = base.PutLengthPrefixedBytes(b.data, value)
	b.count++
}

// Delete appends a Delete (tombstone) record.
func (b *Batch) Delete(key []byte) {
	b.data = append(b.data, byte(base.InternalKeyKindDelete))
	b.data = base.PutLengthPrefixedBytes(b.data, key)
	b.count++
}

// Count returns the number of records in the batch.
func (b *Batch) Count() int { return int(b.count) }

// Empty reports whether the batch holds no records.
func (b *Batch) Empty() bool { return b.count == 0 }

// Len returns the encoded size of the batch, header included.
func (b *Batch) Len() int { return len(b.data) }

// SetSeqNum sets the sequence number assigned to the batch's first record;
// InsertInto assigns seq, seq+1, ... to the records that follow it in
// order. This is the resolution to SPEC_FULL.md's "sequence source" Open
// Question: the batch owns and carries its own base sequence number rather
// than receiving one from a separate counter at apply time.
func (b *Batch) SetSeqNum(seq base.SeqNum) {
	base.EncodeFixed64(b.data[0:8], uint64(seq))
}

// SeqNum returns the batch's base sequence number.
func (b *Batch) SeqNum() base.SeqNum {
	return base.SeqNum(base.DecodeFixed64(b.data[0:8]))
}

// Data returns the batch's encoded representation (the form persisted to
// the write-ahead log), header included.
func (b *Batch) Data() []byte {
	base.EncodeFixed32(b.data[8:12], b.count)
	return b.data
}

// Load decodes a batch previously produced by Data, aliasing the given
// slice.
func Load(data []byte) (*Batch, error) {
	if len(data) < headerLen {
		return nil, base.CorruptionErrorf("batch: buffer shorter than header (%d bytes)", len(data))
	}
	count := base.DecodeFixed32(data[8:12])
	b := &Batch{data: data, count: count}
	// Validate the record stream once up front so later Iterate/InsertInto
	// calls don't need to handle malformed input mid-application.
	n := 0
	if err := b.Iterate(func(base.InternalKeyKind, []byte, []byte) error {
		n++
		return nil
	}); err != nil {
		return nil, err
	}
	if uint32(n) != count {
		return nil, base.CorruptionErrorf("batch: header count %d does not match %d records", count, n)
	}
	return b, nil
}

// Iterate calls fn once per record, in order. It returns the first error
// fn returns, or a Corruption error if the record stream is malformed.
func (b *Batch) Iterate(fn func(kind base.InternalKeyKind, key, value []byte) error) error {
	p := b.data[headerLen:]
	for len(p) > 0 {
		kind := base.InternalKeyKind(p[0])
		p = p[1:]

		key, rest, ok := base.GetLengthPrefixedBytes(p)
		if !ok {
			return base.CorruptionErrorf("batch: truncated key")
		}
		p = rest

		var value []byte
		if kind == base.InternalKeyKindSet {
			value, rest, ok = base.GetLengthPrefixedBytes(p)
			if !ok {
				return base.CorruptionErrorf("batch: truncated value")
			}
			p = rest
		} else if kind != base.InternalKeyKindDelete {
			return base.CorruptionErrorf("batch: unknown record kind %d", kind)
		}

		if err := fn(kind, key, value); err != nil {
			return err
		}
	}
	return nil
}

// memtableInserter is the subset of *memtable.MemTable InsertInto needs,
// kept narrow so this package does not import internal/memtable (which
// would otherwise create an import cycle with callers that wire both
// together, e.g. a future db package).
type memtableInserter interface {
	Add(seq base.SeqNum, kind base.InternalKeyKind, key, value []byte)
}

// InsertInto applies every record in the batch to mt, assigning sequence
// numbers seq, seq+1, ... in insertion order starting from the batch's own
// SeqNum. Grounded on original_source/src/MemTable.cc's batch-application
// loop.
func (b *Batch) InsertInto(mt memtableInserter) error {
	seq := b.SeqNum()
	return b.Iterate(func(kind base.InternalKeyKind, key, value []byte) error {
		mt.Add(seq, kind, key, value)
		seq++
		return nil
	})
}
