// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"github.com/lessdb/lessdb/bloom"
	"github.com/lessdb/lessdb/internal/base"
)

// filterBlockWriter accumulates one Bloom filter per data block, per the
// "per-block full filter" resolution in SPEC_FULL.md's Open Questions: each
// data block gets its own filter built from that block's user keys, stored
// back to back, with a trailing offset array so a reader can slice out the
// filter belonging to the i-th data block without scanning the others.
type filterBlockWriter struct {
	policy  *bloom.FilterPolicy
	buf     []byte
	offsets []uint32
	keys    [][]byte
}

func newFilterBlockWriter(policy *bloom.FilterPolicy) *filterBlockWriter {
	return &filterBlockWriter{policy: policy}
}

func (f *filterBlockWriter) addKey(userKey []byte) {
	f.keys = append(f.keys, append([]byte(nil), userKey...))
}

// finishBlock closes out the filter for the data block just flushed,
// appending it to buf and recording its starting offset. Called once per
// flushed data block; Writer.flush skips empty blocks, so every filter
// covers at least one key.
func (f *filterBlockWriter) finishBlock() {
	f.offsets = append(f.offsets, uint32(len(f.buf)))
	f.buf = f.policy.Create(f.buf, f.keys)
	f.keys = f.keys[:0]
}

func (f *filterBlockWriter) empty() bool { return len(f.offsets) == 0 }

// finish appends the offset array and its own starting offset, and returns
// the finished filter block bytes.
func (f *filterBlockWriter) finish() []byte {
	offsetsStart := uint32(len(f.buf))
	for _, off := range f.offsets {
		f.buf = base.EncodeFixed32Append(f.buf, off)
	}
	f.buf = base.EncodeFixed32Append(f.buf, offsetsStart)
	return f.buf
}

// filterBlockReader looks up the filter for a given data block index within
// a decoded filter block.
type filterBlockReader struct {
	data          []byte
	offsetsStart  uint32
	numFilters    int
}

func newFilterBlockReader(data []byte) (*filterBlockReader, error) {
	if len(data) < 4 {
		return nil, base.CorruptionErrorf("sstable: filter block too small")
	}
	offsetsStart := base.DecodeFixed32(data[len(data)-4:])
	if int(offsetsStart) > len(data)-4 {
		return nil, base.CorruptionErrorf("sstable: filter block offsets overrun")
	}
	numFilters := (len(data) - 4 - int(offsetsStart)) / 4
	return &filterBlockReader{data: data, offsetsStart: offsetsStart, numFilters: numFilters}, nil
}

// filterFor returns the filter bytes for data block index i, or nil if i is
// out of range (the caller then falls through to an unconditional fetch).
func (f *filterBlockReader) filterFor(i int) []byte {
	if f == nil || i < 0 || i >= f.numFilters {
		return nil
	}
	start := base.DecodeFixed32(f.data[int(f.offsetsStart)+4*i:])
	var end uint32
	if i+1 < f.numFilters {
		end = base.DecodeFixed32(f.data[int(f.offsetsStart)+4*(i+1):])
	} else {
		end = f.offsetsStart
	}
	if end < start || int(end) > len(f.data) {
		return nil
	}
	return f.data[start:end]
}
