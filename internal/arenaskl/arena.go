// Copyright 2017 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arenaskl implements a concurrent skip list backed by a bump-style
// arena: one writer inserts while any number of readers iterate or look up
// concurrently, without readers ever taking a lock.
package arenaskl

import "sync/atomic"

// defaultChunkSize is the minimum size of a chunk the arena requests from
// the runtime. A request larger than the current chunk's remaining space
// allocates a fresh chunk sized to fit it.
const defaultChunkSize = 4 << 10 // 4 KiB

// Arena is a bump-pointer region allocator. Memtable entries and the byte
// payload behind every skip-list key are carved out of it by pointer bump;
// nothing allocated from an Arena is ever freed individually — the whole
// region is reclaimed in one step when the owning memtable drops its last
// reference to the Arena (and the Go garbage collector reclaims the
// chunks).
type Arena struct {
	chunkSize uint32
	used      atomic.Uint64

	// cur/off are only ever touched by the single writer that owns this
	// arena (spec.md §5: "Mutations are serialized externally"); no lock is
	// needed here. Readers only dereference byte slices previously handed
	// out by Alloc, which never move or get reused.
	cur []byte
	off uint32
}

// NewArena returns an Arena that requests chunks of at least chunkSize
// bytes from the runtime. A chunkSize of 0 uses a 4 KiB default.
func NewArena(chunkSize uint32) *Arena {
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Alloc returns a fresh, zeroed span of n bytes. The returned slice has
// length and capacity n and is stable for the arena's lifetime.
func (a *Arena) Alloc(n uint32) []byte {
	if n > uint32(len(a.cur))-a.off {
		size := a.chunkSize
		if n > size {
			size = n
		}
		a.cur = make([]byte, size)
		a.off = 0
		a.used.Add(uint64(size))
	}
	b := a.cur[a.off : a.off+n : a.off+n]
	a.off += n
	return b
}

// BytesUsed reports the total size of chunks reserved by this arena so
// far. It may be called concurrently with Alloc by a reader (e.g. a flush
// scheduler deciding whether the owning memtable is full).
func (a *Arena) BytesUsed() uint64 {
	return a.used.Load()
}
