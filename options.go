// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package lessdb collects the root-level configuration that ties the
// storage core's packages together: Options selects the comparer, cache,
// filesystem and tuning knobs a memtable, sstable writer/reader and WAL
// share. There is no DB façade here (out of scope, per spec.md §1) — this
// package is the configuration surface a caller assembling its own
// read/write/compaction loop on top of internal/memtable, sstable and
// batch would plug into those packages.
package lessdb

import (
	"github.com/lessdb/lessdb/bloom"
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/internal/cache"
	"github.com/lessdb/lessdb/sstable/block"
	"github.com/lessdb/lessdb/vfs"
)

// Options configures every layer of the storage core. It mirrors the shape
// of pebble.Options, trimmed to the fields this module's packages actually
// consume (no level/compaction scheduling, no replication).
type Options struct {
	// Comparer orders user keys. Every table, memtable and batch sharing one
	// logical database must use the same Comparer; a stored table with a
	// different comparer name fails to open (spec.md §4.D).
	Comparer *base.Comparer

	// Logger receives diagnostic messages. Defaults to base.DefaultLogger.
	Logger base.Logger

	// FS is the file system new memtables' WALs and sstables are created
	// on. Defaults to vfs.Default (the real disk).
	FS vfs.FS

	// Cache is the shared block cache sstable reads populate and consult.
	// Defaults to a private cache with room for 8<<20 entries (the cache's
	// capacity counts entries, not bytes).
	Cache *cache.Cache

	// MemTableSize bounds a memtable's approximate memory usage
	// (internal/memtable.MemTable.ApproximateMemoryUsage) before a caller
	// should flush it.
	MemTableSize uint64

	// ArenaChunkSize is the chunk size internal/arenaskl.Arena grows by.
	ArenaChunkSize uint32

	// BlockSize is the target size of an uncompressed sstable data block
	// before a new one is started.
	BlockSize int

	// BlockRestartInterval is the number of entries between prefix-
	// compression restart points within an sstable data block.
	BlockRestartInterval int

	// Compression selects the codec applied to sstable blocks.
	Compression block.Compression

	// FilterPolicy builds the per-block Bloom filter sstable writers embed.
	// Nil disables filters; every lookup then falls through to an
	// unconditional block fetch (spec.md §4.R).
	FilterPolicy *bloom.FilterPolicy

	// WALSyncRateLimit throttles internal/record.LogWriter.Sync calls to at
	// most this many per second. Zero (the default) disables throttling.
	WALSyncRateLimit float64
}

const (
	defaultMemTableSize         = 4 << 20
	defaultArenaChunkSize       = 4 << 10
	defaultBlockSize            = 4 << 10
	defaultCacheSize            = 8 << 20
)

// EnsureDefaults returns a copy of o with every zero-valued field replaced
// by its default, the same pattern pebble.Options.EnsureDefaults follows.
func (o Options) EnsureDefaults() Options {
	if o.Comparer == nil {
		o.Comparer = base.DefaultComparer
	}
	if o.Logger == nil {
		o.Logger = base.DefaultLogger
	}
	if o.FS == nil {
		o.FS = vfs.Default
	}
	if o.Cache == nil {
		o.Cache = cache.New(defaultCacheSize)
	}
	if o.MemTableSize == 0 {
		o.MemTableSize = defaultMemTableSize
	}
	if o.ArenaChunkSize == 0 {
		o.ArenaChunkSize = defaultArenaChunkSize
	}
	if o.BlockSize == 0 {
		o.BlockSize = defaultBlockSize
	}
	if o.BlockRestartInterval == 0 {
		o.BlockRestartInterval = block.DefaultRestartInterval
	}
	return o
}

// InternalComparer returns the internal-key comparer (spec.md §4.E) derived
// from o.Comparer, lifted once here so every caller threading Options
// through a memtable/sstable pair builds it identically.
func (o Options) InternalComparer() *base.Comparer {
	return base.InternalKeyComparer(o.Comparer)
}
