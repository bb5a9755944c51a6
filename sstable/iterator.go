// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/sstable/block"
)

// Iterator is a two-level forward iterator over a table's internal keys: an
// index iterator selects the current data block, and a data iterator walks
// its entries. Its SeekGE takes an encoded internal key, so internal/merge
// wraps it in merge.SSTableSource to fit the merge.Source shape.
type Iterator struct {
	r        *Reader
	indexIt  *block.Iter
	dataIt   *block.Iter
	err      error
}

// NewIter returns an iterator over r positioned before the first entry.
func (r *Reader) NewIter() *Iterator {
	return &Iterator{r: r, indexIt: r.index.NewIter()}
}

func (it *Iterator) Error() error { return it.err }

// loadData loads the data block the index iterator currently points at. A
// zero-length handle (the empty-table synthetic entry) yields no data
// iterator and First/Next report no entries, per SPEC_FULL.md's empty-table
// resolution.
func (it *Iterator) loadData() bool {
	if !it.indexIt.Valid() {
		it.dataIt = nil
		return false
	}
	h, n := block.DecodeHandle(it.indexIt.Value())
	if n == 0 {
		it.err = base.CorruptionErrorf("sstable: malformed index value")
		return false
	}
	if h.Length == 0 {
		it.dataIt = nil
		return false
	}
	raw, err := it.r.readBlock(h)
	if err != nil {
		it.err = err
		return false
	}
	dr, err := block.NewReader(raw)
	if err != nil {
		it.err = err
		return false
	}
	it.dataIt = dr.NewIter()
	return true
}

// First positions the iterator at the table's first entry.
func (it *Iterator) First() bool {
	if !it.indexIt.First() {
		it.dataIt = nil
		return false
	}
	if !it.loadData() {
		return it.advanceBlock()
	}
	if it.dataIt.First() {
		return true
	}
	return it.advanceBlock()
}

// SeekGE positions the iterator at the first entry with internal key >=
// target (ordered by the table's internal key comparer).
func (it *Iterator) SeekGE(target []byte) bool {
	if !it.indexIt.SeekGE(it.r.cmp, target) {
		it.dataIt = nil
		return false
	}
	if !it.loadData() {
		return it.advanceBlock()
	}
	if it.dataIt.SeekGE(it.r.cmp, target) {
		return true
	}
	return it.advanceBlock()
}

// Next advances to the next entry.
func (it *Iterator) Next() bool {
	if it.dataIt != nil && it.dataIt.Next() {
		return true
	}
	return it.advanceBlock()
}

// advanceBlock moves to the next non-empty data block, skipping any
// zero-length (synthetic) index entries.
func (it *Iterator) advanceBlock() bool {
	for it.indexIt.Next() {
		if !it.loadData() {
			if it.err != nil {
				return false
			}
			continue
		}
		if it.dataIt.First() {
			return true
		}
	}
	it.dataIt = nil
	return false
}

// Valid reports whether the iterator is positioned on an entry.
func (it *Iterator) Valid() bool { return it.dataIt != nil && it.dataIt.Valid() }

// Key returns the decoded internal key at the current position.
func (it *Iterator) Key() base.InternalKey {
	k, _ := base.DecodeInternalKey(it.dataIt.Key())
	return k
}

// Value returns the value at the current position.
func (it *Iterator) Value() []byte { return it.dataIt.Value() }
