// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package merge implements the read-path fan-in over a memtable and zero or
// more sstables: a single sorted, deduplicated view of the newest visible
// version of every user key. This is a supplemented feature (see
// SPEC_FULL.md): the distilled spec describes the memtable and sstable in
// isolation but not how a read combines them, the same gap
// original_source/src/IteratorFacade.h fills for the original engine.
package merge

import "github.com/lessdb/lessdb/internal/base"

// Source is the shape common to memtable.Iterator and sstable.Iterator:
// enough for Iter to drive any sorted run of internal keys without
// depending on either package directly.
type Source interface {
	First() bool
	SeekGE(target base.InternalKey) bool
	Next() bool
	Valid() bool
	Key() base.InternalKey
	Value() []byte
	Error() error
}

// Iter merges one or more Sources already ordered by the same internal-key
// comparer into a single forward iterator. Entries are deduplicated by user
// key, keeping only the newest version with SeqNum() <= the snapshot
// ceiling; a DELETE kind suppresses every older version of that key rather
// than being surfaced itself, matching a normal point-in-time read.
//
// Iter scans all sources for a minimum on every step rather than
// maintaining a heap (pebble's actual mergingIter does use one). With the
// handful of sources a single read fans into here, the linear scan is
// simpler to get right without a compiler to check it, at the cost of
// O(sources) instead of O(log sources) per step.
type Iter struct {
	cmp     *base.Comparer // internal-key comparer
	userCmp *base.Comparer // the same order, restricted to user keys
	ceiling base.SeqNum
	sources []Source

	winner int
	key    base.InternalKey
	value  []byte
	valid  bool
	err    error
}

// NewIter returns a merging iterator over sources, exposing only versions
// with sequence number <= ceiling. cmp must be the internal-key comparer
// (base.InternalKeyComparer(userCmp)) that every source was built with;
// userCmp is the plain user-key comparer it wraps. Sources are given
// newest-to-oldest by convention (e.g. memtable before older sstables),
// though Iter does not rely on that order for correctness: it
// disambiguates purely by sequence number embedded in each internal key.
func NewIter(cmp, userCmp *base.Comparer, ceiling base.SeqNum, sources ...Source) *Iter {
	return &Iter{cmp: cmp, userCmp: userCmp, ceiling: ceiling, sources: sources}
}

// First positions the iterator at the first visible entry.
func (m *Iter) First() bool {
	for _, s := range m.sources {
		s.First()
	}
	return m.settle(nil)
}

// SeekGE positions the iterator at the first visible entry with user key >=
// userKey.
func (m *Iter) SeekGE(userKey []byte) bool {
	target := base.MakeInternalKey(userKey, base.SeqNumMax, base.InternalKeyKindSet)
	for _, s := range m.sources {
		s.SeekGE(target)
	}
	return m.settle(nil)
}

// Next advances to the next visible entry.
func (m *Iter) Next() bool {
	if !m.valid {
		return false
	}
	lastUserKey := append([]byte(nil), m.key.UserKey...)
	m.sources[m.winner].Next()
	return m.settle(lastUserKey)
}

// Valid reports whether the iterator is positioned on a visible entry.
func (m *Iter) Valid() bool { return m.valid }

// Key returns the internal key (of the winning, newest-visible version) at
// the current position.
func (m *Iter) Key() base.InternalKey { return m.key }

// Value returns the value at the current position.
func (m *Iter) Value() []byte { return m.value }

// Error returns the first error observed from any underlying source.
func (m *Iter) Error() error { return m.err }

// settle repeatedly picks the minimum internal key among all sources'
// current positions, skipping versions above the snapshot ceiling and every
// version of a user key once its newest visible version (or a DELETE) has
// been seen, until it lands on a SET to report or every source is
// exhausted. skipUserKey, if non-nil, is treated as already resolved (used
// right after Next so the just-emitted key's remaining, older versions are
// skipped without re-reporting it).
func (m *Iter) settle(skipUserKey []byte) bool {
	m.valid = false
	m.value = nil

	for {
		idx := -1
		for i, s := range m.sources {
			if err := s.Error(); err != nil {
				m.err = err
				return false
			}
			if !s.Valid() {
				continue
			}
			if idx == -1 || m.cmp.Compare(encode(s.Key()), encode(m.sources[idx].Key())) < 0 {
				idx = i
			}
		}
		if idx == -1 {
			return false
		}

		k := m.sources[idx].Key()
		if skipUserKey != nil && m.userCmp.Compare(k.UserKey, skipUserKey) == 0 {
			m.sources[idx].Next()
			continue
		}
		skipUserKey = nil

		if k.SeqNum() > m.ceiling {
			m.sources[idx].Next()
			continue
		}

		if k.Kind() == base.InternalKeyKindDelete {
			skipUserKey = append([]byte(nil), k.UserKey...)
			m.sources[idx].Next()
			continue
		}

		m.winner = idx
		m.key = k
		m.value = m.sources[idx].Value()
		m.valid = true
		return true
	}
}

func encode(k base.InternalKey) []byte {
	return k.Encode(make([]byte, 0, k.Size()))
}
