// Copyright 2017 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arenaskl

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// MaxHeight is the tallest tower a node may grow. Height is sampled from a
// geometric distribution with branching factor 1/4, capped here.
const MaxHeight = 12

// node is one skip-list entry. next holds one forward pointer per level,
//0..height-1, published with release-store semantics (atomic.Pointer's
// Store/Load carry the memory ordering readers rely on). height and key
// are fixed at construction and never mutate afterward, so readers that
// reach a node via an acquire-ordered forward-pointer load may read both
// without synchronization.
type node struct {
	key    []byte
	height int
	next   []atomic.Pointer[node]
}

func newNode(key []byte, height int) *node {
	return &node{key: key, height: height, next: make([]atomic.Pointer[node], height)}
}

// Comparer orders two raw keys as stored in the skip list (for a memtable
// these are full entries; Skiplist only ever compares through this
// function, so it need not know the entry encoding).
type Comparer func(a, b []byte) int

// Skiplist is an ordered set of byte-slice keys supporting one writer
// concurrent with any number of lock-free readers. See the package doc and
// spec.md §4.H for the concurrency argument.
type Skiplist struct {
	cmp  Comparer
	head *node
	// height is the list's published height: readers see either the
	// pre-insert list (skipping upper levels not yet visible) or the full
	// post-insert list, never a torn mix, because it is only raised after
	// the new node is linked at every level up to that height.
	height atomic.Int32
	rnd    *rand.Rand
}

// NewSkiplist creates an empty skip list ordered by cmp.
func NewSkiplist(cmp Comparer) *Skiplist {
	s := &Skiplist{
		cmp:  cmp,
		head: newNode(nil, MaxHeight),
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.height.Store(1)
	return s
}

func randomHeight(rnd *rand.Rand) int {
	h := 1
	for h < MaxHeight && rnd.Intn(4) == 0 {
		h++
	}
	return h
}

// findSpliceForLevel walks from start at level, returning the last node
// whose key is < key (pred) and the first node whose key is >= key (succ).
func (s *Skiplist) findSpliceForLevel(key []byte, level int, start *node) (pred, succ *node) {
	pred = start
	for {
		next := pred.next[level].Load()
		if next == nil || s.cmp(next.key, key) >= 0 {
			return pred, next
		}
		pred = next
	}
}

// Insert adds key to the list. If an equal key is already present, Insert
// returns (existingHandle, false) instead of inserting — the memtable,
// which guarantees internal-key uniqueness upstream, treats that as a
// programmer-error invariant violation rather than a normal outcome.
func (s *Skiplist) Insert(key []byte) (handle *node, inserted bool) {
	var preds, succs [MaxHeight]*node

	listHeight := int(s.height.Load())
	prev := s.head
	for level := listHeight - 1; level >= 0; level-- {
		p, n := s.findSpliceForLevel(key, level, prev)
		preds[level] = p
		succs[level] = n
		prev = p
	}

	if succs[0] != nil && s.cmp(succs[0].key, key) == 0 {
		return succs[0], false
	}

	height := randomHeight(s.rnd)
	if height > listHeight {
		for level := listHeight; level < height; level++ {
			preds[level] = s.head
			succs[level] = nil
		}
	}

	n := newNode(key, height)
	// Relaxed: n is not reachable by any reader yet.
	for level := 0; level < height; level++ {
		n.next[level].Store(succs[level])
	}
	// Release, bottom-up: once a reader observes n at some level, every
	// lower level already points somewhere valid (n's own next pointers
	// were set above, and preds below this loop still point at n or past
	// it via the next iteration).
	for level := 0; level < height; level++ {
		preds[level].next[level].Store(n)
	}
	if height > listHeight {
		// Published after n is fully linked: a reader that now sees the
		// taller height also sees n at every one of those levels.
		s.height.Store(int32(height))
	}
	return n, true
}

// Handle is an opaque reference to an inserted node, usable to recover its
// key.
type Handle = *node

// Key returns the key stored at h.
func Key(h Handle) []byte { return h.key }

// seekGE returns the first node with key >= target (nil if none).
func (s *Skiplist) seekGE(target []byte) *node {
	listHeight := int(s.height.Load())
	prev := s.head
	var next *node
	for level := listHeight - 1; level >= 0; level-- {
		prev, next = s.findSpliceForLevel(target, level, prev)
	}
	return next
}

// Iterator walks the list forward from a seek position. Its zero value is
// not valid; use Skiplist.NewIter. Iterating is safe at any time; it is
// invalidated only when the underlying Arena (owned by the caller) is
// dropped.
type Iterator struct {
	list *Skiplist
	cur  *node
}

// NewIter returns an iterator over s, positioned before the first key.
func (s *Skiplist) NewIter() *Iterator {
	return &Iterator{list: s}
}

// SeekGE positions the iterator at the first key >= target and reports
// whether such a key exists.
func (it *Iterator) SeekGE(target []byte) bool {
	it.cur = it.list.seekGE(target)
	return it.cur != nil
}

// First positions the iterator at the smallest key and reports whether the
// list is non-empty.
func (it *Iterator) First() bool {
	it.cur = it.list.head.next[0].Load()
	return it.cur != nil
}

// Valid reports whether the iterator is positioned on an entry.
func (it *Iterator) Valid() bool { return it.cur != nil }

// Key returns the key at the iterator's current position. Valid() must be
// true.
func (it *Iterator) Key() []byte { return it.cur.key }

// Next advances the iterator and reports whether it landed on an entry.
func (it *Iterator) Next() bool {
	if it.cur == nil {
		return false
	}
	it.cur = it.cur.next[0].Load()
	return it.cur != nil
}
