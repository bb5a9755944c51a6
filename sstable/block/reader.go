// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import "github.com/lessdb/lessdb/internal/base"

// Reader exposes a decoded block's restart-point index for binary search
// and forward iteration. It does not own the underlying bytes: the caller
// (typically a cache.Value or a freshly read-and-CRC-checked buffer) keeps
// them alive for as long as any Reader or Iter over them is in use.
type Reader struct {
	data        []byte
	restarts    []byte // the restart offset array, still fixed32-encoded
	numRestarts int
	restartsOff int
}

// NewReader decodes the restart-point trailer of a finished block. It does
// not copy data.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < 4 {
		return nil, base.CorruptionErrorf("block: too small (%d bytes)", len(data))
	}
	numRestarts := int(base.DecodeFixed32(data[len(data)-4:]))
	if numRestarts == 0 {
		return nil, base.CorruptionErrorf("block: empty restart array")
	}
	restartsOff := len(data) - 4 - 4*numRestarts
	if restartsOff < 0 {
		return nil, base.CorruptionErrorf("block: restart array overruns block")
	}
	r := &Reader{
		data:        data,
		restarts:    data[restartsOff : len(data)-4],
		numRestarts: numRestarts,
		restartsOff: restartsOff,
	}
	if r.restartOffset(0) != 0 {
		return nil, base.CorruptionErrorf("block: restarts[0] != 0")
	}
	return r, nil
}

func (r *Reader) restartOffset(i int) uint32 {
	return base.DecodeFixed32(r.restarts[4*i:])
}

// entry is one decoded block entry, together with the byte offset of the
// entry immediately following it.
type entry struct {
	key   []byte
	value []byte
	next  int
}

// decodeEntry decodes the entry at offset off in r.data, given the
// previous entry's key (nil/empty at a restart point, where shared must be
// 0). It returns an error if a varint is malformed or shared exceeds the
// previous key's length outside of a restart point.
func (r *Reader) decodeEntry(off int, prevKey []byte) (entry, error) {
	b := r.data[off:r.restartsOff]
	shared, n1 := base.DecodeVarint32(b)
	if n1 == 0 {
		return entry{}, base.CorruptionErrorf("block: malformed shared length at offset %d", off)
	}
	b = b[n1:]
	unsharedLen, n2 := base.DecodeVarint32(b)
	if n2 == 0 {
		return entry{}, base.CorruptionErrorf("block: malformed unshared length at offset %d", off)
	}
	b = b[n2:]
	valueLen, n3 := base.DecodeVarint32(b)
	if n3 == 0 {
		return entry{}, base.CorruptionErrorf("block: malformed value length at offset %d", off)
	}
	b = b[n3:]

	if int(shared) > len(prevKey) {
		return entry{}, base.CorruptionErrorf("block: shared prefix %d exceeds previous key length %d", shared, len(prevKey))
	}
	if uint32(len(b)) < unsharedLen+valueLen {
		return entry{}, base.CorruptionErrorf("block: entry at offset %d overruns block", off)
	}

	key := make([]byte, 0, int(shared)+int(unsharedLen))
	key = append(key, prevKey[:shared]...)
	key = append(key, b[:unsharedLen]...)
	value := b[unsharedLen : unsharedLen+valueLen]

	headerLen := n1 + n2 + n3
	next := off + headerLen + int(unsharedLen) + int(valueLen)
	return entry{key: key, value: value, next: next}, nil
}

// seekToRestartLE returns the index of the last restart point whose key
// is <= target, or 0 if every restart key is > target.
func (r *Reader) seekToRestartLE(cmp *base.Comparer, target []byte) (int, error) {
	lo, hi := 0, r.numRestarts-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		e, err := r.decodeEntry(int(r.restartOffset(mid)), nil)
		if err != nil {
			return 0, err
		}
		if cmp.Compare(e.key, target) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, nil
}

// Find performs a binary search over restart points followed by a linear
// scan, returning the first entry with key >= target (its key and value),
// or ok=false if no such entry exists in the block.
func (r *Reader) Find(cmp *base.Comparer, target []byte) (key, value []byte, ok bool, err error) {
	restartIdx, err := r.seekToRestartLE(cmp, target)
	if err != nil {
		return nil, nil, false, err
	}
	off := int(r.restartOffset(restartIdx))
	var prevKey []byte
	for off < r.restartsOff {
		e, err := r.decodeEntry(off, prevKey)
		if err != nil {
			return nil, nil, false, err
		}
		if cmp.Compare(e.key, target) >= 0 {
			return e.key, e.value, true, nil
		}
		prevKey = e.key
		off = e.next
	}
	return nil, nil, false, nil
}

// Iter is a forward-only iterator over a block's entries.
type Iter struct {
	r       *Reader
	off     int
	key     []byte
	value   []byte
	err     error
	started bool
}

// NewIter returns an iterator positioned before the block's first entry.
func (r *Reader) NewIter() *Iter {
	return &Iter{r: r}
}

// Error returns the first decode error encountered, if any.
func (it *Iter) Error() error { return it.err }

// First positions the iterator at the block's first entry.
func (it *Iter) First() bool {
	it.off = 0
	it.key = nil
	it.started = true
	return it.Next()
}

// SeekGE positions the iterator at the first entry with key >= target.
func (it *Iter) SeekGE(cmp *base.Comparer, target []byte) bool {
	restartIdx, err := it.r.seekToRestartLE(cmp, target)
	if err != nil {
		it.err = err
		return false
	}
	it.off = int(it.r.restartOffset(restartIdx))
	it.key = nil
	it.started = true
	for it.Next() {
		if cmp.Compare(it.key, target) >= 0 {
			return true
		}
	}
	return false
}

// Next advances the iterator and reports whether it landed on an entry.
func (it *Iter) Next() bool {
	if !it.started {
		it.started = true
		it.off = 0
		it.key = nil
	}
	if it.off >= it.r.restartsOff || it.err != nil {
		it.key, it.value = nil, nil
		return false
	}
	e, err := it.r.decodeEntry(it.off, it.key)
	if err != nil {
		it.err = err
		it.key, it.value = nil, nil
		return false
	}
	it.key, it.value, it.off = e.key, e.value, e.next
	return true
}

// Valid reports whether the iterator is positioned on an entry.
func (it *Iter) Valid() bool { return it.key != nil }

// Key returns the key at the current position.
func (it *Iter) Key() []byte { return it.key }

// Value returns the value at the current position.
func (it *Iter) Value() []byte { return it.value }
