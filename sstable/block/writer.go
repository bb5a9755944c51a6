// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import "github.com/lessdb/lessdb/internal/base"

// DefaultRestartInterval is the number of entries between restart points
// in a freshly reset Writer, absent an explicit BlockRestartInterval
// option.
const DefaultRestartInterval = 16

// Writer accumulates prefix-compressed, ordered key/value entries into a
// growable buffer, emitting a restart-point array on Finish. Entries added
// between two restart points share a varint-encoded prefix length with the
// immediately preceding entry; entries at a restart point stand alone
// (shared = 0) so they can serve as landing points for binary search.
type Writer struct {
	RestartInterval int

	buf      []byte
	restarts []uint32
	lastKey  []byte
	counter  int
	nEntries int
	finished bool
}

// NewWriter returns a Writer with the given restart interval (0 uses
// DefaultRestartInterval).
func NewWriter(restartInterval int) *Writer {
	if restartInterval <= 0 {
		restartInterval = DefaultRestartInterval
	}
	w := &Writer{RestartInterval: restartInterval}
	w.Reset()
	return w
}

// Reset clears the writer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.restarts = append(w.restarts[:0], 0)
	w.lastKey = w.lastKey[:0]
	w.counter = 0
	w.nEntries = 0
	w.finished = false
}

// Empty reports whether no entries have been added since the last Reset.
func (w *Writer) Empty() bool { return w.nEntries == 0 }

// Add appends (key, value). key must compare strictly greater than every
// previously added key in this block (base.InvalidArgumentErrorf is
// returned otherwise); this matches the REQUIRED precondition in spec.md
// §4.J.
func (w *Writer) Add(cmp *base.Comparer, key, value []byte) error {
	if w.finished {
		return base.InvalidArgumentErrorf("block: Add called after Finish")
	}
	if w.nEntries > 0 && cmp.Compare(key, w.lastKey) <= 0 {
		return base.InvalidArgumentErrorf("block: keys added out of order")
	}

	shared := 0
	if w.counter < w.RestartInterval {
		shared = lcp(w.lastKey, key)
	} else {
		w.restarts = append(w.restarts, uint32(len(w.buf)))
		w.counter = 0
	}
	unshared := key[shared:]

	w.buf = base.EncodeVarint32(w.buf, uint32(shared))
	w.buf = base.EncodeVarint32(w.buf, uint32(len(unshared)))
	w.buf = base.EncodeVarint32(w.buf, uint32(len(value)))
	w.buf = append(w.buf, unshared...)
	w.buf = append(w.buf, value...)

	w.lastKey = append(w.lastKey[:0], key...)
	w.counter++
	w.nEntries++
	return nil
}

func lcp(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Size returns the size the block would have if Finish were called now.
func (w *Writer) Size() int {
	return len(w.buf) + 4*(len(w.restarts)+1)
}

// LastKey returns the most recently added key.
func (w *Writer) LastKey() []byte { return w.lastKey }

// Finish appends the restart-offset array and count, marks the writer
// finished, and returns the finished block bytes. The returned slice
// aliases the writer's internal buffer and is only valid until the next
// Reset.
func (w *Writer) Finish() []byte {
	for _, r := range w.restarts {
		w.buf = base.EncodeFixed32Append(w.buf, r)
	}
	w.buf = base.EncodeFixed32Append(w.buf, uint32(len(w.restarts)))
	w.finished = true
	return w.buf
}
