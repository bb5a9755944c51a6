// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lessdb/lessdb/bloom"
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/sstable/block"
	"github.com/lessdb/lessdb/vfs"
	"github.com/olekukonko/tablewriter"
)

// ReaderOptions configures a Reader. Comparer must match the Comparer the
// table was written with; Reader rejects a mismatch rather than risk
// silently misordering lookups (spec.md §7, "comparator mismatch on
// reopen").
type ReaderOptions struct {
	Comparer *base.Comparer
}

func (o ReaderOptions) EnsureDefaults() ReaderOptions {
	if o.Comparer == nil {
		o.Comparer = base.DefaultComparer
	}
	return o
}

// Reader opens a finished sstable for point lookups and iteration.
type Reader struct {
	file vfs.RandomAccessFile
	size int64
	opts ReaderOptions
	cmp  *base.Comparer // internal key comparer

	index  *block.Reader
	filter *filterBlockReader
}

// NewReader opens f as an sstable. It reads and validates the footer, meta
// index and index blocks up front; data blocks are fetched lazily per
// lookup/iteration.
func NewReader(f vfs.RandomAccessFile, opts ReaderOptions) (*Reader, error) {
	opts = opts.EnsureDefaults()
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if size < FooterLen {
		return nil, base.CorruptionErrorf("sstable: file too small (%d bytes)", size)
	}

	r := &Reader{file: f, size: size, opts: opts, cmp: base.InternalKeyComparer(opts.Comparer)}

	footerBuf := make([]byte, FooterLen)
	if _, err := f.ReadAt(footerBuf, size-FooterLen); err != nil {
		return nil, base.IOErrorf(err, "sstable: reading footer")
	}
	ft, err := decodeFooter(footerBuf)
	if err != nil {
		return nil, err
	}

	indexRaw, err := r.readBlock(ft.indexBH)
	if err != nil {
		return nil, err
	}
	r.index, err = block.NewReader(indexRaw)
	if err != nil {
		return nil, err
	}

	metaRaw, err := r.readBlock(ft.metaIndexBH)
	if err != nil {
		return nil, err
	}
	metaReader, err := block.NewReader(metaRaw)
	if err != nil {
		return nil, err
	}

	cmpKey, cmpValue, ok, err := metaReader.Find(base.DefaultComparer, []byte("comparer"))
	if err != nil {
		return nil, err
	}
	if !ok || string(cmpKey) != "comparer" {
		return nil, base.CorruptionErrorf("sstable: missing comparer name in meta index")
	}
	if string(cmpValue) != opts.Comparer.Name {
		return nil, base.CorruptionErrorf("sstable: comparer mismatch: table was written with %q, opened with %q", cmpValue, opts.Comparer.Name)
	}

	key, value, ok, err := metaReader.Find(base.DefaultComparer, []byte("filter."))
	if err != nil {
		return nil, err
	}
	if ok && len(key) >= len("filter.") && string(key[:len("filter.")]) == "filter." {
		fh, n := block.DecodeHandle(value)
		if n == 0 {
			return nil, base.CorruptionErrorf("sstable: malformed filter handle")
		}
		filterRaw, err := r.readBlock(fh)
		if err != nil {
			return nil, err
		}
		r.filter, err = newFilterBlockReader(filterRaw)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// readBlock reads, checksum-verifies and decompresses the block at h.
func (r *Reader) readBlock(h block.Handle) ([]byte, error) {
	buf := make([]byte, h.Length+block.TrailerLen)
	if _, err := r.file.ReadAt(buf, int64(h.Offset)); err != nil {
		return nil, base.IOErrorf(err, "sstable: reading block at offset %d", h.Offset)
	}
	compressed, trailer := buf[:h.Length], buf[h.Length:]
	compression, err := block.CheckTrailer(compressed, trailer)
	if err != nil {
		return nil, err
	}
	return block.Decompress(compression, compressed)
}

// dataBlockOrdinal returns the zero-based ordinal position of the index
// entry whose key is upto (the number of index entries before it), or -1
// if no entry has that key. Filters
// are stored 1:1 with data blocks in write order, so this ordinal doubles
// as the filter index.
func (r *Reader) dataBlockOrdinal(upto []byte) int {
	it := r.index.NewIter()
	n := 0
	for it.First(); it.Valid(); it.Next() {
		if string(it.Key()) == string(upto) {
			return n
		}
		n++
	}
	return -1
}

// Get returns the value stored for the most recent internal key with the
// given user key at a sequence number <= seq. found is false if no such key
// exists, including when the key was deleted by that point.
func (r *Reader) Get(userKey []byte, seq base.SeqNum) (value []byte, found bool, err error) {
	target := base.MakeInternalKey(userKey, seq, base.InternalKeyKindSet).Encode(nil)

	idx := r.index.NewIter()
	if !idx.SeekGE(r.cmp, target) {
		return nil, false, nil
	}

	if r.filter != nil {
		ord := r.dataBlockOrdinal(idx.Key())
		if f := r.filter.filterFor(ord); f != nil {
			if !bloom.MightContain(f, userKey) {
				return nil, false, nil
			}
		}
	}

	h, n := block.DecodeHandle(idx.Value())
	if n == 0 {
		return nil, false, base.CorruptionErrorf("sstable: malformed index value")
	}
	if h.Length == 0 {
		return nil, false, nil
	}

	raw, err := r.readBlock(h)
	if err != nil {
		return nil, false, err
	}
	dr, err := block.NewReader(raw)
	if err != nil {
		return nil, false, err
	}

	key, val, ok, err := dr.Find(r.cmp, target)
	if err != nil || !ok {
		return nil, false, err
	}
	ik, ok := base.DecodeInternalKey(key)
	if !ok || r.opts.Comparer.Compare(ik.UserKey, userKey) != 0 {
		return nil, false, nil
	}
	if ik.Kind() == base.InternalKeyKindDelete {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// DebugString renders the table's index block (separator key and block
// handle per data block) as a table, for use in debugging sessions and
// tests — not a CLI surface (spec.md §1 excludes those).
func (r *Reader) DebugString() string {
	var buf strings.Builder
	tw := tablewriter.NewWriter(&buf)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"index key", "block offset", "block length"})

	it := r.index.NewIter()
	for it.First(); it.Valid(); it.Next() {
		h, n := block.DecodeHandle(it.Value())
		offset, length := "-", "-"
		if n > 0 {
			offset = strconv.FormatUint(h.Offset, 10)
			length = strconv.FormatUint(h.Length, 10)
		}
		tw.Append([]string{fmt.Sprintf("%q", it.Key()), offset, length})
	}
	tw.Render()
	return buf.String()
}
