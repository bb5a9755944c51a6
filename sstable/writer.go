// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"github.com/lessdb/lessdb/bloom"
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/sstable/block"
	"github.com/lessdb/lessdb/vfs"
)

// WriterOptions configures a Writer. Comparer is the user (not internal key)
// comparer; the writer wraps it in base.InternalKeyComparer itself.
type WriterOptions struct {
	Comparer             *base.Comparer
	FilterPolicy         *bloom.FilterPolicy
	Compression          block.Compression
	BlockSize            int
	BlockRestartInterval int
}

// EnsureDefaults fills in a BytewiseComparator, no compression, a 4 KiB
// block target and the package default restart interval for any zero
// fields, matching the teacher's WriterOptions.EnsureDefaults pattern.
func (o WriterOptions) EnsureDefaults() WriterOptions {
	if o.Comparer == nil {
		o.Comparer = base.DefaultComparer
	}
	if o.BlockSize == 0 {
		o.BlockSize = 4096
	}
	if o.BlockRestartInterval == 0 {
		o.BlockRestartInterval = block.DefaultRestartInterval
	}
	return o
}

// Writer builds a single sstable: a sequence of data blocks holding encoded
// internal keys in increasing order, a single index block over them, an
// optional per-block Bloom filter block, and a 48-byte footer.
//
// Writer is grounded on the teacher's sstable.Writer (table.go), trimmed to
// the single-format, single-level-index table spec.md §4.M..O describe: no
// value separation, no range-deletion or per-sstable properties blocks.
type Writer struct {
	file vfs.WritableFile
	opts WriterOptions
	cmp  *base.Comparer // internal key comparer

	dataBlock   *block.Writer
	indexBlock  *block.Writer
	filterBlock *filterBlockWriter

	offset   uint64
	nEntries int

	pendingIndexEntry bool
	pendingHandle     block.Handle
	lastKey           []byte // last internal key added, encoded

	err    error
	closed bool
}

// NewWriter returns a Writer appending a new table to f.
func NewWriter(f vfs.WritableFile, opts WriterOptions) *Writer {
	opts = opts.EnsureDefaults()
	w := &Writer{
		file:       f,
		opts:       opts,
		cmp:        base.InternalKeyComparer(opts.Comparer),
		dataBlock:  block.NewWriter(opts.BlockRestartInterval),
		indexBlock: block.NewWriter(1), // every index entry is a restart point
	}
	if opts.FilterPolicy != nil {
		w.filterBlock = newFilterBlockWriter(opts.FilterPolicy)
	}
	return w
}

// Add appends (ikey, value) to the table. Internal keys must be added in
// strictly increasing order (per the comparer passed to NewWriter).
func (w *Writer) Add(ikey base.InternalKey, value []byte) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return base.InvalidArgumentErrorf("sstable: Add called after Finish")
	}

	key := ikey.Encode(make([]byte, 0, ikey.Size()))

	if w.pendingIndexEntry {
		sep := w.cmp.Separator(make([]byte, 0, len(w.lastKey)), w.lastKey, key)
		if err := w.addIndexEntry(sep, w.pendingHandle); err != nil {
			return w.fail(err)
		}
		w.pendingIndexEntry = false
	}

	if w.filterBlock != nil {
		w.filterBlock.addKey(ikey.UserKey)
	}
	if err := w.dataBlock.Add(w.cmp, key, value); err != nil {
		return w.fail(err)
	}
	w.lastKey = append(w.lastKey[:0], key...)
	w.nEntries++

	if w.dataBlock.Size() >= w.opts.BlockSize {
		if err := w.flush(); err != nil {
			return w.fail(err)
		}
	}
	return nil
}

func (w *Writer) addIndexEntry(key []byte, h block.Handle) error {
	var hbuf [2 * base.MaxVarint64Len]byte
	n := h.EncodeVarints(hbuf[:0])
	return w.indexBlock.Add(w.cmp, key, hbuf[:n])
}

// flush finishes the current data block, compresses and writes it, and
// arranges for the next Add to emit the pending index entry once it knows
// the next block's first key (so the index separator can be as short as
// possible).
func (w *Writer) flush() error {
	if w.dataBlock.Empty() {
		return nil
	}
	raw := w.dataBlock.Finish()
	h, err := w.writeBlock(raw)
	if err != nil {
		return err
	}
	w.dataBlock.Reset()
	if w.filterBlock != nil {
		w.filterBlock.finishBlock()
	}
	w.pendingHandle = h
	w.pendingIndexEntry = true
	return nil
}

// writeBlock compresses raw, appends its trailer, writes it to the file at
// the writer's current offset, and returns its (uncompressed-handle-style)
// on-disk handle: offset of the compressed block, length excluding trailer.
func (w *Writer) writeBlock(raw []byte) (block.Handle, error) {
	compressed := block.Compress(w.opts.Compression, nil, raw)
	trailer := block.AppendTrailer(make([]byte, 0, block.TrailerLen), w.opts.Compression, compressed)

	h := block.Handle{Offset: w.offset, Length: uint64(len(compressed))}
	if _, err := w.file.Write(compressed); err != nil {
		return block.Handle{}, err
	}
	if _, err := w.file.Write(trailer); err != nil {
		return block.Handle{}, err
	}
	w.offset += uint64(len(compressed)) + block.TrailerLen
	return h, nil
}

// Finish flushes any buffered data, writes the filter block, meta index
// block, index block and footer, and closes the underlying file.
func (w *Writer) Finish() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return base.InvalidArgumentErrorf("sstable: Finish called twice")
	}
	w.closed = true

	if err := w.flush(); err != nil {
		return w.fail(err)
	}

	if w.nEntries == 0 {
		// Empty table: one synthetic index entry pointing at a zero-length
		// handle, per SPEC_FULL.md's Open Question resolution. The reader's
		// iterator treats Length==0 as "this block has no entries" rather
		// than attempting to decode it.
		if err := w.addIndexEntry(nil, block.Handle{}); err != nil {
			return w.fail(err)
		}
	} else if w.pendingIndexEntry {
		sep := w.cmp.Successor(make([]byte, 0, len(w.lastKey)), w.lastKey)
		if err := w.addIndexEntry(sep, w.pendingHandle); err != nil {
			return w.fail(err)
		}
		w.pendingIndexEntry = false
	}

	var filterBH block.Handle
	haveFilter := w.filterBlock != nil && !w.filterBlock.empty()
	if haveFilter {
		fb := w.filterBlock.finish()
		h, err := w.writeBlock(fb)
		if err != nil {
			return w.fail(err)
		}
		filterBH = h
	}

	metaIndex := block.NewWriter(1)
	if err := metaIndex.Add(base.DefaultComparer, []byte("comparer"), []byte(w.opts.Comparer.Name)); err != nil {
		return w.fail(err)
	}
	if haveFilter {
		var hbuf [2 * base.MaxVarint64Len]byte
		n := filterBH.EncodeVarints(hbuf[:0])
		key := "filter." + w.opts.FilterPolicy.Name()
		if err := metaIndex.Add(base.DefaultComparer, []byte(key), hbuf[:n]); err != nil {
			return w.fail(err)
		}
	}
	metaIndexRaw := metaIndex.Finish()
	metaIndexBH, err := w.writeBlock(metaIndexRaw)
	if err != nil {
		return w.fail(err)
	}

	indexRaw := w.indexBlock.Finish()
	indexBH, err := w.writeBlock(indexRaw)
	if err != nil {
		return w.fail(err)
	}

	f := footer{metaIndexBH: metaIndexBH, indexBH: indexBH}
	if _, err := w.file.Write(f.encode()); err != nil {
		return w.fail(err)
	}

	if err := w.file.Close(); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}
