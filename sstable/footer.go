// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sstable implements the on-disk sorted table: its footer, block
// handles, prefix-compressed blocks (via sstable/block), and the two-level
// iterator a Reader exposes over a table's index and data blocks.
//
// File layout: data_block_1 … data_block_n  meta_index_block  index_block
// footer. Every block is followed by a 5-byte trailer. The 48-byte footer
// lives at file_len-48 and is verified against Magic on open.
package sstable

import (
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/sstable/block"
)

// Magic identifies a valid table footer, per spec.md §3.
const Magic uint64 = 0xdb4775248b80fb57

// FooterLen is the fixed size of the trailing footer.
const FooterLen = 48

// footer is the last FooterLen bytes of every table file:
// meta_index_handle, index_handle, zero padding up to offset 40, then the
// 8-byte magic number.
type footer struct {
	metaIndexBH block.Handle
	indexBH     block.Handle
}

func (f footer) encode() []byte {
	buf := make([]byte, 0, 40)
	buf = base.EncodeVarint64(buf, f.metaIndexBH.Offset)
	buf = base.EncodeVarint64(buf, f.metaIndexBH.Length)
	buf = base.EncodeVarint64(buf, f.indexBH.Offset)
	buf = base.EncodeVarint64(buf, f.indexBH.Length)
	if len(buf) > 40 {
		panic("sstable: encoded block handles overflow footer")
	}
	padded := make([]byte, 40, FooterLen)
	copy(padded, buf)
	return base.EncodeFixed64Append(padded, Magic)
}

func decodeFooter(buf []byte) (footer, error) {
	if len(buf) != FooterLen {
		return footer{}, base.CorruptionErrorf("sstable: footer has wrong length %d", len(buf))
	}
	if got := base.DecodeFixed64(buf[40:48]); got != Magic {
		return footer{}, base.CorruptionErrorf("sstable: bad magic number 0x%x", got)
	}
	metaIndexBH, n := block.DecodeHandle(buf)
	if n == 0 {
		return footer{}, base.CorruptionErrorf("sstable: bad meta index handle")
	}
	indexBH, n2 := block.DecodeHandle(buf[n:])
	if n2 == 0 {
		return footer{}, base.CorruptionErrorf("sstable: bad index handle")
	}
	return footer{metaIndexBH: metaIndexBH, indexBH: indexBH}, nil
}
