// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package block implements the on-disk block format shared by every data
// block, the index block, and the meta-index block of an sstable: prefix-
// compressed entries, a restart-point index, and a 5-byte CRC trailer.
package block

import "github.com/lessdb/lessdb/internal/base"

// TrailerLen is the number of bytes appended after every block on disk:
// a 1-byte compression tag followed by a little-endian CRC32 over the
// (possibly compressed) block bytes plus that tag byte.
const TrailerLen = 5

// Compression identifies the codec applied to a block's bytes before its
// trailer is appended.
type Compression uint8

const (
	// NoCompression stores block bytes as-is.
	NoCompression Compression = 0
	// SnappyCompression compresses with github.com/golang/snappy.
	SnappyCompression Compression = 1
	// ZstdCompression compresses with klauspost/compress/zstd.
	ZstdCompression Compression = 2
)

// Handle is an on-disk pointer to a block: its offset and length, not
// counting the block's own trailer.
type Handle struct {
	Offset uint64
	Length uint64
}

// EncodeVarints appends the varint64-encoded (offset, length) to dst and
// returns the number of bytes written.
func (h Handle) EncodeVarints(dst []byte) int {
	n := len(dst)
	dst = base.EncodeVarint64(dst, h.Offset)
	dst = base.EncodeVarint64(dst, h.Length)
	return len(dst) - n
}

// DecodeHandle decodes a varint64-encoded (offset, length) pair from the
// front of src. n is 0 if src is truncated.
func DecodeHandle(src []byte) (h Handle, n int) {
	off, n1 := base.DecodeVarint64(src)
	if n1 == 0 {
		return Handle{}, 0
	}
	length, n2 := base.DecodeVarint64(src[n1:])
	if n2 == 0 {
		return Handle{}, 0
	}
	return Handle{Offset: off, Length: length}, n1 + n2
}
