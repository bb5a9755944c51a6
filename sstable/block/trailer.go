// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"hash/crc32"

	"github.com/lessdb/lessdb/internal/base"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// AppendTrailer appends the 5-byte trailer (compression tag, CRC32C) for a
// block whose on-disk bytes are blockBytes (the compression tag is the
// last byte included in the CRC, matching spec.md §3: "crc32 ... over the
// block bytes").
func AppendTrailer(dst []byte, compression Compression, blockBytes []byte) []byte {
	crc := crc32.Update(crc32.Update(0, castagnoli, blockBytes), castagnoli, []byte{byte(compression)})
	dst = append(dst, byte(compression))
	return base.EncodeFixed32Append(dst, crc)
}

// CheckTrailer verifies a block's trailer against its bytes, returning the
// compression tag on success.
func CheckTrailer(blockBytes []byte, trailer []byte) (Compression, error) {
	if len(trailer) != TrailerLen {
		return 0, base.CorruptionErrorf("block: trailer has wrong length %d", len(trailer))
	}
	compression := Compression(trailer[0])
	wantCRC := base.DecodeFixed32(trailer[1:])
	gotCRC := crc32.Update(crc32.Update(0, castagnoli, blockBytes), castagnoli, trailer[:1])
	if gotCRC != wantCRC {
		return 0, base.CorruptionErrorf("block: checksum mismatch (got %x want %x)", gotCRC, wantCRC)
	}
	return compression, nil
}
