// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/lessdb/lessdb/internal/base"
)

var zstdEncoder, _ = zstd.NewWriter(nil)
var zstdDecoder, _ = zstd.NewReader(nil)

// Compress compresses src with the given codec, appending the result to
// dst. NoCompression appends src unchanged.
func Compress(c Compression, dst, src []byte) []byte {
	switch c {
	case NoCompression:
		return append(dst, src...)
	case SnappyCompression:
		return append(dst, snappy.Encode(nil, src)...)
	case ZstdCompression:
		return zstdEncoder.EncodeAll(src, dst)
	default:
		base.AssertionFailedf("block: unknown compression type %d", c)
		return nil
	}
}

// Decompress decompresses src, previously produced by Compress with codec
// c, returning the decoded bytes.
func Decompress(c Compression, src []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		n, err := snappy.DecodedLen(src)
		if err != nil {
			return nil, base.CorruptionErrorf("block: invalid snappy block: %v", err)
		}
		dst := make([]byte, n)
		dst, err = snappy.Decode(dst, src)
		if err != nil {
			return nil, base.CorruptionErrorf("block: snappy decode failed: %v", err)
		}
		return dst, nil
	case ZstdCompression:
		dst, err := zstdDecoder.DecodeAll(src, nil)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, base.CorruptionErrorf("block: truncated zstd block")
			}
			return nil, base.CorruptionErrorf("block: zstd decode failed: %v", err)
		}
		return dst, nil
	default:
		return nil, base.CorruptionErrorf("block: unknown compression type %d", c)
	}
}
