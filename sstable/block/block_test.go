// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"fmt"
	"testing"

	"github.com/lessdb/lessdb/internal/base"
	"github.com/stretchr/testify/require"
)

func TestBlockRoundTripWithRestartInterval(t *testing.T) {
	w := NewWriter(2)
	keys := []string{"apple", "apricot", "banana", "blueberry", "cherry"}
	for i, k := range keys {
		require.NoError(t, w.Add(base.DefaultComparer, []byte(k), []byte(fmt.Sprintf("v%d", i))))
	}
	buf := w.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)

	it := r.NewIter()
	var got []string
	for ok := it.First(); ok; ok = it.Next() {
		got = append(got, string(it.Key()))
		require.Nil(t, it.Error())
	}
	require.Equal(t, keys, got)
}

func TestBlockFindBinarySearch(t *testing.T) {
	w := NewWriter(2)
	keys := []string{"a", "c", "e", "g", "i", "k"}
	for _, k := range keys {
		require.NoError(t, w.Add(base.DefaultComparer, []byte(k), []byte(k+k)))
	}
	buf := w.Finish()
	r, err := NewReader(buf)
	require.NoError(t, err)

	key, value, ok, err := r.Find(base.DefaultComparer, []byte("f"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "g", string(key))
	require.Equal(t, "gg", string(value))

	_, _, ok, err = r.Find(base.DefaultComparer, []byte("z"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBlockAddOutOfOrderRejected(t *testing.T) {
	w := NewWriter(16)
	require.NoError(t, w.Add(base.DefaultComparer, []byte("b"), nil))
	require.Error(t, w.Add(base.DefaultComparer, []byte("a"), nil))
}

func TestBlockRestartInvariant(t *testing.T) {
	w := NewWriter(1) // every entry is its own restart point
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, w.Add(base.DefaultComparer, []byte(k), nil))
	}
	buf := w.Finish()
	r, err := NewReader(buf)
	require.NoError(t, err)
	require.Equal(t, 3, r.numRestarts)
	require.Equal(t, uint32(0), r.restartOffset(0))
}

func TestTrailerRoundTrip(t *testing.T) {
	blockBytes := []byte("some compressed block bytes")
	trailer := AppendTrailer(nil, SnappyCompression, blockBytes)
	require.Len(t, trailer, TrailerLen)

	c, err := CheckTrailer(blockBytes, trailer)
	require.NoError(t, err)
	require.Equal(t, SnappyCompression, c)

	_, err = CheckTrailer([]byte("corrupted"), trailer)
	require.Error(t, err)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	for _, c := range []Compression{NoCompression, SnappyCompression, ZstdCompression} {
		src := []byte("hello hello hello hello world world world")
		compressed := Compress(c, nil, src)
		got, err := Decompress(c, compressed)
		require.NoError(t, err)
		require.Equal(t, src, got)
	}
}
