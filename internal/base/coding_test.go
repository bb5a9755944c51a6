// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarint32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 1 << 20, 1<<32 - 1} {
		var buf []byte
		buf = EncodeVarint32(buf, v)
		got, n := DecodeVarint32(buf)
		require.NotZero(t, n)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
	}
}

func TestVarint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 40, 1<<64 - 1} {
		var buf []byte
		buf = EncodeVarint64(buf, v)
		got, n := DecodeVarint64(buf)
		require.NotZero(t, n)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
	}
}

func TestVarint32TruncatedIsNotOK(t *testing.T) {
	buf := EncodeVarint32(nil, 1<<20)
	_, n := DecodeVarint32(buf[:len(buf)-1])
	require.Zero(t, n)
}

func TestFixed64LittleEndian(t *testing.T) {
	var buf [8]byte
	EncodeFixed64(buf[:], 0x0102030405060708)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf[:])
	require.Equal(t, uint64(0x0102030405060708), DecodeFixed64(buf[:]))
}

func TestLengthPrefixedBytesRoundTrip(t *testing.T) {
	var buf []byte
	buf = PutLengthPrefixedBytes(buf, []byte("hello"))
	buf = PutLengthPrefixedBytes(buf, []byte(""))
	buf = PutLengthPrefixedBytes(buf, []byte("world"))

	s1, rest, ok := GetLengthPrefixedBytes(buf)
	require.True(t, ok)
	require.Equal(t, "hello", string(s1))
	s2, rest, ok := GetLengthPrefixedBytes(rest)
	require.True(t, ok)
	require.Equal(t, "", string(s2))
	s3, rest, ok := GetLengthPrefixedBytes(rest)
	require.True(t, ok)
	require.Equal(t, "world", string(s3))
	require.Empty(t, rest)
}
