// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the types shared by every layer of the storage core:
// comparers, internal keys, the varint/fixed-width codec, and the error
// kinds every fallible operation returns.
package base

import "encoding/binary"

// MaxVarint32Len is the maximum number of bytes a varint-encoded uint32 can
// occupy.
const MaxVarint32Len = 5

// MaxVarint64Len is the maximum number of bytes a varint-encoded uint64 can
// occupy.
const MaxVarint64Len = 10

// EncodeVarint32 appends the varint encoding of v to dst and returns the
// extended slice.
func EncodeVarint32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// EncodeVarint64 appends the varint encoding of v to dst and returns the
// extended slice.
func EncodeVarint64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// DecodeVarint32 decodes a varint-encoded uint32 from the front of src,
// returning the value and the number of bytes consumed. n == 0 signals a
// truncated or overflowing varint.
func DecodeVarint32(src []byte) (v uint32, n int) {
	var shift uint
	for i := 0; i < len(src) && i < MaxVarint32Len; i++ {
		b := src[i]
		if b < 0x80 {
			v |= uint32(b) << shift
			return v, i + 1
		}
		v |= uint32(b&0x7f) << shift
		shift += 7
	}
	return 0, 0
}

// DecodeVarint64 decodes a varint-encoded uint64 from the front of src,
// returning the value and the number of bytes consumed. n == 0 signals a
// truncated or overflowing varint.
func DecodeVarint64(src []byte) (v uint64, n int) {
	var shift uint
	for i := 0; i < len(src) && i < MaxVarint64Len; i++ {
		b := src[i]
		if b < 0x80 {
			v |= uint64(b) << shift
			return v, i + 1
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, 0
}

// EncodeFixed32 writes v to dst[:4] in little-endian order.
func EncodeFixed32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

// EncodeFixed32Append appends the little-endian encoding of v to dst.
func EncodeFixed32Append(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// EncodeFixed64Append appends the little-endian encoding of v to dst.
func EncodeFixed64Append(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// DecodeFixed32 reads a little-endian uint32 from src[:4].
func DecodeFixed32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// EncodeFixed64 writes v to dst[:8] in little-endian order.
func EncodeFixed64(dst []byte, v uint64) {
	binary.LittleEndian.PutUint64(dst, v)
}

// DecodeFixed64 reads a little-endian uint64 from src[:8].
func DecodeFixed64(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}

// PutLengthPrefixedBytes appends a length-prefixed byte string (varint32 length
// followed by the bytes) to dst.
func PutLengthPrefixedBytes(dst []byte, s []byte) []byte {
	dst = EncodeVarint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// GetLengthPrefixedBytes decodes a varint32-length-prefixed byte string from
// the front of src, returning the string and the remaining bytes. ok is false
// if src is truncated or the length overflows what remains.
func GetLengthPrefixedBytes(src []byte) (s []byte, rest []byte, ok bool) {
	v, n := DecodeVarint32(src)
	if n == 0 || uint32(len(src)-n) < v {
		return nil, nil, false
	}
	return src[n : n+int(v)], src[n+int(v):], true
}
