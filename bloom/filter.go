// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bloom implements the optional per-block Bloom filter used to
// short-circuit negative lookups before a data block is fetched.
package bloom

import "math/bits"

// FilterPolicy builds and probes Bloom filters with a fixed number of bits
// per key. Absence of a FilterPolicy (a nil value wherever one is
// expected) means every lookup falls through to an unconditional block
// fetch, per spec.md §4.R.
type FilterPolicy struct {
	bitsPerKey int
	k          int
}

// NewFilterPolicy returns a policy using roughly bitsPerKey bits of filter
// per key added, with k = round(bitsPerKey * ln 2) hash probes.
func NewFilterPolicy(bitsPerKey int) *FilterPolicy {
	if bitsPerKey < 1 {
		bitsPerKey = 1
	}
	k := int(float64(bitsPerKey)*0.69 + 0.5)
	if k < 1 {
		k = 1
	}
	if k > 30 {
		k = 30
	}
	return &FilterPolicy{bitsPerKey: bitsPerKey, k: k}
}

// Name identifies the policy for storage in a table's metadata, the same
// way a Comparer's name is stored and checked on reopen.
func (p *FilterPolicy) Name() string { return "lessdb.BuiltinBloomFilter" }

// hash is a 32-bit finalizer over the key bytes (Austin Appleby's
// MurmurHash2 finalizer, the same one LevelDB-family engines use for this
// purpose).
func hash(data []byte) uint32 {
	const (
		seed = 0xbc9f1d34
		m    = 0xc6a4a793
	)
	h := uint32(seed) ^ uint32(len(data))*m
	for len(data) >= 4 {
		h += uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
		h *= m
		h ^= h >> 16
		data = data[4:]
	}
	switch len(data) {
	case 3:
		h += uint32(data[2]) << 16
		fallthrough
	case 2:
		h += uint32(data[1]) << 8
		fallthrough
	case 1:
		h += uint32(data[0])
		h *= m
		h ^= h >> 24
	}
	return h
}

// Create builds a filter bitset over keys, sized bitsPerKey*len(keys) bits
// (rounded up to a byte, minimum 64 bits) and appends the encoded filter
// (bit array followed by a trailing k byte) to dst.
func (p *FilterPolicy) Create(dst []byte, keys [][]byte) []byte {
	nBits := len(keys) * p.bitsPerKey
	if nBits < 64 {
		nBits = 64
	}
	nBytes := (nBits + 7) / 8
	nBits = nBytes * 8

	base := len(dst)
	dst = append(dst, make([]byte, nBytes+1)...)
	bitset := dst[base : base+nBytes]

	for _, key := range keys {
		h1 := hash(key)
		h2 := bits.RotateLeft32(h1, 15)
		g := h1
		for i := 0; i < p.k; i++ {
			bitpos := g % uint32(nBits)
			bitset[bitpos/8] |= 1 << (bitpos % 8)
			g += h2
		}
	}
	dst[base+nBytes] = byte(p.k)
	return dst
}

// MightContain reports whether key may be a member of the filter produced
// by Create. False negatives are impossible (§8 "Bloom soundness"); false
// positives are expected at roughly the configured bitsPerKey rate.
func MightContain(filter []byte, key []byte) bool {
	if len(filter) < 1 {
		return false
	}
	k := int(filter[len(filter)-1])
	bitset := filter[:len(filter)-1]
	nBits := uint32(len(bitset) * 8)
	if nBits == 0 {
		return false
	}

	h1 := hash(key)
	h2 := bits.RotateLeft32(h1, 15)
	g := h1
	for i := 0; i < k; i++ {
		bitpos := g % nBits
		if bitset[bitpos/8]&(1<<(bitpos%8)) == 0 {
			return false
		}
		g += h2
	}
	return true
}
