// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "fmt"

// SeqNum is a monotonically increasing sequence number assigned to every
// mutation. It occupies the low 56 bits of an internal key's packed
// trailer; 0 is reserved and never assigned to a real mutation.
type SeqNum uint64

// SeqNumMax is the largest representable sequence number (56 bits).
const SeqNumMax SeqNum = 1<<56 - 1

// InternalKeyKind tags whether an internal key records a value or a
// deletion (tombstone).
type InternalKeyKind uint8

const (
	// InternalKeyKindDelete marks a tombstone; its value is always empty.
	InternalKeyKindDelete InternalKeyKind = 0x00
	// InternalKeyKindSet records a live value.
	InternalKeyKindSet InternalKeyKind = 0x01
)

func (k InternalKeyKind) String() string {
	switch k {
	case InternalKeyKindDelete:
		return "DEL"
	case InternalKeyKindSet:
		return "SET"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// InternalTrailerLen is the number of bytes the packed (seq, kind) trailer
// occupies at the tail of every internal key.
const InternalTrailerLen = 8

// InternalKeyTrailer packs a sequence number and kind into the uint64 used
// as the last 8 bytes of an internal key: (seq << 8) | kind.
func InternalKeyTrailer(seq SeqNum, kind InternalKeyKind) uint64 {
	return uint64(seq)<<8 | uint64(kind)
}

// SeqNumAndKind unpacks a trailer produced by InternalKeyTrailer.
func SeqNumAndKind(trailer uint64) (SeqNum, InternalKeyKind) {
	return SeqNum(trailer >> 8), InternalKeyKind(trailer & 0xff)
}

// InternalKey is a decoded (user_key, sequence, kind) triple. Encode packs
// it back into the on-disk/in-memory byte form; MakeInternalKey /
// DecodeInternalKey round-trip bit-exactly.
type InternalKey struct {
	UserKey []byte
	Trailer uint64
}

// MakeInternalKey constructs an InternalKey from its parts.
func MakeInternalKey(userKey []byte, seq SeqNum, kind InternalKeyKind) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: InternalKeyTrailer(seq, kind)}
}

// SeqNum returns the sequence number component.
func (k InternalKey) SeqNum() SeqNum {
	return SeqNum(k.Trailer >> 8)
}

// Kind returns the value-type component.
func (k InternalKey) Kind() InternalKeyKind {
	return InternalKeyKind(k.Trailer & 0xff)
}

// Size returns the encoded length: len(UserKey) + 8.
func (k InternalKey) Size() int {
	return len(k.UserKey) + InternalTrailerLen
}

// Encode appends the packed wire form (user_key ‖ u64_le(trailer)) to dst.
func (k InternalKey) Encode(dst []byte) []byte {
	dst = append(dst, k.UserKey...)
	var buf [8]byte
	EncodeFixed64(buf[:], k.Trailer)
	return append(dst, buf[:]...)
}

// DecodeInternalKey decodes an internal key from its packed wire form. The
// returned InternalKey aliases b; the caller must not mutate b while the
// key is in use. ok is false if b is shorter than the 8-byte trailer.
func DecodeInternalKey(b []byte) (k InternalKey, ok bool) {
	if len(b) < InternalTrailerLen {
		return InternalKey{}, false
	}
	n := len(b) - InternalTrailerLen
	return InternalKey{
		UserKey: b[:n],
		Trailer: DecodeFixed64(b[n:]),
	}, true
}

func (k InternalKey) String() string {
	return fmt.Sprintf("%s#%d,%s", k.UserKey, k.SeqNum(), k.Kind())
}

// InternalKeyComparer lifts a user Comparer to the total order over
// internal keys described in spec.md §3: compare user keys first; on a tie,
// compare packed trailers in reverse (larger trailer sorts first, because a
// higher sequence number dominates the high bits and newer writes must be
// reported before older ones).
func InternalKeyComparer(userCmp *Comparer) *Comparer {
	name := "lessdb.InternalKeyComparator"
	return &Comparer{
		Name: name,
		Compare: func(a, b []byte) int {
			ak, aok := DecodeInternalKey(a)
			bk, bok := DecodeInternalKey(b)
			if !aok || !bok {
				// Malformed input; fall back to a total but arbitrary order
				// rather than panicking — callers that hit this have
				// already failed a higher-level length check.
				return userCmp.Compare(a, b)
			}
			if c := userCmp.Compare(ak.UserKey, bk.UserKey); c != 0 {
				return c
			}
			switch {
			case ak.Trailer > bk.Trailer:
				return -1
			case ak.Trailer < bk.Trailer:
				return 1
			default:
				return 0
			}
		},
		Separator: func(dst, start, limit []byte) []byte {
			sk, sok := DecodeInternalKey(start)
			lk, lok := DecodeInternalKey(limit)
			if !sok || !lok {
				return append(dst, start...)
			}
			if userCmp.Compare(sk.UserKey, lk.UserKey) == 0 {
				// Same user key: no separator is shorter than start itself
				// (shortening would change which version it names).
				return append(dst, start...)
			}
			n := len(dst)
			dst = userCmp.Separator(dst, sk.UserKey, lk.UserKey)
			if len(dst) < n+len(sk.UserKey) {
				// A strictly shorter user-key separator was found: make it
				// an internal key with the highest possible trailer so it
				// sorts before every version of the next block's first key.
				var buf [8]byte
				EncodeFixed64(buf[:], InternalKeyTrailer(SeqNumMax, InternalKeyKindSet))
				return append(dst, buf[:]...)
			}
			// Separator fell back to start unchanged; reuse start verbatim.
			return append(dst[:n], start...)
		},
		Successor: func(dst, start []byte) []byte {
			sk, ok := DecodeInternalKey(start)
			if !ok {
				return append(dst, start...)
			}
			n := len(dst)
			dst = userCmp.Successor(dst, sk.UserKey)
			if len(dst) < n+len(sk.UserKey) {
				var buf [8]byte
				EncodeFixed64(buf[:], InternalKeyTrailer(SeqNumMax, InternalKeyKindSet))
				return append(dst, buf[:]...)
			}
			return append(dst[:n], start...)
		},
	}
}
