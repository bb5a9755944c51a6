// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "bytes"

// Comparer defines a total order over user keys, plus the shortest-
// separator helper index blocks use to keep their keys small. The name is
// persisted in every table written with this comparer and is checked again
// on reopen; a mismatch is a Corruption, not a silent reinterpretation of
// bytes under a different order.
type Comparer struct {
	// Name identifies the ordering. Stored comparer names must match byte
	// for byte on reopen.
	Name string

	// Compare returns <0, 0, or >0 as a<b, a==b, a>b under this order.
	Compare func(a, b []byte) int

	// Separator writes to dst a key s such that start <= s < limit, and
	// len(s) is as small as the algorithm can make it. It returns the
	// extended dst. When start is a prefix of limit (or start >= limit),
	// Separator returns dst unchanged (appending start as-is).
	Separator func(dst, start, limit []byte) []byte

	// Successor writes to dst a key s such that s >= start, shorter than or
	// equal in length to start when possible. Used for the last block's
	// synthetic index separator.
	Successor func(dst, start []byte) []byte
}

// DefaultComparer is the bytewise comparer: plain memcmp ordering, named to
// match the original lessdb storage engine this package's wire format is
// compatible with.
var DefaultComparer = &Comparer{
	Name:    "lessdb.BytewiseComparator",
	Compare: bytes.Compare,
	Separator: func(dst, start, limit []byte) []byte {
		n := len(start)
		if n > len(limit) {
			n = len(limit)
		}
		diff := 0
		for diff < n && start[diff] == limit[diff] {
			diff++
		}
		if diff >= n || int(start[diff])+1 >= int(limit[diff]) {
			// start is a prefix of limit, not less than it, or differs by
			// exactly one at diff (where start[:diff+1] would be < start);
			// leave unchanged.
			return append(dst, start...)
		}
		// start[diff]+1 < limit[diff]: s := start[:diff] ++ (limit[diff]-1)
		// satisfies start < s < limit and is no longer than start.
		dst = append(dst, start[:diff]...)
		return append(dst, limit[diff]-1)
	},
	Successor: func(dst, start []byte) []byte {
		for i := 0; i < len(start); i++ {
			if start[i] != 0xff {
				dst = append(dst, start[:i+1]...)
				dst[len(dst)-1]++
				return dst
			}
		}
		// start is all 0xff bytes (or empty); no shorter successor exists.
		return append(dst, start...)
	},
}
