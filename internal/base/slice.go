// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "bytes"

// This package represents the "byte slice" module (spec.md §4.B) with plain
// Go []byte: a slice already carries ptr+len and supports subscript, length
// and re-slicing natively. Skip and Truncate are named wrappers over those
// native expressions so call sites read the way spec.md's operation names
// do, not because []byte needs help expressing them.

// Skip returns s advanced past its first n bytes, equivalent to s[n:].
func Skip(s []byte, n int) []byte {
	return s[n:]
}

// Truncate returns the first n bytes of s, equivalent to s[:n].
func Truncate(s []byte, n int) []byte {
	return s[:n]
}

// Compare returns <0, 0, or >0 as a<b, a==b, a>b under plain memcmp order,
// the comparison spec.md §4.B calls out independently of any Comparer.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}
