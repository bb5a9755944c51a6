// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipAdvancesStart(t *testing.T) {
	require.Equal(t, []byte("cde"), Skip([]byte("abcde"), 2))
}

func TestTruncateShortensLength(t *testing.T) {
	require.Equal(t, []byte("ab"), Truncate([]byte("abcde"), 2))
}

func TestCompareOrdersLexicographically(t *testing.T) {
	require.True(t, Compare([]byte("a"), []byte("b")) < 0)
	require.Equal(t, 0, Compare([]byte("a"), []byte("a")))
	require.True(t, Compare([]byte("b"), []byte("a")) > 0)
}
