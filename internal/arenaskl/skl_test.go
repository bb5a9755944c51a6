// Copyright 2017 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arenaskl

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSkiplistInsertAndIterate(t *testing.T) {
	s := NewSkiplist(bytes.Compare)
	keys := []string{"banana", "apple", "cherry", "date"}
	for _, k := range keys {
		_, inserted := s.Insert([]byte(k))
		require.True(t, inserted)
	}

	sort.Strings(keys)
	it := s.NewIter()
	var got []string
	for ok := it.First(); ok; ok = it.Next() {
		got = append(got, string(it.Key()))
	}
	require.Equal(t, keys, got)
}

func TestSkiplistDuplicateInsertReturnsExisting(t *testing.T) {
	s := NewSkiplist(bytes.Compare)
	h1, inserted := s.Insert([]byte("k"))
	require.True(t, inserted)
	h2, inserted := s.Insert([]byte("k"))
	require.False(t, inserted)
	require.Same(t, h1, h2)
}

func TestSkiplistSeekGE(t *testing.T) {
	s := NewSkiplist(bytes.Compare)
	for _, k := range []string{"b", "d", "f"} {
		s.Insert([]byte(k))
	}
	it := s.NewIter()
	require.True(t, it.SeekGE([]byte("c")))
	require.Equal(t, "d", string(it.Key()))

	require.True(t, it.SeekGE([]byte("a")))
	require.Equal(t, "b", string(it.Key()))

	require.False(t, it.SeekGE([]byte("g")))
}

// TestSkiplistConcurrentReadWrite is the "Skip-list concurrency" property
// from spec.md §8: one writer goroutine inserting monotonically increasing
// keys concurrently with N reader goroutines, each of which must only ever
// observe a fully-linked, strictly sorted prefix of the list. Run with
// `go test -race`.
func TestSkiplistConcurrentReadWrite(t *testing.T) {
	const numKeys = 2000
	const numReaders = 8

	s := NewSkiplist(bytes.Compare)
	var g errgroup.Group

	g.Go(func() error {
		for i := 0; i < numKeys; i++ {
			key := []byte(fmt.Sprintf("%06d", i))
			if _, inserted := s.Insert(key); !inserted {
				return fmt.Errorf("unexpected duplicate at %d", i)
			}
		}
		return nil
	})

	for r := 0; r < numReaders; r++ {
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				it := s.NewIter()
				var prev []byte
				for ok := it.First(); ok; ok = it.Next() {
					k := it.Key()
					if prev != nil && bytes.Compare(prev, k) >= 0 {
						return fmt.Errorf("list not strictly sorted: %q >= %q", prev, k)
					}
					prev = append([]byte(nil), k...)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestArenaAllocGrowsAcrossChunks(t *testing.T) {
	a := NewArena(64)
	var total uint32
	for i := 0; i < 100; i++ {
		buf := a.Alloc(16)
		require.Len(t, buf, 16)
		total += 16
	}
	require.GreaterOrEqual(t, a.BytesUsed(), uint64(total))
}
