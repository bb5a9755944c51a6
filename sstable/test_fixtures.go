// Copyright 2023 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/ghemawat/stream"
	"github.com/lessdb/lessdb/bloom"
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/sstable/block"
	"github.com/lessdb/lessdb/vfs"
)

// testKVs is a key/value corpus used by this package's tests.
type testKVs map[string]string

// sortedKeys returns the map's keys in sorted order.
func (m testKVs) sortedKeys() []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// wordCorpusState lazily builds the corpus tests build fixture tables from.
// The teacher's own test_fixtures.go reads a static testdata/h.txt (a
// Hamlet word-count dump); this module carries no such fixture file, so the
// corpus is generated instead, filtered through a small
// github.com/ghemawat/stream pipeline the way the teacher's own test code
// (data_test.go's streamFilterBetweenGrep) uses that package.
var wordCorpusState struct {
	once sync.Once
	data testKVs
}

// wordCorpus returns a deterministic word -> decimal-count corpus of 1000
// entries, generated rather than read from disk.
func wordCorpus() testKVs {
	wordCorpusState.once.Do(func() {
		data := make(testKVs, 1000)
		err := stream.Run(
			stream.Numbers(1, 1000),
			stream.FilterFunc(func(arg stream.Arg) error {
				for n := range arg.In {
					i, err := strconv.Atoi(n)
					if err != nil {
						return err
					}
					arg.Out <- fmt.Sprintf("word%06d %d", i, i%97+1)
				}
				return nil
			}),
			stream.FilterFunc(func(arg stream.Arg) error {
				for line := range arg.In {
					var word string
					var count int
					if _, err := fmt.Sscanf(line, "%s %d", &word, &count); err != nil {
						return err
					}
					data[word] = strconv.Itoa(count)
				}
				return nil
			}),
		)
		if err != nil {
			panic(err)
		}
		wordCorpusState.data = data
	})
	return wordCorpusState.data
}

// buildWordCorpusSST writes the corpus to filename on fs using opts,
// returning the sorted keys written (so a test can check point lookups and
// range iteration against a known order).
func buildWordCorpusSST(fs vfs.FS, filename string, opts WriterOptions) ([]string, error) {
	corpus := wordCorpus()
	keys := corpus.sortedKeys()

	f, err := fs.Create(filename)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f, opts)
	cmp := opts.EnsureDefaults().Comparer
	for i, k := range keys {
		ikey := base.MakeInternalKey([]byte(k), base.SeqNum(i+1), base.InternalKeyKindSet)
		if err := w.Add(ikey, []byte(corpus[k])); err != nil {
			return nil, err
		}
	}
	_ = cmp
	if err := w.Finish(); err != nil {
		return nil, err
	}
	return keys, nil
}

// TestFixture names one combination of knobs buildWordCorpusSST is
// exercised with by this package's tests.
type TestFixture struct {
	Filename    string
	Compression block.Compression
	WithFilter  bool
}

// TestFixtures covers every compression codec wired into sstable/block,
// with and without a Bloom filter block.
var TestFixtures = []TestFixture{
	{Filename: "h.no-compression.sst", Compression: block.NoCompression, WithFilter: false},
	{Filename: "h.snappy.sst", Compression: block.SnappyCompression, WithFilter: false},
	{Filename: "h.zstd.sst", Compression: block.ZstdCompression, WithFilter: false},
	{Filename: "h.bloom.sst", Compression: block.NoCompression, WithFilter: true},
	{Filename: "h.bloom.snappy.sst", Compression: block.SnappyCompression, WithFilter: true},
}

// Build materializes the fixture on fs and returns the sorted keys written.
func (tf TestFixture) Build(fs vfs.FS) ([]string, error) {
	opts := WriterOptions{
		Comparer:    base.DefaultComparer,
		Compression: tf.Compression,
		BlockSize:   2048,
	}
	if tf.WithFilter {
		opts.FilterPolicy = bloom.NewFilterPolicy(10)
	}
	return buildWordCorpusSST(fs, tf.Filename, opts)
}
