// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterNoFalseNegatives(t *testing.T) {
	p := NewFilterPolicy(10)
	var keys [][]byte
	for i := 0; i < 1000; i++ {
		keys = append(keys, []byte(fmt.Sprintf("key-%06d", i)))
	}

	filter := p.Create(nil, keys)
	for _, k := range keys {
		require.True(t, MightContain(filter, k), "false negative for %q", k)
	}
}

func TestFilterFalsePositiveRateIsReasonable(t *testing.T) {
	p := NewFilterPolicy(10)
	var keys [][]byte
	for i := 0; i < 1000; i++ {
		keys = append(keys, []byte(fmt.Sprintf("present-%06d", i)))
	}
	filter := p.Create(nil, keys)

	falsePositives := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		k := []byte(fmt.Sprintf("absent-%06d", i))
		if MightContain(filter, k) {
			falsePositives++
		}
	}
	// 10 bits/key should give roughly a 1% false positive rate; allow
	// generous headroom so the test isn't flaky.
	require.Less(t, falsePositives, trials/10)
}

func TestFilterEmptyKeySet(t *testing.T) {
	p := NewFilterPolicy(10)
	filter := p.Create(nil, nil)
	require.False(t, MightContain(filter, []byte("anything")))
}

func TestFilterNameIsStable(t *testing.T) {
	p := NewFilterPolicy(10)
	require.Equal(t, "lessdb.BuiltinBloomFilter", p.Name())
}
