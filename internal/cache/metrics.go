// Copyright 2021 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// metrics are the Prometheus collectors exposing cache behavior: hit rate
// is the single most actionable signal for whether block_cache is sized
// correctly relative to the working set.
type metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

func (m *metrics) init() {
	m.hits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lessdb",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Number of block cache lookups that found a cached block.",
	})
	m.misses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lessdb",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Number of block cache lookups that found nothing cached.",
	})
	m.evictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lessdb",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Number of blocks evicted to make room for a new entry.",
	})
}

// Collectors returns the cache's Prometheus collectors for registration
// with a caller-owned registry.
func (c *Cache) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.metrics.hits, c.metrics.misses, c.metrics.evictions}
}

// DebugHistogram renders a small multi-line ASCII plot (6 rows high) of the
// hits/misses/evictions counted so far, useful for eyeballing cache behavior in a debugger or log
// line — not a CLI surface, just a String-producing helper.
func (c *Cache) DebugHistogram() string {
	series := []float64{
		testutil.ToFloat64(c.metrics.hits),
		testutil.ToFloat64(c.metrics.misses),
		testutil.ToFloat64(c.metrics.evictions),
	}
	graph := asciigraph.Plot(series, asciigraph.Height(6), asciigraph.Width(6))
	return strings.TrimRight(fmt.Sprintf("cache hits/misses/evictions:\n%s", graph), "\n")
}
