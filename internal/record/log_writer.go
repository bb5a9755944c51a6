// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package record

import (
	"context"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/tokenbucket"
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/vfs"
	"github.com/prometheus/client_golang/prometheus"
)

// LogWriter frames write-batch buffers into BlockSize-byte blocks, one
// record at a time. Once a write fails, the writer is poisoned: every
// subsequent call returns the same error without touching the file again,
// per spec.md §7's IOError write-path policy.
type LogWriter struct {
	f            vfs.WritableFile
	blockOffset  int
	err          error
	syncLimiter  *tokenbucket.TokenBucket
	syncLatency  *hdrhistogram.Histogram
	syncCounter  prometheus.Counter
}

// NewLogWriter returns a LogWriter appending to f. If syncRateLimit is
// positive, Sync calls are throttled to at most syncRateLimit per second
// via a token bucket (useful when many small batches would otherwise fsync
// far more often than the underlying device can sustain).
func NewLogWriter(f vfs.WritableFile, syncRateLimit float64) *LogWriter {
	w := &LogWriter{
		f:           f,
		syncLatency: hdrhistogram.New(1, 10_000_000, 3), // 1µs .. 10s, in µs.
		syncCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lessdb",
			Subsystem: "wal",
			Name:      "syncs_total",
			Help:      "Number of WAL sync calls issued.",
		}),
	}
	if syncRateLimit > 0 {
		w.syncLimiter = &tokenbucket.TokenBucket{}
		w.syncLimiter.Init(tokenbucket.TokensPerSecond(syncRateLimit), 1)
	}
	return w
}

// WriteRecord frames data into one or more fragments and appends them,
// following the algorithm in spec.md §4.Q exactly: the header is never
// split across a block boundary, and a block's remaining tail shorter than
// HeaderSize is zero-padded before advancing to a fresh block.
func (w *LogWriter) WriteRecord(data []byte) error {
	if w.err != nil {
		return w.err
	}

	left := len(data)
	p := 0
	first := true
	for {
		avail := BlockSize - w.blockOffset
		if avail < HeaderSize {
			if err := w.pad(avail); err != nil {
				return w.fail(err)
			}
			continue
		}

		usable := avail - HeaderSize
		frag := left
		if frag > usable {
			frag = usable
		}

		var typ fragmentType
		switch {
		case first && frag == left:
			typ = fullType
		case first:
			typ = firstType
		case frag == left:
			typ = lastType
		default:
			typ = middleType
		}

		if err := w.writeFragment(typ, data[p:p+frag]); err != nil {
			return w.fail(err)
		}

		p += frag
		left -= frag
		first = false
		if left == 0 {
			break
		}
	}
	return nil
}

func (w *LogWriter) pad(n int) error {
	var zeros [HeaderSize]byte
	for n > 0 {
		k := n
		if k > len(zeros) {
			k = len(zeros)
		}
		if _, err := w.f.Write(zeros[:k]); err != nil {
			return err
		}
		n -= k
	}
	w.blockOffset = 0
	return nil
}

func (w *LogWriter) writeFragment(typ fragmentType, payload []byte) error {
	var header [HeaderSize]byte
	crc := fragmentChecksum(typ, payload)
	base.EncodeFixed32(header[0:4], crc)
	header[4] = byte(len(payload))
	header[5] = byte(len(payload) >> 8)
	header[6] = byte(typ)

	if _, err := w.f.Write(header[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.f.Write(payload); err != nil {
			return err
		}
	}
	w.blockOffset += HeaderSize + len(payload)
	return nil
}

func (w *LogWriter) fail(err error) error {
	w.err = base.IOErrorf(err, "record: write failed")
	return w.err
}

// Sync flushes the log to stable storage, recording latency in the HDR
// histogram and Prometheus counter, and respecting the configured sync
// rate limit (if any) by blocking until a token is available.
func (w *LogWriter) Sync(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}
	if w.syncLimiter != nil {
		if err := w.syncLimiter.Wait(ctx, 1); err != nil {
			return err
		}
	}
	start := time.Now()
	err := w.f.Sync()
	_ = w.syncLatency.RecordValue(time.Since(start).Microseconds())
	w.syncCounter.Inc()
	if err != nil {
		return w.fail(err)
	}
	return nil
}

// Close closes the underlying file.
func (w *LogWriter) Close() error {
	return w.f.Close()
}

// SyncLatencyMicros returns the p50/p99 sync latency observed so far, in
// microseconds, for diagnostics.
func (w *LogWriter) SyncLatencyMicros() (p50, p99 int64) {
	return w.syncLatency.ValueAtQuantile(50), w.syncLatency.ValueAtQuantile(99)
}

// Collectors returns the writer's Prometheus collectors.
func (w *LogWriter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{w.syncCounter}
}
