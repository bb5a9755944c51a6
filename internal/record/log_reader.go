// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package record

import (
	"io"

	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/vfs"
)

// Reader replays a log written by LogWriter, reassembling fragments back
// into whole records. It is the supplemented half of the WAL (see
// SPEC_FULL.md): the distilled spec names only the writer, but a log that
// cannot be replayed cannot be tested or recovered from.
type Reader struct {
	f   vfs.SequentialFile
	buf [BlockSize]byte
	// block holds the unconsumed portion of the current block.
	block []byte
	eof   bool
}

// NewReader returns a Reader over f.
func NewReader(f vfs.SequentialFile) *Reader {
	return &Reader{f: f}
}

// Next returns the next whole record, or io.EOF once the log is exhausted.
// The returned slice is valid only until the next call to Next.
func (r *Reader) Next() ([]byte, error) {
	var record []byte
	inFragmentedRecord := false

	for {
		frag, typ, err := r.nextFragment()
		if err == errSkippedTrailer {
			continue
		}
		if err != nil {
			return nil, err
		}

		switch typ {
		case fullType:
			if inFragmentedRecord {
				return nil, base.CorruptionErrorf("record: unexpected FULL fragment mid-record")
			}
			return frag, nil

		case firstType:
			if inFragmentedRecord {
				return nil, base.CorruptionErrorf("record: unexpected FIRST fragment mid-record")
			}
			record = append([]byte(nil), frag...)
			inFragmentedRecord = true

		case middleType:
			if !inFragmentedRecord {
				return nil, base.CorruptionErrorf("record: unexpected MIDDLE fragment with no FIRST")
			}
			record = append(record, frag...)

		case lastType:
			if !inFragmentedRecord {
				return nil, base.CorruptionErrorf("record: unexpected LAST fragment with no FIRST")
			}
			record = append(record, frag...)
			return record, nil

		default:
			return nil, base.CorruptionErrorf("record: unknown fragment type %d", typ)
		}
	}
}

var errSkippedTrailer = base.CorruptionErrorf("record: internal: skipped trailer")

// nextFragment reads one fragment header+payload from the underlying file,
// refilling the block buffer as needed. A block tail shorter than
// HeaderSize is a zero-padded trailer and is silently skipped, per
// spec.md §8 ("Log framing").
func (r *Reader) nextFragment() ([]byte, fragmentType, error) {
	for len(r.block) < HeaderSize {
		if r.eof {
			return nil, 0, io.EOF
		}
		if err := r.fillBlock(); err != nil {
			return nil, 0, err
		}
	}

	header := r.block[:HeaderSize]
	wantCRC := base.DecodeFixed32(header[0:4])
	length := int(header[4]) | int(header[5])<<8
	typ := fragmentType(header[6])

	if wantCRC == 0 && length == 0 && typ == 0 {
		// Zero-padded trailer: skip the rest of this block.
		r.block = nil
		return nil, 0, errSkippedTrailer
	}

	if len(r.block) < HeaderSize+length {
		return nil, 0, base.CorruptionErrorf("record: fragment truncated")
	}
	payload := r.block[HeaderSize : HeaderSize+length]
	gotCRC := fragmentChecksum(typ, payload)
	if gotCRC != wantCRC {
		return nil, 0, base.CorruptionErrorf("record: checksum mismatch in fragment")
	}

	r.block = r.block[HeaderSize+length:]
	return payload, typ, nil
}

func (r *Reader) fillBlock() error {
	n, err := io.ReadFull(r.f, r.buf[:])
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		r.eof = true
		if n == 0 {
			r.block = nil
			return nil
		}
	} else if err != nil {
		return base.IOErrorf(err, "record: read failed")
	}
	r.block = r.buf[:n]
	return nil
}
