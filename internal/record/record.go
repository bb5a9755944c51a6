// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package record implements the write-ahead log's framing: fixed 32 KiB
// blocks holding length-prefixed, checksummed record fragments, so that a
// write batch larger than one block splits across several FIRST/MIDDLE/LAST
// fragments and reassembles bit-identically on replay.
package record

import "hash/crc32"

// BlockSize is the fixed size of every log block. A record that does not
// fit in the space remaining in the current block is split; a block's
// unused tail shorter than HeaderSize is zero-padded and skipped by the
// reader rather than holding a torn header.
const BlockSize = 32 * 1024

// HeaderSize is the size of a fragment header: crc32(4) ‖ length(2) ‖
// type(1).
const HeaderSize = 7

// fragmentType tags which part of a (possibly split) record a fragment
// holds.
type fragmentType byte

const (
	fullType   fragmentType = 1
	firstType  fragmentType = 2
	middleType fragmentType = 3
	lastType   fragmentType = 4
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// fragmentChecksum computes the CRC32C over the fragment's type byte
// followed by its payload, matching spec.md §4.Q ("CRC covers type ‖
// payload").
func fragmentChecksum(t fragmentType, payload []byte) uint32 {
	crc := crc32.Update(0, crcTable, []byte{byte(t)})
	crc = crc32.Update(crc, crcTable, payload)
	return crc
}
