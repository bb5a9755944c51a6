// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package vfs abstracts the file system: the core depends only on these
// interfaces, never on the os package directly, so it can run against an
// in-memory filesystem in tests and a real disk in production.
package vfs

import "io"

// RandomAccessFile supports concurrent reads at arbitrary offsets. All
// implementations must be safe for concurrent ReadAt calls.
type RandomAccessFile interface {
	ReadAt(p []byte, off int64) (n int, err error)
	Size() (int64, error)
	Close() error
}

// SequentialFile supports forward-only reads, used by the log reader.
type SequentialFile interface {
	Read(p []byte) (n int, err error)
	Skip(n int64) error
	Close() error
}

// WritableFile supports single-threaded appends. No concurrent caller may
// Write while another Write, Sync, or Close is in flight.
type WritableFile interface {
	io.Writer
	Sync() error
	Close() error
}

// FS opens and manages named files. A production FS wraps the local disk;
// a test FS keeps everything in memory.
type FS interface {
	Create(name string) (WritableFile, error)
	Open(name string) (RandomAccessFile, error)
	OpenSequentialFile(name string) (SequentialFile, error)
	Remove(name string) error
	Rename(oldname, newname string) error
	List(dirname string) ([]string, error)
}
