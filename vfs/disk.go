// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package vfs

import (
	"os"
	"path/filepath"
)

// DiskFS is the production FS, backed by the local file system.
type DiskFS struct{}

// Default is the disk-backed FS singleton.
var Default FS = DiskFS{}

func (DiskFS) Create(name string) (WritableFile, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return &diskWritableFile{f: f}, nil
}

func (DiskFS) Open(name string) (RandomAccessFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &diskRandomAccessFile{f: f}, nil
}

func (DiskFS) OpenSequentialFile(name string) (SequentialFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &diskSequentialFile{f: f}, nil
}

func (DiskFS) Remove(name string) error { return os.Remove(name) }

func (DiskFS) Rename(oldname, newname string) error { return os.Rename(oldname, newname) }

func (DiskFS) List(dirname string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, filepath.Join(dirname, e.Name()))
	}
	return names, nil
}

type diskWritableFile struct {
	f *os.File
}

func (w *diskWritableFile) Write(p []byte) (int, error) { return w.f.Write(p) }

// Sync calls fsync via syncFile, which is platform-specialized (see
// disk_unix.go) to go through golang.org/x/sys/unix on Linux instead of
// relying solely on os.File.Sync's generic syscall wrapper, matching the
// teacher's own platform-specific fsync path for disk-backed files.
func (w *diskWritableFile) Sync() error { return syncFile(w.f) }

func (w *diskWritableFile) Close() error { return w.f.Close() }

type diskRandomAccessFile struct {
	f *os.File
}

func (r *diskRandomAccessFile) ReadAt(p []byte, off int64) (int, error) {
	return r.f.ReadAt(p, off)
}

func (r *diskRandomAccessFile) Size() (int64, error) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (r *diskRandomAccessFile) Close() error { return r.f.Close() }

type diskSequentialFile struct {
	f *os.File
}

func (s *diskSequentialFile) Read(p []byte) (int, error) { return s.f.Read(p) }

func (s *diskSequentialFile) Skip(n int64) error {
	_, err := s.f.Seek(n, os.SEEK_CUR)
	return err
}

func (s *diskSequentialFile) Close() error { return s.f.Close() }
