// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build linux

package vfs

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile fsyncs f via golang.org/x/sys/unix directly, rather than
// os.File.Sync, so that callers get EINTR-retry semantics consistent with
// the rest of this module's Linux-specific I/O path.
func syncFile(f *os.File) error {
	for {
		err := unix.Fsync(int(f.Fd()))
		if err != unix.EINTR {
			return err
		}
	}
}
