// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package vfs

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemFSCreateWriteReadAt(t *testing.T) {
	fs := NewMem()
	f, err := fs.Create("a")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	rf, err := fs.Open("a")
	require.NoError(t, err)
	defer rf.Close()

	size, err := rf.Size()
	require.NoError(t, err)
	require.EqualValues(t, len("hello world"), size)

	buf := make([]byte, 5)
	n, err := rf.ReadAt(buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))
}

func TestMemFSOpenMissingFile(t *testing.T) {
	fs := NewMem()
	_, err := fs.Open("missing")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemFSSequentialReadAndSkip(t *testing.T) {
	fs := NewMem()
	f, err := fs.Create("seq")
	require.NoError(t, err)
	_, err = f.Write([]byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sf, err := fs.OpenSequentialFile("seq")
	require.NoError(t, err)
	defer sf.Close()

	buf := make([]byte, 3)
	n, err := sf.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "012", string(buf[:n]))

	require.NoError(t, sf.Skip(4))

	n, err = sf.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "789", string(buf[:n]))

	_, err = sf.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestMemFSRenameAndRemove(t *testing.T) {
	fs := NewMem()
	f, err := fs.Create("old")
	require.NoError(t, err)
	_, err = f.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, fs.Rename("old", "new"))
	_, err = fs.Open("old")
	require.ErrorIs(t, err, os.ErrNotExist)

	rf, err := fs.Open("new")
	require.NoError(t, err)
	require.NoError(t, rf.Close())

	require.NoError(t, fs.Remove("new"))
	_, err = fs.Open("new")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemFSList(t *testing.T) {
	fs := NewMem()
	for _, name := range []string{"c", "a", "b"} {
		f, err := fs.Create(name)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	names, err := fs.List("")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, names)
}
