// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merge

import (
	"github.com/lessdb/lessdb/internal/base"
	"github.com/lessdb/lessdb/internal/memtable"
	"github.com/lessdb/lessdb/sstable"
)

// MemTableSource adapts *memtable.Iterator to Source.
type MemTableSource struct {
	It *memtable.Iterator
}

func (s MemTableSource) First() bool { return s.It.First() }
func (s MemTableSource) Next() bool  { return s.It.Next() }
func (s MemTableSource) Valid() bool { return s.It.Valid() }
func (s MemTableSource) Key() base.InternalKey { return s.It.Key() }
func (s MemTableSource) Value() []byte         { return s.It.Value() }
func (s MemTableSource) Error() error          { return nil }

func (s MemTableSource) SeekGE(target base.InternalKey) bool {
	return s.It.SeekGE(target.UserKey, target.SeqNum(), target.Kind())
}

// SSTableSource adapts *sstable.Iterator to Source.
type SSTableSource struct {
	It *sstable.Iterator
}

func (s SSTableSource) First() bool { return s.It.First() }
func (s SSTableSource) Next() bool  { return s.It.Next() }
func (s SSTableSource) Valid() bool { return s.It.Valid() }
func (s SSTableSource) Key() base.InternalKey { return s.It.Key() }
func (s SSTableSource) Value() []byte         { return s.It.Value() }
func (s SSTableSource) Error() error          { return s.It.Error() }

func (s SSTableSource) SeekGE(target base.InternalKey) bool {
	return s.It.SeekGE(target.Encode(make([]byte, 0, target.Size())))
}
