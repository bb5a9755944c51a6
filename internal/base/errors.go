// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Every fallible operation in the core returns a plain error, classified
// into one of the kinds below via errors.Is. ErrNotFound is the one kind
// that is an ordinary, expected outcome rather than a failure: the core
// never conflates a miss with an error.
var (
	// ErrNotFound means a point lookup found no entry for the key.
	ErrNotFound = errors.New("lessdb: not found")
	// ErrCorruption marks on-disk or in-memory data that fails a structural
	// or checksum invariant. Local retries never help.
	ErrCorruption = errors.New("lessdb: corruption")
	// ErrInvalidArgument marks a caller/programmer error: out-of-order
	// writes to a builder, a call after Finish, and similar. (A comparer
	// name mismatch on open is reported as ErrCorruption.)
	ErrInvalidArgument = errors.New("lessdb: invalid argument")
)

// CorruptionErrorf formats a message and marks it as ErrCorruption so that
// errors.Is(err, ErrCorruption) reports true at any call site up the stack.
func CorruptionErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrCorruption)
}

// InvalidArgumentErrorf formats a message and marks it as
// ErrInvalidArgument.
func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// IOErrorf formats a message for an I/O failure. IOErrorf does not mark a
// fixed sentinel: the wrapped error already carries the os/syscall-level
// classification (errors.Is against os.ErrNotExist etc. still works through
// the wrapped chain).
func IOErrorf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Redact renders a value using the cockroachdb/redact conventions, for use
// in Status messages that may be logged in redacted output (values that are
// not marked Safe are replaced with a placeholder in redacted logs).
func Redact(v interface{}) redact.RedactableString {
	return redact.Sprint(v)
}

// IsCorruptionError reports whether err (or any error it wraps) is a
// corruption error.
func IsCorruptionError(err error) bool {
	return errors.Is(err, ErrCorruption)
}

// IsNotFoundError reports whether err (or any error it wraps) is
// ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AssertionFailedf panics with a formatted message. It is reserved for
// invariants whose violation implies a bug in this package (e.g. a
// duplicate internal key reaching MemTable.Add), never for an expected
// failure mode.
func AssertionFailedf(format string, args ...interface{}) {
	panic(fmt.Sprintf("lessdb: assertion failed: "+format, args...))
}
