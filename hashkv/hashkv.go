// Copyright 2026 The Graphstore Authors
// This file is part of graphstore.
//
// Graphstore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Graphstore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Package hashkv defines the pluggable hash back-end contract (C2) and
// its cursor engine (C4): an ordered, duplicate-key-permitting
// key/value store. Concrete back-ends (hashkv/mdbxhash) implement
// Backend and Cursor; callers program only against this package.
package hashkv

import "github.com/kepler-42/graphstore/datum"

// Mode flags how a Backend is opened.
type Mode uint8

const (
	// Writable allows Put/DeleteKey/DeleteKeyValue. Absent, the
	// backend is opened read-only.
	Writable Mode = 1 << iota
	// New creates the backend file if it does not already exist.
	// Absent, opening a nonexistent file is rerr.StorageIO.
	New
)

func (m Mode) has(f Mode) bool { return m&f != 0 }

// Backend is the pluggable hash-table abstraction (C2): an ordered,
// on-disk key/value store permitting duplicate (key, value) pairs.
// Implementations must be safe for one writer and any number of
// concurrent readers, per the module's single-writer concurrency
// model; they are not required to be safe for concurrent writers.
type Backend interface {
	// Open opens (and per mode, creates) the backend named identifier.
	// Concrete back-ends append their own suffix (mdbxhash uses
	// "<identifier>.db").
	Open(identifier string, mode Mode) error

	// Close releases all resources. Any Cursor obtained from this
	// Backend is invalidated.
	Close() error

	// Clone copies every (key, value) pair into dst, which must
	// already be open. Implemented as a First+Next scan feeding Put,
	// aborting on the first Put failure.
	Clone(dst Backend) error

	// ValuesCount returns the total number of (key, value) records in
	// the backend, counting every duplicate, matching the original's
	// tcbdbrnum(db) whole-B-tree record count.
	ValuesCount() (int, error)

	// ValuesCountForKey returns the number of values stored under key,
	// counting each duplicate. Zero if the key is absent.
	ValuesCountForKey(key datum.Datum) (int, error)

	// Put inserts an additional (key, value) pair. Existing pairs
	// under key, including an identical duplicate, are preserved.
	Put(key, value datum.Datum) error

	// Exists reports whether (key, value) is stored. If value is the
	// zero Datum, reports whether any value is stored under key.
	Exists(key, value datum.Datum) (bool, error)

	// DeleteKey removes every value stored under key. Deleting an
	// absent key is not an error.
	DeleteKey(key datum.Datum) error

	// DeleteKeyValue removes exactly one occurrence of (key, value).
	// Returns rerr.NotFound if no matching pair exists.
	DeleteKeyValue(key, value datum.Datum) error

	// Sync flushes buffered writes to stable storage.
	Sync() error

	// NewCursor opens a Cursor over this Backend's current contents.
	NewCursor() (Cursor, error)
}

// Cursor is the cursor engine (C4). It supports three positioning
// modes: First, SeekKey, and the two Next variants, in place of the
// original's single combined get(flags) call, split into named
// operations for clarity while preserving the same enumeration order.
// A Cursor obtained from a Backend is invalidated when that Backend
// closes.
type Cursor interface {
	// First positions the cursor at the first (key, value) pair in
	// key order. Returns rerr.NotFound if the backend is empty.
	First() error

	// SeekKey positions the cursor at the first occurrence of key.
	// Returns rerr.NotFound if key is absent.
	SeekKey(key datum.Datum) error

	// NextKey advances to the first occurrence of the next distinct
	// key, skipping any remaining duplicates of the current key.
	// Returns rerr.NotFound when the cursor is already on the last key.
	NextKey() error

	// NextValueOfKey advances to the next duplicate value under the
	// current key only. Returns rerr.NotFound when no further
	// duplicate exists for that key (the caller should then call
	// NextKey to move on).
	NextValueOfKey() error

	// Current returns the (key, value) pair at the cursor's position
	// without advancing. Returns rerr.Invalid if the cursor has not
	// been positioned yet (no First/SeekKey call succeeded).
	Current() (key, value datum.Datum, err error)

	// DeleteCurrent removes the (key, value) pair at the cursor's
	// current position. The cursor is left positioned on the next
	// pair in key order, as if NextValueOfKey then NextKey had been
	// tried in turn; callers should re-check Current's error before
	// continuing to iterate.
	DeleteCurrent() error

	// Close releases the cursor's resources. It does not affect the
	// owning Backend.
	Close() error
}
