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

// Package wlock enforces the single-writer rule a back-end relies on.
// graphstore makes no ACID or multi-writer guarantees; this package
// turns a would-be silent corruption into a loud, immediate failure.
package wlock

import (
	"github.com/gofrs/flock"

	"github.com/kepler-42/graphstore/rerr"
)

// Lock guards exclusive-writer access to a single backend file.
type Lock struct {
	fl *flock.Flock
}

// New returns a Lock for the backend file at path. The lock is taken on
// a separate file, path with a ".lock" suffix appended, so the lock
// file's lifetime is independent of the data file's open/close cycle.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path + ".lock")}
}

// TryWriter attempts to acquire the exclusive writer lock without
// blocking. Returns rerr.Invalid if another writer already holds it.
func (l *Lock) TryWriter() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "locking %s: %v", l.fl.Path(), err)
	}
	if !ok {
		return rerr.Wrapf(rerr.Invalid, "backend %s already has a writer", l.fl.Path())
	}
	return nil
}

// TryReader acquires a shared reader lock without blocking. Multiple
// readers may hold it concurrently; it is exclusive with TryWriter.
func (l *Lock) TryReader() error {
	ok, err := l.fl.TryRLock()
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "locking %s: %v", l.fl.Path(), err)
	}
	if !ok {
		return rerr.Wrapf(rerr.Invalid, "backend %s is locked for writing", l.fl.Path())
	}
	return nil
}

// Unlock releases whichever lock mode was acquired.
func (l *Lock) Unlock() error {
	if err := l.fl.Unlock(); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "unlocking %s: %v", l.fl.Path(), err)
	}
	return nil
}
