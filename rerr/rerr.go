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

// Package rerr defines the error taxonomy shared by every graphstore
// package. Callers distinguish failures by kind, via errors.Is, rather
// than by concrete type.
package rerr

import (
	"github.com/pkg/errors"
)

// Sentinel kinds. Wrap one of these with errors.Wrap/Wrapf to attach
// context and a stack trace while keeping errors.Is(err, Kind) true.
var (
	// NotFound means the requested key, value, or pattern match does
	// not exist. Not logged by callers: it is an expected outcome.
	NotFound = errors.New("graphstore: not found")

	// StorageIO means the underlying back-end (file, mmap, env) failed.
	StorageIO = errors.New("graphstore: storage I/O error")

	// Invalid means the caller asked for something the contract
	// forbids (e.g. a bound origin slot, a non-ground triple_present
	// pattern, a write on a read-only backend).
	Invalid = errors.New("graphstore: invalid use")

	// Conversion means a term/literal could not be converted because
	// its kind is unrecognized. This is a programmer error: the caller
	// should abort rather than attempt recovery.
	Conversion = errors.New("graphstore: conversion failure")

	// OOM means an allocation failed. The caller should roll back any
	// in-flight write and propagate.
	OOM = errors.New("graphstore: out of memory")
)

// Wrap attaches msg as context to kind, preserving errors.Is(result, kind).
func Wrap(kind error, msg string) error {
	return errors.Wrap(kind, msg)
}

// Wrapf is Wrap with Printf-style formatting.
func Wrapf(kind error, format string, args ...interface{}) error {
	return errors.Wrapf(kind, format, args...)
}

// Is reports whether err is (or wraps) kind.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}

// Cause returns the deepest wrapped error, following pkg/errors' Cause
// convention.
func Cause(err error) error {
	return errors.Cause(err)
}
