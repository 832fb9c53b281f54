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

// Package datum defines the raw byte-string value a hash back-end
// stores and retrieves. It carries no interpretation of the bytes;
// that is the caller's concern (term.Converter, model.Statement codecs).
package datum

import "bytes"

// Datum is an immutable-by-convention byte string. Once returned from a
// cursor read, its backing array is only valid until the cursor's next
// advance; callers that need to retain it must call Clone.
type Datum struct {
	Bytes []byte
}

// New wraps b without copying. Use when the caller already owns b and
// won't mutate it afterward (e.g. a freshly built key).
func New(b []byte) Datum {
	return Datum{Bytes: b}
}

// FromString wraps the bytes of s.
func FromString(s string) Datum {
	return Datum{Bytes: []byte(s)}
}

// Clone returns a Datum with its own backing array, safe to retain
// across a cursor advance or a backend close.
func (d Datum) Clone() Datum {
	if d.Bytes == nil {
		return Datum{}
	}
	cp := make([]byte, len(d.Bytes))
	copy(cp, d.Bytes)
	return Datum{Bytes: cp}
}

// IsZero reports whether d carries no bytes at all (distinct from a
// zero-length non-nil slice, which is a legal empty value datum).
func (d Datum) IsZero() bool {
	return d.Bytes == nil
}

// Compare orders two Datums by length first, then by byte content:
// the ordering a key-comparison function must use so that duplicate
// keys of equal length but different bytes never collide.
func Compare(a, b Datum) int {
	if len(a.Bytes) != len(b.Bytes) {
		if len(a.Bytes) < len(b.Bytes) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Bytes, b.Bytes)
}

// Equal reports whether a and b hold identical bytes.
func Equal(a, b Datum) bool {
	return bytes.Equal(a.Bytes, b.Bytes)
}

func (d Datum) String() string {
	return string(d.Bytes)
}
