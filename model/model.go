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

// Package model holds the minimal graph (statement) store needed to
// exercise the triple-source bridge (C6) and result stream (C7). Its
// own indexing strategy beyond SPO/POS/OSP is out of scope; this
// package exists to give the bridge something concrete to call, not
// to be a fully-featured store in its own right.
package model

import (
	"github.com/kepler-42/graphstore/datum"
	"github.com/kepler-42/graphstore/hashkv"
	"github.com/kepler-42/graphstore/rerr"
	"github.com/kepler-42/graphstore/term"
)

// Statement is one subject/predicate/object graph edge.
type Statement struct {
	Subject   term.Term
	Predicate term.Term
	Object    term.Term
}

// Equal reports whether two statements denote the same triple.
func (s Statement) Equal(o Statement) bool {
	return s.Subject.Equal(o.Subject) && s.Predicate.Equal(o.Predicate) && s.Object.Equal(o.Object)
}

// Model stores statements across three permutation indices (SPO, POS,
// OSP), the pattern an RDF triple store uses to answer any of the
// eight bound/unbound combinations with one ordered-prefix scan.
type Model struct {
	spo hashkv.Backend
	pos hashkv.Backend
	osp hashkv.Backend
}

// New wraps three already-open backends as a Model's SPO/POS/OSP
// indices. Callers are responsible for opening/closing them.
func New(spo, pos, osp hashkv.Backend) *Model {
	return &Model{spo: spo, pos: pos, osp: osp}
}

func encode(terms ...term.Term) datum.Datum {
	var out []byte
	for _, t := range terms {
		part := encodeTerm(t)
		var lenPrefix [4]byte
		n := len(part)
		lenPrefix[0] = byte(n >> 24)
		lenPrefix[1] = byte(n >> 16)
		lenPrefix[2] = byte(n >> 8)
		lenPrefix[3] = byte(n)
		out = append(out, lenPrefix[:]...)
		out = append(out, part...)
	}
	return datum.New(out)
}

func encodeTerm(t term.Term) []byte {
	var tag byte
	switch t.Kind {
	case term.Resource:
		tag = 'R'
	case term.Blank:
		tag = 'B'
	case term.Literal:
		tag = 'L'
	}
	s := string(tag) + "\x00" + t.URI + "\x00" + t.Lexical + "\x00" + t.Language
	return []byte(s)
}

// AddStatement inserts st into all three indices. hashkv.Backend.Put
// does not guarantee an identical (key, value) pair is deduplicated;
// callers wanting true set semantics should call ContainsStatement
// first.
func (m *Model) AddStatement(st Statement) error {
	spoKey := encode(st.Subject, st.Predicate)
	posKey := encode(st.Predicate, st.Object)
	ospKey := encode(st.Object, st.Subject)
	val := encode(st.Object)
	valSPO := encode(st.Subject)
	valPOS := encode(st.Predicate)

	if err := m.spo.Put(spoKey, val); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "add statement (spo): %v", err)
	}
	if err := m.pos.Put(posKey, valSPO); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "add statement (pos): %v", err)
	}
	if err := m.osp.Put(ospKey, valPOS); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "add statement (osp): %v", err)
	}
	return nil
}

// ContainsStatement reports whether st (fully ground) is present.
func (m *Model) ContainsStatement(st Statement) (bool, error) {
	spoKey := encode(st.Subject, st.Predicate)
	val := encode(st.Object)
	ok, err := m.spo.Exists(spoKey, val)
	if err != nil {
		return false, rerr.Wrapf(rerr.StorageIO, "contains statement: %v", err)
	}
	return ok, nil
}

// Pattern selects statements by optional subject/predicate/object; a
// nil field is a wildcard.
type Pattern struct {
	Subject   *term.Term
	Predicate *term.Term
	Object    *term.Term
}

// StatementStream iterates statements matching a Pattern.
type StatementStream struct {
	cur     hashkv.Cursor
	decode  func(key, value datum.Datum) (Statement, error)
	started bool
	seeked  bool
	oneKey  bool
	done    bool
	current Statement
}

// Next advances the stream. Returns false (with nil error) once
// exhausted.
func (s *StatementStream) Next() (bool, error) {
	if s.done {
		return false, nil
	}
	var err error
	if !s.started {
		s.started = true
		err = s.cur.First()
	} else if s.seeked {
		s.seeked = false
	} else {
		err = s.cur.NextValueOfKey()
		if rerr.Is(err, rerr.NotFound) && !s.oneKey {
			err = s.cur.NextKey()
		}
	}
	if rerr.Is(err, rerr.NotFound) {
		s.done = true
		return false, nil
	}
	if err != nil {
		s.done = true
		return false, err
	}
	k, v, err := s.cur.Current()
	if err != nil {
		s.done = true
		return false, err
	}
	st, err := s.decode(k, v)
	if err != nil {
		s.done = true
		return false, err
	}
	s.current = st
	return true, nil
}

// Current returns the statement at the stream's position.
func (s *StatementStream) Current() Statement {
	return s.current
}

// Close releases the stream's cursor.
func (s *StatementStream) Close() error {
	return s.cur.Close()
}

// FindStatements returns a stream over every statement matching
// pattern, choosing whichever of SPO/POS/OSP lets the bound prefix of
// pattern become an ordered-key scan: the same permutation-index
// trick kept out of this component's own responsibility as a design
// goal, but which the bridge (C6) needs in order to draw candidates.
func (m *Model) FindStatements(pattern Pattern) (*StatementStream, error) {
	switch {
	case pattern.Subject != nil && pattern.Predicate != nil:
		return m.scan(m.spo, encode(*pattern.Subject, *pattern.Predicate), func(k, v datum.Datum) (Statement, error) {
			return Statement{Subject: *pattern.Subject, Predicate: *pattern.Predicate, Object: decodeTermFrom(v)}, nil
		})
	case pattern.Predicate != nil && pattern.Object != nil:
		return m.scan(m.pos, encode(*pattern.Predicate, *pattern.Object), func(k, v datum.Datum) (Statement, error) {
			return Statement{Subject: decodeTermFrom(v), Predicate: *pattern.Predicate, Object: *pattern.Object}, nil
		})
	case pattern.Object != nil && pattern.Subject != nil:
		return m.scan(m.osp, encode(*pattern.Object, *pattern.Subject), func(k, v datum.Datum) (Statement, error) {
			return Statement{Subject: *pattern.Subject, Predicate: decodeTermFrom(v), Object: *pattern.Object}, nil
		})
	default:
		return m.fullScan()
	}
}

func (m *Model) scan(b hashkv.Backend, key datum.Datum, decode func(k, v datum.Datum) (Statement, error)) (*StatementStream, error) {
	cur, err := b.NewCursor()
	if err != nil {
		return nil, rerr.Wrapf(rerr.StorageIO, "find statements: %v", err)
	}
	if err := cur.SeekKey(key); err != nil {
		if rerr.Is(err, rerr.NotFound) {
			return &StatementStream{cur: cur, decode: decode, done: true}, nil
		}
		return nil, err
	}
	return &StatementStream{cur: cur, decode: decode, started: true, seeked: true, oneKey: true}, nil
}

func (m *Model) fullScan() (*StatementStream, error) {
	cur, err := m.spo.NewCursor()
	if err != nil {
		return nil, rerr.Wrapf(rerr.StorageIO, "find statements: %v", err)
	}
	return &StatementStream{cur: cur, decode: decodeSPOEntry}, nil
}

func decodeSPOEntry(key, value datum.Datum) (Statement, error) {
	// key is subject||predicate, value is object; caller has no
	// ground terms to splice in, so this path is only used for an
	// unrestricted full-table scan and decodes everything from bytes.
	s, p, err := decodeTwo(key)
	if err != nil {
		return Statement{}, err
	}
	o := decodeTermFrom(value)
	return Statement{Subject: s, Predicate: p, Object: o}, nil
}

func decodeTermFrom(d datum.Datum) term.Term {
	t, _ := decodeOne(d.Bytes)
	return t
}

func decodeTwo(d datum.Datum) (term.Term, term.Term, error) {
	b := d.Bytes
	a, rest, err := decodeOneWithRest(b)
	if err != nil {
		return term.Term{}, term.Term{}, err
	}
	c, _, err := decodeOneWithRest(rest)
	if err != nil {
		return term.Term{}, term.Term{}, err
	}
	return a, c, nil
}

func decodeOne(b []byte) (term.Term, error) {
	t, _, err := decodeOneWithRest(b)
	return t, err
}

func decodeOneWithRest(b []byte) (term.Term, []byte, error) {
	if len(b) < 4 {
		return term.Term{}, nil, rerr.Wrap(rerr.Conversion, "truncated term encoding")
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	b = b[4:]
	if len(b) < n {
		return term.Term{}, nil, rerr.Wrap(rerr.Conversion, "truncated term payload")
	}
	part, rest := b[:n], b[n:]
	fields := splitThree(part)
	tag := fields[0]
	var kind term.Kind
	switch string(tag) {
	case "R":
		kind = term.Resource
	case "B":
		kind = term.Blank
	case "L":
		kind = term.Literal
	default:
		return term.Term{}, nil, rerr.Wrapf(rerr.Conversion, "unrecognized term tag %q", tag)
	}
	return term.Term{Kind: kind, URI: fields[1], Lexical: fields[2], Language: fields[3]}, rest, nil
}

// splitThree splits "tag\x00uri\x00lexical\x00language" into its four
// parts. encodeTerm guarantees exactly three NUL separators.
func splitThree(b []byte) [4]string {
	var out [4]string
	idx := 0
	start := 0
	for i := 0; i < len(b) && idx < 3; i++ {
		if b[i] == 0 {
			out[idx] = string(b[start:i])
			idx++
			start = i + 1
		}
	}
	out[3] = string(b[start:])
	return out
}
