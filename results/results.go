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

// Package results adapts a query engine's result set to graphstore's
// three surfaces: tabular bindings, boolean, and graph/triple. It is
// the Go restatement of
// librdf_query_rasqal_query_results_update_statement and the results
// lifecycle functions around it.
package results

import (
	"fmt"
	"io"

	"github.com/kepler-42/graphstore/model"
	"github.com/kepler-42/graphstore/queryengine"
	"github.com/kepler-42/graphstore/rdflog"
	"github.com/kepler-42/graphstore/rerr"
	"github.com/kepler-42/graphstore/term"
)

// Shape discriminates the three surfaces a Stream can present.
type Shape uint8

const (
	Tabular Shape = iota
	Boolean
	Graph
)

// rdfNSOrdinal is the namespace ordinal predicates are minted under:
// http://www.w3.org/1999/02/22-rdf-syntax-ns#_<N>, matching the
// original's RAPTOR_IDENTIFIER_TYPE_ORDINAL handling exactly.
const rdfNSOrdinal = "http://www.w3.org/1999/02/22-rdf-syntax-ns#_"

// xmlLiteralDatatype is the datatype URI an XML-literal identifier is
// decoded into: RAPTOR_IDENTIFIER_TYPE_XML_LITERAL is restated here as
// an ordinary typed literal with this datatype, since graphstore's
// term.Term carries no separate XML-literal kind.
const xmlLiteralDatatype = "http://www.w3.org/1999/02/22-rdf-syntax-ns#XMLLiteral"

// OrdinalPredicate builds the predicate URI for ordinal n (1-based).
func OrdinalPredicate(n int) string {
	return fmt.Sprintf("%s%d", rdfNSOrdinal, n)
}

// decodeIdentifier maps one query engine Literal into a graph term,
// the Go restatement of
// librdf_query_rasqal_query_results_update_statement's
// RAPTOR_IDENTIFIER_TYPE_* dispatch: anonymous becomes a blank node,
// ordinal becomes a resource naming the rdf:_N container membership
// property, a plain/typed literal and an XML literal both become Term
// literals (the latter tagged with xmlLiteralDatatype), and any other
// kind is rejected so the caller can log and terminate the statement
// rather than return a mis-decoded term.
func decodeIdentifier(conv term.Converter, lit queryengine.Literal) (term.Term, error) {
	switch lit.Kind {
	case queryengine.LiteralOrdinal:
		return term.NewResource(OrdinalPredicate(lit.Ordinal)), nil
	case queryengine.LiteralXML:
		return term.NewTypedLiteral(lit.Value, xmlLiteralDatatype), nil
	case queryengine.LiteralURI, queryengine.LiteralBlank, queryengine.LiteralPlain:
		return conv.FromLiteral(lit)
	default:
		return term.Term{}, rerr.Wrapf(rerr.Conversion, "unrecognized query engine identifier kind %d", lit.Kind)
	}
}

// Row is one tabular result: a binding name to its bound term.
type Row map[string]term.Term

// Source is whatever produces the underlying rows/statements/boolean.
// A query engine's own result cursor implements this; graphstore does
// not implement a query engine itself.
type Source interface {
	Shape() Shape
	// Tabular
	BindingNames() []string
	Next() (bool, error)
	BindingValue(name string) (term.Term, bool, error)
	// Boolean
	BooleanValue() bool
	// Graph. CurrentTriple returns the raw engine identifiers for the
	// statement at the current position; Stream decodes each of the
	// three into a term, applying the full identifier-kind dispatch,
	// rather than leaving that mapping to the Source.
	CurrentTriple() (subject, predicate, object queryengine.Literal, ok bool, err error)
}

// Stream is the adapter callers drive. It checks that each call fits
// the Source's shape and decodes the Source's raw graph identifiers into
// terms; the rest is passed through to Source. It is the stable type
// graphstore publishes so a Source implementation detail isn't part of
// this package's public contract.
type Stream struct {
	src  Source
	conv term.Converter
	log  *rdflog.Sink
}

// NewStream wraps src. log may be nil, in which case an unrecognized
// identifier kind is still rejected but nothing is recorded.
func NewStream(src Source, log *rdflog.Sink) *Stream {
	if log == nil {
		log = rdflog.NewNop()
	}
	return &Stream{src: src, conv: term.Converter{}, log: log}
}

// Shape reports which surface this stream presents.
func (s *Stream) Shape() Shape {
	return s.src.Shape()
}

// Next advances to the next row/statement by calling the Source's Next;
// a Source error is returned wrapped as rerr.StorageIO. Stream adds no
// rule of its own for Boolean streams: there, Next reports what the
// Source reports.
func (s *Stream) Next() (bool, error) {
	ok, err := s.src.Next()
	if err != nil {
		return false, rerr.Wrapf(rerr.StorageIO, "advancing result stream: %v", err)
	}
	return ok, nil
}

// Row reads every current binding as a Row. Only valid for Tabular.
func (s *Stream) Row() (Row, error) {
	if s.src.Shape() != Tabular {
		return nil, rerr.Wrap(rerr.Invalid, "Row is only valid on a Tabular stream")
	}
	row := make(Row, len(s.src.BindingNames()))
	for _, name := range s.src.BindingNames() {
		t, bound, err := s.src.BindingValue(name)
		if err != nil {
			return nil, err
		}
		if bound {
			row[name] = t
		}
	}
	return row, nil
}

// Boolean reads the ASK-style result. Only valid for Boolean.
func (s *Stream) Boolean() (bool, error) {
	if s.src.Shape() != Boolean {
		return false, rerr.Wrap(rerr.Invalid, "Boolean is only valid on a Boolean stream")
	}
	return s.src.BooleanValue(), nil
}

// Statement reads the current graph triple, decoding each of the
// subject/predicate/object identifiers the Source supplies. An
// unrecognized identifier kind terminates this statement: the error is
// logged and returned rather than producing a partially-decoded
// model.Statement, mirroring the original's abort-on-unknown-type path.
func (s *Stream) Statement() (model.Statement, error) {
	if s.src.Shape() != Graph {
		return model.Statement{}, rerr.Wrap(rerr.Invalid, "Statement is only valid on a Graph stream")
	}
	subjLit, predLit, objLit, ok, err := s.src.CurrentTriple()
	if err != nil {
		return model.Statement{}, err
	}
	if !ok {
		return model.Statement{}, rerr.Wrap(rerr.NotFound, "no current statement")
	}

	subj, err := decodeIdentifier(s.conv, subjLit)
	if err != nil {
		s.log.Errorf(rdflog.Query, "", "decoding subject: %v", err)
		return model.Statement{}, err
	}
	pred, err := decodeIdentifier(s.conv, predLit)
	if err != nil {
		s.log.Errorf(rdflog.Query, "", "decoding predicate: %v", err)
		return model.Statement{}, err
	}
	obj, err := decodeIdentifier(s.conv, objLit)
	if err != nil {
		s.log.Errorf(rdflog.Query, "", "decoding object: %v", err)
		return model.Statement{}, err
	}
	return model.Statement{Subject: subj, Predicate: pred, Object: obj}, nil
}

// Serializer writes a Graph-shaped Stream's statements to w in the
// syntax named by formatURI. graphstore does not bundle any concrete
// syntax serializer; that belongs to a parser/serializer layer which
// is out of scope here, so Serializer is itself an extension point a
// caller supplies.
type Serializer interface {
	// FormatURI identifies the syntax this Serializer writes.
	FormatURI() string
	WriteStatement(w io.Writer, st model.Statement) error
}

// Serialize drains a Graph stream through ser, writing one statement
// at a time, and returns rerr.Invalid if formatURI doesn't match
// ser.FormatURI().
func Serialize(s *Stream, ser Serializer, w io.Writer, formatURI string) error {
	if ser.FormatURI() != formatURI {
		return rerr.Wrapf(rerr.Invalid, "serializer does not support format %q", formatURI)
	}
	if s.Shape() != Graph {
		return rerr.Wrap(rerr.Invalid, "Serialize requires a Graph stream")
	}
	for {
		ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		st, err := s.Statement()
		if err != nil {
			return err
		}
		if err := ser.WriteStatement(w, st); err != nil {
			return rerr.Wrapf(rerr.StorageIO, "writing statement: %v", err)
		}
	}
}
