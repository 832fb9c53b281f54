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

// Package queryengine mirrors the extension-point contract a
// third-party query engine expects from a graph store: the literal
// representation it deals in, and the triple-source interface it
// calls to draw candidate statements for a pattern. This package is
// the Go-side half of that contract, grounded directly on rasqal's
// C header contract (rasqal_triples_source, rasqal_triples_match,
// rasqal_triple_meta); the engine itself is out of scope.
package queryengine

// LiteralKind discriminates the identifier shapes a query engine
// passes across the boundary, mirroring raptor's
// RAPTOR_IDENTIFIER_TYPE_* dispatch: anonymous, resource (URI),
// ordinal (rdf:_N container membership properties), plain/typed
// literal, and XML literal.
type LiteralKind uint8

const (
	LiteralURI LiteralKind = iota
	LiteralPlain
	LiteralBlank
	LiteralOrdinal
	LiteralXML
)

// Literal is the query engine's own node representation, distinct
// from (and converted to/from) the graph model's Term.
type Literal struct {
	Kind     LiteralKind
	Value    string // URI: the URI string. Blank: the node identifier. Plain/XML: the lexical value.
	Language string // Plain only: optional BCP-47 language tag.
	Datatype string // Plain only: optional datatype URI.
	Ordinal  int    // Ordinal only: the 1-based container membership index.
}

// Variable names an unbound slot in a TriplePattern.
type Variable struct {
	Name string
}

// Node is either a bound Literal or an unbound Variable in a pattern
// position. Exactly one of Literal/Variable is meaningful, selected by
// Bound.
type Node struct {
	Bound    bool
	Literal  Literal
	Variable Variable
}

// BoundNode wraps l as a ground pattern position.
func BoundNode(l Literal) Node { return Node{Bound: true, Literal: l} }

// VarNode wraps v as an unbound pattern position.
func VarNode(v Variable) Node { return Node{Bound: false, Variable: v} }

// TriplePattern is subject/predicate/object/origin, each either bound
// or a variable. Origin is recognized but never honored as a bound
// selector; see Bridge.NewTriplesMatch.
type TriplePattern struct {
	Subject   Node
	Predicate Node
	Object    Node
	Origin    Node
}

// Binding is one variable-to-literal assignment produced by a match.
type Binding struct {
	Variable Variable
	Value    Literal
}

// TriplesMatch is the per-pattern match cursor the query engine drives
// to completion: BindMatch/NextMatch/IsEnd/Finish. It is the Go
// restatement of rasqal_redland_triples_match_context plus the
// function pointers rasqal_triples_match carries.
type TriplesMatch interface {
	// BindMatch binds the pattern's variables from the statement at
	// the match's current position, returning one Binding per distinct
	// variable slot. When two pattern positions name the same
	// variable, the statement's terms at those positions must be equal;
	// if they are not, the match fails for this statement and BindMatch
	// returns a nil slice and a nil error rather than a Binding set
	// (rasqal_redland_bind_match's exact rule: subject is checked
	// against predicate first, then object against subject, then
	// object against predicate, and the second of any aliased pair is
	// never rebound once the first has been).
	BindMatch(bindings []Binding) ([]Binding, error)

	// NextMatch advances to the next candidate statement. Returns
	// false once exhausted; IsEnd reports the same afterward.
	NextMatch() (bool, error)

	// IsEnd reports whether the match is exhausted.
	IsEnd() bool

	// Finish releases the match's resources (its underlying statement
	// stream).
	Finish() error
}

// Bridge is the triple-source adapter (C6): the factory a query engine
// calls once per query to get a TriplesMatch for each triple pattern,
// plus the ground-pattern membership test it calls directly without
// constructing a match.
type Bridge interface {
	// Bind is the factory step a query engine calls once per query,
	// before ever calling NewTriplesMatch, to declare how many explicit
	// data sources (FROM-style clauses) the query names. Graphstore
	// only ever matches against its own single model, so a non-zero
	// count is rejected with rerr.Invalid rather than silently ignored
	// (rasqal_redland_new_triples_source's
	// "if(seq && raptor_sequence_size(seq)) return 1;").
	Bind(explicitSourceCount int) error

	// TriplePresent reports whether a fully ground pattern (no
	// Variable in subject/predicate/object) is present in the model.
	// Passing a pattern with any unbound position is rerr.Invalid; the
	// original assumes this precondition without checking it, this
	// restatement checks and fails loudly instead.
	TriplePresent(pattern TriplePattern) (bool, error)

	// NewTriplesMatch builds a TriplesMatch for pattern. Returns
	// rerr.Invalid if pattern's Origin is Bound, or is a Variable the
	// caller expects to be bound during matching: named-graph
	// selection is not supported, by design.
	NewTriplesMatch(pattern TriplePattern) (TriplesMatch, error)
}
