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

// Package term defines the graph model's node values (C5) and the
// converter bridging them to the query engine's literal representation.
package term

import (
	"github.com/kepler-42/graphstore/queryengine"
	"github.com/kepler-42/graphstore/rerr"
)

// Kind discriminates the three node shapes a Term can take.
type Kind uint8

const (
	Resource Kind = iota
	Literal
	Blank
)

// Term is a graph node: a URI resource, a literal (lexical value with
// optional language tag and datatype URI), or a blank node.
type Term struct {
	Kind     Kind
	URI      string // Resource: the URI. Literal with Datatype: the datatype URI.
	Lexical  string // Literal: the lexical value. Blank: the node identifier.
	Language string // Literal: optional BCP-47 language tag.
}

// NewResource builds a Resource term.
func NewResource(uri string) Term {
	return Term{Kind: Resource, URI: uri}
}

// NewBlank builds a Blank term identified by id.
func NewBlank(id string) Term {
	return Term{Kind: Blank, Lexical: id}
}

// NewPlainLiteral builds a Literal term with no datatype, optionally
// tagged with a language.
func NewPlainLiteral(value, language string) Term {
	return Term{Kind: Literal, Lexical: value, Language: language}
}

// NewTypedLiteral builds a Literal term with a datatype URI.
func NewTypedLiteral(value, datatypeURI string) Term {
	return Term{Kind: Literal, Lexical: value, URI: datatypeURI}
}

// Equal reports whether two terms denote the same node.
func (t Term) Equal(o Term) bool {
	return t == o
}

// Converter performs the two pure, allocate-fresh, bidirectional
// conversions between Term and the query engine's Literal
// representation: the Go restatement of
// rasqal_literal_to_redland_node / redland_node_to_rasqal_literal.
type Converter struct{}

// ToLiteral converts t into a query engine Literal. Every field is a
// fresh copy; the result shares no storage with t.
func (Converter) ToLiteral(t Term) (queryengine.Literal, error) {
	switch t.Kind {
	case Resource:
		return queryengine.Literal{Kind: queryengine.LiteralURI, Value: t.URI}, nil
	case Blank:
		return queryengine.Literal{Kind: queryengine.LiteralBlank, Value: t.Lexical}, nil
	case Literal:
		return queryengine.Literal{
			Kind:     queryengine.LiteralPlain,
			Value:    t.Lexical,
			Language: t.Language,
			Datatype: t.URI,
		}, nil
	default:
		return queryengine.Literal{}, rerr.Wrapf(rerr.Conversion, "unrecognized term kind %d", t.Kind)
	}
}

// FromLiteral converts a query engine Literal back into a Term. Every
// field is a fresh copy; the result shares no storage with l.
func (Converter) FromLiteral(l queryengine.Literal) (Term, error) {
	switch l.Kind {
	case queryengine.LiteralURI:
		return NewResource(l.Value), nil
	case queryengine.LiteralBlank:
		return NewBlank(l.Value), nil
	case queryengine.LiteralPlain:
		if l.Datatype != "" {
			return NewTypedLiteral(l.Value, l.Datatype), nil
		}
		return NewPlainLiteral(l.Value, l.Language), nil
	default:
		return Term{}, rerr.Wrapf(rerr.Conversion, "unrecognized literal kind %d", l.Kind)
	}
}
