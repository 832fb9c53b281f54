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

package model

import (
	"github.com/kepler-42/graphstore/queryengine"
	"github.com/kepler-42/graphstore/rdflog"
	"github.com/kepler-42/graphstore/rerr"
	"github.com/kepler-42/graphstore/term"
)

// Bridge implements queryengine.Bridge (C6) over a Model, the Go
// restatement of rasqal_redland_new_triples_source and friends.
type Bridge struct {
	model *Model
	conv  term.Converter
	log   *rdflog.Sink
}

// NewBridge builds a Bridge over m. log may be nil, in which case
// records are discarded.
func NewBridge(m *Model, log *rdflog.Sink) *Bridge {
	if log == nil {
		log = rdflog.NewNop()
	}
	return &Bridge{model: m, conv: term.Converter{}, log: log}
}

// Bind implements queryengine.Bridge, the factory step
// rasqal_redland_new_triples_source performs before any triples match
// is constructed: "if(seq && raptor_sequence_size(seq)) return 1;".
// Graphstore has exactly one implicit data source, its own Model, so
// any explicit source named by the query is rejected outright.
func (br *Bridge) Bind(explicitSourceCount int) error {
	if explicitSourceCount > 0 {
		return rerr.Wrapf(rerr.Invalid, "explicit data sources are not supported (got %d)", explicitSourceCount)
	}
	return nil
}

func nodeToTerm(conv term.Converter, n queryengine.Node) (term.Term, bool, error) {
	if !n.Bound {
		return term.Term{}, false, nil
	}
	t, err := conv.FromLiteral(n.Literal)
	if err != nil {
		return term.Term{}, false, err
	}
	return t, true, nil
}

// checkOrigin enforces this module's resolution of the origin/context
// open question: a bound or to-be-bound origin is rejected rather than
// silently ignored the way rasqal_redland_bind_match's commented-out
// "FIXME contexts" block did.
func checkOrigin(origin queryengine.Node) error {
	if origin.Bound {
		return rerr.Wrap(rerr.Invalid, "named graph / origin selection is not supported")
	}
	if origin.Variable.Name != "" {
		return rerr.Wrap(rerr.Invalid, "binding the origin slot is not supported")
	}
	return nil
}

// TriplePresent implements queryengine.Bridge. pattern must be fully
// ground; this mirrors rasqal_redland_triple_present's precondition,
// except that here it is checked rather than assumed.
func (br *Bridge) TriplePresent(pattern queryengine.TriplePattern) (bool, error) {
	if err := checkOrigin(pattern.Origin); err != nil {
		return false, err
	}
	if !pattern.Subject.Bound || !pattern.Predicate.Bound || !pattern.Object.Bound {
		return false, rerr.Wrap(rerr.Invalid, "triple_present requires a fully ground pattern")
	}
	s, _, err := nodeToTerm(br.conv, pattern.Subject)
	if err != nil {
		return false, err
	}
	p, _, err := nodeToTerm(br.conv, pattern.Predicate)
	if err != nil {
		return false, err
	}
	o, _, err := nodeToTerm(br.conv, pattern.Object)
	if err != nil {
		return false, err
	}
	ok, err := br.model.ContainsStatement(Statement{Subject: s, Predicate: p, Object: o})
	if err != nil {
		br.log.Errorf(rdflog.Query, "", "triple_present: %v", err)
		return false, err
	}
	return ok, nil
}

// NewTriplesMatch implements queryengine.Bridge.
func (br *Bridge) NewTriplesMatch(pattern queryengine.TriplePattern) (queryengine.TriplesMatch, error) {
	if err := checkOrigin(pattern.Origin); err != nil {
		return nil, err
	}

	modelPattern := Pattern{}
	var subjVar, predVar, objVar *queryengine.Variable

	if s, bound, err := nodeToTerm(br.conv, pattern.Subject); err != nil {
		return nil, err
	} else if bound {
		modelPattern.Subject = &s
	} else {
		v := pattern.Subject.Variable
		subjVar = &v
	}

	if p, bound, err := nodeToTerm(br.conv, pattern.Predicate); err != nil {
		return nil, err
	} else if bound {
		modelPattern.Predicate = &p
	} else {
		v := pattern.Predicate.Variable
		predVar = &v
	}

	if o, bound, err := nodeToTerm(br.conv, pattern.Object); err != nil {
		return nil, err
	} else if bound {
		modelPattern.Object = &o
	} else {
		v := pattern.Object.Variable
		objVar = &v
	}

	stream, err := br.model.FindStatements(modelPattern)
	if err != nil {
		br.log.Errorf(rdflog.Query, "", "new_triples_match: %v", err)
		return nil, err
	}

	return &match{
		conv:     br.conv,
		stream:   stream,
		subjVar:  subjVar,
		predVar:  predVar,
		objVar:   objVar,
		started:  false,
	}, nil
}

// match implements queryengine.TriplesMatch over a StatementStream.
type match struct {
	conv    term.Converter
	stream  *StatementStream
	subjVar *queryengine.Variable
	predVar *queryengine.Variable
	objVar  *queryengine.Variable
	started bool
	ended   bool
}

func (m *match) advanceIfNeeded() error {
	if m.started {
		return nil
	}
	m.started = true
	ok, err := m.stream.Next()
	if err != nil {
		m.ended = true
		return err
	}
	if !ok {
		m.ended = true
	}
	return nil
}

// BindMatch implements queryengine.TriplesMatch, preserving
// rasqal_redland_bind_match's exact aliasing rules: a variable that
// names two or more pattern positions is bound once, and only after
// its statement slots are verified equal as terms. Subject is checked
// against predicate first; if the pattern aliases them and the
// statement's subject and predicate differ, the match fails for this
// statement (a nil Binding slice, nil error) rather than binding a
// mismatched pair. Object is checked the same way against whichever of
// subject/predicate it aliases, and is only ever bound once.
func (m *match) BindMatch(bindings []Binding) ([]Binding, error) {
	if err := m.advanceIfNeeded(); err != nil {
		return nil, err
	}
	if m.ended {
		return nil, rerr.Wrap(rerr.NotFound, "match is exhausted")
	}
	st := m.stream.Current()

	predAliasesSubj := m.subjVar != nil && m.predVar != nil && m.predVar.Name == m.subjVar.Name
	if predAliasesSubj && !st.Subject.Equal(st.Predicate) {
		return nil, nil
	}

	objAliasesSubj := m.subjVar != nil && m.objVar != nil && m.objVar.Name == m.subjVar.Name
	if objAliasesSubj && !st.Subject.Equal(st.Object) {
		return nil, nil
	}
	objAliasesPred := m.predVar != nil && m.objVar != nil && m.objVar.Name == m.predVar.Name
	if objAliasesPred && !objAliasesSubj && !st.Predicate.Equal(st.Object) {
		return nil, nil
	}

	out := bindings[:0]
	if m.subjVar != nil {
		lit, err := m.conv.ToLiteral(st.Subject)
		if err != nil {
			return nil, err
		}
		out = append(out, Binding{Variable: *m.subjVar, Value: lit})
	}
	if m.predVar != nil && !predAliasesSubj {
		lit, err := m.conv.ToLiteral(st.Predicate)
		if err != nil {
			return nil, err
		}
		out = append(out, Binding{Variable: *m.predVar, Value: lit})
	}
	if m.objVar != nil && !objAliasesSubj && !objAliasesPred {
		lit, err := m.conv.ToLiteral(st.Object)
		if err != nil {
			return nil, err
		}
		out = append(out, Binding{Variable: *m.objVar, Value: lit})
	}
	return out, nil
}

// Binding is re-exported under queryengine's name for BindMatch's
// signature; model.Binding and queryengine.Binding share shape.
type Binding = queryengine.Binding

func (m *match) NextMatch() (bool, error) {
	if err := m.advanceIfNeeded(); err != nil {
		return false, err
	}
	if m.ended {
		return false, nil
	}
	ok, err := m.stream.Next()
	if err != nil {
		m.ended = true
		return false, err
	}
	if !ok {
		m.ended = true
		return false, nil
	}
	return true, nil
}

func (m *match) IsEnd() bool {
	return m.ended
}

func (m *match) Finish() error {
	return m.stream.Close()
}
