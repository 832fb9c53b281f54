package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kepler-42/graphstore/queryengine"
	"github.com/kepler-42/graphstore/term"
)

func litURI(uri string) queryengine.Literal {
	return queryengine.Literal{Kind: queryengine.LiteralURI, Value: uri}
}

func TestBridgeTriplePresent(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	s := term.NewResource("http://example.org/s")
	p := term.NewResource("http://example.org/p")
	o := term.NewResource("http://example.org/o")
	require.NoError(t, m.AddStatement(Statement{Subject: s, Predicate: p, Object: o}))

	present, err := br.TriplePresent(queryengine.TriplePattern{
		Subject:   queryengine.BoundNode(litURI("http://example.org/s")),
		Predicate: queryengine.BoundNode(litURI("http://example.org/p")),
		Object:    queryengine.BoundNode(litURI("http://example.org/o")),
	})
	require.NoError(t, err)
	require.True(t, present)
}

func TestBridgeTriplePresentRejectsNonGround(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	_, err := br.TriplePresent(queryengine.TriplePattern{
		Subject:   queryengine.VarNode(queryengine.Variable{Name: "x"}),
		Predicate: queryengine.BoundNode(litURI("http://example.org/p")),
		Object:    queryengine.BoundNode(litURI("http://example.org/o")),
	})
	require.Error(t, err)
}

func TestBridgeRejectsBoundOrigin(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	_, err := br.NewTriplesMatch(queryengine.TriplePattern{
		Subject:   queryengine.VarNode(queryengine.Variable{Name: "s"}),
		Predicate: queryengine.VarNode(queryengine.Variable{Name: "p"}),
		Object:    queryengine.VarNode(queryengine.Variable{Name: "o"}),
		Origin:    queryengine.BoundNode(litURI("http://example.org/graph1")),
	})
	require.Error(t, err)
}

func TestBridgeNewTriplesMatchBindsAllVariables(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	s := term.NewResource("http://example.org/s")
	p := term.NewResource("http://example.org/p")
	o := term.NewPlainLiteral("v", "")
	require.NoError(t, m.AddStatement(Statement{Subject: s, Predicate: p, Object: o}))

	tm, err := br.NewTriplesMatch(queryengine.TriplePattern{
		Subject:   queryengine.VarNode(queryengine.Variable{Name: "s"}),
		Predicate: queryengine.BoundNode(litURI("http://example.org/p")),
		Object:    queryengine.VarNode(queryengine.Variable{Name: "o"}),
	})
	require.NoError(t, err)
	defer tm.Finish()

	bindings, err := tm.BindMatch(nil)
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	more, err := tm.NextMatch()
	require.NoError(t, err)
	require.False(t, more)
	require.True(t, tm.IsEnd())
}

func TestBridgeBindMatchAliasedSubjectObjectSkipsObject(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	self := term.NewResource("http://example.org/self")
	p := term.NewResource("http://example.org/p")
	require.NoError(t, m.AddStatement(Statement{Subject: self, Predicate: p, Object: self}))

	tm, err := br.NewTriplesMatch(queryengine.TriplePattern{
		Subject:   queryengine.VarNode(queryengine.Variable{Name: "x"}),
		Predicate: queryengine.BoundNode(litURI("http://example.org/p")),
		Object:    queryengine.VarNode(queryengine.Variable{Name: "x"}),
	})
	require.NoError(t, err)
	defer tm.Finish()

	bindings, err := tm.BindMatch(nil)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	require.Equal(t, "x", bindings[0].Variable.Name)
}

// TestBridgeBindMatchRejectsNonAliasedStatement stores one statement
// whose subject and object alias (self-loop) alongside one that
// doesn't, both sharing the bound predicate. Pattern (?x, boundP, ?x)
// must match only the aliased statement: the non-aliased one has to
// fail bind_match's equality check rather than being silently bound.
func TestBridgeBindMatchRejectsNonAliasedStatement(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	self := term.NewResource("http://example.org/self")
	p := term.NewResource("http://example.org/p")
	other := term.NewResource("http://example.org/other")
	require.NoError(t, m.AddStatement(Statement{Subject: self, Predicate: p, Object: self}))
	require.NoError(t, m.AddStatement(Statement{Subject: self, Predicate: p, Object: other}))

	tm, err := br.NewTriplesMatch(queryengine.TriplePattern{
		Subject:   queryengine.VarNode(queryengine.Variable{Name: "x"}),
		Predicate: queryengine.BoundNode(litURI("http://example.org/p")),
		Object:    queryengine.VarNode(queryengine.Variable{Name: "x"}),
	})
	require.NoError(t, err)
	defer tm.Finish()

	var matched int
	for {
		bindings, err := tm.BindMatch(nil)
		require.NoError(t, err)
		if bindings != nil {
			matched++
			require.Len(t, bindings, 1)
			require.Equal(t, "x", bindings[0].Variable.Name)
		}
		more, err := tm.NextMatch()
		require.NoError(t, err)
		if !more {
			break
		}
	}
	require.Equal(t, 1, matched)
}

func TestBridgeBindFailsWithExplicitSource(t *testing.T) {
	m := newTestModel(t)
	br := NewBridge(m, nil)

	require.NoError(t, br.Bind(0))
	err := br.Bind(1)
	require.Error(t, err)
}
