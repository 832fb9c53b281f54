package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kepler-42/graphstore/hashkv"
	"github.com/kepler-42/graphstore/hashkv/mdbxhash"
	"github.com/kepler-42/graphstore/term"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	spo := mdbxhash.New()
	pos := mdbxhash.New()
	osp := mdbxhash.New()
	require.NoError(t, spo.Open(filepath.Join(dir, "spo"), hashkv.Writable|hashkv.New))
	require.NoError(t, pos.Open(filepath.Join(dir, "pos"), hashkv.Writable|hashkv.New))
	require.NoError(t, osp.Open(filepath.Join(dir, "osp"), hashkv.Writable|hashkv.New))
	t.Cleanup(func() {
		_ = spo.Close()
		_ = pos.Close()
		_ = osp.Close()
	})
	return New(spo, pos, osp)
}

func TestAddAndContainsStatement(t *testing.T) {
	m := newTestModel(t)
	st := Statement{
		Subject:   term.NewResource("http://example.org/s"),
		Predicate: term.NewResource("http://example.org/p"),
		Object:    term.NewPlainLiteral("hello", ""),
	}
	require.NoError(t, m.AddStatement(st))

	ok, err := m.ContainsStatement(st)
	require.NoError(t, err)
	require.True(t, ok)

	other := st
	other.Object = term.NewPlainLiteral("goodbye", "")
	ok, err = m.ContainsStatement(other)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindStatementsBySubjectPredicate(t *testing.T) {
	m := newTestModel(t)
	s := term.NewResource("http://example.org/s")
	p := term.NewResource("http://example.org/p")
	require.NoError(t, m.AddStatement(Statement{Subject: s, Predicate: p, Object: term.NewPlainLiteral("a", "")}))
	require.NoError(t, m.AddStatement(Statement{Subject: s, Predicate: p, Object: term.NewPlainLiteral("b", "")}))

	stream, err := m.FindStatements(Pattern{Subject: &s, Predicate: &p})
	require.NoError(t, err)
	defer stream.Close()

	var got []string
	for {
		ok, err := stream.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, stream.Current().Object.Lexical)
	}
	require.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestFindStatementsNoMatch(t *testing.T) {
	m := newTestModel(t)
	s := term.NewResource("http://example.org/nothing")
	p := term.NewResource("http://example.org/p")
	stream, err := m.FindStatements(Pattern{Subject: &s, Predicate: &p})
	require.NoError(t, err)
	defer stream.Close()

	ok, err := stream.Next()
	require.NoError(t, err)
	require.False(t, ok)
}
