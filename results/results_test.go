package results

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kepler-42/graphstore/model"
	"github.com/kepler-42/graphstore/queryengine"
	"github.com/kepler-42/graphstore/rerr"
	"github.com/kepler-42/graphstore/term"
)

type tabularSource struct {
	rows []Row
	pos  int
}

func (s *tabularSource) Shape() Shape { return Tabular }
func (s *tabularSource) BindingNames() []string {
	if len(s.rows) == 0 {
		return nil
	}
	var names []string
	for k := range s.rows[0] {
		names = append(names, k)
	}
	return names
}
func (s *tabularSource) Next() (bool, error) {
	s.pos++
	return s.pos <= len(s.rows), nil
}
func (s *tabularSource) BindingValue(name string) (term.Term, bool, error) {
	if s.pos < 1 || s.pos > len(s.rows) {
		return term.Term{}, false, nil
	}
	t, ok := s.rows[s.pos-1][name]
	return t, ok, nil
}
func (s *tabularSource) BooleanValue() bool { return false }
func (s *tabularSource) CurrentTriple() (subject, predicate, object queryengine.Literal, ok bool, err error) {
	return queryengine.Literal{}, queryengine.Literal{}, queryengine.Literal{}, false, nil
}

func TestTabularStreamRows(t *testing.T) {
	src := &tabularSource{rows: []Row{
		{"x": term.NewPlainLiteral("a", "")},
		{"x": term.NewPlainLiteral("b", "")},
	}}
	s := NewStream(src, nil)
	require.Equal(t, Tabular, s.Shape())

	var got []string
	for {
		ok, err := s.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		row, err := s.Row()
		require.NoError(t, err)
		got = append(got, row["x"].Lexical)
	}
	require.Equal(t, []string{"a", "b"}, got)
}

func TestBooleanOnTabularStreamFails(t *testing.T) {
	s := NewStream(&tabularSource{}, nil)
	_, err := s.Boolean()
	require.True(t, rerr.Is(err, rerr.Invalid))
}

type triple struct {
	subject, predicate, object queryengine.Literal
}

type graphSource struct {
	triples []triple
	pos     int
}

func (s *graphSource) Shape() Shape                                 { return Graph }
func (s *graphSource) BindingNames() []string                       { return nil }
func (s *graphSource) BindingValue(string) (term.Term, bool, error) { return term.Term{}, false, nil }
func (s *graphSource) BooleanValue() bool                           { return false }
func (s *graphSource) Next() (bool, error) {
	s.pos++
	return s.pos <= len(s.triples), nil
}
func (s *graphSource) CurrentTriple() (subject, predicate, object queryengine.Literal, ok bool, err error) {
	if s.pos < 1 || s.pos > len(s.triples) {
		return queryengine.Literal{}, queryengine.Literal{}, queryengine.Literal{}, false, nil
	}
	tr := s.triples[s.pos-1]
	return tr.subject, tr.predicate, tr.object, true, nil
}

func litURI(uri string) queryengine.Literal {
	return queryengine.Literal{Kind: queryengine.LiteralURI, Value: uri}
}

func TestOrdinalPredicate(t *testing.T) {
	require.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#_1", OrdinalPredicate(1))
	require.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#_42", OrdinalPredicate(42))
}

func TestSerializeDrainsGraphStream(t *testing.T) {
	s := NewStream(&graphSource{triples: []triple{
		{subject: litURI("s"), predicate: litURI("p"), object: litURI("o")},
	}}, nil)
	var buf bytes.Buffer
	err := Serialize(s, countingSerializer{}, &buf, "urn:test:count")
	require.NoError(t, err)
}

func TestStatementDecodesOrdinalObject(t *testing.T) {
	s := NewStream(&graphSource{triples: []triple{
		{
			subject:   litURI("http://example.org/container"),
			predicate: litURI("http://example.org/hasMember"),
			object:    queryengine.Literal{Kind: queryengine.LiteralOrdinal, Ordinal: 3},
		},
	}}, nil)

	ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)

	st, err := s.Statement()
	require.NoError(t, err)
	require.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#_3", st.Object.URI)
	require.Equal(t, term.Resource, st.Object.Kind)
}

func TestStatementDecodesBlankSubject(t *testing.T) {
	s := NewStream(&graphSource{triples: []triple{
		{
			subject:   queryengine.Literal{Kind: queryengine.LiteralBlank, Value: "b0"},
			predicate: litURI("http://example.org/p"),
			object:    litURI("http://example.org/o"),
		},
	}}, nil)

	ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)

	st, err := s.Statement()
	require.NoError(t, err)
	require.Equal(t, term.Blank, st.Subject.Kind)
	require.Equal(t, "b0", st.Subject.Lexical)
}

func TestStatementRejectsUnrecognizedKind(t *testing.T) {
	s := NewStream(&graphSource{triples: []triple{
		{
			subject:   litURI("http://example.org/s"),
			predicate: litURI("http://example.org/p"),
			object:    queryengine.Literal{Kind: 99},
		},
	}}, nil)

	ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.Statement()
	require.Error(t, err)
	require.True(t, rerr.Is(err, rerr.Conversion))
}

type countingSerializer struct{}

func (countingSerializer) FormatURI() string { return "urn:test:count" }
func (countingSerializer) WriteStatement(w io.Writer, st model.Statement) error {
	_, err := w.Write([]byte(st.Subject.URI))
	return err
}
