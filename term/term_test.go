package term

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kepler-42/graphstore/queryengine"
)

func TestConverterRoundTripsResource(t *testing.T) {
	var c Converter
	orig := NewResource("http://example.org/s")
	lit, err := c.ToLiteral(orig)
	require.NoError(t, err)
	require.Equal(t, queryengine.LiteralURI, lit.Kind)

	back, err := c.FromLiteral(lit)
	require.NoError(t, err)
	require.True(t, back.Equal(orig))
}

func TestConverterRoundTripsTypedLiteral(t *testing.T) {
	var c Converter
	orig := NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer")
	lit, err := c.ToLiteral(orig)
	require.NoError(t, err)

	back, err := c.FromLiteral(lit)
	require.NoError(t, err)
	require.True(t, back.Equal(orig))
}

func TestConverterRoundTripsBlank(t *testing.T) {
	var c Converter
	orig := NewBlank("b0")
	lit, err := c.ToLiteral(orig)
	require.NoError(t, err)
	require.Equal(t, queryengine.LiteralBlank, lit.Kind)

	back, err := c.FromLiteral(lit)
	require.NoError(t, err)
	require.True(t, back.Equal(orig))
}

func TestConverterRejectsUnrecognizedKind(t *testing.T) {
	var c Converter
	_, err := c.ToLiteral(Term{Kind: Kind(99)})
	require.Error(t, err)

	_, err = c.FromLiteral(queryengine.Literal{Kind: queryengine.LiteralKind(99)})
	require.Error(t, err)
}

func TestFromLiteralPlainWithLanguage(t *testing.T) {
	var c Converter
	lit := queryengine.Literal{Kind: queryengine.LiteralPlain, Value: "bonjour", Language: "fr"}
	back, err := c.FromLiteral(lit)
	require.NoError(t, err)
	require.Equal(t, "fr", back.Language)
	require.Equal(t, "bonjour", back.Lexical)
}
