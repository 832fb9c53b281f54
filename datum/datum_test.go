package datum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareOrdersByLengthThenBytes(t *testing.T) {
	require.Equal(t, -1, Compare(FromString("ab"), FromString("abc")))
	require.Equal(t, 1, Compare(FromString("abc"), FromString("ab")))
	require.Equal(t, -1, Compare(FromString("aa"), FromString("ab")))
	require.Equal(t, 0, Compare(FromString("ab"), FromString("ab")))
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New([]byte("hello"))
	clone := orig.Clone()
	orig.Bytes[0] = 'H'
	require.Equal(t, "hello", clone.String())
	require.Equal(t, "Hello", orig.String())
}

func TestIsZero(t *testing.T) {
	require.True(t, Datum{}.IsZero())
	require.False(t, New([]byte{}).IsZero())
}
