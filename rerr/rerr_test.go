package rerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesKind(t *testing.T) {
	err := Wrapf(NotFound, "key %q", "foo")
	require.True(t, Is(err, NotFound))
	require.False(t, Is(err, Invalid))
	require.Contains(t, err.Error(), "foo")
}

func TestCauseUnwraps(t *testing.T) {
	err := Wrap(StorageIO, "opening backend")
	require.Equal(t, StorageIO, Cause(err))
}
