package wlock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterExcludesSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")
	a := New(path)
	b := New(path)

	require.NoError(t, a.TryWriter())
	defer a.Unlock()

	err := b.TryWriter()
	require.Error(t, err)
}

func TestUnlockThenReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")
	a := New(path)
	require.NoError(t, a.TryWriter())
	require.NoError(t, a.Unlock())

	b := New(path)
	require.NoError(t, b.TryWriter())
	require.NoError(t, b.Unlock())
}
