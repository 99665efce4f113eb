package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendRoundTrip(t *testing.T) {
	f, err := NewFileBackend(t.TempDir(), 0600)
	require.NoError(t, err)

	require.NoError(t, f.Put("1.key", []byte("payload"), nil))
	got, err := f.Get("1.key")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	keys, err := f.List("")
	require.NoError(t, err)
	assert.Contains(t, keys, "1.key")

	require.NoError(t, f.Delete("1.key"))
	_, err = f.Get("1.key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackendRejectsPathTraversal(t *testing.T) {
	f, err := NewFileBackend(t.TempDir(), 0600)
	require.NoError(t, err)

	err = f.Put("../escape", []byte("x"), nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
