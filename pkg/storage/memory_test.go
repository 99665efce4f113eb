package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	m := NewMemoryBackend()
	require.NoError(t, m.Put("a", []byte("value"), nil))

	got, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	exists, err := m.Exists("a")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, m.Delete("a"))
	_, err = m.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackendClosed(t *testing.T) {
	m := NewMemoryBackend()
	require.NoError(t, m.Close())
	_, err := m.Get("a")
	assert.ErrorIs(t, err, ErrClosed)
}
