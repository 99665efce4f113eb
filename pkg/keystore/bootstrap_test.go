package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStoreKeysIsDeterministic(t *testing.T) {
	root := make([]byte, 16)
	for i := range root {
		root[i] = byte(i)
	}
	kStore1, kMac1, err := DeriveStoreKeys(root)
	require.NoError(t, err)
	kStore2, kMac2, err := DeriveStoreKeys(root)
	require.NoError(t, err)

	assert.Equal(t, kStore1, kStore2)
	assert.Equal(t, kMac1, kMac2)
	assert.Len(t, kStore1, 16)
	assert.Len(t, kMac1, 32)
	assert.NotEqual(t, kStore1, kMac1[:16])
}

func TestDeriveStoreKeysRejectsShortRoot(t *testing.T) {
	_, _, err := DeriveStoreKeys([]byte{1, 2, 3})
	assert.Error(t, err)
}
