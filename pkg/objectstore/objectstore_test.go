package objectstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseinweb/rdkcryptoapi/pkg/storage"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

func TestKeyStoreStoreRetrieveDelete(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	record := &types.KeyRecord{
		ID:       types.ObjectID(42),
		Type:     types.KeyTypeAES128,
		Location: types.LocationRAM,
		Bytes:    make([]byte, 16),
	}
	require.NoError(t, ks.Store(record))

	got, err := ks.Retrieve(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Bytes, got.Bytes)

	require.NoError(t, ks.Delete(record.ID))
	_, err = ks.Retrieve(record.ID)
	assert.ErrorIs(t, err, types.ErrNoSuchItem)
}

func TestKeyStoreRelocationPurgesOtherTier(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	id := types.ObjectID(43)
	require.NoError(t, ks.Store(&types.KeyRecord{ID: id, Type: types.KeyTypeAES128, Location: types.LocationRAM, Bytes: make([]byte, 16)}))
	require.NoError(t, ks.Store(&types.KeyRecord{ID: id, Type: types.KeyTypeAES128, Location: types.LocationFile, Bytes: make([]byte, 16)}))

	ids, err := ks.List()
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestKeyStoreRejectsOEMLocation(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir())
	require.NoError(t, err)

	err = ks.Store(&types.KeyRecord{ID: types.ObjectID(44), Type: types.KeyTypeAES128, Location: types.LocationOEM, Bytes: make([]byte, 16)})
	assert.ErrorIs(t, err, types.ErrUnimplementedFeature)
}

// TestDeleteResultDistinguishesMissingFromFailed pins the non-removable
// contract: deleteResult must not collapse a genuine removal failure (a
// tier that held the item but failed to remove it) into the same
// ErrNoSuchItem a plain miss produces.
func TestDeleteResultDistinguishesMissingFromFailed(t *testing.T) {
	assert.ErrorIs(t, deleteResult(storage.ErrNotFound, storage.ErrNotFound), types.ErrNoSuchItem)
	assert.NoError(t, deleteResult(nil, storage.ErrNotFound))
	assert.NoError(t, deleteResult(storage.ErrNotFound, nil))
	assert.ErrorIs(t, deleteResult(errors.New("disk error"), storage.ErrNotFound), types.ErrItemNonRemovable)
	assert.ErrorIs(t, deleteResult(storage.ErrNotFound, errors.New("disk error")), types.ErrItemNonRemovable)
	assert.ErrorIs(t, deleteResult(errors.New("disk error"), nil), types.ErrItemNonRemovable)
}
