package container

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

func TestProvisionRawSymmetric(t *testing.T) {
	data := make([]byte, 16)
	record, err := Provision(types.ObjectID(1), types.ContainerRaw, types.KeyTypeAES128, data, types.LocationRAM, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, data, record.Bytes)
}

func TestProvisionRawRejectsWrongLength(t *testing.T) {
	data := make([]byte, 10)
	_, err := Provision(types.ObjectID(1), types.ContainerRaw, types.KeyTypeAES128, data, types.LocationRAM, nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidInputSize)
}

func TestProvisionRawRSAPrivateRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	raw := EncodeRawRSAPrivate(priv)
	record, err := Provision(types.ObjectID(2), types.ContainerRawRSAPrivate, types.KeyTypeRSA1024Priv, raw, types.LocationRAM, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.KeyTypeRSA1024Priv, record.Type)

	parsed, err := decodeRawRSAPrivate(record.Bytes)
	require.NoError(t, err)
	assert.Equal(t, priv.N, parsed.N)
}

func TestProvisionRawRSAPrivateRejectsMismatchedKeyType(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	raw := EncodeRawRSAPrivate(priv)
	_, err = Provision(types.ObjectID(2), types.ContainerRawRSAPrivate, types.KeyTypeRSA2048Priv, raw, types.LocationRAM, nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidInputSize)
}

func TestProvisionPEMRSAPublic(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	record, err := Provision(types.ObjectID(3), types.ContainerPEMRSAPublic, types.KeyTypeRSA1024Pub, pemBytes, types.LocationRAM, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.KeyTypeRSA1024Pub, record.Type)

	parsed, err := decodeRawRSAPublic(record.Bytes)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey.N, parsed.N)
}

func TestProvisionStoreValidatesMAC(t *testing.T) {
	kMac := make([]byte, 32)
	envelope := make([]byte, 64)
	_, err := Provision(types.ObjectID(9), types.ContainerStore, types.KeyTypeAES128, envelope, types.LocationFile, kMac, nil)
	assert.Error(t, err)
}

func TestDerivedContainerResolvesThroughLadder(t *testing.T) {
	root := make([]byte, 16)
	record, err := NewDerivedRecord(types.ObjectID(4), [][]byte{make([]byte, 16)}, types.KeyTypeAES128, types.LocationRAM)
	require.NoError(t, err)

	resolved, err := ResolveDerived(root, record)
	require.NoError(t, err)
	assert.Len(t, resolved, 16)
}

func TestProvisionUnknownContainerUsesHandler(t *testing.T) {
	called := false
	handler := func(ct types.ContainerType, data []byte) (*types.KeyRecord, error) {
		called = true
		return &types.KeyRecord{ID: types.ObjectID(5), Type: types.KeyTypeAES128, Location: types.LocationRAM, Bytes: data}, nil
	}
	_, err := Provision(types.ObjectID(5), types.ContainerUnknown, types.KeyTypeAES128, []byte("x"), types.LocationRAM, nil, handler)
	require.NoError(t, err)
	assert.True(t, called)
}
