package certstore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseinweb/rdkcryptoapi/pkg/container"
	"github.com/joseinweb/rdkcryptoapi/pkg/objectstore"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

func selfSignedCert(t *testing.T) (der []byte, priv *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err = x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	return der, priv
}

func selfSignedDER(t *testing.T) []byte {
	t.Helper()
	der, _ := selfSignedCert(t)
	return der
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, _ := newTestStoreInDir(t, t.TempDir())
	return store
}

func newTestStoreInDir(t *testing.T, dir string) (*Store, string) {
	t.Helper()
	recs, err := objectstore.NewCertRecordStore(dir)
	require.NoError(t, err)
	macKey := make([]byte, 32)
	return New(recs, macKey), dir
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	der := selfSignedDER(t)
	id := types.ObjectID(0x3000)

	require.NoError(t, store.Save(id, der, types.LocationRAM))
	got, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, der, got)
}

// TestLoadRejectsTamperedCertificate pins the certificate tamper scenario:
// flipping a byte in the stored DER must fail the MAC check on load.
func TestLoadRejectsTamperedCertificate(t *testing.T) {
	store := newTestStore(t)
	der := selfSignedDER(t)
	id := types.ObjectID(0x3001)

	require.NoError(t, store.Save(id, der, types.LocationRAM))

	record, err := store.records.Retrieve(id)
	require.NoError(t, err)
	record.DER[0] ^= 0x01
	require.NoError(t, store.records.Store(record, types.LocationRAM))

	_, err = store.Load(id)
	assert.ErrorIs(t, err, types.ErrVerificationFailed)
}

// TestExtractPublicKeyMatchesEncodedCert pins the extraction requirement:
// extracting the public key from a stored certificate yields the same
// canonical raw-RSA-public bytes as encoding the certificate's own signing
// key directly.
func TestExtractPublicKeyMatchesEncodedCert(t *testing.T) {
	store := newTestStore(t)
	der, priv := selfSignedCert(t)
	id := types.ObjectID(0x3003)
	require.NoError(t, store.Save(id, der, types.LocationRAM))

	extracted, err := store.ExtractPublicKey(id)
	require.NoError(t, err)
	assert.Equal(t, container.EncodeRawRSAPublic(&priv.PublicKey), extracted)
}

func TestVerifySignatureAcceptsSelfSignedCert(t *testing.T) {
	der, priv := selfSignedCert(t)
	require.NoError(t, VerifySignature(der, &priv.PublicKey))
}

func TestVerifySignatureRejectsWrongKey(t *testing.T) {
	der, _ := selfSignedCert(t)
	other, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	assert.Error(t, VerifySignature(der, &other.PublicKey))
}

// TestFileTierSplitsCertAndCertInfo pins the on-disk layout requirement: a
// file-tier certificate is split across {id}.cert (raw DER) and
// {id}.certinfo (the raw MAC), mirroring the key store's {id}.key/
// {id}.keyinfo split, rather than one JSON-packed blob.
func TestFileTierSplitsCertAndCertInfo(t *testing.T) {
	dir := t.TempDir()
	store, _ := newTestStoreInDir(t, dir)
	der := selfSignedDER(t)
	id := types.ObjectID(0x3004)

	require.NoError(t, store.Save(id, der, types.LocationFile))

	certPath := filepath.Join(dir, fmt.Sprintf("%d.cert", uint64(id)))
	infoPath := filepath.Join(dir, fmt.Sprintf("%d.certinfo", uint64(id)))

	onDiskDER, err := os.ReadFile(certPath)
	require.NoError(t, err)
	assert.Equal(t, der, onDiskDER)

	mac, err := os.ReadFile(infoPath)
	require.NoError(t, err)
	assert.Len(t, mac, 32)
}

// TestFileTierTamperYieldsVerificationFailure pins scenario 4's literal
// contract: flipping a byte of the actual on-disk .cert file must surface
// as types.ErrVerificationFailed from the MAC check, not a decode error
// from a broken container format.
func TestFileTierTamperYieldsVerificationFailure(t *testing.T) {
	dir := t.TempDir()
	store, _ := newTestStoreInDir(t, dir)
	der := selfSignedDER(t)
	id := types.ObjectID(0x3005)

	require.NoError(t, store.Save(id, der, types.LocationFile))

	certPath := filepath.Join(dir, fmt.Sprintf("%d.cert", uint64(id)))
	onDisk, err := os.ReadFile(certPath)
	require.NoError(t, err)
	onDisk[0] ^= 0x01
	require.NoError(t, os.WriteFile(certPath, onDisk, 0644))

	_, err = store.Load(id)
	assert.ErrorIs(t, err, types.ErrVerificationFailed)
}

func TestDeleteThenLoadMisses(t *testing.T) {
	store := newTestStore(t)
	der := selfSignedDER(t)
	id := types.ObjectID(0x3002)

	require.NoError(t, store.Save(id, der, types.LocationRAM))
	require.NoError(t, store.Delete(id))

	_, err := store.Load(id)
	assert.ErrorIs(t, err, types.ErrNoSuchItem)
}
