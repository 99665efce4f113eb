// Package certstore implements the certificate pipeline: PEM/DER ingestion,
// HMAC-SHA-256 authentication under the cert-store MAC key, and X.509
// signature verification against a key handle's public half.
package certstore

import (
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"

	"github.com/joseinweb/rdkcryptoapi/pkg/container"
	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/objectstore"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// Store wraps a CertRecordStore with the MAC key every save/load round-trip
// authenticates against.
type Store struct {
	records *objectstore.CertRecordStore
	macKey  []byte
}

// New constructs a certificate pipeline backed by records, authenticating
// under macKey (the resolved ObjectIDCertStoreMACKey key).
func New(records *objectstore.CertRecordStore, macKey []byte) *Store {
	return &Store{records: records, macKey: macKey}
}

// Save normalizes data (PEM or DER) to DER, computes its MAC, and persists
// both under id at location.
func (s *Store) Save(id types.ObjectID, data []byte, location types.Location) error {
	der, err := normalizeToDER(data)
	if err != nil {
		return err
	}
	mac := crypto.HMACSHA256(s.macKey, der)
	record := &types.CertRecord{ID: id, DER: der, MAC: mac}
	if err := s.records.Store(record, location); err != nil {
		// The write failed; best-effort cleanup of any partial record,
		// then report failure regardless of whether cleanup succeeded.
		_ = s.records.Delete(id)
		return types.ErrFailure
	}
	return nil
}

// Load retrieves id and verifies its MAC in constant time before returning
// the DER bytes.
func (s *Store) Load(id types.ObjectID) ([]byte, error) {
	record, err := s.records.Retrieve(id)
	if err != nil {
		return nil, err
	}
	want := crypto.HMACSHA256(s.macKey, record.DER)
	if subtle.ConstantTimeCompare(record.MAC, want) != 1 {
		return nil, types.ErrVerificationFailed
	}
	return record.DER, nil
}

// Delete removes id.
func (s *Store) Delete(id types.ObjectID) error {
	return s.records.Delete(id)
}

// List returns every stored certificate identifier.
func (s *Store) List() ([]types.ObjectID, error) {
	return s.records.List()
}

// VerifySignature verifies that cert's DER was signed by the private half
// of pub (an X.509 signature check, not the cert-store MAC check).
func VerifySignature(der []byte, pub *rsa.PublicKey) error {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return types.ErrInvalidParameters
	}
	return crypto.RSAVerifyPKCS1(pub, cert.RawTBSCertificate, cert.Signature, true)
}

// ExtractPublicKey loads the certificate at id and returns its embedded RSA
// public key in the canonical raw-RSA-public layout — the same layout a
// resolved RSA-public key handle holds, so the two are interchangeable.
func (s *Store) ExtractPublicKey(id types.ObjectID) ([]byte, error) {
	der, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	return extractPublicKey(der)
}

func extractPublicKey(der []byte) ([]byte, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, types.ErrInvalidParameters
	}
	return container.EncodeRawRSAPublic(pub), nil
}

func normalizeToDER(data []byte) ([]byte, error) {
	if block, _ := pem.Decode(data); block != nil {
		return block.Bytes, nil
	}
	if _, err := x509.ParseCertificate(data); err != nil {
		return nil, types.ErrInvalidParameters
	}
	return data, nil
}
