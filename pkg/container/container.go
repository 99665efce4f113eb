// Package container implements the key-container provisioner: translating
// a wire-format byte blob (raw symmetric, raw/DER/PEM RSA, a pre-wrapped
// store blob, or a derived-container placeholder) into a types.KeyRecord,
// and the reverse for derived containers at resolution time.
package container

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/keystore"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// UnknownContainerHandler lets a caller extend provisioning with an
// application-specific container type, modeled as a field on the processor
// configuration rather than a package-level hook.
type UnknownContainerHandler func(containerType types.ContainerType, data []byte) (*types.KeyRecord, error)

// Provision decodes data as containerType into a KeyRecord at id, located
// at location. keyType disambiguates encodings (e.g. Raw) that do not imply
// a length on their own. kMac authenticates the ContainerStore (pre-wrapped
// blob) case; it is unused by every other container type.
func Provision(id types.ObjectID, containerType types.ContainerType, keyType types.KeyType, data []byte, location types.Location, kMac []byte, unknown UnknownContainerHandler) (*types.KeyRecord, error) {
	if len(data) > types.MaxContainerPayloadBytes {
		return nil, types.ErrInvalidInputSize
	}
	switch containerType {
	case types.ContainerRaw:
		if n := keyType.KeyLengthBytes(); n != 0 && len(data) != n {
			return nil, types.ErrInvalidInputSize
		}
		return &types.KeyRecord{ID: id, Type: keyType, Location: location, ContainerType: containerType, Inner: types.InnerKindRaw, Bytes: append([]byte{}, data...)}, nil

	case types.ContainerRawRSAPrivate:
		priv, err := decodeRawRSAPrivate(data)
		if err != nil {
			return nil, err
		}
		if err := validateRSAKeyType(keyType, len(priv.N.Bytes())); err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPrivate(priv)
		return &types.KeyRecord{ID: id, Type: keyType, Location: location, ContainerType: containerType, Inner: types.InnerKindRaw, Bytes: raw}, nil

	case types.ContainerRawRSAPublic:
		pub, err := decodeRawRSAPublic(data)
		if err != nil {
			return nil, err
		}
		if err := validateRSAKeyType(keyType, len(pub.N.Bytes())); err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPublic(pub)
		return &types.KeyRecord{ID: id, Type: keyType, Location: location, ContainerType: containerType, Inner: types.InnerKindRaw, Bytes: raw}, nil

	case types.ContainerDERRSAPrivate:
		priv, err := parseDERRSAPrivate(data)
		if err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPrivate(priv)
		return Provision(id, types.ContainerRawRSAPrivate, keyType, raw, location, kMac, unknown)

	case types.ContainerDERRSAPublic:
		pub, err := parseDERRSAPublic(data)
		if err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPublic(pub)
		return Provision(id, types.ContainerRawRSAPublic, keyType, raw, location, kMac, unknown)

	case types.ContainerPEMRSAPrivate:
		block, err := decodePEMBlock(data)
		if err != nil {
			return nil, err
		}
		priv, err := parseDERRSAPrivate(block.Bytes)
		if err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPrivate(priv)
		return Provision(id, types.ContainerRawRSAPrivate, keyType, raw, location, kMac, unknown)

	case types.ContainerPEMRSAPublic:
		block, err := decodePEMBlock(data)
		if err != nil {
			return nil, err
		}
		pub, err := parseDERRSAPublic(block.Bytes)
		if err != nil {
			return nil, err
		}
		raw := EncodeRawRSAPublic(pub)
		return Provision(id, types.ContainerRawRSAPublic, keyType, raw, location, kMac, unknown)

	case types.ContainerStore:
		if len(data) == 0 {
			return nil, types.ErrInvalidInputSize
		}
		if err := keystore.VerifyMAC(kMac, data, keystore.HeaderLen); err != nil {
			return nil, err
		}
		return &types.KeyRecord{ID: id, Type: keyType, Location: location, ContainerType: containerType, Inner: types.InnerKindSealed, Bytes: append([]byte{}, data...)}, nil

	case types.ContainerDerived:
		var payload types.DerivedContainerPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, types.ErrInvalidParameters
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, types.ErrFailure
		}
		return &types.KeyRecord{ID: id, Type: payload.OutputType, Location: location, ContainerType: containerType, Inner: types.InnerKindDerived, Bytes: raw}, nil

	default:
		if unknown != nil {
			return unknown(containerType, data)
		}
		return nil, types.ErrUnimplementedFeature
	}
}

// NewDerivedRecord builds the types.KeyRecord for a "derived" container:
// one whose Bytes hold the ladder inputs needed to recompute the key from
// the device root key rather than the key bytes themselves.
func NewDerivedRecord(id types.ObjectID, ladderInputs [][]byte, outputType types.KeyType, location types.Location) (*types.KeyRecord, error) {
	payload := types.DerivedContainerPayload{LadderInputs: ladderInputs, OutputType: outputType}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, types.ErrFailure
	}
	return &types.KeyRecord{ID: id, Type: outputType, Location: location, ContainerType: types.ContainerDerived, Inner: types.InnerKindDerived, Bytes: raw}, nil
}

// ResolveDerived recomputes the key bytes a derived record names, running
// the AES-ECB ladder from rootKey through its stored ladder inputs.
func ResolveDerived(rootKey []byte, record *types.KeyRecord) ([]byte, error) {
	var payload types.DerivedContainerPayload
	if err := json.Unmarshal(record.Bytes, &payload); err != nil {
		return nil, types.ErrInvalidParameters
	}
	return crypto.KeyLadder(rootKey, payload.LadderInputs)
}

// rsaModulusLenBytes returns the modulus byte length the declared RSA key
// type requires, or 0 if keyType is not an RSA type.
func rsaModulusLenBytes(t types.KeyType) int {
	switch t {
	case types.KeyTypeRSA1024Priv, types.KeyTypeRSA1024Pub:
		return 128
	case types.KeyTypeRSA2048Priv, types.KeyTypeRSA2048Pub:
		return 256
	default:
		return 0
	}
}

// validateRSAKeyType rejects a container whose parsed modulus byte-size
// does not match the caller-declared keyType, rather than silently
// overriding the declaration with whatever size the data happens to be.
func validateRSAKeyType(keyType types.KeyType, modulusBytes int) error {
	want := rsaModulusLenBytes(keyType)
	if want == 0 {
		return types.ErrInvalidParameters
	}
	if modulusBytes != want {
		return types.ErrInvalidInputSize
	}
	return nil
}

// decodePEMBlock decodes data as a single PEM block, passing encrypted
// blocks through a passphrase callback that always rejects: this processor
// never has an out-of-band passphrase to supply, so an encrypted PEM
// container can never be provisioned, only detected and refused.
func decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, types.ErrInvalidParameters
	}
	if x509.IsEncryptedPEMBlock(block) { //nolint:staticcheck // deprecated but the only stdlib path for this legacy format
		if _, err := x509.DecryptPEMBlock(block, rejectingPassphrase()); err != nil {
			return nil, types.ErrInvalidParameters
		}
	}
	return block, nil
}

// rejectingPassphrase always returns no passphrase, so DecryptPEMBlock
// always fails against an actually-encrypted block.
func rejectingPassphrase() []byte { return nil }
