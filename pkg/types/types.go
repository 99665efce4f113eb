// Package types defines the data model shared across the object store,
// key-store, container, and key-derivation packages.
package types

import "fmt"

// ObjectID identifies a key, certificate, or bundle.
type ObjectID uint64

// InvalidObjectID is the reserved "invalid" identifier; provisioning rejects it.
const InvalidObjectID ObjectID = 0xFFFFFFFFFFFFFFFF

// Reserved identifiers used internally by the key-store and key-derivation
// engine. Callers may not provision objects at these identifiers.
const (
	ObjectIDCertStoreMACKey ObjectID = 0x10000000
	ObjectIDAESStoreKey     ObjectID = 0x10000001
	ObjectIDMACGenStoreKey  ObjectID = 0x10000002
	ObjectIDBaseKeyAES      ObjectID = 0x10000003
	ObjectIDBaseKeyMAC      ObjectID = 0x10000004
	ObjectIDDeriveTemp      ObjectID = 0x10000005
)

// IsReserved reports whether id falls in the processor-internal range.
func (id ObjectID) IsReserved() bool {
	return id >= ObjectIDCertStoreMACKey && id <= ObjectIDDeriveTemp
}

// MaxContainerPayloadBytes is the container maximum this platform enforces
// at provisioning time: roughly 2 KiB, covering the largest raw-RSA-2048
// private-key struct with headroom, without admitting an unbounded blob.
const MaxContainerPayloadBytes = 2048

// Location names where an object's bytes physically live.
type Location int

const (
	LocationRAM Location = iota
	LocationRAMSoftWrapped
	LocationFile
	LocationFileSoftWrapped
	LocationOEM
)

func (l Location) String() string {
	switch l {
	case LocationRAM:
		return "ram"
	case LocationRAMSoftWrapped:
		return "ram-soft-wrapped"
	case LocationFile:
		return "file"
	case LocationFileSoftWrapped:
		return "file-soft-wrapped"
	case LocationOEM:
		return "oem"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// IsSoftWrapped reports whether l is one of the soft-wrapped location
// variants. The object stores treat each the same as its plain counterpart.
func (l Location) IsSoftWrapped() bool {
	return l == LocationRAMSoftWrapped || l == LocationFileSoftWrapped
}

// KeyType enumerates the symmetric and asymmetric key kinds this processor
// understands.
type KeyType int

const (
	KeyTypeAES128 KeyType = iota
	KeyTypeAES256
	KeyTypeHMAC128
	KeyTypeHMAC160
	KeyTypeHMAC256
	KeyTypeRSA1024Priv
	KeyTypeRSA2048Priv
	KeyTypeRSA1024Pub
	KeyTypeRSA2048Pub
)

// KeyLengthBytes returns the fixed raw byte length for symmetric key types,
// or 0 for asymmetric types whose length depends on the encoded structure.
func (t KeyType) KeyLengthBytes() int {
	switch t {
	case KeyTypeAES128, KeyTypeHMAC128:
		return 16
	case KeyTypeHMAC160:
		return 20
	case KeyTypeAES256, KeyTypeHMAC256:
		return 32
	default:
		return 0
	}
}

// IsSymmetric reports whether t is a symmetric key type.
func (t KeyType) IsSymmetric() bool {
	return t <= KeyTypeHMAC256
}

// IsRSA reports whether t is an RSA key type.
func (t KeyType) IsRSA() bool {
	return t >= KeyTypeRSA1024Priv
}

// IsPrivate reports whether t is a private key half.
func (t KeyType) IsPrivate() bool {
	return t == KeyTypeRSA1024Priv || t == KeyTypeRSA2048Priv
}

// ContainerType enumerates the wire encodings a key container may arrive in.
type ContainerType int

const (
	ContainerRaw ContainerType = iota
	ContainerRawRSAPrivate
	ContainerRawRSAPublic
	ContainerDERRSAPrivate
	ContainerDERRSAPublic
	ContainerPEMRSAPrivate
	ContainerPEMRSAPublic
	ContainerStore
	ContainerDerived
	ContainerUnknown
)

// InnerKind distinguishes what a KeyRecord's Bytes actually hold.
type InnerKind int

const (
	// InnerKindRaw: Bytes is clear key material (or, for RSA, the
	// canonical raw-RSA encoding).
	InnerKindRaw InnerKind = iota
	// InnerKindDerived: Bytes is a serialized ladder recipe; see
	// pkg/container.ResolveDerived.
	InnerKindDerived
	// InnerKindSealed: Bytes is already a keystore envelope (produced by
	// a prior Seal call), to be stored verbatim rather than re-sealed.
	InnerKindSealed
)

// KeyRecord is the in-memory representation of a provisioned key, independent
// of how it arrived on disk or in RAM.
type KeyRecord struct {
	ID       ObjectID
	Type     KeyType
	Location Location
	// ContainerType is the wire encoding the record was provisioned from,
	// carried forward so the on-disk sidecar can record it.
	ContainerType ContainerType
	// Inner names what Bytes holds; see InnerKind.
	Inner InnerKind
	// Bytes holds what Inner names: raw key material, a serialized derived
	// payload, or a sealed envelope, whatever the Location. Callers must
	// never retain a copy longer than needed; see package zeroize.
	Bytes []byte
}

// KeyInfo is the sidecar recorded alongside a sealed key envelope (the
// on-disk {id}.keyinfo file): everything needed to interpret the envelope's
// opaque payload without decrypting it.
type KeyInfo struct {
	Type                  KeyType
	Location              Location
	OriginalContainerType ContainerType
	Inner                 InnerKind
	PayloadLength         int
}

// CertRecord is the in-memory representation of a stored certificate: its
// DER bytes plus the MAC computed over them at save time.
type CertRecord struct {
	ID  ObjectID
	DER []byte
	MAC []byte
}

// BundleRecord is an opaque caller-defined blob associated with an object
// identifier, stored and retrieved verbatim.
type BundleRecord struct {
	ID    ObjectID
	Bytes []byte
}

// DerivedContainerPayload is the fixed on-disk/in-RAM shape of a "derived"
// key container: it names the ladder inputs used to recompute the key from
// the device root key rather than storing key bytes directly.
type DerivedContainerPayload struct {
	LadderInputs [][]byte
	OutputType   KeyType
}
