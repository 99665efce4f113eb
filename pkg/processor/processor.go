package processor

import (
	"github.com/joseinweb/rdkcryptoapi/pkg/certstore"
	"github.com/joseinweb/rdkcryptoapi/pkg/container"
	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/kdf"
	"github.com/joseinweb/rdkcryptoapi/pkg/keystore"
	"github.com/joseinweb/rdkcryptoapi/pkg/logging"
	"github.com/joseinweb/rdkcryptoapi/pkg/objectstore"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// Processor is the process-wide handle every object-manager, key-store, and
// derivation operation is issued against. Its methods take no internal
// lock: a caller sharing one Processor across goroutines must synchronize
// externally.
type Processor struct {
	cfg *ProcessorConfig
	log *logging.Logger

	keys    *objectstore.KeyStore
	certs   *objectstore.CertRecordStore
	bundles *objectstore.BundleRecordStore

	certStore *certstore.Store
	kdfEngine *kdf.Engine

	kStore []byte
	kMac   []byte
}

// GetInstance constructs and bootstraps a Processor from cfg: it opens the
// three object-kind stores, derives the two soft-wrapped key-store keys
// from the device root key, and resolves the cert-store MAC key.
func GetInstance(cfg *ProcessorConfig) (*Processor, error) {
	if cfg == nil {
		cfg = DefaultProcessorConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keys, err := objectstore.NewKeyStore(cfg.KeyDir)
	if err != nil {
		return nil, err
	}
	certs, err := objectstore.NewCertRecordStore(cfg.CertDir)
	if err != nil {
		return nil, err
	}
	bundles, err := objectstore.NewBundleRecordStore(cfg.BundleDir)
	if err != nil {
		return nil, err
	}

	rootKey := append([]byte{}, cfg.RootKey[:]...)
	kStore, kMac, err := keystore.DeriveStoreKeys(rootKey)
	if err != nil {
		return nil, err
	}

	certMACKey := deriveCertMACKey(kMac)

	p := &Processor{
		cfg:       cfg,
		log:       logging.NewLogger(cfg.Debug),
		keys:      keys,
		certs:     certs,
		bundles:   bundles,
		certStore: certstore.New(certs, certMACKey),
		kdfEngine: kdf.NewEngine(rootKey, keys),
		kStore:    kStore,
		kMac:      kMac,
	}

	if err := p.persistStoreKeys(); err != nil {
		return nil, err
	}
	return p, nil
}

// persistStoreKeys stores the two store keys and the cert-store MAC key as
// plain RAM-soft-wrapped records at their reserved identifiers, so later
// lookups can resolve them the same way any other reserved key resolves.
func (p *Processor) persistStoreKeys() error {
	if err := p.keys.Store(&types.KeyRecord{
		ID:       types.ObjectIDAESStoreKey,
		Type:     types.KeyTypeAES128,
		Location: types.LocationRAMSoftWrapped,
		Bytes:    p.kStore,
	}); err != nil {
		return err
	}
	if err := p.keys.Store(&types.KeyRecord{
		ID:       types.ObjectIDMACGenStoreKey,
		Type:     types.KeyTypeHMAC256,
		Location: types.LocationRAMSoftWrapped,
		Bytes:    p.kMac,
	}); err != nil {
		return err
	}
	return p.keys.Store(&types.KeyRecord{
		ID:       types.ObjectIDCertStoreMACKey,
		Type:     types.KeyTypeHMAC256,
		Location: types.LocationRAMSoftWrapped,
		Bytes:    deriveCertMACKey(p.kMac),
	})
}

// deriveCertMACKey expands the key-store MAC key into the distinct key the
// certificate pipeline authenticates under (types.ObjectIDCertStoreMACKey),
// so a compromise of one does not trivially yield the other.
func deriveCertMACKey(kMac []byte) []byte {
	return crypto.HMACSHA256(kMac, []byte("rdkcryptoapi:certmac-expand"))
}

// Release deletes the in-memory (RAM-tier) key records whose location it can
// read: the reserved keys and sealed keys with a keyinfo sidecar. RAM-tier
// certificate and bundle records are not removed, nor are unsealed
// derived-container records written by the derivation engine. File-backed
// records survive. A failure to list the keys is not reported. Go's crypto packages need no
// process-wide teardown, so Release does not emulate the source's OpenSSL
// global-state cleanup.
func (p *Processor) Release() error {
	ids, err := p.keys.List()
	if err != nil {
		return nil
	}
	for _, id := range ids {
		var location types.Location
		if id.IsReserved() {
			rec, err := p.keys.Retrieve(id)
			if err != nil {
				continue
			}
			location = rec.Location
		} else {
			_, info, err := p.keys.RetrieveSealed(id)
			if err != nil {
				continue
			}
			location = info.Location
		}
		if location == types.LocationRAM || location == types.LocationRAMSoftWrapped {
			_ = p.keys.Delete(id)
		}
	}
	return nil
}

// GetDeviceId returns the 8-byte device identifier this Processor was
// configured with.
func (p *Processor) GetDeviceId() [8]byte {
	return p.cfg.DeviceID
}

// KeyLadderMinDepth and KeyLadderMaxDepth both return 2, preserving the
// identical-looking accessor pair from kdf rather than guessing a fix.
func (p *Processor) KeyLadderMinDepth() int { return kdf.KeyLadderMinDepth() }
func (p *Processor) KeyLadderMaxDepth() int { return kdf.KeyLadderMaxDepth() }

// ProvisionKey decodes data as containerType and stores it at id/location.
// Rejects types.InvalidObjectID and the reserved identifiers outright, and any payload over
// types.MaxContainerPayloadBytes (checked inside container.Provision).
// Returns types.ErrItemAlreadyProvisioned if id already resolves. Every
// non-reserved key is persisted through the key-store envelope
// (pkg/keystore.Seal) — a raw key never touches disk in the clear — with a
// {id}.keyinfo sidecar recording the container type, inner kind, and key
// type needed to interpret it without decrypting.
func (p *Processor) ProvisionKey(id types.ObjectID, containerType types.ContainerType, keyType types.KeyType, data []byte, location types.Location) error {
	if id == types.InvalidObjectID || id.IsReserved() {
		return types.ErrInvalidParameters
	}
	if _, err := p.GetKey(id); err == nil {
		return types.ErrItemAlreadyProvisioned
	}
	record, err := container.Provision(id, containerType, keyType, data, location, p.kMac, p.cfg.UnknownContainerHandler)
	if err != nil {
		p.log.Errorf("provision %d: container decode failed: %v", uint64(id), err)
		return err
	}
	if err := p.storeRecord(record); err != nil {
		p.log.Errorf("provision %d: store failed: %v", uint64(id), err)
		return err
	}
	return nil
}

// storeRecord seals record.Bytes into a key-store envelope and persists it
// with its KeyInfo sidecar. A record already carrying a pre-sealed envelope
// (types.InnerKindSealed, from a ContainerStore provision) is stored
// verbatim instead: re-sealing it would double-wrap an envelope this
// processor did not produce.
func (p *Processor) storeRecord(record *types.KeyRecord) error {
	info := &types.KeyInfo{
		Type:                  record.Type,
		Location:              record.Location,
		OriginalContainerType: record.ContainerType,
		Inner:                 record.Inner,
		PayloadLength:         len(record.Bytes),
	}
	if record.Inner == types.InnerKindSealed {
		return p.keys.StoreSealed(record.ID, info, record.Bytes)
	}
	header := keystore.EncodeHeader(record.ContainerType, record.Inner, record.Type, len(record.Bytes))
	envelope, err := keystore.Seal(p.kStore, p.kMac, header, record.Bytes)
	if err != nil {
		return err
	}
	return p.keys.StoreSealed(record.ID, info, envelope)
}

// GetKey retrieves the stored record at id, unsealing its envelope and
// verifying its MAC. For a record provisioned via types.ContainerDerived,
// Bytes holds the serialized ladder recipe rather than key material; call
// ResolveKey to recompute the actual key bytes.
func (p *Processor) GetKey(id types.ObjectID) (*types.KeyRecord, error) {
	envelope, info, err := p.keys.RetrieveSealed(id)
	if err != nil {
		return nil, err
	}
	record := &types.KeyRecord{ID: id, Type: info.Type, Location: info.Location, ContainerType: info.OriginalContainerType, Inner: info.Inner}
	if info.Inner == types.InnerKindSealed {
		record.Bytes = envelope
		return record, nil
	}
	_, payload, err := keystore.Open(p.kStore, p.kMac, envelope, keystore.HeaderLen)
	if err != nil {
		p.log.Errorf("get %d: envelope open failed: %v", uint64(id), err)
		return nil, err
	}
	record.Bytes = payload
	return record, nil
}

// ResolveKey retrieves id and, if it was provisioned as a derived
// container, recomputes its key bytes by running the AES-ECB ladder from
// the device root key. For any other container kind it returns the
// unsealed bytes unchanged. Reserved processor-internal identifiers bypass
// the envelope entirely: they are the keys that seal everything else, and
// sealing them would be circular.
func (p *Processor) ResolveKey(id types.ObjectID) ([]byte, error) {
	if id.IsReserved() {
		record, err := p.keys.Retrieve(id)
		if err != nil {
			return nil, err
		}
		return record.Bytes, nil
	}
	record, err := p.GetKey(id)
	if err != nil {
		// Derived-container records written by the derivation engine go
		// through KeyStore.Store: unsealed, with no keyinfo sidecar.
		recipe, rerr := p.keys.Retrieve(id)
		if rerr != nil {
			return nil, err
		}
		return container.ResolveDerived(p.kdfEngine.RootKey, recipe)
	}
	if resolved, err := container.ResolveDerived(p.kdfEngine.RootKey, record); err == nil {
		return resolved, nil
	}
	return record.Bytes, nil
}

// DeleteKey removes id. Reserved processor-internal identifiers are
// non-removable.
func (p *Processor) DeleteKey(id types.ObjectID) error {
	if id.IsReserved() {
		return types.ErrItemNonRemovable
	}
	if err := p.keys.Delete(id); err != nil {
		if err == types.ErrItemNonRemovable {
			p.log.Errorf("delete %d: removal failed: %v", uint64(id), err)
		}
		return err
	}
	return nil
}

// Certificates returns the certificate pipeline bound to this Processor's
// cert-store MAC key.
func (p *Processor) Certificates() *certstore.Store { return p.certStore }

// VerifyCertificateSignature checks that the certificate stored at certID
// was signed by the private half of the RSA public key handle at keyID: it
// resolves keyID to its canonical raw-RSA-public bytes and verifies the
// certificate's embedded X.509 signature against them.
func (p *Processor) VerifyCertificateSignature(certID, keyID types.ObjectID) error {
	der, err := p.certStore.Load(certID)
	if err != nil {
		p.log.Errorf("verify signature: load cert %d failed: %v", uint64(certID), err)
		return err
	}
	keyBytes, err := p.ResolveKey(keyID)
	if err != nil {
		p.log.Errorf("verify signature: resolve key %d failed: %v", uint64(keyID), err)
		return err
	}
	pub, err := container.DecodeRawRSAPublic(keyBytes)
	if err != nil {
		p.log.Errorf("verify signature: key %d is not a raw-RSA-public container: %v", uint64(keyID), err)
		return types.ErrInvalidParameters
	}
	if err := certstore.VerifySignature(der, pub); err != nil {
		p.log.Warnf("verify signature: cert %d signature check against key %d failed: %v", uint64(certID), uint64(keyID), err)
		return err
	}
	return nil
}

// Derivation returns the key-derivation engine bound to this Processor's
// device root key and key store.
func (p *Processor) Derivation() *kdf.Engine { return p.kdfEngine }

// Keys exposes the underlying key object store for packages that need
// lower-level access (pkg/processor sessions, tests).
func (p *Processor) Keys() *objectstore.KeyStore { return p.keys }

// Bundles exposes the bundle object store.
func (p *Processor) Bundles() *objectstore.BundleRecordStore { return p.bundles }

// Logger returns the Processor's logger.
func (p *Processor) Logger() *logging.Logger { return p.log }
