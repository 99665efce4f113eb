// Package objectstore implements the processor's object manager: lookup,
// provisioning, and deletion of keys, certificates, and bundles across the
// RAM and file storage tiers.
package objectstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joseinweb/rdkcryptoapi/pkg/storage"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// KeyStore manages the lifecycle of types.KeyRecord objects across the RAM
// and file tiers. Certificates and bundles use the parallel CertRecordStore
// and BundleRecordStore types; all three share the same retrieve/store/delete
// shape because spec-level object semantics do not differ by kind.
type KeyStore struct {
	mem  *storage.MemoryBackend
	file *storage.FileBackend
}

// NewKeyStore constructs a key store rooted at fileDir on disk.
func NewKeyStore(fileDir string) (*KeyStore, error) {
	f, err := storage.NewFileBackend(fileDir, 0600)
	if err != nil {
		return nil, err
	}
	return &KeyStore{mem: storage.NewMemoryBackend(), file: f}, nil
}

func keyFileName(id types.ObjectID) string     { return fmt.Sprintf("%d.key", uint64(id)) }
func keyMemName(id types.ObjectID) string      { return fmt.Sprintf("%d", uint64(id)) }
func keyInfoFileName(id types.ObjectID) string { return fmt.Sprintf("%d.keyinfo", uint64(id)) }
func keyInfoMemName(id types.ObjectID) string  { return fmt.Sprintf("%d.keyinfo", uint64(id)) }

// wireKeyRecord is the JSON-serializable shape of a types.KeyRecord.
type wireKeyRecord struct {
	ID       uint64
	Type     types.KeyType
	Location types.Location
	Bytes    []byte
}

func toWire(r *types.KeyRecord) wireKeyRecord {
	return wireKeyRecord{ID: uint64(r.ID), Type: r.Type, Location: r.Location, Bytes: r.Bytes}
}

func fromWire(w wireKeyRecord) *types.KeyRecord {
	return &types.KeyRecord{ID: types.ObjectID(w.ID), Type: w.Type, Location: w.Location, Bytes: w.Bytes}
}

// Retrieve looks up id, checking the RAM tier before the file tier, and
// returns types.ErrNoSuchItem if neither holds it.
func (s *KeyStore) Retrieve(id types.ObjectID) (*types.KeyRecord, error) {
	if raw, err := s.mem.Get(keyMemName(id)); err == nil {
		var w wireKeyRecord
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, types.ErrFailure
		}
		return fromWire(w), nil
	}
	raw, err := s.file.Get(keyFileName(id))
	if err != nil {
		return nil, types.ErrNoSuchItem
	}
	var w wireKeyRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, types.ErrFailure
	}
	return fromWire(w), nil
}

// Store persists record verbatim (JSON-encoded, unsealed) at the tier its
// Location implies, purging any existing copy from both tiers first so a
// relocation cannot leave a stale duplicate behind. This is the path the
// processor's own internal bootstrap keys (the store/MAC keys, base keys)
// and the key-derivation engine's derived-container recipes use; ordinary
// caller-provisioned keys go through StoreSealed instead, so their clear
// bytes never land on disk outside an envelope.
func (s *KeyStore) Store(record *types.KeyRecord) error {
	if record.Location == types.LocationOEM {
		return types.ErrUnimplementedFeature
	}
	_ = s.mem.Delete(keyMemName(record.ID))
	_ = s.file.Delete(keyFileName(record.ID))

	raw, err := json.Marshal(toWire(record))
	if err != nil {
		return types.ErrFailure
	}
	switch record.Location {
	case types.LocationRAM, types.LocationRAMSoftWrapped:
		return s.mem.Put(keyMemName(record.ID), raw, nil)
	case types.LocationFile, types.LocationFileSoftWrapped:
		return s.file.Put(keyFileName(record.ID), raw, nil)
	default:
		return types.ErrInvalidParameters
	}
}

// StoreSealed persists a keystore envelope (produced by pkg/keystore.Seal,
// or a pre-wrapped blob validated by pkg/keystore.VerifyMAC) for id, along
// with its KeyInfo sidecar, at the tier info.Location implies. Unlike
// Store, the bytes handed to this method are never clear key material —
// this is the path ordinary caller-provisioned keys take to disk, so a raw
// key never touches it.
func (s *KeyStore) StoreSealed(id types.ObjectID, info *types.KeyInfo, envelope []byte) error {
	if info.Location == types.LocationOEM {
		return types.ErrUnimplementedFeature
	}
	_ = s.mem.Delete(keyMemName(id))
	_ = s.file.Delete(keyFileName(id))
	_ = s.mem.Delete(keyInfoMemName(id))
	_ = s.file.Delete(keyInfoFileName(id))

	infoRaw, err := json.Marshal(info)
	if err != nil {
		return types.ErrFailure
	}

	switch info.Location {
	case types.LocationRAM, types.LocationRAMSoftWrapped:
		if err := s.mem.Put(keyMemName(id), envelope, nil); err != nil {
			return err
		}
		return s.mem.Put(keyInfoMemName(id), infoRaw, nil)
	case types.LocationFile, types.LocationFileSoftWrapped:
		if err := s.file.Put(keyFileName(id), envelope, nil); err != nil {
			return err
		}
		return s.file.Put(keyInfoFileName(id), infoRaw, nil)
	default:
		return types.ErrInvalidParameters
	}
}

// RetrieveSealed looks up id's sealed envelope and KeyInfo sidecar,
// checking the RAM tier before the file tier.
func (s *KeyStore) RetrieveSealed(id types.ObjectID) (envelope []byte, info *types.KeyInfo, err error) {
	var infoRaw []byte
	if raw, memErr := s.mem.Get(keyMemName(id)); memErr == nil {
		envelope = raw
		infoRaw, err = s.mem.Get(keyInfoMemName(id))
	} else {
		envelope, err = s.file.Get(keyFileName(id))
		if err != nil {
			return nil, nil, types.ErrNoSuchItem
		}
		infoRaw, err = s.file.Get(keyInfoFileName(id))
	}
	if err != nil {
		return nil, nil, types.ErrFailure
	}
	var ki types.KeyInfo
	if err := json.Unmarshal(infoRaw, &ki); err != nil {
		return nil, nil, types.ErrFailure
	}
	return envelope, &ki, nil
}

// Delete removes id from whichever tier holds it, including any KeyInfo
// sidecar left by StoreSealed.
func (s *KeyStore) Delete(id types.ObjectID) error {
	memErr := s.mem.Delete(keyMemName(id))
	fileErr := s.file.Delete(keyFileName(id))
	_ = s.mem.Delete(keyInfoMemName(id))
	_ = s.file.Delete(keyInfoFileName(id))
	return deleteResult(memErr, fileErr)
}

// deleteResult reconciles the two tiers' Delete outcomes: ErrNoSuchItem
// when neither tier ever had id, ErrItemNonRemovable when a tier that did
// have it failed to remove it for a reason other than "not found" (a
// genuine os.Remove failure, not indistinguishable from a miss), and nil
// otherwise.
func deleteResult(memErr, fileErr error) error {
	memMissing := errors.Is(memErr, storage.ErrNotFound)
	fileMissing := errors.Is(fileErr, storage.ErrNotFound)
	if memMissing && fileMissing {
		return types.ErrNoSuchItem
	}
	if (memErr != nil && !memMissing) || (fileErr != nil && !fileMissing) {
		return types.ErrItemNonRemovable
	}
	return nil
}

// List returns every provisioned key identifier across both tiers.
func (s *KeyStore) List() ([]types.ObjectID, error) {
	return listIDs(s.mem, s.file, "", ".key")
}

func listIDs(mem *storage.MemoryBackend, file *storage.FileBackend, memSuffix, fileSuffix string) ([]types.ObjectID, error) {
	seen := map[uint64]struct{}{}
	var out []types.ObjectID

	memKeys, err := mem.List("")
	if err != nil {
		return nil, err
	}
	for _, k := range memKeys {
		var id uint64
		if _, err := fmt.Sscanf(k, "%d", &id); err == nil {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, types.ObjectID(id))
			}
		}
	}

	fileKeys, err := file.List("")
	if err != nil {
		return nil, err
	}
	for _, k := range fileKeys {
		var id uint64
		if _, err := fmt.Sscanf(k, "%d"+fileSuffix, &id); err == nil {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, types.ObjectID(id))
			}
		}
	}
	return out, nil
}
