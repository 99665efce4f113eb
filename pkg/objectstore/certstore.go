package objectstore

import (
	"fmt"

	"github.com/joseinweb/rdkcryptoapi/pkg/storage"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// CertRecordStore manages types.CertRecord objects across the RAM and file
// tiers, mirroring KeyStore's two-file-per-object shape: the DER bytes go in
// {id}.cert and the MAC computed over them in {id}.certinfo, so a tampered
// byte in the actual on-disk certificate is detected by the MAC check in
// pkg/certstore rather than by a corrupted container format first.
type CertRecordStore struct {
	mem  *storage.MemoryBackend
	file *storage.FileBackend
}

// NewCertRecordStore constructs a certificate store rooted at fileDir.
func NewCertRecordStore(fileDir string) (*CertRecordStore, error) {
	f, err := storage.NewFileBackend(fileDir, 0644)
	if err != nil {
		return nil, err
	}
	return &CertRecordStore{mem: storage.NewMemoryBackend(), file: f}, nil
}

func certFileName(id types.ObjectID) string     { return fmt.Sprintf("%d.cert", uint64(id)) }
func certMemName(id types.ObjectID) string      { return fmt.Sprintf("%d", uint64(id)) }
func certInfoFileName(id types.ObjectID) string { return fmt.Sprintf("%d.certinfo", uint64(id)) }
func certInfoMemName(id types.ObjectID) string  { return fmt.Sprintf("%d.certinfo", uint64(id)) }

func (s *CertRecordStore) Retrieve(id types.ObjectID) (*types.CertRecord, error) {
	if der, err := s.mem.Get(certMemName(id)); err == nil {
		mac, err := s.mem.Get(certInfoMemName(id))
		if err != nil {
			return nil, types.ErrFailure
		}
		return &types.CertRecord{ID: id, DER: der, MAC: mac}, nil
	}
	der, err := s.file.Get(certFileName(id))
	if err != nil {
		return nil, types.ErrNoSuchItem
	}
	mac, err := s.file.Get(certInfoFileName(id))
	if err != nil {
		return nil, types.ErrFailure
	}
	return &types.CertRecord{ID: id, DER: der, MAC: mac}, nil
}

func (s *CertRecordStore) Store(record *types.CertRecord, location types.Location) error {
	if location == types.LocationOEM {
		return types.ErrUnimplementedFeature
	}
	_ = s.mem.Delete(certMemName(record.ID))
	_ = s.file.Delete(certFileName(record.ID))
	_ = s.mem.Delete(certInfoMemName(record.ID))
	_ = s.file.Delete(certInfoFileName(record.ID))

	switch location {
	case types.LocationRAM, types.LocationRAMSoftWrapped:
		if err := s.mem.Put(certMemName(record.ID), record.DER, nil); err != nil {
			return err
		}
		return s.mem.Put(certInfoMemName(record.ID), record.MAC, nil)
	default:
		if err := s.file.Put(certFileName(record.ID), record.DER, nil); err != nil {
			return err
		}
		return s.file.Put(certInfoFileName(record.ID), record.MAC, nil)
	}
}

func (s *CertRecordStore) Delete(id types.ObjectID) error {
	memErr := s.mem.Delete(certMemName(id))
	fileErr := s.file.Delete(certFileName(id))
	_ = s.mem.Delete(certInfoMemName(id))
	_ = s.file.Delete(certInfoFileName(id))
	return deleteResult(memErr, fileErr)
}

func (s *CertRecordStore) List() ([]types.ObjectID, error) {
	return listIDs(s.mem, s.file, "", ".cert")
}
