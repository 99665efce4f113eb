package objectstore

import (
	"fmt"

	"github.com/joseinweb/rdkcryptoapi/pkg/storage"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// BundleRecordStore manages opaque caller-defined blobs (types.BundleRecord)
// across the RAM and file tiers.
type BundleRecordStore struct {
	mem  *storage.MemoryBackend
	file *storage.FileBackend
}

// NewBundleRecordStore constructs a bundle store rooted at fileDir.
func NewBundleRecordStore(fileDir string) (*BundleRecordStore, error) {
	f, err := storage.NewFileBackend(fileDir, 0600)
	if err != nil {
		return nil, err
	}
	return &BundleRecordStore{mem: storage.NewMemoryBackend(), file: f}, nil
}

func bundleFileName(id types.ObjectID) string { return fmt.Sprintf("%d.bundle", uint64(id)) }
func bundleMemName(id types.ObjectID) string  { return fmt.Sprintf("%d", uint64(id)) }

func (s *BundleRecordStore) Retrieve(id types.ObjectID) (*types.BundleRecord, error) {
	raw, err := s.mem.Get(bundleMemName(id))
	if err != nil {
		raw, err = s.file.Get(bundleFileName(id))
		if err != nil {
			return nil, types.ErrNoSuchItem
		}
	}
	return &types.BundleRecord{ID: id, Bytes: raw}, nil
}

func (s *BundleRecordStore) Store(record *types.BundleRecord, location types.Location) error {
	if location == types.LocationOEM {
		return types.ErrUnimplementedFeature
	}
	_ = s.mem.Delete(bundleMemName(record.ID))
	_ = s.file.Delete(bundleFileName(record.ID))

	switch location {
	case types.LocationRAM, types.LocationRAMSoftWrapped:
		return s.mem.Put(bundleMemName(record.ID), record.Bytes, nil)
	default:
		return s.file.Put(bundleFileName(record.ID), record.Bytes, nil)
	}
}

func (s *BundleRecordStore) Delete(id types.ObjectID) error {
	memErr := s.mem.Delete(bundleMemName(id))
	fileErr := s.file.Delete(bundleFileName(id))
	return deleteResult(memErr, fileErr)
}

func (s *BundleRecordStore) List() ([]types.ObjectID, error) {
	return listIDs(s.mem, s.file, "", ".bundle")
}
