package kdf

import (
	"github.com/joseinweb/rdkcryptoapi/pkg/container"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// VendorAes128 provisions the base key from nonce, then produces a derived
// AES-128 container at id whose ladder input is the vendor-supplied tag —
// the key is never materialized outside the ladder's resolution step, only
// its recipe is stored.
func (e *Engine) VendorAes128(nonce []byte, id types.ObjectID, vendorTag []byte, location types.Location) (*types.KeyRecord, error) {
	if len(vendorTag) != 16 {
		return nil, types.ErrInvalidInputSize
	}
	if err := e.ProvisionBaseKey(nonce); err != nil {
		return nil, err
	}
	record, err := container.NewDerivedRecord(id, [][]byte{vendorTag}, types.KeyTypeAES128, location)
	if err != nil {
		return nil, err
	}
	if err := e.Keys.Store(record); err != nil {
		return nil, err
	}
	return record, nil
}

// KeyLadderAes128 provisions the base key from nonce, then produces a
// derived AES-128 container at id whose ladder inputs are the caller's own
// sequence of 16-byte steps, chained from the device root key (the base key
// is not part of the chain).
func (e *Engine) KeyLadderAes128(nonce []byte, id types.ObjectID, steps [][]byte, location types.Location) (*types.KeyRecord, error) {
	if len(steps) == 0 {
		return nil, types.ErrInvalidParameters
	}
	if err := e.ProvisionBaseKey(nonce); err != nil {
		return nil, err
	}
	record, err := container.NewDerivedRecord(id, steps, types.KeyTypeAES128, location)
	if err != nil {
		return nil, err
	}
	if err := e.Keys.Store(record); err != nil {
		return nil, err
	}
	return record, nil
}

// KeyLadderMinDepth and KeyLadderMaxDepth both return 2. The source this
// module is grounded on returns the same value for both, which looks like a
// copy-paste of the same accessor — we preserve that rather than guess at
// an intended fix.
func KeyLadderMinDepth() int { return 2 }
func KeyLadderMaxDepth() int { return 2 }
