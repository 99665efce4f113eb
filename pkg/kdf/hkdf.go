package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// HKDF provisions the base key from nonce, then derives outLen bytes via
// RFC 5869 HKDF (Extract-then-Expand) over the HMAC-128 base key, salted
// and info-tagged by the caller.
func (e *Engine) HKDF(nonce, salt, info []byte, outLen int) ([]byte, error) {
	if outLen <= 0 {
		return nil, types.ErrInvalidParameters
	}
	if err := e.ProvisionBaseKey(nonce); err != nil {
		return nil, err
	}
	_, macKey, err := e.baseKeys()
	if err != nil {
		return nil, err
	}
	r := hkdf.New(sha256.New, macKey, salt, info)
	out := make([]byte, outLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, types.ErrFailure
	}
	return out, nil
}
