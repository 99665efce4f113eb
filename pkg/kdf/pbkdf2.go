package kdf

import (
	"encoding/binary"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// PBKDF2 provisions the base key from nonce, then derives outLen bytes via
// RFC 8018 PBKDF2 with HMAC-SHA-256 as the PRF, using the HMAC-128 base key
// as the password. This cannot reuse golang.org/x/crypto/pbkdf2 directly: that
// package's exported Key takes a caller-supplied password, but this
// processor's PBKDF2 variant always MACs with the provisioned base key, so
// the per-block U/T accumulation is inlined here instead.
func (e *Engine) PBKDF2(nonce, salt []byte, iterations, outLen int) ([]byte, error) {
	if outLen <= 0 || iterations <= 0 {
		return nil, types.ErrInvalidParameters
	}
	if err := e.ProvisionBaseKey(nonce); err != nil {
		return nil, err
	}
	_, macKey, err := e.baseKeys()
	if err != nil {
		return nil, err
	}

	const hLen = 32
	numBlocks := (outLen + hLen - 1) / hLen
	out := make([]byte, 0, numBlocks*hLen)

	for block := 1; block <= numBlocks; block++ {
		var blockIndex [4]byte
		binary.BigEndian.PutUint32(blockIndex[:], uint32(block))

		u := crypto.HMACSHA256(macKey, append(append([]byte{}, salt...), blockIndex[:]...))
		t := make([]byte, hLen)
		copy(t, u)
		for i := 1; i < iterations; i++ {
			u = crypto.HMACSHA256(macKey, u)
			for j := range t {
				t[j] ^= u[j]
			}
		}
		out = append(out, t...)
	}
	return out[:outLen], nil
}
