package kdf

import (
	"encoding/binary"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// ConcatKDF provisions the base key from nonce, then derives outLen bytes
// via the NIST SP 800-56A single-step concatenation KDF: for i=1..r,
// H_i = digest(BE32(i) || base_key_aes_clear || otherInfo), blocks
// concatenated and truncated to outLen. sha256 selects SHA-256 over SHA-1
// as the underlying digest.
func (e *Engine) ConcatKDF(nonce, otherInfo []byte, sha256 bool, outLen int) ([]byte, error) {
	if outLen <= 0 {
		return nil, types.ErrInvalidParameters
	}
	if err := e.ProvisionBaseKey(nonce); err != nil {
		return nil, err
	}
	aesKey, _, err := e.baseKeys()
	if err != nil {
		return nil, err
	}

	digest := crypto.SHA1
	hLen := 20
	if sha256 {
		digest = crypto.SHA256
		hLen = 32
	}

	numBlocks := (outLen + hLen - 1) / hLen
	out := make([]byte, 0, numBlocks*hLen)
	for counter := uint32(1); counter <= uint32(numBlocks); counter++ {
		var ctrBytes [4]byte
		binary.BigEndian.PutUint32(ctrBytes[:], counter)
		input := make([]byte, 0, 4+len(aesKey)+len(otherInfo))
		input = append(input, ctrBytes[:]...)
		input = append(input, aesKey...)
		input = append(input, otherInfo...)
		out = append(out, digest(input)...)
	}
	return out[:outLen], nil
}
