package crypto

import (
	"crypto/subtle"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// PKCS7Pad appends a full padding block when data is already block-aligned,
// matching the explicit "library padding disabled, padding handled by the
// caller" contract every cipher session in pkg/processor relies on.
func PKCS7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// PKCS7Unpad validates and strips PKCS#7 padding in constant time. It
// returns types.ErrInvalidPadding on any malformed pad byte rather than a
// length-dependent error, so timing does not leak which byte failed.
func PKCS7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, types.ErrInvalidInputSize
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, types.ErrInvalidPadding
	}
	expected := make([]byte, padLen)
	for i := range expected {
		expected[i] = byte(padLen)
	}
	if subtle.ConstantTimeCompare(data[len(data)-padLen:], expected) != 1 {
		return nil, types.ErrInvalidPadding
	}
	return data[:len(data)-padLen], nil
}
