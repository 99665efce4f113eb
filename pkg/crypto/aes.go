// Package crypto supplies the L0 primitives the key-store, key-derivation,
// and session layers build on: raw AES/RSA/HMAC operations plus the
// PKCS#7 padding and fragmented-window helpers this processor needs but no
// stdlib type exposes directly.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// AESECBEncryptBlock encrypts exactly one 16-byte block under key using
// raw AES-ECB. It is the primitive the key-ladder (pkg/kdf) iterates.
func AESECBEncryptBlock(key, block []byte) ([]byte, error) {
	if len(block) != aes.BlockSize {
		return nil, types.ErrInvalidInputSize
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	out := make([]byte, aes.BlockSize)
	c.Encrypt(out, block)
	return out, nil
}

// ecbEncrypter/ecbDecrypter implement cipher.BlockMode for ECB, which the
// standard library deliberately does not expose (ECB is unsafe for
// general use but required here to match the ladder's wire format).
type ecbEncrypter struct {
	b cipher.Block
}

// NewECBEncrypter wraps b as a cipher.BlockMode running ECB, for callers
// (e.g. pkg/processor's incremental cipher sessions) that need to hold
// chaining state across more than one CryptBlocks call.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode { return &ecbEncrypter{b} }

func (e *ecbEncrypter) BlockSize() int { return e.b.BlockSize() }

func (e *ecbEncrypter) CryptBlocks(dst, src []byte) {
	bs := e.b.BlockSize()
	for len(src) > 0 {
		e.b.Encrypt(dst, src[:bs])
		src, dst = src[bs:], dst[bs:]
	}
}

type ecbDecrypter struct {
	b cipher.Block
}

// NewECBDecrypter wraps b as a cipher.BlockMode running ECB decryption.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode { return &ecbDecrypter{b} }

func (e *ecbDecrypter) BlockSize() int { return e.b.BlockSize() }

func (e *ecbDecrypter) CryptBlocks(dst, src []byte) {
	bs := e.b.BlockSize()
	for len(src) > 0 {
		e.b.Decrypt(dst, src[:bs])
		src, dst = src[bs:], dst[bs:]
	}
}

// AESECBStream encrypts or decrypts data under key in ECB mode. If pad is
// true the input is PKCS#7 padded (encrypt) or the padding is stripped and
// validated (decrypt); otherwise len(data) must already be block-aligned.
func AESECBStream(key, data []byte, encrypt, pad bool) ([]byte, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	bs := c.BlockSize()
	if encrypt {
		in := data
		if pad {
			in = PKCS7Pad(data, bs)
		} else if len(data)%bs != 0 {
			return nil, types.ErrInvalidInputSize
		}
		out := make([]byte, len(in))
		NewECBEncrypter(c).CryptBlocks(out, in)
		return out, nil
	}
	if len(data)%bs != 0 || len(data) == 0 {
		return nil, types.ErrInvalidInputSize
	}
	out := make([]byte, len(data))
	NewECBDecrypter(c).CryptBlocks(out, data)
	if pad {
		return PKCS7Unpad(out, bs)
	}
	return out, nil
}

// AESCBCStream encrypts or decrypts data under key/iv in CBC mode, with the
// same PKCS#7 handling contract as AESECBStream.
func AESCBCStream(key, iv, data []byte, encrypt, pad bool) ([]byte, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	bs := c.BlockSize()
	if len(iv) != bs {
		return nil, types.ErrInvalidInputSize
	}
	if encrypt {
		in := data
		if pad {
			in = PKCS7Pad(data, bs)
		} else if len(data)%bs != 0 {
			return nil, types.ErrInvalidInputSize
		}
		out := make([]byte, len(in))
		cipher.NewCBCEncrypter(c, iv).CryptBlocks(out, in)
		return out, nil
	}
	if len(data)%bs != 0 || len(data) == 0 {
		return nil, types.ErrInvalidInputSize
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c, iv).CryptBlocks(out, data)
	if pad {
		return PKCS7Unpad(out, bs)
	}
	return out, nil
}

// AESCTRStream XORs data against an AES-CTR keystream seeded by iv. CTR
// mode is its own inverse, so encrypt and decrypt share one code path.
func AESCTRStream(key, iv, data []byte) ([]byte, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	if len(iv) != c.BlockSize() {
		return nil, types.ErrInvalidInputSize
	}
	out := make([]byte, len(data))
	cipher.NewCTR(c, iv).XORKeyStream(out, data)
	return out, nil
}
