package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	mrand "math/rand"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// SHA1 returns the SHA-1 digest of data.
func SHA1(data []byte) []byte {
	sum := sha1.Sum(data)
	return sum[:]
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// HMACSHA1 computes HMAC-SHA1 over data under key.
func HMACSHA1(key, data []byte) []byte {
	m := hmac.New(sha1.New, key)
	m.Write(data)
	return m.Sum(nil)
}

// HMACSHA256 computes HMAC-SHA256 over data under key.
func HMACSHA256(key, data []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	return m.Sum(nil)
}

// RandomTrue fills and returns n cryptographically secure random bytes.
func RandomTrue(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, types.ErrFailure
	}
	return b, nil
}

// RandomPRNG fills and returns n bytes from a non-cryptographic PRNG. This
// mirrors the platform's distinction between a true and pseudo random
// source; callers must not use this for key material.
func RandomPRNG(n int) []byte {
	b := make([]byte, n)
	r := mrand.New(mrand.NewSource(mrand.Int63()))
	r.Read(b)
	return b
}
