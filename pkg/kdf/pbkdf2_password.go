package kdf

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// PBKDF2Password derives outLen bytes from a caller-supplied password using
// ordinary RFC 8018 PBKDF2-HMAC-SHA-256, independent of the base-key
// ladder. PBKDF2 (above) is the distinct variant the derivation engine
// itself exposes, which always treats the provisioned base MAC key as the
// password; this function is for callers deriving directly from a
// human-supplied password instead.
func PBKDF2Password(password, salt []byte, iterations, outLen int) ([]byte, error) {
	if len(password) == 0 || iterations <= 0 || outLen <= 0 {
		return nil, types.ErrInvalidParameters
	}
	return pbkdf2.Key(password, salt, iterations, outLen, sha256.New), nil
}
