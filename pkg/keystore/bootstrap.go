package keystore

import (
	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// storeLadderInput and macLadderInput are the two fixed 16-byte ladder
// inputs that turn a device root key into the key-store's two internal
// soft-wrapped keys. They are processor-constants, not secrets: the secrecy
// of K_store/K_mac comes entirely from the device root key.
var (
	storeLadderInput = []byte("rdkcryptoapi:kst")
	macLadderInput   = []byte("rdkcryptoapi:kmc")
)

// DeriveStoreKeys runs one AES-ECB ladder step from the device root key for
// each of K_store (AES-128, encrypts envelope payloads) and K_mac
// (HMAC-SHA-256 key, authenticates envelopes); neither is a two-step ladder.
func DeriveStoreKeys(rootKey []byte) (kStore, kMac []byte, err error) {
	if len(rootKey) != 16 {
		return nil, nil, types.ErrInvalidInputSize
	}
	kStore, err = crypto.KeyLadder(rootKey, [][]byte{storeLadderInput})
	if err != nil {
		return nil, nil, err
	}
	macSeed, err := crypto.KeyLadder(rootKey, [][]byte{macLadderInput})
	if err != nil {
		return nil, nil, err
	}
	// K_mac is expanded to 32 bytes via HMAC-SHA-256 self-expansion so it
	// is full strength for HMAC-SHA-256 rather than reusing a 16-byte
	// ladder output directly.
	kMac = crypto.HMACSHA256(macSeed, []byte("rdkcryptoapi:kmac-expand"))
	return kStore, kMac, nil
}
