// Package kdf implements the key-derivation engine: the base-key
// provisioning ladder every derivation call repeats, and the derivation
// algorithms (HKDF, Concat-KDF, PBKDF2, vendor AES-128, AES-128 key ladder)
// built on top of it.
package kdf

import (
	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/objectstore"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// Engine ties the key-derivation algorithms to a processor's root key and
// key store. It holds no other state: every derivation is a pure function
// of (root key, nonce, algorithm parameters).
type Engine struct {
	RootKey []byte
	Keys    *objectstore.KeyStore
}

// NewEngine constructs a derivation engine bound to rootKey and keys.
func NewEngine(rootKey []byte, keys *objectstore.KeyStore) *Engine {
	return &Engine{RootKey: rootKey, Keys: keys}
}

// ladderLabels are the four fixed 16-byte ladder inputs combined with the
// caller's nonce to compute c1..c4, the base-key ladder's per-call inputs.
var ladderLabels = [4][]byte{
	[]byte("rdkcryptoapi:bk1"),
	[]byte("rdkcryptoapi:bk2"),
	[]byte("rdkcryptoapi:bk3"),
	[]byte("rdkcryptoapi:bk4"),
}

func ladderInput(nonce, label []byte) []byte {
	return crypto.HMACSHA256(nonce, label)[:16]
}

// ProvisionBaseKey runs the four-step AES-ECB ladder from the device root
// key, seeded by nonce, and provisions the resulting AES-128 and HMAC-128
// base keys as RAM-soft-wrapped records at types.ObjectIDBaseKeyAES and
// types.ObjectIDBaseKeyMAC. Every derivation entry point below calls this
// first, exactly as the underlying ladder protocol requires: a derivation
// is only as fresh as the nonce that seeded its base key.
func (e *Engine) ProvisionBaseKey(nonce []byte) error {
	if len(nonce) == 0 {
		return types.ErrInvalidParameters
	}
	inputs := make([][]byte, 4)
	for i, label := range ladderLabels {
		inputs[i] = ladderInput(nonce, label)
	}
	ladderOut, err := crypto.KeyLadder(e.RootKey, inputs)
	if err != nil {
		return err
	}

	// The ladder's final 16-byte output is provisioned twice, unchanged —
	// once as the AES base key, once as the MAC base key. They start out
	// identical; every KDF mixes in distinct context (salt/info/otherInfo)
	// before the two ever produce the same output.
	if err := e.Keys.Store(&types.KeyRecord{
		ID:       types.ObjectIDBaseKeyAES,
		Type:     types.KeyTypeAES128,
		Location: types.LocationRAMSoftWrapped,
		Bytes:    append([]byte{}, ladderOut...),
	}); err != nil {
		return err
	}
	return e.Keys.Store(&types.KeyRecord{
		ID:       types.ObjectIDBaseKeyMAC,
		Type:     types.KeyTypeHMAC128,
		Location: types.LocationRAMSoftWrapped,
		Bytes:    append([]byte{}, ladderOut...),
	})
}

// baseKeys retrieves the two base keys provisioned by ProvisionBaseKey.
func (e *Engine) baseKeys() (aesKey, macKey []byte, err error) {
	aesRec, err := e.Keys.Retrieve(types.ObjectIDBaseKeyAES)
	if err != nil {
		return nil, nil, err
	}
	macRec, err := e.Keys.Retrieve(types.ObjectIDBaseKeyMAC)
	if err != nil {
		return nil, nil, err
	}
	return aesRec.Bytes, macRec.Bytes, nil
}
