// Package keystore implements the key-store envelope: the
// magic || user_header || IV || AES-CBC-PKCS7(payload) || HMAC-SHA-256
// wire format used to persist a wrapped key record under the two
// soft-wrapped store keys.
package keystore

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// Magic is the fixed 8-byte prefix of every envelope.
var Magic = []byte("SECSTORE")

const ivSize = 16
const macSize = 32

// HeaderLen is the fixed size of the user_header segment built by
// EncodeHeader: four big-endian uint32 fields.
const HeaderLen = 16

// EncodeHeader builds the fixed-size user_header segment recording enough
// about a sealed key record to interpret it later without decrypting: the
// original container type, the inner kind (raw/derived/sealed), the key
// type, and the clear payload's length.
func EncodeHeader(containerType types.ContainerType, inner types.InnerKind, keyType types.KeyType, payloadLen int) []byte {
	h := make([]byte, HeaderLen)
	binary.BigEndian.PutUint32(h[0:4], uint32(containerType))
	binary.BigEndian.PutUint32(h[4:8], uint32(inner))
	binary.BigEndian.PutUint32(h[8:12], uint32(keyType))
	binary.BigEndian.PutUint32(h[12:16], uint32(payloadLen))
	return h
}

// DecodeHeader parses a user_header segment built by EncodeHeader.
func DecodeHeader(h []byte) (containerType types.ContainerType, inner types.InnerKind, keyType types.KeyType, payloadLen int, err error) {
	if len(h) != HeaderLen {
		return 0, 0, 0, 0, types.ErrInvalidInputSize
	}
	containerType = types.ContainerType(binary.BigEndian.Uint32(h[0:4]))
	inner = types.InnerKind(binary.BigEndian.Uint32(h[4:8]))
	keyType = types.KeyType(binary.BigEndian.Uint32(h[8:12]))
	payloadLen = int(binary.BigEndian.Uint32(h[12:16]))
	return containerType, inner, keyType, payloadLen, nil
}

// Seal produces an envelope: magic || userHeader || iv || ciphertext || mac.
// kStore is the AES-128 key the payload is encrypted under; kMac is the
// HMAC-SHA-256 key the envelope is authenticated under.
func Seal(kStore, kMac, userHeader, payload []byte) ([]byte, error) {
	iv, err := crypto.RandomTrue(ivSize)
	if err != nil {
		return nil, err
	}
	ciphertext, err := crypto.AESCBCStream(kStore, iv, payload, true, true)
	if err != nil {
		return nil, err
	}

	header := buildHeader(userHeader, iv, ciphertext)
	mac := crypto.HMACSHA256(kMac, header)

	out := new(bytes.Buffer)
	out.Write(Magic)
	out.Write(userHeader)
	out.Write(iv)
	out.Write(ciphertext)
	out.Write(mac)
	return out.Bytes(), nil
}

// Open verifies and decrypts an envelope produced by Seal. headerLen is the
// exact length of the caller-defined user_header segment. When headerLen
// equals HeaderLen (the fixed four-field layout EncodeHeader builds), Open
// also decodes it and rejects the envelope if its declared payload length
// disagrees with the byte count actually recovered — a caller using a
// different header scheme gets no such check, since this package cannot
// interpret an opaque header it didn't define.
func Open(kStore, kMac []byte, envelope []byte, headerLen int) (userHeader, payload []byte, err error) {
	minLen := len(Magic) + headerLen + ivSize + macSize
	if len(envelope) < minLen {
		return nil, nil, types.ErrInvalidInputSize
	}
	if !bytes.Equal(envelope[:len(Magic)], Magic) {
		return nil, nil, types.ErrInvalidParameters
	}

	off := len(Magic)
	userHeader = envelope[off : off+headerLen]
	off += headerLen
	iv := envelope[off : off+ivSize]
	off += ivSize
	ciphertext := envelope[off : len(envelope)-macSize]
	gotMAC := envelope[len(envelope)-macSize:]

	header := buildHeader(userHeader, iv, ciphertext)
	wantMAC := crypto.HMACSHA256(kMac, header)
	if subtle.ConstantTimeCompare(gotMAC, wantMAC) != 1 {
		return nil, nil, types.ErrVerificationFailed
	}

	payload, err = crypto.AESCBCStream(kStore, iv, ciphertext, false, true)
	if err != nil {
		return nil, nil, err
	}

	if headerLen == HeaderLen {
		_, _, _, declaredLen, err := DecodeHeader(userHeader)
		if err != nil {
			return nil, nil, err
		}
		if declaredLen != len(payload) {
			return nil, nil, types.ErrInvalidInputSize
		}
	}

	return userHeader, payload, nil
}

// VerifyMAC length-validates envelope against headerLen and checks its
// trailing HMAC-SHA-256 against kMac, without decrypting the payload. This
// is the validation a pre-wrapped ContainerStore blob receives at
// provisioning time: the envelope was sealed elsewhere (possibly under a
// kStore this caller never sees), so only its authenticity and shape can be
// confirmed here; decryption happens later, at resolution time, via Open.
func VerifyMAC(kMac, envelope []byte, headerLen int) error {
	minLen := len(Magic) + headerLen + ivSize + macSize
	if len(envelope) < minLen {
		return types.ErrInvalidInputSize
	}
	if !bytes.Equal(envelope[:len(Magic)], Magic) {
		return types.ErrInvalidParameters
	}
	header := envelope[len(Magic) : len(envelope)-macSize]
	gotMAC := envelope[len(envelope)-macSize:]
	wantMAC := crypto.HMACSHA256(kMac, header)
	if subtle.ConstantTimeCompare(gotMAC, wantMAC) != 1 {
		return types.ErrVerificationFailed
	}
	return nil
}

func buildHeader(userHeader, iv, ciphertext []byte) []byte {
	header := make([]byte, 0, len(userHeader)+len(iv)+len(ciphertext))
	header = append(header, userHeader...)
	header = append(header, iv...)
	header = append(header, ciphertext...)
	return header
}
