package container

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/binary"
	"math/big"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// Raw RSA containers use a fixed big-endian field layout, matching the
// Sec_RSARawPrivateKey/Sec_RSARawPublicKey structs this processor's
// semantics are grounded on: a uint32 length prefix followed by that many
// bytes, repeated per field.
//
// Public:  modulus | publicExponent
// Private: modulus | publicExponent | privateExponent | prime1 | prime2

func readLP(data []byte) (field, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, types.ErrInvalidInputSize
	}
	n := binary.BigEndian.Uint32(data)
	if uint64(len(data)-4) < uint64(n) {
		return nil, nil, types.ErrInvalidInputSize
	}
	return data[4 : 4+n], data[4+n:], nil
}

func writeLP(b *[]byte, field []byte) {
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(field)))
	*b = append(*b, lenBytes[:]...)
	*b = append(*b, field...)
}

func decodeRawRSAPublic(data []byte) (*rsa.PublicKey, error) {
	modBytes, rest, err := readLP(data)
	if err != nil {
		return nil, err
	}
	eBytes, _, err := readLP(rest)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(modBytes)
	e := new(big.Int).SetBytes(eBytes)
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func decodeRawRSAPrivate(data []byte) (*rsa.PrivateKey, error) {
	modBytes, rest, err := readLP(data)
	if err != nil {
		return nil, err
	}
	eBytes, rest, err := readLP(rest)
	if err != nil {
		return nil, err
	}
	dBytes, rest, err := readLP(rest)
	if err != nil {
		return nil, err
	}
	p1Bytes, rest, err := readLP(rest)
	if err != nil {
		return nil, err
	}
	p2Bytes, _, err := readLP(rest)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(modBytes)
	e := new(big.Int).SetBytes(eBytes)
	d := new(big.Int).SetBytes(dBytes)
	p1 := new(big.Int).SetBytes(p1Bytes)
	p2 := new(big.Int).SetBytes(p2Bytes)

	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: n, E: int(e.Int64())},
		D:         d,
		Primes:    []*big.Int{p1, p2},
	}
	priv.Precompute()
	if err := priv.Validate(); err != nil {
		return nil, types.ErrInvalidParameters
	}
	return priv, nil
}

// DecodeRawRSAPublic parses the fixed raw-RSA-public layout into a public
// key, for callers outside this package that already hold canonicalized
// raw-RSA-public bytes (e.g. a resolved key handle).
func DecodeRawRSAPublic(data []byte) (*rsa.PublicKey, error) {
	return decodeRawRSAPublic(data)
}

// EncodeRawRSAPublic serializes pub into the fixed raw-RSA-public layout.
func EncodeRawRSAPublic(pub *rsa.PublicKey) []byte {
	var out []byte
	writeLP(&out, pub.N.Bytes())
	writeLP(&out, big.NewInt(int64(pub.E)).Bytes())
	return out
}

// EncodeRawRSAPrivate serializes priv into the fixed raw-RSA-private layout.
func EncodeRawRSAPrivate(priv *rsa.PrivateKey) []byte {
	var out []byte
	writeLP(&out, priv.N.Bytes())
	writeLP(&out, big.NewInt(int64(priv.E)).Bytes())
	writeLP(&out, priv.D.Bytes())
	writeLP(&out, priv.Primes[0].Bytes())
	writeLP(&out, priv.Primes[1].Bytes())
	return out
}

// parseDERRSAPrivate tries PKCS#8 first, then falls back to PKCS#1 — the
// teacher's layered-fallback parsing idiom, generalized to this module's
// two DER shapes.
func parseDERRSAPrivate(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		if rsaKey, ok := key.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}
		return nil, types.ErrInvalidParameters
	}
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	return priv, nil
}

// parseDERRSAPublic tries a bare PKCS#1 RSAPublicKey first, then falls
// back to SubjectPublicKeyInfo.
func parseDERRSAPublic(der []byte) (*rsa.PublicKey, error) {
	if pub, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return pub, nil
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, types.ErrInvalidParameters
	}
	return rsaKey, nil
}
