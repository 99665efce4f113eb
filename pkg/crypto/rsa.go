package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

const crypto256 = stdcrypto.SHA256
const crypto1 = stdcrypto.SHA1

// RSAEncryptPKCS1 encrypts plaintext under pub using PKCS#1 v1.5 padding.
func RSAEncryptPKCS1(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
	if err != nil {
		return nil, types.ErrFailure
	}
	return ct, nil
}

// RSADecryptPKCS1 decrypts ciphertext with priv using PKCS#1 v1.5 padding.
func RSADecryptPKCS1(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
	if err != nil {
		return nil, types.ErrInvalidPadding
	}
	return pt, nil
}

// RSAEncryptOAEP encrypts plaintext under pub using OAEP with SHA-256.
func RSAEncryptOAEP(pub *rsa.PublicKey, plaintext, label []byte) ([]byte, error) {
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, label)
	if err != nil {
		return nil, types.ErrFailure
	}
	return ct, nil
}

// RSADecryptOAEP decrypts ciphertext with priv using OAEP with SHA-256.
func RSADecryptOAEP(priv *rsa.PrivateKey, ciphertext, label []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, label)
	if err != nil {
		return nil, types.ErrInvalidPadding
	}
	return pt, nil
}

// RSASignPKCS1 signs the digest of data with priv using PKCS#1 v1.5. sha256
// selects SHA-256 over SHA-1 as the underlying digest.
func RSASignPKCS1(priv *rsa.PrivateKey, data []byte, sha256 bool) ([]byte, error) {
	alg, h := crypto1, SHA1(data)
	if sha256 {
		alg, h = crypto256, SHA256(data)
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, alg, h)
	if err != nil {
		return nil, types.ErrFailure
	}
	return sig, nil
}

// RSAVerifyPKCS1 verifies sig over the digest of data against pub. sha256
// selects SHA-256 over SHA-1 as the underlying digest.
func RSAVerifyPKCS1(pub *rsa.PublicKey, data, sig []byte, sha256 bool) error {
	alg, h := crypto1, SHA1(data)
	if sha256 {
		alg, h = crypto256, SHA256(data)
	}
	if err := rsa.VerifyPKCS1v15(pub, alg, h, sig); err != nil {
		return types.ErrVerificationFailed
	}
	return nil
}
