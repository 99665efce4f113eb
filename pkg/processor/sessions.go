package processor

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/google/uuid"

	"github.com/joseinweb/rdkcryptoapi/pkg/crypto"
	"github.com/joseinweb/rdkcryptoapi/pkg/types"
	"github.com/joseinweb/rdkcryptoapi/pkg/zeroize"
)

// SessionHandle is the opaque token returned by every GetInstance call; it
// carries no meaning beyond identifying a session to a later Process or
// Release call.
type SessionHandle string

func newHandle() SessionHandle { return SessionHandle(uuid.NewString()) }

// CipherMode selects the block-cipher mode a CipherSession runs.
type CipherMode int

const (
	CipherModeECB CipherMode = iota
	CipherModeCBC
	CipherModeCTR
)

// CipherSession implements the three-call (GetInstance/Process/Release)
// pattern for bulk encryption/decryption, including the fragmented
// (sub-sample) window mode and the "any call after lastInput is rejected"
// state machine. For ECB/CBC it holds a live cipher.BlockMode across calls
// so a caller doing incremental encryption over several non-final Process
// calls chains correctly instead of restarting from the original IV each
// time; for CTR it holds a live cipher.Stream so the keystream counter
// advances rather than repeats.
type CipherSession struct {
	handle    SessionHandle
	key       []byte
	iv        []byte
	mode      CipherMode
	encrypt   bool
	pad       bool
	processed bool
	blockSize int
	blockMode cipher.BlockMode
	stream    cipher.Stream
	pending   []byte
}

// GetCipherInstance opens a cipher session bound to key/iv/mode.
func (p *Processor) GetCipherInstance(key, iv []byte, mode CipherMode, encrypt, pad bool) (*CipherSession, error) {
	if len(key) == 0 {
		return nil, types.ErrInvalidParameters
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.ErrInvalidParameters
	}
	s := &CipherSession{handle: newHandle(), key: key, iv: iv, mode: mode, encrypt: encrypt, pad: pad, blockSize: block.BlockSize()}
	switch mode {
	case CipherModeECB:
		if encrypt {
			s.blockMode = crypto.NewECBEncrypter(block)
		} else {
			s.blockMode = crypto.NewECBDecrypter(block)
		}
	case CipherModeCBC:
		if len(iv) != block.BlockSize() {
			return nil, types.ErrInvalidInputSize
		}
		if encrypt {
			s.blockMode = cipher.NewCBCEncrypter(block, iv)
		} else {
			s.blockMode = cipher.NewCBCDecrypter(block, iv)
		}
	case CipherModeCTR:
		if len(iv) != block.BlockSize() {
			return nil, types.ErrInvalidInputSize
		}
		s.stream = cipher.NewCTR(block, iv)
	default:
		return nil, types.ErrInvalidParameters
	}
	return s, nil
}

// Process transforms data. If lastInput is true this is the session's final
// call: any further call returns types.ErrFailure, matching the processor's
// single-shot-after-last-input contract. Zero or more non-final calls may
// precede it; ECB/CBC buffer any trailing partial block across calls so the
// boundary between calls never corrupts the chaining.
func (s *CipherSession) Process(data []byte, lastInput bool) ([]byte, error) {
	if s.processed {
		return nil, types.ErrFailure
	}
	if lastInput {
		s.processed = true
	}
	if s.mode == CipherModeCTR {
		out := make([]byte, len(data))
		s.stream.XORKeyStream(out, data)
		return out, nil
	}
	return s.processBlocks(data, lastInput)
}

func (s *CipherSession) processBlocks(data []byte, lastInput bool) ([]byte, error) {
	bs := s.blockSize
	buf := append(s.pending, data...)

	if !lastInput {
		nFull := (len(buf) / bs) * bs
		toProcess := buf[:nFull]
		s.pending = append([]byte{}, buf[nFull:]...)
		if len(toProcess) == 0 {
			return nil, nil
		}
		out := make([]byte, len(toProcess))
		s.blockMode.CryptBlocks(out, toProcess)
		return out, nil
	}

	s.pending = nil
	in := buf
	if s.encrypt {
		if s.pad {
			in = crypto.PKCS7Pad(buf, bs)
		} else if len(in)%bs != 0 {
			return nil, types.ErrInvalidInputSize
		}
		out := make([]byte, len(in))
		s.blockMode.CryptBlocks(out, in)
		return out, nil
	}
	if len(in)%bs != 0 || len(in) == 0 {
		return nil, types.ErrInvalidInputSize
	}
	out := make([]byte, len(in))
	s.blockMode.CryptBlocks(out, in)
	if s.pad {
		return crypto.PKCS7Unpad(out, bs)
	}
	return out, nil
}

// ProcessFragmented applies the session's transform only within the given
// windows, leaving the gaps between them untouched. Each window is its own
// independent one-shot transform (re-keyed from the session's original
// key/IV), unlike Process's contiguous chaining — fragmented mode exists
// precisely because the windows are not a contiguous stream.
func (s *CipherSession) ProcessFragmented(data []byte, windows []crypto.Window) ([]byte, error) {
	if s.processed {
		return nil, types.ErrFailure
	}
	return crypto.ApplyFragmented(data, windows, func(chunk []byte) ([]byte, error) {
		switch s.mode {
		case CipherModeCTR:
			return crypto.AESCTRStream(s.key, s.iv, chunk)
		case CipherModeCBC:
			return crypto.AESCBCStream(s.key, s.iv, chunk, s.encrypt, false)
		default:
			return crypto.AESECBStream(s.key, chunk, s.encrypt, false)
		}
	})
}

// Release ends the session. Cipher sessions hold no key material beyond
// what the caller supplied, so there is nothing to zeroize here — the
// caller-owned key buffer is the caller's responsibility.
func (s *CipherSession) Release() {}

// DigestSession implements the three-call pattern for hashing, accepting
// either raw bytes or an object handle up front.
type DigestSession struct {
	handle SessionHandle
	sha256 bool
	buf    []byte
}

// GetDigestInstance opens a digest session. sha256 selects SHA-256 over
// SHA-1.
func (p *Processor) GetDigestInstance(sha256 bool) *DigestSession {
	return &DigestSession{handle: newHandle(), sha256: sha256}
}

// GetDigestInstanceForKeyHandle opens a digest session and seeds it with
// the clear bytes of the key handle at id — the unwrapping (and, for a
// derived container, ladder recomputation) happens inside this call, so
// the caller never sees the key bytes directly.
func (p *Processor) GetDigestInstanceForKeyHandle(id types.ObjectID, sha256 bool) (*DigestSession, error) {
	keyBytes, err := p.ResolveKey(id)
	if err != nil {
		return nil, err
	}
	buf := zeroize.NewBuffer(len(keyBytes))
	copy(buf.Bytes, keyBytes)
	defer zeroize.Bytes(buf.Bytes)
	s := &DigestSession{handle: newHandle(), sha256: sha256}
	s.Process(buf.Bytes)
	return s, nil
}

// Process accumulates data into the running digest.
func (s *DigestSession) Process(data []byte) {
	s.buf = append(s.buf, data...)
}

// Release computes and returns the final digest.
func (s *DigestSession) Release() []byte {
	if s.sha256 {
		return crypto.SHA256(s.buf)
	}
	return crypto.SHA1(s.buf)
}

// MACAlgorithm selects among the three MAC algorithms this processor
// supports: HMAC-SHA-1, HMAC-SHA-256, and CMAC-AES-128.
type MACAlgorithm int

const (
	MACAlgorithmHMACSHA1 MACAlgorithm = iota
	MACAlgorithmHMACSHA256
	MACAlgorithmCMACAES128
)

// MACSession implements the three-call pattern for MAC computation,
// resolving its key either from raw bytes or from an object handle.
type MACSession struct {
	handle SessionHandle
	key    []byte
	alg    MACAlgorithm
	buf    []byte
}

// GetMACInstance opens a MAC session keyed by raw key bytes.
func (p *Processor) GetMACInstance(key []byte, alg MACAlgorithm) (*MACSession, error) {
	if len(key) == 0 {
		return nil, types.ErrInvalidParameters
	}
	return &MACSession{handle: newHandle(), key: key, alg: alg}, nil
}

// GetMACInstanceForKeyHandle opens a MAC session keyed by an object handle,
// resolving the key (recomputing it from the root key first if id names a
// derived container) into a scoped buffer that is zeroized when the session
// is released.
func (p *Processor) GetMACInstanceForKeyHandle(id types.ObjectID, alg MACAlgorithm) (*MACSession, error) {
	keyBytes, err := p.ResolveKey(id)
	if err != nil {
		return nil, err
	}
	defer zeroize.Bytes(keyBytes)
	buf := zeroize.NewBuffer(len(keyBytes))
	copy(buf.Bytes, keyBytes)
	return &MACSession{handle: newHandle(), key: buf.Bytes, alg: alg}, nil
}

// Process accumulates data into the running MAC.
func (s *MACSession) Process(data []byte) {
	s.buf = append(s.buf, data...)
}

// Release computes the final MAC and zeroizes the session's key buffer.
func (s *MACSession) Release() ([]byte, error) {
	defer zeroize.Bytes(s.key)
	switch s.alg {
	case MACAlgorithmHMACSHA256:
		return crypto.HMACSHA256(s.key, s.buf), nil
	case MACAlgorithmCMACAES128:
		return crypto.CMACAES128(s.key, s.buf)
	default:
		return crypto.HMACSHA1(s.key, s.buf), nil
	}
}

// MACSingleInputID is a one-shot convenience wrapper for callers that do
// not need an incremental session: it resolves key from id, computes the
// MAC over data in one call, and zeroizes the unwrapped key on every exit
// path.
func (p *Processor) MACSingleInputID(id types.ObjectID, data []byte, alg MACAlgorithm) ([]byte, error) {
	session, err := p.GetMACInstanceForKeyHandle(id, alg)
	if err != nil {
		return nil, err
	}
	session.Process(data)
	return session.Release()
}
