package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

// TestCBCIncrementalMatchesOneShot pins the chaining requirement: splitting
// a plaintext across several non-final Process calls before the final call
// must produce the same ciphertext as passing it in one call, proving the
// session carries CBC state across calls instead of restarting from the
// original IV each time.
func TestCBCIncrementalMatchesOneShot(t *testing.T) {
	p := newTestProcessor(t)
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plain := make([]byte, 48)
	for i := range plain {
		plain[i] = byte(i)
	}

	oneShot, err := p.GetCipherInstance(key, iv, CipherModeCBC, true, true)
	require.NoError(t, err)
	whole, err := oneShot.Process(plain, true)
	require.NoError(t, err)

	incremental, err := p.GetCipherInstance(key, iv, CipherModeCBC, true, true)
	require.NoError(t, err)
	part1, err := incremental.Process(plain[:20], false)
	require.NoError(t, err)
	part2, err := incremental.Process(plain[20:], true)
	require.NoError(t, err)

	assert.Equal(t, whole, append(part1, part2...))
}

// TestCBCIncrementalRoundTrip encrypts across two non-final calls and a
// final call, then decrypts the whole ciphertext back to the plaintext.
func TestCBCIncrementalRoundTrip(t *testing.T) {
	p := newTestProcessor(t)
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plain := []byte("this plaintext spans more than one AES block by design")

	enc, err := p.GetCipherInstance(key, iv, CipherModeCBC, true, true)
	require.NoError(t, err)
	c1, err := enc.Process(plain[:10], false)
	require.NoError(t, err)
	c2, err := enc.Process(plain[10:30], false)
	require.NoError(t, err)
	c3, err := enc.Process(plain[30:], true)
	require.NoError(t, err)
	ciphertext := append(append(c1, c2...), c3...)

	dec, err := p.GetCipherInstance(key, iv, CipherModeCBC, false, true)
	require.NoError(t, err)
	got, err := dec.Process(ciphertext, true)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

// TestCTRIncrementalMatchesOneShot pins the same chaining requirement for
// CTR mode: the keystream counter must advance across calls rather than
// repeat from the start of the IV each time.
func TestCTRIncrementalMatchesOneShot(t *testing.T) {
	p := newTestProcessor(t)
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plain := make([]byte, 40)
	for i := range plain {
		plain[i] = byte(i * 3)
	}

	oneShot, err := p.GetCipherInstance(key, iv, CipherModeCTR, true, false)
	require.NoError(t, err)
	whole, err := oneShot.Process(plain, true)
	require.NoError(t, err)

	incremental, err := p.GetCipherInstance(key, iv, CipherModeCTR, true, false)
	require.NoError(t, err)
	part1, err := incremental.Process(plain[:17], false)
	require.NoError(t, err)
	part2, err := incremental.Process(plain[17:], true)
	require.NoError(t, err)

	assert.Equal(t, whole, append(part1, part2...))
}

// TestMACSessionCMACAES128 pins the third MAC algorithm this processor must
// support alongside the two HMACs.
func TestMACSessionCMACAES128(t *testing.T) {
	p := newTestProcessor(t)
	key := make([]byte, 16)

	session, err := p.GetMACInstance(key, MACAlgorithmCMACAES128)
	require.NoError(t, err)
	session.Process([]byte("cmac input"))
	mac, err := session.Release()
	require.NoError(t, err)
	assert.Len(t, mac, 16)
}

// TestMACInstanceForKeyHandleSupportsAllAlgorithms pins that handle-based
// MAC sessions, not just raw-key ones, can select any of the three
// algorithms.
func TestMACInstanceForKeyHandleSupportsAllAlgorithms(t *testing.T) {
	p := newTestProcessor(t)
	id := types.ObjectID(0x5000)
	keyBytes := make([]byte, 16)
	require.NoError(t, p.ProvisionKey(id, types.ContainerRaw, types.KeyTypeAES128, keyBytes, types.LocationRAM))

	for _, alg := range []MACAlgorithm{MACAlgorithmHMACSHA1, MACAlgorithmHMACSHA256, MACAlgorithmCMACAES128} {
		mac, err := p.MACSingleInputID(id, []byte("payload"), alg)
		require.NoError(t, err)
		assert.NotEmpty(t, mac)
	}
}

// TestDigestInstanceForKeyHandle pins the digest-from-key-handle
// requirement: a digest session can be seeded from a key handle's clear
// bytes the same way a MAC session can.
func TestDigestInstanceForKeyHandle(t *testing.T) {
	p := newTestProcessor(t)
	id := types.ObjectID(0x5001)
	keyBytes := make([]byte, 16)
	for i := range keyBytes {
		keyBytes[i] = byte(i + 1)
	}
	require.NoError(t, p.ProvisionKey(id, types.ContainerRaw, types.KeyTypeAES128, keyBytes, types.LocationRAM))

	session, err := p.GetDigestInstanceForKeyHandle(id, true)
	require.NoError(t, err)
	got := session.Release()

	want := p.GetDigestInstance(true)
	want.Process(keyBytes)
	assert.Equal(t, want.Release(), got)
}
