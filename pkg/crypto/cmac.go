package crypto

import "github.com/joseinweb/rdkcryptoapi/pkg/types"

// CMACAES128 computes AES-128 CMAC (NIST SP 800-38B / RFC 4493) over data.
// No example in this codebase's dependency pool ships a CMAC implementation
// — this is hand-rolled directly against AESECBEncryptBlock rather than
// pulled from a third-party package; see DESIGN.md.
func CMACAES128(key, data []byte) ([]byte, error) {
	const bs = 16
	zero := make([]byte, bs)
	l, err := AESECBEncryptBlock(key, zero)
	if err != nil {
		return nil, err
	}
	k1 := cmacShiftXor(l)
	k2 := cmacShiftXor(k1)

	var lastBlock []byte
	full := len(data) != 0 && len(data)%bs == 0
	nBlocks := (len(data) + bs - 1) / bs
	if nBlocks == 0 {
		nBlocks = 1
	}

	padded := make([]byte, nBlocks*bs)
	copy(padded, data)
	if full {
		lastBlock = xorBytes(padded[(nBlocks-1)*bs:nBlocks*bs], k1)
	} else {
		padded[len(data)] = 0x80
		lastBlock = xorBytes(padded[(nBlocks-1)*bs:nBlocks*bs], k2)
	}

	x := make([]byte, bs)
	for i := 0; i < nBlocks-1; i++ {
		x = xorBytes(x, padded[i*bs:(i+1)*bs])
		x, err = AESECBEncryptBlock(key, x)
		if err != nil {
			return nil, err
		}
	}
	x = xorBytes(x, lastBlock)
	return AESECBEncryptBlock(key, x)
}

// cmacShiftXor implements the subkey generation left-shift-by-one with the
// RFC 4493 Rb constant XORed in when the shifted-out bit was 1.
func cmacShiftXor(in []byte) []byte {
	const rb = 0x87
	out := make([]byte, len(in))
	carry := byte(0)
	for i := len(in) - 1; i >= 0; i-- {
		v := in[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[len(out)-1] ^= rb
	}
	return out
}

func xorBytes(a, b []byte) []byte {
	if len(a) != len(b) {
		panic(types.ErrInvalidInputSize)
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
