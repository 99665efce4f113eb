package crypto

import "github.com/joseinweb/rdkcryptoapi/pkg/types"

// KeyLadder iteratively AES-ECB encrypts through a chain of 16-byte ladder
// inputs starting from root: step[0] = AESEncrypt(root, inputs[0]),
// step[i] = AESEncrypt(step[i-1], inputs[i]). The final step's output is
// the derived key. Both the key-store's two soft-wrapped store keys and the
// key-derivation engine's base keys are produced by this same primitive,
// just with different numbers of ladder inputs.
func KeyLadder(root []byte, inputs [][]byte) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, types.ErrInvalidParameters
	}
	cur := root
	for _, in := range inputs {
		if len(in) != 16 {
			return nil, types.ErrInvalidInputSize
		}
		next, err := AESECBEncryptBlock(cur, in)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
