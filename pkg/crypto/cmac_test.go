package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCMACAES128RFC4493Vectors checks against the RFC 4493 example vectors
// for AES-128 CMAC.
func TestCMACAES128RFC4493Vectors(t *testing.T) {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")

	cases := []struct {
		name string
		msg  string
		want string
	}{
		{"empty", "", "bb1d6929e95937287fa37d129b756746"},
		{"16 bytes", "6bc1bee22e409f96e93d7e117393172a", "070a16b46b4d4144f79bdd9dd04a287c"},
	}

	for _, c := range cases {
		msg, _ := hex.DecodeString(c.msg)
		want, _ := hex.DecodeString(c.want)
		got, err := CMACAES128(key, msg)
		require.NoError(t, err)
		require.Equal(t, want, got, c.name)
	}
}
