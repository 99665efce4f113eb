package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseinweb/rdkcryptoapi/pkg/types"
)

func TestPKCS7RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("exactly16bytes!!"),
		[]byte("this is a longer message that spans multiple blocks"),
	}
	for _, data := range cases {
		padded := PKCS7Pad(data, 16)
		assert.Equal(t, 0, len(padded)%16)
		unpadded, err := PKCS7Unpad(padded, 16)
		require.NoError(t, err)
		assert.Equal(t, data, unpadded)
	}
}

func TestPKCS7UnpadRejectsBadPadding(t *testing.T) {
	bad := make([]byte, 16)
	bad[15] = 0x11 // claims 17 bytes of padding in a 16-byte block
	_, err := PKCS7Unpad(bad, 16)
	assert.ErrorIs(t, err, types.ErrInvalidPadding)
}

func TestPKCS7UnpadRejectsZeroLengthPad(t *testing.T) {
	bad := make([]byte, 16)
	_, err := PKCS7Unpad(bad, 16)
	assert.ErrorIs(t, err, types.ErrInvalidPadding)
}
