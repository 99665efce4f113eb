package zeroize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferReleaseZeroizes(t *testing.T) {
	buf := NewBuffer(16)
	for i := range buf.Bytes {
		buf.Bytes[i] = 0xFF
	}
	buf.Release()
	for _, b := range buf.Bytes {
		assert.Equal(t, byte(0), b)
	}
}

func TestReleaseOnNilBufferIsSafe(t *testing.T) {
	var buf *Buffer
	assert.NotPanics(t, func() { buf.Release() })
}
