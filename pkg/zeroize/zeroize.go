// Package zeroize provides the scoped-buffer primitive every unwrap path
// uses to guarantee key material is overwritten on every exit, including
// error returns.
package zeroize

// Bytes overwrites b with zeroes in place.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Buffer is a scoped byte buffer whose Release zeroizes its contents. Callers
// allocate one immediately before copying unwrapped key material into it and
// defer Release so the zeroization runs on every exit path:
//
//	buf := zeroize.NewBuffer(n)
//	defer buf.Release()
//	copy(buf.Bytes, unwrapped)
type Buffer struct {
	Bytes []byte
}

// NewBuffer allocates a Buffer of the given length.
func NewBuffer(n int) *Buffer {
	return &Buffer{Bytes: make([]byte, n)}
}

// WrapBytes returns a Buffer taking ownership of an existing slice. The
// slice must not be retained elsewhere once wrapped.
func WrapBytes(b []byte) *Buffer {
	return &Buffer{Bytes: b}
}

// Release zeroizes the buffer's contents. It is safe to call more than once.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	Bytes(b.Bytes)
}
