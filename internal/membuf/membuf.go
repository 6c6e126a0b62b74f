// Package membuf provides a growable scratch byte buffer used while
// converting client pixels into native layouts.
package membuf

// allocate is swapped in tests to simulate allocation failure.
var allocate = func(n int) ([]byte, bool) {
	return make([]byte, n), true
}

// MemoryBuffer is a resizable byte buffer. The zero value is an empty
// buffer ready to use.
//
// Invariant: Data is nil exactly when Size is zero.
//
// MemoryBuffer is not safe for concurrent use.
type MemoryBuffer struct {
	data []byte
}

// Resize changes the buffer length to n, preserving the first min(Size(), n)
// bytes. Resize(0) releases the storage.
//
// The new storage is obtained before the old one is touched. If the
// allocation fails Resize returns false and the buffer keeps its previous
// size and contents.
func (b *MemoryBuffer) Resize(n int) bool {
	if n < 0 {
		return false
	}
	if n == 0 {
		b.data = nil
		return true
	}
	if n == len(b.data) {
		return true
	}

	next, ok := allocate(n)
	if !ok || len(next) != n {
		return false
	}
	copy(next, b.data)
	b.data = next
	return true
}

// Size returns the buffer length in bytes.
func (b *MemoryBuffer) Size() int {
	return len(b.data)
}

// Empty reports whether the buffer holds no storage.
func (b *MemoryBuffer) Empty() bool {
	return len(b.data) == 0
}

// Data returns the buffer contents. Calling Data on an empty buffer is a
// programming error and panics.
func (b *MemoryBuffer) Data() []byte {
	if b.data == nil {
		panic("membuf: Data called on empty buffer")
	}
	return b.data
}

// Bytes returns the buffer contents, or nil for an empty buffer.
func (b *MemoryBuffer) Bytes() []byte {
	return b.data
}
