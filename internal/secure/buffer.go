// Package secure provides containers for secret material that are
// deterministically zeroed when released.
package secure

import (
	"sync"
)

// Buffer holds secret bytes (passwords, key material) and guarantees the
// backing storage is overwritten with zeros when destroyed or shrunk.
// A Buffer takes ownership of the slice passed to NewBuffer; callers must
// not retain or copy it afterwards.
type Buffer struct {
	mu        sync.Mutex
	data      []byte
	destroyed bool

	unlock func()
}

// NewBuffer wraps b in a Buffer, taking ownership of the slice. The memory
// is locked against swapping on a best-effort basis.
func NewBuffer(b []byte) *Buffer {
	unlock := func() {}

	if err := lockMemory(b); err == nil {
		unlock = func() {
			_ = unlockMemory(b)
		}
	}

	return &Buffer{
		data:   b,
		unlock: unlock,
	}
}

// Bytes returns the buffer contents, or nil after Destroy.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return nil
	}

	return b.data
}

// Len returns the number of bytes held, or zero after Destroy.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return 0
	}

	return len(b.data)
}

// Truncate shrinks the buffer to n bytes, zeroing the tail that is cut off.
// Growing is not supported; n larger than the current length is a no-op.
func (b *Buffer) Truncate(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed || n < 0 || n >= len(b.data) {
		return
	}

	Zero(b.data[n:])
	b.data = b.data[:n]
}

// Destroy zeroes the contents, unlocks the memory, and marks the buffer
// unusable. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}

	Zero(b.data)
	b.destroyed = true

	if b.unlock != nil {
		b.unlock()
	}
}
